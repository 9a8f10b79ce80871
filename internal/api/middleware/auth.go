package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/identity"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgForbidden    = "доступ запрещен"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")

	// errIdentityUnavailable identity provider не ответил, токен не проверен
	errIdentityUnavailable = errors.New("identity provider unavailable")
)

// Claims полезная нагрузка токена identity provider
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type identityKey struct{}

// WithIdentity кладет пользователя в контекст
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity пользователь текущего запроса
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// Authenticator проверяет bearer токены.
// С секретом подпись проверяется локально (HMAC), без него токен отправляется в identity provider.
type Authenticator struct {
	secret      []byte
	verifier    TokenVerifier
	adminEmails []string
	logger      Logger
}

// NewAuthenticator создает проверку токенов. verifier может быть nil, если задан secret.
func NewAuthenticator(secret string, verifier TokenVerifier, adminEmails []string, logger Logger) *Authenticator {
	return &Authenticator{
		secret:      []byte(secret),
		verifier:    verifier,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

// OptionalAuth определяет пользователя, если токен передан; анонимный запрос пропускается
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.authenticate(r)
		switch {
		case errors.Is(err, errMissingToken):
			next.ServeHTTP(w, r)
		case errors.Is(err, errIdentityUnavailable):
			a.logger.Error("OptionalAuth: %s %s - %v", r.Method, r.URL.Path, err)
			handlers.RespondUnavailable(w)
		case err != nil:
			a.logger.Warn("OptionalAuth: %s %s - %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
		default:
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
	})
}

// Auth требует действительный токен
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.authenticate(r)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			switch {
			case errors.Is(err, errMissingToken):
				handlers.RespondUnauthorized(w, msgUnauthorized)
			case errors.Is(err, errIdentityUnavailable):
				handlers.RespondUnavailable(w)
			default:
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !id.IsAdmin {
			a.logger.Warn("RequireAdmin: user=%s is not an admin, %s %s", id.UserID, r.Method, r.URL.Path)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (domain.Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return domain.Identity{}, errMissingToken
	}

	var (
		id   domain.Identity
		role string
		err  error
	)
	if len(a.secret) > 0 {
		id, role, err = a.parseLocal(token)
	} else {
		id, role, err = a.verifyRemote(r.Context(), token)
	}
	if err != nil {
		return domain.Identity{}, err
	}

	id.IsAdmin = role == "admin" || (id.Email != "" && domain.IsAdminEmail(id.Email, a.adminEmails))
	return id, nil
}

func (a *Authenticator) parseLocal(token string) (domain.Identity, string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, "", errInvalidToken
	}
	if claims.Subject == "" {
		return domain.Identity{}, "", errInvalidToken
	}
	return domain.Identity{UserID: claims.Subject, Email: claims.Email}, claims.Role, nil
}

func (a *Authenticator) verifyRemote(ctx context.Context, token string) (domain.Identity, string, error) {
	if a.verifier == nil {
		return domain.Identity{}, "", errInvalidToken
	}
	user, err := a.verifier.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthorized) || errors.Is(err, identity.ErrInvalidResponse) {
			return domain.Identity{}, "", errors.Join(errInvalidToken, err)
		}
		return domain.Identity{}, "", errors.Join(errIdentityUnavailable, err)
	}
	role := ""
	if user.IsAdmin() {
		role = "admin"
	}
	return domain.Identity{UserID: user.ID, Email: user.Email}, role, nil
}

// bearerToken токен из заголовка Authorization. Браузер не может выставить заголовок
// при открытии WebSocket, поэтому для upgrade-запросов принимается access_token из query.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) >= 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("access_token")
	}
	return ""
}
