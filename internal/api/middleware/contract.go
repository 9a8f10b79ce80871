package middleware

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/integrations/identity"
)

// TokenVerifier удаленная проверка токена у identity provider
type TokenVerifier interface {
	GetUser(ctx context.Context, token string) (*identity.User, error)
}

// Limiter счетчик запросов по ключу
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
