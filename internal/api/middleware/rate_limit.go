package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RedisLimiter фиксированное окно: INCR ключа окна, EXPIRE при первом запросе.
// Счетчик общий для всех реплик сервиса.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter создает лимитер на limit запросов за window.
// Ключи имеют вид prefix:ip:окно.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow увеличивает счетчик текущего окна
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// LocalLimiter token bucket на процесс, используется без Redis.
// Корзина, простоявшая idleTTL, удаляется: за это время она успевает наполниться.
type LocalLimiter struct {
	mu        sync.Mutex
	entries   map[string]*localEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter в среднем limit запросов за window, не больше limit подряд
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		idleTTL: window,
		now:     time.Now,
	}
}

// Allow забирает токен из корзины ключа
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
		l.lastSweep = now
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1), nil
}

func (l *LocalLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.entries, key)
		}
	}
}

// TrustedProxies сети балансировщиков, которым разрешено передавать адрес клиента
// в X-Forwarded-For и X-Real-IP. Пустой список: заголовки игнорируются.
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies принимает CIDR ("10.0.0.0/8") или отдельные адреса
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	p := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: invalid address", entry)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			p.nets = append(p.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		p.nets = append(p.nets, ipNet)
	}
	return p, nil
}

func (p *TrustedProxies) contains(ip net.IP) bool {
	if p == nil || ip == nil {
		return false
	}
	for _, n := range p.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP адрес клиента для лимитов.
// Заголовки читаются только от доверенного пира; X-Forwarded-For разбирается справа налево
// до первого недоверенного адреса, левые записи клиент мог подставить сам.
func (p *TrustedProxies) ClientIP(r *http.Request) string {
	peer := remoteHost(r)
	if !p.contains(net.ParseIP(peer)) {
		return peer
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}
	if len(hops) > 0 {
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				break
			}
			client = hop
			if !p.contains(ip) {
				break
			}
		}
		return client
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return peer
}

// RateLimit ограничивает запросы по IP клиента.
// Если лимитер недоступен, запрос пропускается.
func RateLimit(limiter Limiter, proxies *TrustedProxies, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.ClientIP(r)
			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("RateLimit: limiter failed for ip=%s: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.Warn("RateLimit: limit exceeded for ip=%s, %s %s", ip, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
