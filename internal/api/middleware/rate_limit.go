package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/ClinicBookingService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// limiterIdleTTL время, после которого неактивный клиент забывается
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu             sync.Mutex
	clients        map[string]*clientLimiter
	limit          rate.Limit
	burst          int
	trustForwarded bool
	lastSweep      time.Time
	now            func() time.Time
}

// NewRateLimiter создает ограничитель: requestsPerMinute запросов в минуту с запасом burst
// X-Forwarded-For учитывается только при trustForwarded, то есть за доверенным прокси
func NewRateLimiter(requestsPerMinute float64, burst int, trustForwarded bool) *RateLimiter {
	return &RateLimiter{
		clients:        make(map[string]*clientLimiter),
		limit:          rate.Limit(requestsPerMinute / 60),
		burst:          burst,
		trustForwarded: trustForwarded,
		now:            time.Now,
	}
}

// Allow сообщает, можно ли обработать запрос клиента
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Middleware отвечает 429, когда клиент превысил лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); l.trustForwarded && fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
