package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// clientLimiter holds one client's limiter and its last access time so
// idle entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles login attempts per client address.
type LoginLimiter struct {
	ratePerMin int
	burst      int

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

// NewLoginLimiter creates a per-client login limiter.
func NewLoginLimiter(ratePerMin, burst int) *LoginLimiter {
	if ratePerMin < 1 {
		ratePerMin = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &LoginLimiter{
		ratePerMin: ratePerMin,
		burst:      burst,
		limiters:   make(map[string]*clientLimiter),
	}
}

// Middleware rejects clients exceeding the login rate with 429.
func (l *LoginLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientAddr(r)) {
				w.Header().Set("Retry-After", "60")
				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":   "rate_limit_exceeded",
					"message": "too many login attempts, try again later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *LoginLimiter) allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cl, ok := l.limiters[addr]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.ratePerMin)/60.0), l.burst),
		}
		l.limiters[addr] = cl
	}
	cl.lastAccess = now

	// Opportunistic eviction of entries idle for over an hour.
	if len(l.limiters) > 1024 {
		for k, v := range l.limiters {
			if now.Sub(v.lastAccess) > time.Hour {
				delete(l.limiters, k)
			}
		}
	}

	return cl.limiter.Allow()
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
