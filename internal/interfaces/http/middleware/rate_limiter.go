package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Counter is the subset of a metrics counter used by middleware.
type Counter interface {
	Inc()
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps a token-bucket limiter per client IP. Entries idle
// longer than idleEvict are dropped by a background sweep so the map does
// not grow unbounded under churning producer IPs.
type IPRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	idleEvict time.Duration
}

// NewIPRateLimiter создает rate limiter на rps запросов в секунду
// с указанным burst для каждого IP
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		entries:   make(map[string]*limiterEntry),
		rps:       rate.Limit(rps),
		burst:     burst,
		idleEvict: 5 * time.Minute,
	}
	go l.sweep()
	return l
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.limiter.Allow()
}

func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(l.idleEvict)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-l.idleEvict)
		l.mu.Lock()
		for ip, entry := range l.entries {
			if entry.lastSeen.Before(cutoff) {
				delete(l.entries, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP берет первый адрес из X-Forwarded-For (адрес исходного клиента),
// затем X-Real-IP, затем RemoteAddr
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// RateLimit ограничивает частоту запросов по IP клиента.
// dropped counter может быть nil.
func RateLimit(limiter *IPRateLimiter, dropped Counter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				if dropped != nil {
					dropped.Inc()
				}
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
