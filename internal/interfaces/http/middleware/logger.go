package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/Ofr3d/FADA/pkg/logger"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack пробрасывает http.Hijacker для апгрейда WebSocket соединений
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hijacker.Hijack()
}

// Logger middleware логирует каждый HTTP запрос; ответы 5xx поднимаются
// до уровня warn, чтобы их было видно при level=warn в проде
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			if wrapped.statusCode >= http.StatusInternalServerError {
				log.Warn("HTTP Request", fields...)
				return
			}
			log.Info("HTTP Request", fields...)
		})
	}
}
