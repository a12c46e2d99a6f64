package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Ofr3d/FADA/pkg/logger"
)

// AuthCookieName — HttpOnly cookie, который выставляет /api/v1/auth/login
const AuthCookieName = "fada_auth_token"

var errUnauthorized = errors.New("unauthorized")

// AuthConfig включает Bearer token проверку на защищенных маршрутах.
// Эта реализация — baseline, позже заменяемая на JWT/JWKS.
type AuthConfig struct {
	Enabled     bool
	BearerToken string
}

// tokenFromRequest ищет token в порядке: Authorization header, cookie,
// query параметр. Query нужен браузерным WebSocket клиентам — new
// WebSocket() не умеет кастомные headers.
func tokenFromRequest(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(AuthCookieName); err == nil {
		if token := strings.TrimSpace(c.Value); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// ValidateRequestAuth возвращает nil, если запрос аутентифицирован.
// Включенный auth без настроенного token отклоняет все запросы,
// а не пропускает их.
func ValidateRequestAuth(r *http.Request, cfg AuthConfig) error {
	switch {
	case !cfg.Enabled:
		return nil
	case strings.TrimSpace(cfg.BearerToken) == "":
		return errUnauthorized
	case tokenFromRequest(r) != cfg.BearerToken:
		return errUnauthorized
	}
	return nil
}

// Auth защищает endpoint Bearer token проверкой.
// failures counter может быть nil.
func Auth(cfg AuthConfig, log *logger.Logger, failures Counter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ValidateRequestAuth(r, cfg); err != nil {
				if failures != nil {
					failures.Inc()
				}
				log.Warn("Unauthorized request",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("WWW-Authenticate", `Bearer realm="fada"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authCookie(token string, secure bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// WriteAuthCookie выставляет auth cookie на maxAgeSeconds
func WriteAuthCookie(w http.ResponseWriter, token string, secure bool, maxAgeSeconds int) {
	http.SetCookie(w, authCookie(token, secure, maxAgeSeconds))
}

// ClearAuthCookie немедленно инвалидирует auth cookie
func ClearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, authCookie("", secure, -1))
}

// WriteJSON сериализует payload со статусом status
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
