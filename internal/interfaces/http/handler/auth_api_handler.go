package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Ofr3d/FADA/internal/interfaces/http/middleware"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// authCookieTTL ограничивает срок жизни cookie оператора одной сменой
const authCookieTTL = 12 * 60 * 60

// AuthAPIHandler выдает и снимает auth cookie для браузерных клиентов
// (операторский UI не может слать Authorization header в new WebSocket())
type AuthAPIHandler struct {
	authConfig middleware.AuthConfig
	logger     *logger.Logger
}

func NewAuthAPIHandler(authConfig middleware.AuthConfig, log *logger.Logger) *AuthAPIHandler {
	return &AuthAPIHandler{authConfig: authConfig, logger: log}
}

type authLoginRequest struct {
	Token string `json:"token"`
}

type authSessionResponse struct {
	Success     bool `json:"success"`
	AuthEnabled bool `json:"auth_enabled"`
}

// Login проверяет token и при успехе выставляет HttpOnly cookie
func (h *AuthAPIHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.authConfig.Enabled {
		middleware.WriteJSON(w, http.StatusOK, authSessionResponse{Success: true})
		return
	}

	defer r.Body.Close()
	var req authLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" || token != h.authConfig.BearerToken {
		h.logger.Warn("Auth login failed", "remote_addr", r.RemoteAddr)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	middleware.WriteAuthCookie(w, token, r.TLS != nil, authCookieTTL)
	middleware.WriteJSON(w, http.StatusOK, authSessionResponse{Success: true, AuthEnabled: true})
}

// Logout сбрасывает cookie независимо от его валидности
func (h *AuthAPIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	middleware.ClearAuthCookie(w, r.TLS != nil)
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status отвечает, аутентифицирован ли запрос, не требуя аутентификации сам
func (h *AuthAPIHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authenticated := middleware.ValidateRequestAuth(r, h.authConfig) == nil
	cookiePresent := false
	if c, err := r.Cookie(middleware.AuthCookieName); err == nil {
		cookiePresent = strings.TrimSpace(c.Value) != ""
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"auth_enabled":   h.authConfig.Enabled,
		"authenticated":  authenticated,
		"cookie_present": cookiePresent,
	})
}
