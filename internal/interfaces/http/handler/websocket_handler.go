package handler

import (
	"net/http"
	"net/url"
	"strings"

	wsInfra "github.com/Ofr3d/FADA/internal/infrastructure/notification/websocket"
	"github.com/Ofr3d/FADA/internal/interfaces/http/middleware"
	"github.com/Ofr3d/FADA/pkg/logger"
	"github.com/gorilla/websocket"
)

// WebSocketHandler апгрейдит /ws соединения и привязывает их к hub.
// Origin проверяется по allow-list из конфигурации; пустой список
// запрещает все браузерные подключения.
type WebSocketHandler struct {
	hub        *wsInfra.Hub
	logger     *logger.Logger
	origins    map[string]struct{}
	anyOrigin  bool
	authConfig middleware.AuthConfig
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler создает новый handler
func NewWebSocketHandler(
	hub *wsInfra.Hub,
	allowedOrigins []string,
	authConfig middleware.AuthConfig,
	log *logger.Logger,
) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:        hub,
		logger:     log,
		origins:    make(map[string]struct{}, len(allowedOrigins)),
		authConfig: authConfig,
	}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			h.anyOrigin = true
		default:
			h.origins[origin] = struct{}{}
		}
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if h.anyOrigin {
		return true
	}

	_, ok := h.origins[parsed.Scheme+"://"+parsed.Host]
	return ok
}

// HandleConnection аутентифицирует запрос (token через query для браузеров),
// апгрейдит соединение и запускает read/write pumps клиента
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	if err := middleware.ValidateRequestAuth(r, h.authConfig); err != nil {
		h.logger.Warn("WebSocket unauthorized",
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", err)
		return
	}

	client := wsInfra.NewClient(h.hub, conn, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
