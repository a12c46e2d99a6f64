package websocket

import (
	"sync"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// Hub управляет WebSocket клиентами и рассылает сообщения мониторинга.
// Реализует интерфейс port.NotificationService.
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Канал для broadcast снимков состояния
	broadcastStatus chan *dto.StatusDTO

	// Канал для broadcast alerts
	broadcastAlert chan *dto.AlertDTO

	// Канал для broadcast detections
	broadcastDetection chan *dto.DetectionDTO

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для удаления клиентов
	unregister chan *Client

	// Mutex для защиты clients map
	mu sync.RWMutex

	// Опциональный callback при изменении количества клиентов
	onClientCount func(int)

	// Logger
	logger *logger.Logger
}

// OnClientCountChange устанавливает callback, вызываемый при изменении
// количества подключенных клиентов. Должен быть установлен до Run.
func (h *Hub) OnClientCountChange(fn func(int)) {
	h.onClientCount = fn
}

func (h *Hub) notifyClientCount(count int) {
	if h.onClientCount != nil {
		h.onClientCount(count)
	}
}

// NewHub создает новый WebSocket hub
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:            make(map[*Client]bool),
		broadcastStatus:    make(chan *dto.StatusDTO, 256),
		broadcastAlert:     make(chan *dto.AlertDTO, 256),
		broadcastDetection: make(chan *dto.DetectionDTO, 256),
		register:           make(chan *Client),
		unregister:         make(chan *Client),
		logger:             logger,
	}
}

// Run запускает hub (должен быть запущен в отдельной goroutine)
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.notifyClientCount(count)
			h.logger.Debug("Client registered", "total_clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.notifyClientCount(count)
			h.logger.Debug("Client unregistered", "total_clients", count)

		case status := <-h.broadcastStatus:
			h.fanOut(Message{Type: "status", Data: status})

		case alert := <-h.broadcastAlert:
			h.fanOut(Message{Type: "alert", Data: alert})
			h.logger.Debug("Alert broadcasted to clients", "severity", alert.Severity)

		case detection := <-h.broadcastDetection:
			h.fanOut(Message{Type: "detection", Data: detection})
			h.logger.Debug("Detection broadcasted to clients", "layer", detection.Layer)
		}
	}
}

// fanOut отправляет сообщение всем клиентам; клиент с заполненным каналом
// отключается
func (h *Hub) fanOut(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := false
	for client := range h.clients {
		select {
		case client.send <- msg:
			// Сообщение отправлено
		default:
			// Канал клиента заполнен, закрываем соединение
			close(client.send)
			delete(h.clients, client)
			dropped = true
			h.logger.Warn("Client channel full, disconnected")
		}
	}
	if dropped {
		h.notifyClientCount(len(h.clients))
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastStatus отправляет снимок состояния всем клиентам (реализация port.NotificationService)
func (h *Hub) BroadcastStatus(status *dto.StatusDTO) {
	select {
	case h.broadcastStatus <- status:
		// Снимок отправлен в канал
	default:
		h.logger.Warn("Broadcast channel full, dropping status")
	}
}

// BroadcastAlert отправляет alert всем клиентам (реализация port.NotificationService)
func (h *Hub) BroadcastAlert(alert *dto.AlertDTO) {
	select {
	case h.broadcastAlert <- alert:
		// Alert отправлен в канал
	default:
		h.logger.Warn("Broadcast alert channel full, dropping alert")
	}
}

// BroadcastDetection отправляет detection всем клиентам (реализация port.NotificationService)
func (h *Hub) BroadcastDetection(detection *dto.DetectionDTO) {
	select {
	case h.broadcastDetection <- detection:
		// Detection отправлен в канал
	default:
		h.logger.Warn("Broadcast detection channel full, dropping detection")
	}
}

// ClientCount возвращает количество подключенных клиентов (реализация port.NotificationService)
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message представляет сообщение для отправки клиенту
type Message struct {
	Type string      `json:"type"` // "status", "alert" или "detection"
	Data interface{} `json:"data"`
}
