package websocket

import (
	"time"

	"github.com/Ofr3d/FADA/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second

	// pingInterval должен быть меньше pongTimeout, иначе соединение
	// закроется раньше, чем клиент успеет ответить
	pingInterval = 54 * time.Second

	// Клиенты присылают только pong-и, большого буфера не нужно
	readLimit = 512

	sendBufferSize = 256
)

// Client — одно подключение оператора к потоку детекций и alerts.
// Hub пишет в send, WritePump выгружает в сокет.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	remote string
	logger *logger.Logger
}

// NewClient создает нового WebSocket клиента
func NewClient(hub *Hub, conn *websocket.Conn, log *logger.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		remote: conn.RemoteAddr().String(),
		logger: log,
	}
}

// ReadPump дренирует входящие фреймы (pong-и и close), обновляя read
// deadline. Выход из цикла снимает клиента с регистрации в hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongTimeout)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read failed", "remote_addr", c.remote, "error", err.Error())
			}
			return
		}
	}
}

// WritePump сериализует сообщения из send в сокет и шлет периодические ping-и
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Warn("WebSocket write failed", "remote_addr", c.remote, "error", err.Error())
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
