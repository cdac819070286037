package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// 写超时时间
	writeWait = 10 * time.Second

	// 读超时时间
	pongWait = 60 * time.Second

	// ping 周期 (必须小于 pongWait)
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 512 * 1024
)

// SettingsSaver 设置持久化回调，由外层注入避免反向依赖服务层
type SettingsSaver func(ctx context.Context, userID uint64, settings string) error

// inboundMessage 客户端上行消息信封
type inboundMessage struct {
	Type     string          `json:"type"`
	Settings json.RawMessage `json:"settings"`
}

// outboundMessage 服务端下行消息信封
type outboundMessage struct {
	Type     string          `json:"type"`
	Username string          `json:"username,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// Client WebSocket 客户端，一个用户允许多个并存连接
type Client struct {
	// UserID 用户 ID
	UserID uint64

	// Username 用户名
	Username string

	// Hub Hub 实例
	Hub *Hub

	// Conn WebSocket 连接
	Conn *websocket.Conn

	// Send 发送消息的 channel
	Send chan []byte

	logger       *logrus.Logger
	saveSettings SettingsSaver
}

// NewClient 创建新的客户端
func NewClient(userID uint64, username string, hub *Hub, conn *websocket.Conn, logger *logrus.Logger, saver SettingsSaver) *Client {
	return &Client{
		UserID:       userID,
		Username:     username,
		Hub:          hub,
		Conn:         conn,
		Send:         make(chan []byte, 256),
		logger:       logger,
		saveSettings: saver,
	}
}

// AnnounceConnected 连接建立后回发一条确认消息
func (c *Client) AnnounceConnected() {
	msg, err := json.Marshal(outboundMessage{Type: "user_connected", Username: c.Username})
	if err != nil {
		return
	}
	select {
	case c.Send <- msg:
	default:
	}
}

// ReadPump 从 WebSocket 连接读取消息
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Warn("websocket 连接异常断开")
			}
			break
		}
		c.handleMessage(payload)
	}
}

// handleMessage 处理上行消息。settings_updated 先落库，
// 再转发给同一用户的其他连接（不回发给提交方）。
func (c *Client) handleMessage(payload []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.logger.WithError(err).Warn("解析 websocket 消息失败")
		return
	}

	switch msg.Type {
	case "settings_updated":
		if msg.Settings == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.saveSettings(ctx, c.UserID, string(msg.Settings)); err != nil {
			c.logger.WithError(err).WithField("userid", c.UserID).Error("保存用户设置失败")
			return
		}
		out, err := json.Marshal(outboundMessage{Type: "settings_updated", Settings: msg.Settings})
		if err != nil {
			return
		}
		c.Hub.BroadcastToUser(c.UserID, out, c)
	default:
		c.logger.WithField("type", msg.Type).Debug("忽略未知 websocket 消息")
	}
}

// WritePump 向 WebSocket 连接写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 关闭了 channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// 批量发送队列中的消息
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
