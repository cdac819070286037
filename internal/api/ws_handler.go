package api

import (
	"errors"
	"net/http"

	"AnnSync/internal/service"
	"AnnSync/internal/websocket"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type WebSocketHandler struct {
	hub         *websocket.Hub
	userService *service.UserService
	logger      *logrus.Logger
	upgrader    gorillaws.Upgrader
}

func NewWebSocketHandler(hub *websocket.Hub, userService *service.UserService, logger *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
		logger:      logger,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 浏览器端跨域连接，鉴权靠token而不是Origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWSHandler 升级WebSocket连接，令牌从query参数取。
// 未通过鉴权的连接在升级前就被拒绝。
// @Summary WebSocket 连接入口
// @Param token query string true "登录令牌"
// @Router /ws [get]
func (h *WebSocketHandler) ServeWSHandler(c *gin.Context) {
	token := c.Query("token")
	userID, err := h.userService.Authenticate(c.Request.Context(), token)
	if errors.Is(err, service.ErrUnauthorized) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		h.logger.Errorf("websocket 令牌校验失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	username, err := h.userService.UsernameByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("查询用户名失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("websocket 升级失败: %v", err)
		return
	}

	client := websocket.NewClient(userID, username, h.hub, conn, h.logger, h.userService.SaveSettings)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	client.AnnounceConnected()
}
