package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"AnnSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	userService *service.UserService
	logger      *logrus.Logger
}

func NewSettingsHandler(userService *service.UserService, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
		logger:      logger,
	}
}

// authenticate 用token cookie换用户ID，失败时已写好401响应
func (h *SettingsHandler) authenticate(c *gin.Context) (uint64, bool) {
	token, _ := c.Cookie("token")
	userID, err := h.userService.Authenticate(c.Request.Context(), token)
	if errors.Is(err, service.ErrUnauthorized) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	if err != nil {
		h.logger.Errorf("令牌校验失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return 0, false
	}
	return userID, true
}

// SaveSettingsHandler 整存用户设置，请求体为任意JSON
// @Summary 保存用户设置
// @Success 200 {object} map[string]interface{}
// @Failure 401 {string} string
// @Router /game-events/save-settings [post]
func (h *SettingsHandler) SaveSettingsHandler(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    1,
			"message": "请求体不是合法的JSON",
		})
		return
	}

	if err := h.userService.SaveSettings(c.Request.Context(), userID, string(body)); err != nil {
		h.logger.Errorf("保存用户设置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
	})
}

// LoadSettingsHandler 整取用户设置，没保存过返回空对象
// @Summary 读取用户设置
// @Success 200 {object} map[string]interface{}
// @Failure 401 {string} string
// @Router /game-events/load-settings [get]
func (h *SettingsHandler) LoadSettingsHandler(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	settings, err := h.userService.LoadSettings(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("读取用户设置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(settings))
}
