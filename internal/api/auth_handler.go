package api

import (
	"errors"
	"net/http"
	"strings"

	"AnnSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *logrus.Logger
}

func NewAuthHandler(userService *service.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler 登录换取令牌，同时写入token cookie
// @Summary 用户登录
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    1,
			"message": "请求格式错误",
		})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    1,
			"message": "Invalid username or password",
		})
		return
	}
	if err != nil {
		h.logger.Errorf("登录失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.SetCookie("token", token, 0, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Logged in successfully",
		"token":   token,
	})
}

// LogoutHandler 作废当前令牌并清除cookie。
// 令牌优先取Authorization头，取不到再回退cookie。
// @Summary 用户登出
// @Success 200 {object} map[string]interface{}
// @Failure 401 {string} string
// @Router /logout [post]
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token, _ = c.Cookie("token")
	}
	if token == "" {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		h.logger.Errorf("登出失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Logged out successfully",
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
