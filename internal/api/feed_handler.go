package api

import (
	"net/http"

	"AnnSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedHandler struct {
	feedService *service.FeedService
	logger      *logrus.Logger
}

func NewFeedHandler(feedService *service.FeedService, logger *logrus.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// GetNoticeHandler 返回按游戏分组的当前公告流
// @Summary 获取当前有效的公告流
// @Success 200 {object} map[string][]model.FeedItem
// @Failure 500 {object} map[string]string
// @Router /game-events/getnotice [get]
func (h *FeedHandler) GetNoticeHandler(c *gin.Context) {
	feed, err := h.feedService.GetFeed(c.Request.Context())
	if err != nil {
		h.logger.Errorf("获取公告流失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, feed)
}
