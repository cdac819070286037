package mihoyo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"AnnSync/internal/config"
	"AnnSync/internal/model"
	"AnnSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// client 米哈游公告接口的共用访问层（ys/sr/zzz三款游戏同构）
type client struct {
	cfg        *config.GameConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func newClient(cfg *config.GameConfig, logger *logrus.Logger) *client {
	return &client{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (c *client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("非预期状态码: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

// fetchList 拉取公告列表
func (c *client) fetchList(ctx context.Context) (*model.MihoyoAnnList, error) {
	var list model.MihoyoAnnList
	if err := c.getJSON(ctx, c.cfg.ListURL, &list); err != nil {
		return nil, fmt.Errorf("获取公告列表失败: %w", err)
	}
	return &list, nil
}

// fetchContents 拉取全部公告正文，按 ann_id 建索引（普通公告与图片公告分开）
func (c *client) fetchContents(ctx context.Context) (map[int64]model.MihoyoContentItem, map[int64]model.MihoyoContentItem, error) {
	var content model.MihoyoAnnContent
	if err := c.getJSON(ctx, c.cfg.ContentURL, &content); err != nil {
		return nil, nil, fmt.Errorf("获取公告正文失败: %w", err)
	}

	contentMap := make(map[int64]model.MihoyoContentItem, len(content.Data.List))
	for _, item := range content.Data.List {
		contentMap[item.AnnID] = item
	}
	picContentMap := make(map[int64]model.MihoyoContentItem, len(content.Data.PicList))
	for _, item := range content.Data.PicList {
		picContentMap[item.AnnID] = item
	}
	return contentMap, picContentMap, nil
}

// annotate 叠加原始JSON投影，失败仅记录（不影响该条公告入库其余字段）
func annotate(logger *logrus.Logger, ann *model.Announcement, raw json.RawMessage) {
	if err := ann.AnnotateRaw(raw); err != nil {
		logger.WithError(err).WithField("title", ann.Title).Warn("公告原始数据投影失败")
	}
}
