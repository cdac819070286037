package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"AnnSync/internal/classify"
	"AnnSync/internal/extract"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"
	"AnnSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FeedCache 进程级公告流缓存。没有TTL，只在成功的抓取周期后失效，
// 失效后由下一次读请求惰性重建；并发重建是幂等的纯查询，允许重复算。
type FeedCache struct {
	mu     sync.RWMutex
	cached map[model.GameType][]model.FeedItem
}

func NewFeedCache() *FeedCache {
	return &FeedCache{}
}

func (c *FeedCache) Get() (map[model.GameType][]model.FeedItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached, c.cached != nil
}

func (c *FeedCache) Set(feed map[model.GameType][]model.FeedItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = feed
}

func (c *FeedCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}

// FeedService 公告流组装：查未过期事件、按游戏分组、多趟稳定分区排序
type FeedService struct {
	logger *logrus.Logger
	repo   interfaces.EventRepository
	sync   *SyncService
	cache  *FeedCache
}

func NewFeedService(db *gorm.DB, logger *logrus.Logger, syncService *SyncService, cache *FeedCache) *FeedService {
	return &FeedService{
		logger: logger,
		repo:   repository.NewEventRepository(db),
		sync:   syncService,
		cache:  cache,
	}
}

// GetFeed 返回组装好的公告流。先过按需刷新闸门（刷新失败不影响返回——
// 宁可给旧数据也不把上游故障暴露给客户端），再命中或重建缓存。
func (f *FeedService) GetFeed(ctx context.Context) (map[model.GameType][]model.FeedItem, error) {
	f.sync.RunCycleIfStale(ctx)

	if cached, ok := f.cache.Get(); ok {
		return cached, nil
	}

	events, err := f.repo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("组装公告流失败: %w", err)
	}
	feed := AssembleFeed(events)
	f.cache.Set(feed)
	return feed, nil
}

// IsEventEligible 暴露给外层的展示资格判定（与入库筛选同一份规则）
func (f *FeedService) IsEventEligible(game model.GameType, title string) bool {
	return classify.TitleFilter(game, title)
}

// AssembleFeed 把按时间升序排好的事件组装成按游戏分组的公告流。
// 组内依次做三趟稳定分区：标题含“版本”的在前；非gacha在gacha前；
// 鸣潮额外把标题含“武器”的压到最后。每趟分区保持原相对顺序。
func AssembleFeed(events []*model.Event) map[model.GameType][]model.FeedItem {
	results := make(map[model.GameType][]model.FeedItem)
	for _, event := range events {
		if _, ok := results[event.Game]; !ok {
			results[event.Game] = []model.FeedItem{}
		}
		// gacha不走标题规则，凭事件类型直接入流
		if event.EventType != model.EventTypeGacha && !classify.TitleFilter(event.Game, event.Title) {
			continue
		}
		results[event.Game] = append(results[event.Game], model.FeedItem{
			Title:       event.Title,
			StartTime:   formatTimePtr(event.StartTime),
			EndTime:     formatTimePtr(event.EndTime),
			BannerImage: event.BannerImage,
			UUID:        event.UUID,
			EventType:   event.EventType,
		})
	}

	for game, items := range results {
		items = stablePartition(items, func(it model.FeedItem) bool {
			return strings.Contains(it.Title, "版本")
		})
		items = stablePartition(items, func(it model.FeedItem) bool {
			return it.EventType != model.EventTypeGacha
		})
		results[game] = items
	}

	if wwItems, ok := results[model.GameWuWa]; ok {
		results[model.GameWuWa] = stablePartition(wwItems, func(it model.FeedItem) bool {
			return !strings.Contains(it.Title, "武器")
		})
	}

	return results
}

// stablePartition 满足谓词的条目整体前移，两段各自保持原相对顺序
func stablePartition(items []model.FeedItem, keepFirst func(model.FeedItem) bool) []model.FeedItem {
	first := make([]model.FeedItem, 0, len(items))
	rest := make([]model.FeedItem, 0, len(items))
	for _, it := range items {
		if keepFirst(it) {
			first = append(first, it)
		} else {
			rest = append(rest, it)
		}
	}
	return append(first, rest...)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(extract.TimeLayout)
}
