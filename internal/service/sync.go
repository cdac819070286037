package service

import (
	"context"
	"sync/atomic"
	"time"

	"AnnSync/internal/adapter"
	"AnnSync/internal/config"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"
	"AnnSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncService 抓取编排：逐游戏独立抓取+落库，单游戏失败不影响其余游戏。
// 周期结束后更新刷新时间并失效公告流缓存。
type SyncService struct {
	db          *gorm.DB
	logger      *logrus.Logger
	cfg         *config.Config
	repo        interfaces.EventRepository
	refreshRepo *repository.RefreshRepository
	cache       *FeedCache

	// 尽力而为的single-flight：并发触发时后到者直接跳过。
	// 原行为允许并发刷新（后果只是重复抓取），这里收紧为原子标志。
	refreshing atomic.Bool
}

func NewSyncService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config, cache *FeedCache) *SyncService {
	return &SyncService{
		db:          db,
		logger:      logger,
		cfg:         cfg,
		repo:        repository.NewEventRepository(db),
		refreshRepo: repository.NewRefreshRepository(db),
		cache:       cache,
	}
}

// enabledGames 配置的启用游戏；未配置则取已注册的全部适配器
func (s *SyncService) enabledGames() []model.GameType {
	if len(s.cfg.Sync.EnabledGames) > 0 {
		return s.cfg.Sync.EnabledGames
	}
	return adapter.ListFactories()
}

// RunCycle 执行一次完整的抓取+对账周期。
// 在触发者的goroutine上同步跑完；任何游戏的失败都不会让整个周期报错。
func (s *SyncService) RunCycle(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		s.logger.Info("已有刷新周期在进行，跳过本次触发")
		return
	}
	defer s.refreshing.Store(false)

	for _, game := range s.enabledGames() {
		s.syncGame(ctx, game)
	}

	now := time.Now()
	if err := s.refreshRepo.TouchRequestLog(ctx, now); err != nil {
		s.logger.WithError(err).Error("更新刷新闸门时间失败")
	}
	if err := s.refreshRepo.AppendRefreshLog(ctx, now); err != nil {
		s.logger.WithError(err).Error("记录刷新历史失败")
	}

	// 缓存失效，下次读公告流时惰性重建
	s.cache.Invalidate()
}

// syncGame 单个游戏的抓取与落库。上游故障/解析失败只影响该游戏本周期的贡献。
func (s *SyncService) syncGame(ctx context.Context, game model.GameType) {
	gameCfg, ok := s.cfg.Games[game]
	if !ok {
		s.logger.Warnf("游戏%s缺少配置，跳过", game)
		return
	}
	factory, ok := adapter.GetFactory(game)
	if !ok {
		s.logger.Warnf("游戏%s没有注册适配器，跳过", game)
		return
	}

	// 适配器按周期新建，周期内的“当前版本”状态不跨周期泄漏
	anns, err := factory(&gameCfg, s.logger).FetchAnnouncements(ctx)
	if err != nil {
		s.logger.WithError(err).Errorf("游戏%s公告抓取失败，本周期跳过该游戏", game)
		return
	}

	saved := 0
	for _, ann := range anns {
		if err := s.repo.SaveAnnouncement(ctx, ann); err != nil {
			// 单条失败回滚并记录，继续下一条
			s.logger.WithError(err).Warn("公告入库失败，继续处理后续公告")
			continue
		}
		saved++
	}
	s.logger.Infof("游戏%s同步完成，共%d条公告入库", game, saved)
}

// RunCycleIfStale 按需刷新闸门：距上次成功刷新超过阈值才真正刷新。
// 闸门查询失败按“已过期”处理（宁可多刷一次）。
func (s *SyncService) RunCycleIfStale(ctx context.Context) {
	last, ok, err := s.refreshRepo.LastRequestTime(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("查询刷新闸门失败，按过期处理")
	}
	if err != nil || !ok || time.Since(last) > s.cfg.Sync.StaleAfter {
		s.RunCycle(ctx)
	}
}
