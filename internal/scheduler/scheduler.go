package scheduler

import (
	"context"
	"fmt"

	"AnnSync/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler 按cron表达式触发抓取周期。
// 并发触发由 SyncService 的单飞保护兜底，这里不做去重。
type Scheduler struct {
	cron        *cron.Cron
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewScheduler(syncService *service.SyncService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		syncService: syncService,
		logger:      logger,
	}
}

// Start 注册所有cron条目并启动调度
func (s *Scheduler) Start(specs []string) error {
	for _, spec := range specs {
		spec := spec
		_, err := s.cron.AddFunc(spec, func() {
			s.logger.Infof("定时任务触发抓取: %s", spec)
			s.syncService.RunCycle(context.Background())
		})
		if err != nil {
			return fmt.Errorf("注册定时任务失败 %q: %w", spec, err)
		}
	}
	s.cron.Start()
	s.logger.Infof("定时抓取已启动，共%d条计划", len(specs))
	return nil
}

// Stop 停止调度并等待运行中的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
