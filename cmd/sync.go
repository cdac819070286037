package cmd

import (
	"context"
	"log"

	// 注册各游戏适配器
	_ "AnnSync/internal/adapter/kuro"
	_ "AnnSync/internal/adapter/mihoyo"

	"AnnSync/internal/config"
	"AnnSync/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "执行一次抓取周期后退出",
	Long: `对所有启用的游戏执行一次公告抓取并入库，完成后退出。
适合手工补数或在外部调度器里使用。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("加载配置文件失败: %v", err)
		}

		logrusLogger := logrus.New()
		logrusLogger.SetLevel(logrus.InfoLevel)

		db, err := openDatabase(cfg, logrusLogger)
		if err != nil {
			logrusLogger.Fatalf("连接PostgreSQL失败: %v", err)
		}
		if err := migrateDatabase(db); err != nil {
			logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
		}

		cache := service.NewFeedCache()
		syncService := service.NewSyncService(db, logrusLogger, cfg, cache)
		syncService.RunCycle(context.Background())
		logrusLogger.Info("抓取周期执行完毕")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
