package cmd

import (
	"context"
	"fmt"
	"log"

	// 注册各游戏适配器
	_ "AnnSync/internal/adapter/kuro"
	_ "AnnSync/internal/adapter/mihoyo"

	"AnnSync/internal/api"
	"AnnSync/internal/config"
	"AnnSync/internal/scheduler"
	"AnnSync/internal/service"
	"AnnSync/internal/websocket"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动公告聚合服务",
	Long: `启动HTTP服务：提供公告流查询、账号登录、用户设置与WebSocket同步，
并按配置中的cron计划定时抓取各游戏公告。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置文件
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("加载配置文件失败: %v", err)
		}

		// 2. 初始化日志
		logrusLogger := logrus.New()
		logrusLogger.SetLevel(logrus.InfoLevel)
		logrusLogger.Info("配置文件加载成功")

		// 3. 初始化 PostgreSQL 连接（库不存在则先创建再连）
		db, err := openDatabase(cfg, logrusLogger)
		if err != nil {
			logrusLogger.Fatalf("连接PostgreSQL失败: %v", err)
		}
		logrusLogger.Info("PostgreSQL连接成功")

		// 4. 库表不存在则自动创建
		if err := migrateDatabase(db); err != nil {
			logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
		}
		logrusLogger.Info("数据库表结构检查完成（不存在则已创建）")

		// 5. 初始化服务
		cache := service.NewFeedCache()
		syncService := service.NewSyncService(db, logrusLogger, cfg, cache)
		feedService := service.NewFeedService(db, logrusLogger, syncService, cache)
		userService := service.NewUserService(db, logrusLogger)

		if err := userService.EnsureDefaultUser(context.Background()); err != nil {
			logrusLogger.Fatalf("初始化默认账号失败: %v", err)
		}

		// 6. 启动 WebSocket Hub
		hub := websocket.NewHub()
		go hub.Run()

		// 7. 配置Gin运行模式（从配置读取：debug/release）
		gin.SetMode(cfg.Server.Mode)
		r := gin.Default()

		// 注册pprof 方便调试和监测性能问题
		pprof.Register(r)
		logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

		// 8. 注册API路由
		feedHandler := api.NewFeedHandler(feedService, logrusLogger)
		r.GET("/game-events/getnotice", feedHandler.GetNoticeHandler)

		authHandler := api.NewAuthHandler(userService, logrusLogger)
		r.POST("/login", authHandler.LoginHandler)
		r.POST("/logout", authHandler.LogoutHandler)

		settingsHandler := api.NewSettingsHandler(userService, logrusLogger)
		r.POST("/game-events/save-settings", settingsHandler.SaveSettingsHandler)
		r.GET("/game-events/load-settings", settingsHandler.LoadSettingsHandler)

		wsHandler := api.NewWebSocketHandler(hub, userService, logrusLogger)
		r.GET("/ws", wsHandler.ServeWSHandler)

		// 9. 启动定时抓取
		sched := scheduler.NewScheduler(syncService, logrusLogger)
		if err := sched.Start(cfg.Sync.CronSpecs); err != nil {
			logrusLogger.Fatalf("启动定时抓取失败: %v", err)
		}
		defer sched.Stop()

		// 10. 启动服务（从配置读取端口）
		port := cfg.Server.Port
		logrusLogger.Infof("服务启动成功，端口：%d", port)
		return r.Run(fmt.Sprintf(":%d", port))
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
