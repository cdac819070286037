package cmd

import (
	"log"

	"AnnSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	Long: `连接数据库并按模型定义创建或更新表结构。
目标库不存在时会先自动创建。`,
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
		logrusLogger.Info("数据库迁移完成")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
