package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "annsync",
	Short: "游戏公告聚合服务",
	Long: `AnnSync 聚合多家游戏官方公告接口，归一化为统一的事件流。
支持定时抓取、按需刷新、公告流查询与用户设置同步。`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
