package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig          `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig        `mapstructure:"database"` // 数据库配置
	Sync     SyncConfig            `mapstructure:"sync"`     // 刷新调度配置
	Games    map[string]GameConfig `mapstructure:"games"`    // 多游戏独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 刷新调度配置
type SyncConfig struct {
	CronSpecs    []string      `mapstructure:"cron_specs"`    // 每日定时刷新的Cron表达式列表
	EnabledGames []string      `mapstructure:"enabled_games"` // 启用的游戏列表
	StaleAfter   time.Duration `mapstructure:"stale_after"`   // 读取公告时触发按需刷新的过期阈值
}

// GameConfig 单个游戏的独立配置
type GameConfig struct {
	ListURL        string `mapstructure:"list_url"`        // 公告列表接口地址
	ContentURL     string `mapstructure:"content_url"`     // 公告正文接口地址（鸣潮逐条拉取正文，此项留空）
	ConnectTimeout int    `mapstructure:"connect_timeout"` // 建连超时（秒）
	ReadTimeout    int    `mapstructure:"read_timeout"`    // 读取超时（秒）
	Proxy          string `mapstructure:"proxy"`           // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("GAME_PROXY"); v != "" {
		for name, g := range cfg.Games {
			g.Proxy = v
			cfg.Games[name] = g
		}
	}
}

// applyDefaults 填充未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Sync.StaleAfter == 0 {
		cfg.Sync.StaleAfter = 24 * time.Hour
	}
	if len(cfg.Sync.CronSpecs) == 0 {
		// 与线上保持一致：每天四次
		cfg.Sync.CronSpecs = []string{"0 9 * * *", "30 12 * * *", "0 18 * * *", "0 22 * * *"}
	}
	for name, g := range cfg.Games {
		if g.ConnectTimeout == 0 {
			g.ConnectTimeout = 5
		}
		if g.ReadTimeout == 0 {
			g.ReadTimeout = 30
		}
		cfg.Games[name] = g
	}
}
