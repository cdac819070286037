package adapter

import (
	"fmt"

	"AnnSync/internal/config"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Factory 游戏适配器工厂函数签名。
// 适配器实例按抓取周期创建，周期内的“当前版本”状态留在实例里，周期结束即弃。
type Factory func(cfg *config.GameConfig, logger *logrus.Logger) interfaces.GameAdapter

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[model.GameType]Factory)

// Register 供适配器init函数调用，注册工厂函数
func Register(game model.GameType, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("游戏%s的工厂函数不能为nil", game))
	}
	if _, exists := factoryRegistry[game]; exists {
		logrus.Warnf("游戏%s的适配器已注册，将覆盖原有实现", game)
	}
	factoryRegistry[game] = factory
}

// GetFactory 获取指定游戏的工厂函数
func GetFactory(game model.GameType) (Factory, bool) {
	factory, ok := factoryRegistry[game]
	return factory, ok
}

// ListFactories 列出所有已注册的游戏
func ListFactories() []model.GameType {
	var games []model.GameType
	for g := range factoryRegistry {
		games = append(games, g)
	}
	return games
}
