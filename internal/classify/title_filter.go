package classify

import (
	"strings"

	"AnnSync/internal/model"
)

// 各游戏的标题判定规则。固定子串来自各游戏官方公告的惯用措辞，
// 入库筛选与出库展示共用同一份规则：之前被过滤掉但已入库的行，
// 规则放宽后无需迁移即可重新出现在公告流里。

var ysDenyKeywords = []string{"魔神任务", "礼包", "纪行", "铸境研炼", "七圣召唤", "限时折扣"}

var zzzDenyKeywords = []string{"全新放送", "『嗯呢』从天降", "特别访客"}

var wwDenyKeywords = []string{"感恩答谢", "签到"}

// TitleFilter 判定一条公告标题是否属于可展示的活动。
// 纯谓词、永不panic；未知游戏一律返回false。
func TitleFilter(game model.GameType, title string) bool {
	name, ok := model.GameDisplayNames[game]
	if !ok {
		return false
	}
	// 版本家族公告（含游戏名与“版本”）无条件放行
	if strings.Contains(title, name) && strings.Contains(title, "版本") {
		return true
	}

	switch game {
	case model.GameGenshin:
		if strings.Contains(title, "时限内") {
			return true
		}
		return !containsAny(title, ysDenyKeywords)
	case model.GameStarRail:
		return strings.Contains(title, "等奖励") && !strings.Contains(title, "模拟宇宙")
	case model.GameZZZ:
		return strings.Contains(title, "活动说明") && !containsAny(title, zzzDenyKeywords)
	case model.GameWuWa:
		return strings.HasSuffix(title, "活动") && !containsAny(title, wwDenyKeywords)
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
