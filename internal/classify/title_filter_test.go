package classify

import (
	"testing"

	"AnnSync/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestTitleFilterVersionFamily(t *testing.T) {
	// 含游戏名与“版本”的公告无条件放行，不走各游戏的关键词规则
	assert.True(t, TitleFilter(model.GameGenshin, "原神5.2版本更新说明"))
	assert.True(t, TitleFilter(model.GameStarRail, "崩坏：星穹铁道3.0版本更新说明"))
	assert.True(t, TitleFilter(model.GameZZZ, "绝区零1.4版本更新说明"))
	assert.True(t, TitleFilter(model.GameWuWa, "鸣潮2.0版本内容说明"))
}

func TestTitleFilterGenshin(t *testing.T) {
	// “时限内”短语直接放行
	assert.True(t, TitleFilter(model.GameGenshin, "时限内完成挑战获取原石"))

	// 普通活动标题：不含排除关键词则放行
	assert.True(t, TitleFilter(model.GameGenshin, "「流光拾遗之旅」活动即将开启"))

	// 排除关键词
	assert.False(t, TitleFilter(model.GameGenshin, "「空月祝福」礼包上新"))
	assert.False(t, TitleFilter(model.GameGenshin, "「纪行」第五十二期"))
	assert.False(t, TitleFilter(model.GameGenshin, "七圣召唤·酒馆挑战"))
}

func TestTitleFilterStarRail(t *testing.T) {
	// 必须含“等奖励”
	assert.True(t, TitleFilter(model.GameStarRail, "参与活动获取星琼等奖励"))
	assert.False(t, TitleFilter(model.GameStarRail, "「花藏鹂音」活动跃迁"))

	// 模拟宇宙即使带“等奖励”也排除
	assert.False(t, TitleFilter(model.GameStarRail, "模拟宇宙更新，完成挑战获取星琼等奖励"))
}

func TestTitleFilterZZZ(t *testing.T) {
	assert.True(t, TitleFilter(model.GameZZZ, "「惊蛰回响」活动说明"))

	// 排除固定栏目
	assert.False(t, TitleFilter(model.GameZZZ, "全新放送活动说明"))
	assert.False(t, TitleFilter(model.GameZZZ, "『嗯呢』从天降活动说明"))
	assert.False(t, TitleFilter(model.GameZZZ, "丽都修缮中")) // 不含“活动说明”
}

func TestTitleFilterWuWa(t *testing.T) {
	// 必须以“活动”结尾
	assert.True(t, TitleFilter(model.GameWuWa, "「星序协响」活动"))
	assert.False(t, TitleFilter(model.GameWuWa, "「星序协响」活动说明"))

	// 排除关键词
	assert.False(t, TitleFilter(model.GameWuWa, "版本更新感恩答谢活动"))
	assert.False(t, TitleFilter(model.GameWuWa, "每日签到活动"))
}

func TestTitleFilterUnknownGame(t *testing.T) {
	assert.False(t, TitleFilter("unknown", "原神5.2版本更新说明"))
}
