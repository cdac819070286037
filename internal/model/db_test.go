package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventUUIDDeterministic(t *testing.T) {
	first := NewEventUUID(GameGenshin, "「流光拾遗之旅」活动")
	second := NewEventUUID(GameGenshin, "「流光拾遗之旅」活动")
	assert.Equal(t, first, second)
	assert.Len(t, first, 36)
}

func TestNewEventUUIDDistinct(t *testing.T) {
	games := []GameType{GameGenshin, GameStarRail, GameZZZ, GameWuWa}
	titles := []string{
		"原神 5.0 版本",
		"「流光拾遗之旅」活动",
		"【花藏鹂音】角色、光锥跃迁: 遐蝶",
		"共鸣者唤取活动",
	}

	// 不同 (game, title) 组合之间不允许撞键；同名公告靠游戏前缀区分
	seen := map[string]string{}
	for _, game := range games {
		for _, title := range titles {
			key := NewEventUUID(game, title)
			if prev, ok := seen[key]; ok {
				t.Fatalf("标识冲突: %s 与 %s/%s", prev, game, title)
			}
			seen[key] = game + "/" + title
		}
	}
	assert.Len(t, seen, len(games)*len(titles))
}
