package mihoyo

import (
	"context"
	"testing"

	"AnnSync/internal/config"
	"AnnSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func starrailListPayload() map[string]interface{} {
	return map[string]interface{}{
		"retcode": 0,
		"data": map[string]interface{}{
			"list": []map[string]interface{}{
				{
					"type_label": "公告",
					"list": []map[string]interface{}{
						{
							"ann_id":     1,
							"title":      "崩坏：星穹铁道3.1版本更新说明",
							"banner":     "https://example.com/version.png",
							"start_time": "2025-01-15 11:00:00",
							"end_time":   "2025-02-26 06:00:00",
						},
						{
							"ann_id":     2,
							"title":      "参与限时活动获取星琼等奖励",
							"banner":     "https://example.com/event.png",
							"start_time": "2025-01-15 12:00:00",
							"end_time":   "2025-02-03 15:00:00",
						},
					},
				},
			},
			"pic_list": []map[string]interface{}{
				{
					"type_list": []map[string]interface{}{
						{
							"list": []map[string]interface{}{
								{
									"ann_id":     3,
									"title":      "「幽花引梦」跃迁即将开启",
									"img":        "https://example.com/gacha.png",
									"start_time": "2025-01-15 12:00:00",
									"end_time":   "2025-02-05 12:00:00",
								},
							},
						},
					},
				},
			},
		},
	}
}

func starrailContentPayload() map[string]interface{} {
	return map[string]interface{}{
		"retcode": 0,
		"data": map[string]interface{}{
			"list": []map[string]interface{}{
				{
					"ann_id":  1,
					"content": "<p>3.1版本更新维护说明</p>",
				},
				{
					"ann_id":  2,
					"content": `<h1>活动时间</h1><p>2025/01/15 12:00:00 - 2025/02/03 14:59:59</p>`,
				},
			},
			"pic_list": []map[string]interface{}{
				{
					"ann_id": 3,
					"content": `<h1>「花藏鹂音」角色活动跃迁</h1>` +
						`<p>时间为2025/01/15 12:00:00 - 2025/02/05 11:59:59，包含如下内容</p>` +
						`<p>限定5星角色「遐蝶（量子·记忆）」跃迁概率大幅提升</p>`,
				},
			},
		},
	}
}

func TestStarRailAdapterFetch(t *testing.T) {
	srv := mihoyoTestServer(starrailListPayload(), starrailContentPayload())
	defer srv.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	adapter := NewStarRailAdapter(&config.GameConfig{
		ListURL:    srv.URL + "/list",
		ContentURL: srv.URL + "/content",
	}, logger)

	anns, err := adapter.FetchAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, anns, 3)

	// 版本公告只产出一条改写行，原始标题不会再按活动重复入流
	version := anns[0]
	assert.Equal(t, "崩坏：星穹铁道 3.1 版本", version.Title)
	assert.Equal(t, model.EventTypeVersion, version.EventType)
	for _, ann := range anns {
		assert.NotEqual(t, "崩坏：星穹铁道3.1版本更新说明", ann.Title)
	}

	// 普通公告列表里的活动：正文时间覆盖列表时间
	event := anns[1]
	assert.Equal(t, "参与限时活动获取星琼等奖励", event.Title)
	assert.Equal(t, model.EventTypeEvent, event.EventType)
	assert.Equal(t, "2025-01-15 12:00:00", event.StartTime)

	// 图片公告列表里的跃迁：标题改写为“卡池+实体”
	gacha := anns[2]
	assert.Equal(t, "【花藏鹂音】角色、光锥跃迁: 遐蝶", gacha.Title)
	assert.Equal(t, model.EventTypeGacha, gacha.EventType)
	assert.Equal(t, "2025-01-15 12:00:00", gacha.StartTime)
	assert.Equal(t, "https://example.com/gacha.png", gacha.BannerImage)
}
