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

func zzzListPayload() map[string]interface{} {
	return map[string]interface{}{
		"retcode": 0,
		"data": map[string]interface{}{
			"list": []map[string]interface{}{
				{
					"type_id":    3,
					"type_label": "游戏公告",
					"list": []map[string]interface{}{
						{
							"ann_id":     1,
							"title":      "绝区零1.5版本更新说明",
							"banner":     "https://example.com/zzz-version.png",
							"start_time": "2025-02-12 11:00:00",
							"end_time":   "2025-03-26 06:00:00",
						},
					},
				},
				{
					"type_id":    4,
					"type_label": "活动公告",
					"list": []map[string]interface{}{
						{
							"ann_id":     2,
							"title":      "「雾现迷蹤」限时频段即将开启",
							"banner":     "https://example.com/zzz-gacha.png",
							"start_time": "2025-02-12 12:00:00",
							"end_time":   "2025-03-04 12:00:00",
						},
					},
				},
			},
			"pic_list": []map[string]interface{}{},
		},
	}
}

func zzzContentPayload() map[string]interface{} {
	return map[string]interface{}{
		"retcode": 0,
		"data": map[string]interface{}{
			"list": []map[string]interface{}{
				{
					"ann_id": 2,
					"content": `<p>「雾现迷蹤」调频活动说明</p>` +
						`<p>限定S级代理人[雅(以太属性)]调频概率大幅提升</p>` +
						`<table><tr><th>活动</th><th>时间</th></tr>` +
						`<tr><td rowspan="2"><p>2025/02/12 12:00:00</p><p>2025/03/04 11:59:59</p></td></tr></table>`,
				},
			},
			"pic_list": []map[string]interface{}{},
		},
	}
}

func TestZZZAdapterFetch(t *testing.T) {
	srv := mihoyoTestServer(zzzListPayload(), zzzContentPayload())
	defer srv.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	adapter := NewZZZAdapter(&config.GameConfig{
		ListURL:    srv.URL + "/list",
		ContentURL: srv.URL + "/content",
	}, logger)

	anns, err := adapter.FetchAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, anns, 2)

	version := anns[0]
	assert.Equal(t, "绝区零 1.5 版本", version.Title)
	assert.Equal(t, model.EventTypeVersion, version.EventType)

	// 正文只命中代理人时，改写标题不掺入未命中一侧的占位词
	gacha := anns[1]
	assert.Equal(t, "【雾现迷蹤】代理人、音擎调频: 雅", gacha.Title)
	assert.Equal(t, model.EventTypeGacha, gacha.EventType)
	assert.Equal(t, "2025-02-12 12:00:00", gacha.StartTime)
	assert.Equal(t, "2025-03-04 11:59:00", gacha.EndTime)
	assert.Equal(t, "https://example.com/zzz-gacha.png", gacha.BannerImage)
}
