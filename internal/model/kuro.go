package model

import "encoding/json"

// 鸣潮（库洛）公告接口：notice.json 一次给全量列表，
// 正文按条目 contentPrefix 再拉一个 zh-Hans.json。

// KuroNotice notice.json 响应
type KuroNotice struct {
	Game     []KuroAnnItem `json:"game"`
	Activity []KuroAnnItem `json:"activity"`
}

// KuroAnnItem 单条公告，文案按语言分键，时间为毫秒时间戳
type KuroAnnItem struct {
	TabTitle      map[string]string   `json:"tabTitle"`
	TabBanner     map[string][]string `json:"tabBanner"`
	StartTimeMs   int64               `json:"startTimeMs"`
	EndTimeMs     int64               `json:"endTimeMs"`
	ContentPrefix []string            `json:"contentPrefix"`

	Raw json.RawMessage `json:"-"`
}

func (a *KuroAnnItem) UnmarshalJSON(b []byte) error {
	type alias KuroAnnItem
	var tmp alias
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*a = KuroAnnItem(tmp)
	a.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// TitleZh 简中标题（缺失时返回空串）
func (a *KuroAnnItem) TitleZh() string {
	return a.TabTitle["zh-Hans"]
}

// BannerZh 简中头图（第一张）
func (a *KuroAnnItem) BannerZh() string {
	if banners := a.TabBanner["zh-Hans"]; len(banners) > 0 {
		return banners[0]
	}
	return ""
}

// KuroContent 公告正文响应
type KuroContent struct {
	TextTitle   string `json:"textTitle"`
	TextContent string `json:"textContent"`
}
