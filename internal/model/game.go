package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// GameType 支持的游戏标识
type GameType = string

const (
	GameGenshin  GameType = "ys"  // 原神
	GameStarRail GameType = "sr"  // 崩坏：星穹铁道
	GameZZZ      GameType = "zzz" // 绝区零
	GameWuWa     GameType = "ww"  // 鸣潮
)

// GameDisplayNames 游戏中文名（用于版本公告判定与改名）
var GameDisplayNames = map[GameType]string{
	GameGenshin:  "原神",
	GameStarRail: "崩坏：星穹铁道",
	GameZZZ:      "绝区零",
	GameWuWa:     "鸣潮",
}

// 事件类型（互斥，入库前必须确定；无法归类的公告直接丢弃）
const (
	EventTypeVersion = "version"
	EventTypeEvent   = "event"
	EventTypeGacha   = "gacha"
)

// Announcement 单次抓取周期内产出的归一化公告。
// 时间统一为 "2006-01-02 15:04:05" 格式字符串，解析失败则留空，入库时再转时间类型。
type Announcement struct {
	Game        GameType
	Title       string
	EventType   string
	StartTime   string
	EndTime     string
	BannerImage string
	Raw         datatypes.JSON // 原始公告投影，保留排查现场
}

// AnnotateRaw 在原始公告JSON上叠加归一化后的字段，作为入库的data列。
// 叠加后的投影与展示字段保持一致，便于直接核对上游数据。
func (a *Announcement) AnnotateRaw(raw json.RawMessage) error {
	payload := make(map[string]interface{})
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("解析原始公告失败: %w", err)
		}
	}
	payload["title"] = a.Title
	payload["event_type"] = a.EventType
	payload["bannerImage"] = a.BannerImage
	if a.StartTime != "" {
		payload["start_time"] = a.StartTime
	}
	if a.EndTime != "" {
		payload["end_time"] = a.EndTime
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化公告投影失败: %w", err)
	}
	a.Raw = data
	return nil
}

// FeedItem 对外公告流条目（字段名与线上客户端约定一致）
type FeedItem struct {
	Title       string `json:"title"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BannerImage string `json:"bannerImage"`
	UUID        string `json:"uuid"`
	EventType   string `json:"event_type"`
}
