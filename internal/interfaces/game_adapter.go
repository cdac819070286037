package interfaces

import (
	"context"
	"time"

	"AnnSync/internal/model"
)

// GameAdapter 所有游戏公告源必须实现的核心接口。
// FetchAnnouncements 完成列表/正文抓取、分类与归一化，
// 单条公告解析失败只跳过该条，不中断整批。
type GameAdapter interface {
	Game() model.GameType
	FetchAnnouncements(ctx context.Context) ([]*model.Announcement, error)
}

// EventRepository 公告落库的通用接口
type EventRepository interface {
	// SaveAnnouncement 按标题查重：已有则逐字段比对更新，没有则插入
	SaveAnnouncement(ctx context.Context, ann *model.Announcement) error
	// ListActive 全部未过期事件，按开始、结束时间升序
	ListActive(ctx context.Context, now time.Time) ([]*model.Event, error)
}
