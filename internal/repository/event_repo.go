package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"AnnSync/internal/extract"
	"AnnSync/internal/interfaces"
	"AnnSync/internal/model"

	"gorm.io/gorm"
)

// EventRepository 公告事件仓储：按标题查重，存在则逐字段比对更新，不存在则插入。
// 每条公告单独提交，一条失败不阻塞同周期其余公告（调用方记录后继续）。
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) interfaces.EventRepository {
	return &EventRepository{db: db}
}

// SaveAnnouncement 归一化公告落库。重复执行同一批公告不会产生重复行，
// 且字段值收敛到同一结果（至少一次幂等）。
func (r *EventRepository) SaveAnnouncement(ctx context.Context, ann *model.Announcement) error {
	incoming := buildEventRow(ann)

	var existing model.Event
	err := r.db.WithContext(ctx).Where("title = ?", ann.Title).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(incoming).Error; err != nil {
			// 唯一约束竞争等场景：本条回滚，周期继续
			return fmt.Errorf("保存事件失败: %w, title: %s", err, ann.Title)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询事件失败: %w, title: %s", err, ann.Title)
	}

	updates := diffEventFields(&existing, incoming)
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新事件失败: %w, title: %s", err, ann.Title)
	}
	return nil
}

// buildEventRow 归一化公告转数据库行。时间解析失败存NULL（更新路径会跳过NULL，保留旧值）。
func buildEventRow(ann *model.Announcement) *model.Event {
	return &model.Event{
		UUID:        model.NewEventUUID(ann.Game, ann.Title),
		Title:       ann.Title,
		Game:        ann.Game,
		Data:        ann.Raw,
		StartTime:   parseTimePtr(ann.StartTime),
		EndTime:     parseTimePtr(ann.EndTime),
		BannerImage: ann.BannerImage,
		EventType:   ann.EventType,
	}
}

// diffEventFields 逐字段比对，只收集有变化的列。
// data列按解析后的结构比较，避免键序不同造成的伪差异。
func diffEventFields(existing, incoming *model.Event) map[string]interface{} {
	updates := make(map[string]interface{})

	if !jsonEqual(existing.Data, incoming.Data) {
		updates["data"] = incoming.Data
	}
	// 时间：新值解析失败（NULL）时保留旧值
	if incoming.StartTime != nil && !timeEqual(existing.StartTime, incoming.StartTime) {
		updates["start_time"] = incoming.StartTime
	}
	if incoming.EndTime != nil && !timeEqual(existing.EndTime, incoming.EndTime) {
		updates["end_time"] = incoming.EndTime
	}
	if existing.BannerImage != incoming.BannerImage {
		updates["banner_image"] = incoming.BannerImage
	}
	if existing.EventType != incoming.EventType {
		updates["event_type"] = incoming.EventType
	}
	return updates
}

func jsonEqual(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(extract.TimeLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// ListActive 全部未过期事件，按开始、结束时间升序（公告流的基础查询）
func (r *EventRepository) ListActive(ctx context.Context, now time.Time) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.WithContext(ctx).
		Where("end_time > ?", now).
		Order("start_time asc").
		Order("end_time asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("查询未过期事件失败: %w", err)
	}
	return events, nil
}
