package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AnnSync/internal/model"

	"gorm.io/gorm"
)

// RefreshRepository 刷新时间记录：request_logs 单行承载按需刷新闸门，
// refresh_logs 每次定时刷新追加一行作历史。
type RefreshRepository struct {
	db *gorm.DB
}

func NewRefreshRepository(db *gorm.DB) *RefreshRepository {
	return &RefreshRepository{db: db}
}

// LastRequestTime 最近一次成功刷新时间；从未刷新过返回 ok=false
func (r *RefreshRepository) LastRequestTime(ctx context.Context) (time.Time, bool, error) {
	var log model.RequestLog
	err := r.db.WithContext(ctx).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("查询刷新时间失败: %w", err)
	}
	return log.LastRequestTime, true, nil
}

// TouchRequestLog 更新按需刷新闸门时间（单行，不存在则建）
func (r *RefreshRepository) TouchRequestLog(ctx context.Context, now time.Time) error {
	var log model.RequestLog
	err := r.db.WithContext(ctx).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&model.RequestLog{LastRequestTime: now}).Error
	}
	if err != nil {
		return fmt.Errorf("查询刷新时间失败: %w", err)
	}
	return r.db.WithContext(ctx).Model(&log).Update("last_request_time", now).Error
}

// AppendRefreshLog 追加一条刷新历史
func (r *RefreshRepository) AppendRefreshLog(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshLog{RefreshTime: now}).Error
}
