package repository

import (
	"context"
	"errors"
	"fmt"

	"AnnSync/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户、登录令牌与个性化设置的仓储
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername 按用户名查用户；不存在返回 (nil, nil)
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetByID 按用户ID查用户；不存在返回 (nil, nil)
func (r *UserRepository) GetByID(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("userid = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// CreateUser 新建用户
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

// SaveToken 保存登录令牌，并把该用户的令牌数量压到10条以内（淘汰最旧）
func (r *UserRepository) SaveToken(ctx context.Context, token *model.UserLoginToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("保存令牌失败: %w", err)
	}

	var tokens []model.UserLoginToken
	err := r.db.WithContext(ctx).
		Where("userid = ?", token.UserID).
		Order("time asc").
		Find(&tokens).Error
	if err != nil {
		return fmt.Errorf("查询令牌失败: %w", err)
	}
	if len(tokens) > 10 {
		if err := r.db.WithContext(ctx).Delete(&tokens[0]).Error; err != nil {
			return fmt.Errorf("淘汰旧令牌失败: %w", err)
		}
	}
	return nil
}

// GetToken 按令牌值查登录记录；不存在返回 (nil, nil)
func (r *UserRepository) GetToken(ctx context.Context, token string) (*model.UserLoginToken, error) {
	var loginToken model.UserLoginToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&loginToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询令牌失败: %w", err)
	}
	return &loginToken, nil
}

// DeleteToken 删除令牌（登出）
func (r *UserRepository) DeleteToken(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.UserLoginToken{}).Error; err != nil {
		return fmt.Errorf("删除令牌失败: %w", err)
	}
	return nil
}

// GetSettings 读取用户设置；没有保存过返回 (nil, nil)
func (r *UserRepository) GetSettings(ctx context.Context, userID uint64) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := r.db.WithContext(ctx).Where("userid = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户设置失败: %w", err)
	}
	return &settings, nil
}

// SaveSettings 保存用户设置（整存整取）
func (r *UserRepository) SaveSettings(ctx context.Context, userID uint64, settings string) error {
	existing, err := r.GetSettings(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.WithContext(ctx).Create(&model.UserSettings{UserID: userID, Settings: settings}).Error
	}
	return r.db.WithContext(ctx).Model(existing).Update("settings", settings).Error
}
