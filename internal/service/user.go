package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AnnSync/internal/auth"
	"AnnSync/internal/model"
	"AnnSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码不匹配
var ErrInvalidCredentials = errors.New("用户名或密码不正确")

// ErrUnauthorized 令牌缺失或无效
var ErrUnauthorized = errors.New("未登录或令牌已失效")

// UserService 账号、登录会话与用户设置
type UserService struct {
	logger *logrus.Logger
	repo   *repository.UserRepository
}

func NewUserService(db *gorm.DB, logger *logrus.Logger) *UserService {
	return &UserService{
		logger: logger,
		repo:   repository.NewUserRepository(db),
	}
}

// Login 校验用户名密码，成功则颁发新令牌
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}
	loginToken := &model.UserLoginToken{
		UserID: user.UserID,
		Token:  token,
		Time:   time.Now(),
	}
	if err := s.repo.SaveToken(ctx, loginToken); err != nil {
		return "", err
	}
	return token, nil
}

// Logout 作废令牌，令牌不存在视为已登出
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	return s.repo.DeleteToken(ctx, token)
}

// Authenticate 用令牌换用户ID，无效令牌返回 ErrUnauthorized
func (s *UserService) Authenticate(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	loginToken, err := s.repo.GetToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if loginToken == nil {
		return 0, ErrUnauthorized
	}
	return loginToken.UserID, nil
}

// UsernameByID 按用户ID取用户名，用户不存在返回空串
func (s *UserService) UsernameByID(ctx context.Context, userID uint64) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}

// SaveSettings 整存用户设置（settings为客户端提交的JSON文本）
func (s *UserService) SaveSettings(ctx context.Context, userID uint64, settings string) error {
	return s.repo.SaveSettings(ctx, userID, settings)
}

// LoadSettings 整取用户设置，从未保存过时返回 "{}"
func (s *UserService) LoadSettings(ctx context.Context, userID uint64) (string, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return "{}", nil
	}
	return settings.Settings, nil
}

// EnsureDefaultUser 初始化默认账号。只在账号不存在时创建，
// 随机密码仅在创建时打印一次，之后无法再取回。
func (s *UserService) EnsureDefaultUser(ctx context.Context) error {
	user, err := s.repo.GetByUsername(ctx, "user")
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}

	password, err := auth.GenerateRandomPassword(8)
	if err != nil {
		return err
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.CreateUser(ctx, &model.User{
		UserID:   10,
		Username: "user",
		Password: hashed,
	}); err != nil {
		return err
	}
	fmt.Printf("已初始化默认账号 user，随机密码: %s\n", password)
	return nil
}
