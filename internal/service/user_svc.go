package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/pkg/logger"
)

// ==================== UserService 后台用户服务 ====================

// UserService 后台用户服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ==================== 认证相关 ====================

// Login 登录，成功返回会话令牌
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.SessionUser, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		return "", nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := middleware.OpenSession(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return token, &dto.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin(),
	}, nil
}

// ChangePassword 修改密码，需验证旧密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// GetSessionUser 当前登录用户摘要
func (s *UserService) GetSessionUser(ctx context.Context, userID int64) (*dto.SessionUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin(),
	}, nil
}

// ==================== 初始化 ====================

// EnsureDefaultAdmin 用户表为空时创建默认管理员
// password 为空时跳过并告警，避免带着弱口令上线
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		logger.L().Warn("用户表为空且未配置 ADMIN_PASSWORD，跳过默认管理员创建")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     model.UserRoleAdmin,
		Status:   model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	logger.L().Info("已创建默认管理员", zap.String("username", username))
	return nil
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已禁用")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOldPassword = errors.New("旧密码错误")
)
