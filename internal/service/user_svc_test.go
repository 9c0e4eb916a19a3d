package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository/memstore"
)

func seedAdmin(t *testing.T, store *memstore.Store, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Password: string(hash),
		Role:     model.UserRoleAdmin,
		Status:   model.UserStatusActive,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewUserService(store.Users())
	seedAdmin(t, store, "admin", "secret123")

	token, user, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)

	// 登录成功后记录时间
	stored, _ := store.Users().GetByUsername(ctx, "admin")
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewUserService(store.Users())
	seedAdmin(t, store, "admin", "secret123")

	_, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 不存在的用户返回同一个错误，不泄露账号是否存在
	_, _, err = svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewUserService(store.Users())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, store.Users().Create(ctx, &model.User{
		Username: "locked",
		Password: string(hash),
		Role:     model.UserRoleAdmin,
		Status:   model.UserStatusDisabled,
	}))

	_, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "locked", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewUserService(store.Users())
	user := seedAdmin(t, store, "admin", "secret123")

	err := svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)

	// 新密码生效
	_, _, err = svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "newsecret"})
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewUserService(store.Users())

	// 密码为空只告警不建号
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", ""))
	count, _ := store.Users().Count(ctx)
	assert.Equal(t, int64(0), count)

	// 正常创建
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", "bootstrap"))
	count, _ = store.Users().Count(ctx)
	assert.Equal(t, int64(1), count)

	// 已有用户时幂等
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin", "bootstrap"))
	count, _ = store.Users().Count(ctx)
	assert.Equal(t, int64(1), count)

	_, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "bootstrap"})
	assert.NoError(t, err)
}
