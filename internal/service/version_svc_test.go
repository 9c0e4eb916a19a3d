package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository/memstore"
)

func TestActiveVersionFallback(t *testing.T) {
	store := memstore.NewStore()
	svc := NewVersionService(store.Versions())

	// 空库时回退到默认配置
	view, err := svc.ActiveVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ShopModeFocus, view.ShopMode)
	assert.Equal(t, model.ThemeDecorationNone, view.ThemeDecoration)
	assert.True(t, view.IsActive)
	assert.Equal(t, int64(0), view.ID)
}

func TestVersionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewVersionService(store.Versions())

	v1, err := svc.CreateVersion(ctx, &dto.CreateVersionRequest{
		ShopMode:        model.ShopModeFocus,
		ThemeDecoration: model.ThemeDecorationNone,
		IsActive:        true,
	})
	require.NoError(t, err)

	v2, err := svc.CreateVersion(ctx, &dto.CreateVersionRequest{
		ShopMode:        model.ShopModeGeneral,
		ThemeDecoration: model.ThemeDecorationNoel,
		IsActive:        false,
	})
	require.NoError(t, err)

	active, err := svc.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1.ID, active.ID)

	// 切换到 v2，v1 自动退位
	_, err = svc.ActivateVersion(ctx, v2.ID)
	require.NoError(t, err)

	active, _ = svc.ActiveVersion(ctx)
	assert.Equal(t, v2.ID, active.ID)
	assert.Equal(t, "Noël", active.Decoration.Label)
	assert.True(t, active.Decoration.ShowBanner)

	list, err := svc.ListVersions(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, v := range list {
		if v.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	// 删除激活版本后回退到默认
	require.NoError(t, svc.DeleteVersion(ctx, v2.ID))
	active, _ = svc.ActiveVersion(ctx)
	assert.Equal(t, int64(0), active.ID)
	assert.Equal(t, model.ShopModeFocus, active.ShopMode)
}

func TestVersionNotFound(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewVersionService(store.Versions())

	_, err := svc.ActivateVersion(ctx, 42)
	assert.ErrorIs(t, err, ErrVersionNotFound)

	err = svc.DeleteVersion(ctx, 42)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}
