package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fc_shop_v1/internal/model"
)

// ==================== VersionRepository 站点版本仓库 ====================

// VersionRepository 站点版本仓库接口
type VersionRepository interface {
	Create(ctx context.Context, version *model.SiteVersion) error
	GetByID(ctx context.Context, id int64) (*model.SiteVersion, error)
	// GetActive 当前激活版本；没有激活版本时返回 (nil, nil)
	GetActive(ctx context.Context) (*model.SiteVersion, error)
	List(ctx context.Context) ([]model.SiteVersion, error)
	// Activate 激活指定版本并取消其他版本的激活，单条激活在这里保证
	Activate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository 创建站点版本仓库
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(ctx context.Context, version *model.SiteVersion) error {
	// 请求激活时，建表与取消旧激活放同一事务
	if version.IsActive {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.SiteVersion{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Create(version).Error
		})
	}
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *versionRepository) GetByID(ctx context.Context, id int64) (*model.SiteVersion, error) {
	var version model.SiteVersion
	err := r.db.WithContext(ctx).First(&version, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) GetActive(ctx context.Context) (*model.SiteVersion, error) {
	var version model.SiteVersion
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) List(ctx context.Context) ([]model.SiteVersion, error) {
	var versions []model.SiteVersion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&versions).Error
	return versions, err
}

func (r *versionRepository) Activate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 目标版本必须存在
		result := tx.Model(&model.SiteVersion{}).Where("id = ?", id).Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.SiteVersion{}).
			Where("id <> ?", id).
			Update("is_active", false).Error
	})
}

func (r *versionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SiteVersion{}, id).Error
}
