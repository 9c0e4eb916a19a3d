package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fc_shop_v1/internal/model"
)

// ==================== MediaRepository 媒体仓库 ====================

// MediaRepository 媒体元数据仓库接口
type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id int64) (*model.Media, error)
	List(ctx context.Context, mediaType string, page, pageSize int) ([]model.Media, int64, error)
	Delete(ctx context.Context, id int64) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository 创建媒体仓库
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *model.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*model.Media, error) {
	var media model.Media
	err := r.db.WithContext(ctx).First(&media, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) List(ctx context.Context, mediaType string, page, pageSize int) ([]model.Media, int64, error) {
	var list []model.Media
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Media{})
	if mediaType != "" {
		db = db.Where("media_type = ?", mediaType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&list).Error

	return list, total, err
}

func (r *mediaRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Media{}, id).Error
}
