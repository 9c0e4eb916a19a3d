package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/pkg/logger"
	"fc_shop_v1/pkg/storage"
)

// ==================== MediaService 媒体服务 ====================

// MediaService 媒体库，管理对象存储里素材的元数据
type MediaService struct {
	mediaRepo repository.MediaRepository
	provider  storage.Provider
}

// NewMediaService 创建媒体服务
func NewMediaService(mediaRepo repository.MediaRepository, provider storage.Provider) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		provider:  provider,
	}
}

// Register 登记一条媒体记录
// 文件本体由前端直传对象存储，这里只分配 key 并记元数据
func (s *MediaService) Register(ctx context.Context, req *dto.RegisterMediaRequest) (*dto.MediaView, error) {
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = model.DetectMediaType(req.Filename)
	}

	key := storage.NewKey(req.Filename)
	url := req.URL
	if url == "" {
		url = s.provider.PublicURL(key)
	}

	media := &model.Media{
		Filename:   req.Filename,
		StorageKey: key,
		URL:        url,
		MediaType:  mediaType,
		Size:       req.Size,
		Metadata:   req.Metadata,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}
	return s.toMediaView(media), nil
}

// ListMedia 媒体列表，可按类型过滤
func (s *MediaService) ListMedia(ctx context.Context, req *dto.ListMediaRequest) ([]*dto.MediaView, int64, error) {
	list, total, err := s.mediaRepo.List(ctx, req.MediaType, req.Page, req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*dto.MediaView, len(list))
	for i := range list {
		views[i] = s.toMediaView(&list[i])
	}
	return views, total, nil
}

// DeleteMedia 删除媒体记录并尽力清理对象存储里的文件
func (s *MediaService) DeleteMedia(ctx context.Context, id int64) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	// 对象清理失败不回滚记录删除，留日志人工处理
	if media.StorageKey != "" {
		if err := s.provider.Delete(ctx, media.StorageKey); err != nil {
			logger.L().Warn("媒体对象清理失败",
				zap.Int64("media_id", id),
				zap.String("key", media.StorageKey),
				zap.Error(err))
		}
	}
	return nil
}

// SignedURL 获取媒体的临时访问链接
func (s *MediaService) SignedURL(ctx context.Context, id int64, expires time.Duration) (string, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if media == nil {
		return "", ErrMediaNotFound
	}
	if media.StorageKey == "" {
		return media.URL, nil
	}
	return s.provider.SignedURL(ctx, media.StorageKey, expires)
}

// ==================== 辅助方法 ====================

// toMediaView 转换为 DTO
func (s *MediaService) toMediaView(media *model.Media) *dto.MediaView {
	return &dto.MediaView{
		ID:        media.ID,
		Filename:  media.Filename,
		URL:       media.URL,
		MediaType: media.MediaType,
		Size:      media.Size,
		CreatedAt: formatTime(media.CreatedAt),
	}
}

// ==================== 错误定义 ====================

var ErrMediaNotFound = errors.New("媒体记录不存在")
