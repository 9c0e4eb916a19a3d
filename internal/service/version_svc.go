package service

import (
	"context"
	"errors"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== VersionService 站点版本服务 ====================

// VersionService 站点版本（展示模式 × 装饰主题）管理
type VersionService struct {
	versionRepo repository.VersionRepository
}

// NewVersionService 创建站点版本服务
func NewVersionService(versionRepo repository.VersionRepository) *VersionService {
	return &VersionService{versionRepo: versionRepo}
}

// ==================== 店面侧 ====================

// ActiveVersion 当前生效的站点版本
// 没有任何激活版本时回退到默认配置（focus + none），不落库
func (s *VersionService) ActiveVersion(ctx context.Context) (*dto.VersionView, error) {
	version, err := s.versionRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return &dto.VersionView{
			ShopMode:        model.ShopModeFocus,
			ThemeDecoration: model.ThemeDecorationNone,
			IsActive:        true,
			Decoration:      s.toDecorationView(model.ThemeDecorationNone),
		}, nil
	}
	return s.toVersionView(version), nil
}

// ==================== 后台维护 ====================

// CreateVersion 创建站点版本，isActive=true 时立即切换
func (s *VersionService) CreateVersion(ctx context.Context, req *dto.CreateVersionRequest) (*dto.VersionView, error) {
	version := &model.SiteVersion{
		ShopMode:        req.ShopMode,
		ThemeDecoration: req.ThemeDecoration,
		IsActive:        req.IsActive,
	}
	if err := s.versionRepo.Create(ctx, version); err != nil {
		return nil, err
	}
	return s.toVersionView(version), nil
}

// ListVersions 全部站点版本
func (s *VersionService) ListVersions(ctx context.Context) ([]*dto.VersionView, error) {
	versions, err := s.versionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.VersionView, len(versions))
	for i := range versions {
		list[i] = s.toVersionView(&versions[i])
	}
	return list, nil
}

// ActivateVersion 切换激活版本
func (s *VersionService) ActivateVersion(ctx context.Context, id int64) (*dto.VersionView, error) {
	if err := s.versionRepo.Activate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	version, err := s.versionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, ErrVersionNotFound
	}
	return s.toVersionView(version), nil
}

// DeleteVersion 删除站点版本
// 删除激活版本后店面自动回退到默认配置
func (s *VersionService) DeleteVersion(ctx context.Context, id int64) error {
	version, err := s.versionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if version == nil {
		return ErrVersionNotFound
	}
	return s.versionRepo.Delete(ctx, id)
}

// ==================== 辅助方法 ====================

func (s *VersionService) toDecorationView(deco string) dto.DecorationView {
	info := model.GetThemeDecorationInfo(deco)
	return dto.DecorationView{
		Name:           deco,
		Label:          info.Label,
		PrimaryColor:   info.PrimaryColor,
		SecondaryColor: info.SecondaryColor,
		ShowBanner:     info.ShowBanner,
		BannerText:     info.BannerText,
	}
}

// toVersionView 转换为 DTO
func (s *VersionService) toVersionView(version *model.SiteVersion) *dto.VersionView {
	return &dto.VersionView{
		ID:              version.ID,
		ShopMode:        version.ShopMode,
		ThemeDecoration: version.ThemeDecoration,
		IsActive:        version.IsActive,
		Decoration:      s.toDecorationView(version.ThemeDecoration),
		CreatedAt:       formatTime(version.CreatedAt),
		UpdatedAt:       formatTime(version.UpdatedAt),
	}
}

// ==================== 错误定义 ====================

var ErrVersionNotFound = errors.New("站点版本不存在")
