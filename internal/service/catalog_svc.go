package service

import (
	"context"
	"errors"
	"math"
	"time"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== CatalogService 商品目录服务 ====================

// CatalogService 商品目录服务，包含商品与变体的维护
type CatalogService struct {
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, variationRepo repository.VariationRepository) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		variationRepo: variationRepo,
	}
}

// ==================== 商品查询 ====================

// ListProducts 商品列表
// includeInactive 为 false 时只返回上架商品（店面目录用）
func (s *CatalogService) ListProducts(ctx context.Context, req *dto.ListProductsRequest, includeInactive bool) ([]*dto.ProductView, int64, error) {
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		Category:   req.Category,
		Keyword:    req.Keyword,
		OnlyActive: !includeInactive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	list := make([]*dto.ProductView, len(products))
	for i := range products {
		list[i] = s.toProductView(&products[i])
	}
	return list, total, nil
}

// GetProduct 商品详情，带变体
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*dto.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.toProductView(product), nil
}

// ==================== 商品维护 ====================

// CreateProduct 创建商品，可随带变体
func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductView, error) {
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceAmount: toCents(req.Price),
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	for _, v := range req.Variations {
		variation := model.ProductVariation{
			VariationType:  v.VariationType,
			VariationValue: v.VariationValue,
			Stock:          v.Stock,
			ImageURL:       v.ImageURL,
		}
		if variation.VariationType == "" {
			variation.VariationType = "color"
		}
		if v.Price != nil {
			amount := toCents(*v.Price)
			variation.PriceAmount = &amount
		}
		product.Variations = append(product.Variations, variation)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductView(product), nil
}

// UpdateProduct 更新商品：传了的字段覆盖，没传的保持原值
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*dto.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.PriceAmount = toCents(*req.Price)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductView(product), nil
}

// DeleteProduct 删除商品及其全部变体
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// AdjustProductStock 增量调整商品本体库存
func (s *CatalogService) AdjustProductStock(ctx context.Context, id int64, delta int) (*dto.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := s.productRepo.AddStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// ==================== 变体维护 ====================

// AddVariation 给商品追加变体
func (s *CatalogService) AddVariation(ctx context.Context, productID int64, req *dto.CreateVariationRequest) (*dto.ProductVariationView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	variation := &model.ProductVariation{
		ProductID:      productID,
		VariationType:  req.VariationType,
		VariationValue: req.VariationValue,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
	}
	if variation.VariationType == "" {
		variation.VariationType = "color"
	}
	if req.Price != nil {
		amount := toCents(*req.Price)
		variation.PriceAmount = &amount
	}

	if err := s.variationRepo.Create(ctx, variation); err != nil {
		return nil, err
	}
	view := s.toVariationView(variation, product.PriceAmount)
	return &view, nil
}

// UpdateVariation 更新变体，合并规则同商品更新
func (s *CatalogService) UpdateVariation(ctx context.Context, productID, variationID int64, req *dto.UpdateVariationRequest) (*dto.ProductVariationView, error) {
	product, variation, err := s.findVariation(ctx, productID, variationID)
	if err != nil {
		return nil, err
	}

	if req.VariationType != nil {
		variation.VariationType = *req.VariationType
	}
	if req.VariationValue != nil {
		variation.VariationValue = *req.VariationValue
	}
	if req.Price != nil {
		amount := toCents(*req.Price)
		variation.PriceAmount = &amount
	}
	if req.Stock != nil {
		variation.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		variation.ImageURL = *req.ImageURL
	}

	if err := s.variationRepo.Update(ctx, variation); err != nil {
		return nil, err
	}
	view := s.toVariationView(variation, product.PriceAmount)
	return &view, nil
}

// DeleteVariation 删除变体
func (s *CatalogService) DeleteVariation(ctx context.Context, productID, variationID int64) error {
	_, variation, err := s.findVariation(ctx, productID, variationID)
	if err != nil {
		return err
	}
	return s.variationRepo.Delete(ctx, variation.ID)
}

// AdjustVariationStock 增量调整变体库存
func (s *CatalogService) AdjustVariationStock(ctx context.Context, productID, variationID int64, delta int) (*dto.ProductVariationView, error) {
	product, variation, err := s.findVariation(ctx, productID, variationID)
	if err != nil {
		return nil, err
	}

	if err := s.variationRepo.AddStock(ctx, variation.ID, delta); err != nil {
		return nil, err
	}

	fresh, err := s.variationRepo.GetByID(ctx, variation.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrVariationNotFound
	}
	view := s.toVariationView(fresh, product.PriceAmount)
	return &view, nil
}

// findVariation 定位变体并校验归属
func (s *CatalogService) findVariation(ctx context.Context, productID, variationID int64) (*model.Product, *model.ProductVariation, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, ErrProductNotFound
	}

	// 只在路径里的商品名下找，挂在别的商品下等同于不存在
	variations, err := s.variationRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	for i := range variations {
		if variations[i].ID == variationID {
			return product, &variations[i], nil
		}
	}
	return nil, nil, ErrVariationNotFound
}

// ==================== 辅助方法 ====================

// toCents 元转分
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// formatTime 视图层统一时间格式
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// toProductView 转换为 DTO
func (s *CatalogService) toProductView(product *model.Product) *dto.ProductView {
	view := &dto.ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.GetPrice(),
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		IsActive:    product.IsActive,
		Variations:  make([]dto.ProductVariationView, 0, len(product.Variations)),
	}
	for i := range product.Variations {
		view.Variations = append(view.Variations, s.toVariationView(&product.Variations[i], product.PriceAmount))
	}
	return view
}

func (s *CatalogService) toVariationView(v *model.ProductVariation, basePrice int64) dto.ProductVariationView {
	return dto.ProductVariationView{
		ID:             v.ID,
		VariationType:  v.VariationType,
		VariationValue: v.VariationValue,
		Price:          v.GetPrice(basePrice),
		Stock:          v.Stock,
		ImageURL:       v.ImageURL,
	}
}

// ==================== 错误定义 ====================

var (
	ErrProductNotFound   = errors.New("商品不存在")
	ErrVariationNotFound = errors.New("商品变体不存在")
)
