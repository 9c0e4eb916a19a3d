package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fc_shop_v1/internal/model"
)

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Category   string
	OnlyActive bool
	Keyword    string
	Page       int
	PageSize   int
}

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
// 查不到记录时返回 (nil, nil)，不作为错误处理
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	// Update 整条覆盖；patch 合并规则在 service 层完成
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error

	// AddStock 增量调整本体库存（结算时传负数扣减）
	// 调整后库存为负时拒绝并返回 ErrInsufficientStock
	AddStock(ctx context.Context, id int64, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variations").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Product{})

	// 应用过滤条件
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", keyword, keyword)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页（Page <= 0 表示不分页，目录页一次取全量）
	if filter.Page > 0 {
		if filter.PageSize <= 0 {
			filter.PageSize = 20
		}
		db = db.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	err := db.
		Preload("Variations").
		Order("id ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	// 先删变体再删商品，放在同一事务里，避免残留孤儿变体
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepository) AddStock(ctx context.Context, id int64, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// ==================== VariationRepository 变体仓库 ====================

// VariationRepository 商品变体仓库接口
type VariationRepository interface {
	Create(ctx context.Context, variation *model.ProductVariation) error
	GetByID(ctx context.Context, id int64) (*model.ProductVariation, error)
	GetByProductID(ctx context.Context, productID int64) ([]model.ProductVariation, error)
	Update(ctx context.Context, variation *model.ProductVariation) error
	Delete(ctx context.Context, id int64) error

	// AddStock 增量调整库存（结算时传负数扣减）
	// 调整后库存为负时拒绝并返回 ErrInsufficientStock
	AddStock(ctx context.Context, id int64, delta int) error

	// ListLowStock 库存小于等于阈值的变体
	ListLowStock(ctx context.Context, threshold int) ([]model.ProductVariation, error)
}

type variationRepository struct {
	db *gorm.DB
}

// NewVariationRepository 创建变体仓库
func NewVariationRepository(db *gorm.DB) VariationRepository {
	return &variationRepository{db: db}
}

func (r *variationRepository) Create(ctx context.Context, variation *model.ProductVariation) error {
	return r.db.WithContext(ctx).Create(variation).Error
}

func (r *variationRepository) GetByID(ctx context.Context, id int64) (*model.ProductVariation, error) {
	var variation model.ProductVariation
	err := r.db.WithContext(ctx).First(&variation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *variationRepository) GetByProductID(ctx context.Context, productID int64) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id ASC").Find(&variations).Error
	return variations, err
}

func (r *variationRepository) Update(ctx context.Context, variation *model.ProductVariation) error {
	return r.db.WithContext(ctx).Save(variation).Error
}

func (r *variationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ProductVariation{}, id).Error
}

func (r *variationRepository) AddStock(ctx context.Context, id int64, delta int) error {
	// 条件更新：stock + delta >= 0 才生效，由数据库保证并发下不超卖
	result := r.db.WithContext(ctx).
		Model(&model.ProductVariation{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *variationRepository) ListLowStock(ctx context.Context, threshold int) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	err := r.db.WithContext(ctx).Where("stock <= ?", threshold).Order("stock ASC").Find(&variations).Error
	return variations, err
}
