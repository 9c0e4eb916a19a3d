package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fc_shop_v1/internal/model"
)

// ==================== CustomerRepository 顾客仓库 ====================

// CustomerRepository 顾客仓库接口
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	// GetByEmail 按邮箱查找，大小写不敏感（upsert 键）
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	List(ctx context.Context, page, pageSize int) ([]model.Customer, int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	customer.Email = model.NormalizeEmail(customer.Email)
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	// 写入时已归一化为小写，这里再做一次 LOWER 对比，兜住历史脏数据
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", model.NormalizeEmail(email)).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	customer.Email = model.NormalizeEmail(customer.Email)
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, page, pageSize int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Customer{})
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
		Find(&customers).Error

	return customers, total, err
}
