package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== 事务支持 ====================

// CheckoutTx 结算工作单元内可见的仓库集合
// fn 内的所有写操作要么全部落库，要么全部回滚
type CheckoutTx struct {
	Customers  CustomerRepository
	Orders     OrderRepository
	Items      OrderItemRepository
	Products   ProductRepository
	Variations VariationRepository
}

// CheckoutUnitOfWork 结算工作单元（事务）
// gorm 实现映射到数据库事务；memstore 实现用全局锁 + 快照回滚
type CheckoutUnitOfWork interface {
	Transaction(ctx context.Context, fn func(tx *CheckoutTx) error) error
}

type checkoutUnitOfWork struct {
	db *gorm.DB
}

// NewCheckoutUnitOfWork 创建结算工作单元
func NewCheckoutUnitOfWork(db *gorm.DB) CheckoutUnitOfWork {
	return &checkoutUnitOfWork{db: db}
}

func (u *checkoutUnitOfWork) Transaction(ctx context.Context, fn func(tx *CheckoutTx) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CheckoutTx{
			Customers:  NewCustomerRepository(tx),
			Orders:     NewOrderRepository(tx),
			Items:      NewOrderItemRepository(tx),
			Products:   NewProductRepository(tx),
			Variations: NewVariationRepository(tx),
		})
	})
}
