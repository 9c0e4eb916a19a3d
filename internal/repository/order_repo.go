package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fc_shop_v1/internal/model"
)

// ==================== 过滤条件 ====================

// OrderFilter 订单过滤条件
type OrderFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Keyword   string
	Page      int
	PageSize  int
}

// OrderStats 订单统计
type OrderStats struct {
	TotalOrders      int64 `json:"total_orders"`
	TotalAmount      int64 `json:"total_amount"`
	PendingOrders    int64 `json:"pending_orders"`
	ProcessingOrders int64 `json:"processing_orders"`
	ShippedOrders    int64 `json:"shipped_orders"`
	DeliveredOrders  int64 `json:"delivered_orders"`
	CancelledOrders  int64 `json:"cancelled_orders"`
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetByIDWithRelations 订单详情，带顾客与订单项
	GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	// UpdateStatus 覆盖状态，目标订单不存在时返回 ErrNotFound
	// 迁移合法性校验在 service 层
	UpdateStatus(ctx context.Context, id int64, status string) error
	GetStats(ctx context.Context) (*OrderStats, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})

	// 应用过滤条件
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", filter.EndDate)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.email LIKE ? OR customers.last_name LIKE ?", keyword, keyword)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := db.
		Preload("Customer").
		Preload("Items").
		Order("orders.created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetStats(ctx context.Context) (*OrderStats, error) {
	var stats OrderStats

	var result struct {
		Count  int64
		Amount int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COUNT(*) as count, COALESCE(SUM(total_amount), 0) as amount").
		Scan(&result).Error; err != nil {
		return nil, err
	}
	stats.TotalOrders = result.Count
	stats.TotalAmount = result.Amount

	// 各状态订单数
	type StatusCount struct {
		Status string
		Count  int64
	}
	var statusCounts []StatusCount
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case model.OrderStatusPending:
			stats.PendingOrders = sc.Count
		case model.OrderStatusProcessing:
			stats.ProcessingOrders = sc.Count
		case model.OrderStatusShipped:
			stats.ShippedOrders = sc.Count
		case model.OrderStatusDelivered:
			stats.DeliveredOrders = sc.Count
		case model.OrderStatusCancelled:
			stats.CancelledOrders = sc.Count
		}
	}

	return &stats, nil
}

// ==================== OrderItemRepository 订单项仓库 ====================

// OrderItemRepository 订单项仓库接口
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []model.OrderItem) error
	GetByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository 创建订单项仓库
func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}
