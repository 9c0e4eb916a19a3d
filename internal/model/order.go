package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// orderTransitions 合法的状态迁移表
// delivered / cancelled 为终态
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus 检查状态值是否合法
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransitionOrderStatus 检查状态迁移是否合法
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64 `gorm:"index;not null" json:"customer_id"`

	// 金额（分为单位存储）
	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	// 状态
	Status string `gorm:"size:32;index;default:pending" json:"status"`

	// 审计字段
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (*Order) TableName() string {
	return "orders"
}

// OrderNumber 对外订单号：FC-<创建年份><订单ID 补零到4位>
// 例如 2024 年创建、id=7 → FC-20240007
func (o *Order) OrderNumber() string {
	return fmt.Sprintf("FC-%d%04d", o.CreatedAt.Year(), o.ID)
}

// GetTotal 获取总金额（元）
func (o *Order) GetTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// CanCancel 检查是否可以取消
func (o *Order) CanCancel() bool {
	return CanTransitionOrderStatus(o.Status, OrderStatusCancelled)
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项，创建后不可变
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"index;not null" json:"order_id"`

	// 商品引用（VariationID = 0 表示直接购买商品本体）
	ProductID   int64 `gorm:"index;not null" json:"product_id"`
	VariationID int64 `gorm:"index;default:0" json:"variation_id"`

	// 数量与成交价快照（分；下单时点价格，不随商品改价变动）
	Quantity    int   `gorm:"not null;default:1" json:"quantity"`
	PriceAmount int64 `gorm:"not null" json:"price_amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// GetPrice 获取成交单价（元）
func (i *OrderItem) GetPrice() float64 {
	return float64(i.PriceAmount) / 100
}

// LineTotal 获取行小计（分）
func (i *OrderItem) LineTotal() int64 {
	return i.PriceAmount * int64(i.Quantity)
}
