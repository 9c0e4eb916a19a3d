package dto

// 结算接口沿用前端既有的 camelCase 字段名，勿改

// ==================== 结算请求 ====================

// CheckoutCustomer 结算时提交的顾客信息
type CheckoutCustomer struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required,max=32"`

	// 地址（可选）
	Address    string `json:"address" binding:"omitempty,max=255"`
	City       string `json:"city" binding:"omitempty,max=100"`
	PostalCode string `json:"postalCode" binding:"omitempty,max=20"`
	Country    string `json:"country" binding:"omitempty,max=100"`

	// 配送（可选）
	DeliveryMethod string                 `json:"deliveryMethod" binding:"omitempty,oneof=home relay"`
	RelayPoint     map[string]interface{} `json:"relayPoint"`
}

// CheckoutItem 购物车行
// Price 为下单时点的成交单价（元），落库时做快照
type CheckoutItem struct {
	ProductID   int64   `json:"productId" binding:"required,min=1"`
	VariationID int64   `json:"variationId" binding:"omitempty,min=1"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	// required 会把 0 当缺失，赠品单价为 0 是合法的，只做下界校验
	Price float64 `json:"price" binding:"min=0"`
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Customer    CheckoutCustomer `json:"customer" binding:"required"`
	Items       []CheckoutItem   `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64          `json:"totalAmount" binding:"min=0"`
}

// ==================== 结算响应 ====================

// CheckoutCustomerView 确认页展示的顾客摘要
type CheckoutCustomerView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CheckoutResponse 订单确认
type CheckoutResponse struct {
	OrderID     int64                `json:"orderId"`
	OrderNumber string               `json:"orderNumber"`
	Customer    CheckoutCustomerView `json:"customer"`
	TotalAmount float64              `json:"totalAmount"`
	Status      string               `json:"status"`
	CreatedAt   string               `json:"createdAt"`
}
