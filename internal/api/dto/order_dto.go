package dto

// ==================== 订单查询（后台） ====================

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"` // 2006-01-02
	EndDate   string `form:"end_date"`   // 2006-01-02
	Keyword   string `form:"keyword"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

// OrderItemView 订单项视图
type OrderItemView struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	VariationID int64   `json:"variationId,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderCustomerView 订单内嵌顾客视图
type OrderCustomerView struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Country        string `json:"country,omitempty"`
	DeliveryMethod string `json:"deliveryMethod,omitempty"`
}

// OrderView 订单视图，带内嵌顾客/订单项与对外订单号
type OrderView struct {
	ID          int64              `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	Status      string             `json:"status"`
	CanCancel   bool               `json:"canCancel"`
	TotalAmount float64            `json:"totalAmount"`
	CreatedAt   string             `json:"createdAt"`
	Customer    *OrderCustomerView `json:"customer,omitempty"`
	Items       []OrderItemView    `json:"items"`
}

// ==================== 订单维护（后台） ====================

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}
