package dto

// ==================== 商品查询 ====================

// ListProductsRequest 商品列表请求
type ListProductsRequest struct {
	Category string `form:"category"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductVariationView 变体视图
type ProductVariationView struct {
	ID             int64   `json:"id"`
	VariationType  string  `json:"variationType"`
	VariationValue string  `json:"variationValue"`
	Price          float64 `json:"price"`
	Stock          int     `json:"stock"`
	ImageURL       string  `json:"imageUrl"`
}

// ProductView 商品视图
type ProductView struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Price       float64                `json:"price"`
	Stock       int                    `json:"stock"`
	ImageURL    string                 `json:"imageUrl"`
	IsActive    bool                   `json:"isActive"`
	Variations  []ProductVariationView `json:"variations"`
}

// StockAlertItem 低库存告警条目
type StockAlertItem struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	VariationID    int64  `json:"variationId"`
	VariationValue string `json:"variationValue"`
	Stock          int    `json:"stock"`
}

// ==================== 商品维护（后台） ====================

// CreateVariationRequest 创建变体请求（可随商品一并提交）
type CreateVariationRequest struct {
	VariationType  string   `json:"variationType" binding:"omitempty,max=50"`
	VariationValue string   `json:"variationValue" binding:"required,max=100"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	Stock          int      `json:"stock" binding:"omitempty,min=0"`
	ImageURL       string   `json:"imageUrl" binding:"omitempty,max=500"`
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string                   `json:"name" binding:"required,max=255"`
	Description string                   `json:"description"`
	Category    string                   `json:"category" binding:"omitempty,max=100"`
	Price       float64                  `json:"price" binding:"required,min=0"`
	Stock       int                      `json:"stock" binding:"omitempty,min=0"`
	ImageURL    string                   `json:"imageUrl" binding:"omitempty,max=500"`
	Variations  []CreateVariationRequest `json:"variations" binding:"omitempty,dive"`
}

// UpdateProductRequest 更新商品请求
// 指针字段：传了就覆盖，没传保持原值
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,max=500"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateVariationRequest 更新变体请求，合并规则同上
type UpdateVariationRequest struct {
	VariationType  *string  `json:"variationType" binding:"omitempty,max=50"`
	VariationValue *string  `json:"variationValue" binding:"omitempty,max=100"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	Stock          *int     `json:"stock" binding:"omitempty,min=0"`
	ImageURL       *string  `json:"imageUrl" binding:"omitempty,max=500"`
}

// AdjustStockRequest 库存增量调整请求（入库为正、盘亏为负）
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}
