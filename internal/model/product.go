package model

// ==================== Product 商品主表 ====================

// Product 商品（灯具产品线）
type Product struct {
	BaseModel

	// --- 基本信息 ---
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100;index" json:"category"`

	// --- 价格（分为单位存储） ---
	PriceAmount int64 `gorm:"not null;default:0" json:"price_amount"`

	// --- 本体库存（无变体商品直接走这里） ---
	Stock int `gorm:"default:0" json:"stock"`

	// --- 展示 ---
	ImageURL string `gorm:"size:500" json:"image_url"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	// --- 关联 ---
	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations"`
}

func (Product) TableName() string {
	return "products"
}

// GetPrice 获取基础价格（元）
func (p *Product) GetPrice() float64 {
	return float64(p.PriceAmount) / 100
}

// ==================== ProductVariation 商品变体 ====================

// ProductVariation 商品变体（颜色等可购买选项，独立价格/库存/图片）
type ProductVariation struct {
	BaseModel

	ProductID int64 `gorm:"index;not null" json:"product_id"`

	// --- 规格 ---
	VariationType  string `gorm:"size:50;default:color" json:"variation_type"`
	VariationValue string `gorm:"size:100" json:"variation_value"`

	// --- 价格覆盖（分；nil 表示沿用商品基础价） ---
	PriceAmount *int64 `json:"price_amount"`

	// --- 库存 ---
	Stock int `gorm:"default:0" json:"stock"`

	// --- 展示 ---
	ImageURL string `gorm:"size:500" json:"image_url"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}

// EffectivePriceAmount 获取生效价格（分），未覆盖时回退到基础价
func (v *ProductVariation) EffectivePriceAmount(basePrice int64) int64 {
	if v.PriceAmount != nil {
		return *v.PriceAmount
	}
	return basePrice
}

// GetPrice 获取生效价格（元）
func (v *ProductVariation) GetPrice(basePrice int64) float64 {
	return float64(v.EffectivePriceAmount(basePrice)) / 100
}
