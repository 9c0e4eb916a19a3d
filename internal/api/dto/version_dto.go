package dto

// ==================== 站点版本 ====================

// CreateVersionRequest 创建站点版本请求
type CreateVersionRequest struct {
	ShopMode        string `json:"shopMode" binding:"required,oneof=focus general"`
	ThemeDecoration string `json:"themeDecoration" binding:"required,oneof=none noel halloween paques printemps ete"`
	IsActive        bool   `json:"isActive"`
}

// DecorationView 装饰主题元数据视图
type DecorationView struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	ShowBanner     bool   `json:"showBanner"`
	BannerText     string `json:"bannerText,omitempty"`
}

// VersionView 站点版本视图
type VersionView struct {
	ID              int64          `json:"id"`
	ShopMode        string         `json:"shopMode"`
	ThemeDecoration string         `json:"themeDecoration"`
	IsActive        bool           `json:"isActive"`
	Decoration      DecorationView `json:"decoration"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}
