package model

// ==================== SiteVersion 站点版本 ====================

// ShopMode 店铺展示模式
const (
	ShopModeFocus   = "focus"   // focus: 单品聚焦布局
	ShopModeGeneral = "general" // general: 常规目录布局
)

// ThemeDecoration 季节性装饰主题
const (
	ThemeDecorationNone      = "none"
	ThemeDecorationNoel      = "noel"
	ThemeDecorationHalloween = "halloween"
	ThemeDecorationPaques    = "paques"
	ThemeDecorationPrintemps = "printemps"
	ThemeDecorationEte       = "ete"
)

// SiteVersion 站点版本配置（展示模式 × 装饰主题）
// 同一时刻只应有一条 is_active=true，由 Activate 维护
type SiteVersion struct {
	BaseModel

	ShopMode        string `gorm:"size:20;default:focus" json:"shop_mode"`
	ThemeDecoration string `gorm:"size:20;default:none" json:"theme_decoration"`
	IsActive        bool   `gorm:"default:false;index" json:"is_active"`
}

func (SiteVersion) TableName() string {
	return "site_versions"
}

// IsValidShopMode 检查展示模式是否合法
func IsValidShopMode(mode string) bool {
	return mode == ShopModeFocus || mode == ShopModeGeneral
}

// IsValidThemeDecoration 检查装饰主题是否合法
func IsValidThemeDecoration(deco string) bool {
	_, ok := themeDecorations[deco]
	return ok
}

// ==================== 装饰元数据 ====================

// ThemeDecorationInfo 装饰主题的展示元数据（纯数据，无逻辑）
type ThemeDecorationInfo struct {
	Label          string `json:"label"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	ShowBanner     bool   `json:"show_banner"`
	BannerText     string `json:"banner_text"`
}

// themeDecorations 固定查表数据
var themeDecorations = map[string]ThemeDecorationInfo{
	ThemeDecorationNone: {
		Label:          "Aucune",
		PrimaryColor:   "#1a1a1a",
		SecondaryColor: "#f5f0e8",
	},
	ThemeDecorationNoel: {
		Label:          "Noël",
		PrimaryColor:   "#b3272d",
		SecondaryColor: "#1e4d2b",
		ShowBanner:     true,
		BannerText:     "Offre de Noël : livraison offerte dès 120 €",
	},
	ThemeDecorationHalloween: {
		Label:          "Halloween",
		PrimaryColor:   "#e87722",
		SecondaryColor: "#2d1b3d",
		ShowBanner:     true,
		BannerText:     "Éclairage d'ambiance pour Halloween",
	},
	ThemeDecorationPaques: {
		Label:          "Pâques",
		PrimaryColor:   "#f2c14e",
		SecondaryColor: "#8aa876",
		ShowBanner:     true,
		BannerText:     "Collection de printemps disponible",
	},
	ThemeDecorationPrintemps: {
		Label:          "Printemps",
		PrimaryColor:   "#7fb069",
		SecondaryColor: "#fefae0",
	},
	ThemeDecorationEte: {
		Label:          "Été",
		PrimaryColor:   "#0077b6",
		SecondaryColor: "#ffdd99",
		ShowBanner:     true,
		BannerText:     "Nouveautés de l'été",
	},
}

// GetThemeDecorationInfo 获取装饰主题元数据，未知主题回退到 none
func GetThemeDecorationInfo(deco string) ThemeDecorationInfo {
	if info, ok := themeDecorations[deco]; ok {
		return info
	}
	return themeDecorations[ThemeDecorationNone]
}
