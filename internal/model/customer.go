package model

import (
	"strings"

	"gorm.io/datatypes"
)

// ==================== Customer 顾客 ====================

// DeliveryMethod 配送方式
const (
	DeliveryMethodHome  = "home"  // 送货上门
	DeliveryMethodRelay = "relay" // 中转点自提
)

// Customer 顾客档案
// 顾客不是登录账户，仅在结算时按邮箱 upsert
type Customer struct {
	BaseModel

	// --- 联系方式 ---
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`

	// --- 地址（可选） ---
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`

	// --- 配送（可选） ---
	DeliveryMethod string            `gorm:"size:20" json:"delivery_method"`
	RelayPoint     datatypes.JSONMap `gorm:"type:jsonb" json:"relay_point"`

	// --- 关联 ---
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName 获取全名
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeEmail 邮箱归一化，作为 upsert 键必须小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
