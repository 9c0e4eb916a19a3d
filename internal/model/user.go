package model

import "time"

// ==================== User 后台账户 ====================

// UserRole 用户角色
const (
	UserRoleAdmin  = "admin"  // 管理员
	UserRoleViewer = "viewer" // 只读
)

// UserStatus 用户状态
const (
	UserStatusDisabled = 0 // 停用
	UserStatusActive   = 1 // 正常
)

// User 后台用户
// Password 只存 bcrypt 哈希，禁止明文
type User struct {
	BaseModel

	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`
	Role     string `gorm:"size:20;default:admin" json:"role"`
	Status   int    `gorm:"default:1" json:"status"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
