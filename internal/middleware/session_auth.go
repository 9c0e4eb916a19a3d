package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ==================== 会话配置 ====================

// SessionCookieName 会话 Cookie 名称
const SessionCookieName = "fc_session"

// SessionConfig 会话配置
type SessionConfig struct {
	SecretKey  string        // 签名密钥
	TTL        time.Duration // 会话有效期
	Issuer     string        // 签发者
	Production bool          // 生产环境时 Cookie 带 Secure + SameSite=None
}

// DefaultSessionConfig 默认配置
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		SecretKey: "fc-shop-dev-secret",
		TTL:       7 * 24 * time.Hour,
		Issuer:    "fc-shop",
	}
}

// 全局配置
var sessionConfig = DefaultSessionConfig()

// SetSessionConfig 设置会话配置
func SetSessionConfig(cfg *SessionConfig) {
	sessionConfig = cfg
}

// GetSessionConfig 获取会话配置
func GetSessionConfig() *SessionConfig {
	return sessionConfig
}

// ==================== Claims 定义 ====================

// SessionClaims 会话声明
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ==================== 会话注册表 ====================

// 服务端会话注册表，登出时立刻失效，不必等令牌过期
var sessionRegistry sync.Map // jti -> expiresAt (time.Time)

// OpenSession 登录成功后建立会话，返回签名令牌
func OpenSession(userID int64, username, role string) (string, error) {
	now := time.Now()
	jti := uuid.New().String()
	expiresAt := now.Add(sessionConfig.TTL)

	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    sessionConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(sessionConfig.SecretKey))
	if err != nil {
		return "", err
	}

	sessionRegistry.Store(jti, expiresAt)
	return signed, nil
}

// CloseSession 关闭会话
func CloseSession(jti string) {
	sessionRegistry.Delete(jti)
}

// PruneExpiredSessions 清理过期会话，返回清理数量
func PruneExpiredSessions() int {
	now := time.Now()
	pruned := 0
	sessionRegistry.Range(func(key, value interface{}) bool {
		if exp, ok := value.(time.Time); ok && now.After(exp) {
			sessionRegistry.Delete(key)
			pruned++
		}
		return true
	})
	return pruned
}

// ActiveSessionCount 当前活跃会话数
func ActiveSessionCount() int {
	count := 0
	sessionRegistry.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

// ParseSessionToken 解析并校验会话令牌
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(sessionConfig.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	// 令牌有效但会话已被服务端关闭
	if _, alive := sessionRegistry.Load(claims.ID); !alive {
		return nil, errors.New("session closed")
	}

	return claims, nil
}

// SetSessionCookie 写会话 Cookie
func SetSessionCookie(c *gin.Context, token string) {
	maxAge := int(sessionConfig.TTL.Seconds())
	if sessionConfig.Production {
		// 跨域前端需要 SameSite=None + Secure
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(SessionCookieName, token, maxAge, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}

// ClearSessionCookie 清除会话 Cookie
func ClearSessionCookie(c *gin.Context) {
	if sessionConfig.Production {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(SessionCookieName, "", -1, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

// SessionAuth 会话认证中间件
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未登录",
			})
			c.Abort()
			return
		}

		claims, err := ParseSessionToken(token)
		if err != nil {
			ClearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "会话无效或已过期",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RequireRole 角色权限校验中间件
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetSessionClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未获取到用户角色",
			})
			c.Abort()
			return
		}

		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "无权限访问",
		})
		c.Abort()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUsername 从 Context 获取用户名
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		return name.(string)
	}
	return ""
}

// GetSessionClaims 从 Context 获取完整 Claims
func GetSessionClaims(c *gin.Context) *SessionClaims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		return claims.(*SessionClaims)
	}
	return nil
}
