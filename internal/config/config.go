package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"fc_shop_v1/pkg/storage"
)

// ==================== 配置定义 ====================

// Config 应用配置
type Config struct {
	Port          string
	Environment   string // development | production
	DatabaseURL   string // 为空时使用内存存储
	SessionSecret string // 会话令牌签名密钥
	CORSOrigin    string // 允许的前端域名
	WebhookURL    string // 订单确认通知地址，为空则不发送
	AdminUser     string // 首次启动时的默认管理员账号
	AdminPassword string
	Storage       StorageConfig
	TaskConfig    TaskConfig
}

// StorageConfig 媒体存储配置
type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	CDNDomain string
	LocalDir  string
}

// TaskConfig 后台任务配置
type TaskConfig struct {
	SessionPruneSpec string // 会话清理 cron 表达式
	StockAlertSpec   string // 低库存巡检 cron 表达式
	StockThreshold   int    // 低库存阈值
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageOptions 转换为存储层配置
func (c *Config) StorageOptions() *storage.Config {
	return &storage.Config{
		Provider:  c.Storage.Provider,
		Bucket:    c.Storage.Bucket,
		Region:    c.Storage.Region,
		AccessKey: c.Storage.AccessKey,
		SecretKey: c.Storage.SecretKey,
		Endpoint:  c.Storage.Endpoint,
		CDNDomain: c.Storage.CDNDomain,
		LocalDir:  c.Storage.LocalDir,
	}
}

// ==================== 加载 ====================

// Load 从环境变量和可选的 .env 文件加载配置
func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORAGE_PROVIDER", "local")
	viper.SetDefault("SESSION_PRUNE_SPEC", "0 */10 * * * *")
	viper.SetDefault("STOCK_ALERT_SPEC", "0 0 8 * * *")
	viper.SetDefault("STOCK_THRESHOLD", "3")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env 不存在时退回环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &Config{
		Port:          getEnvOrViper("PORT", "8080"),
		Environment:   getEnvOrViper("ENVIRONMENT", "development"),
		DatabaseURL:   strings.TrimSpace(getEnvOrViper("DATABASE_URL", "")),
		SessionSecret: strings.TrimSpace(getEnvOrViper("SESSION_SECRET", "")),
		CORSOrigin:    strings.TrimSpace(getEnvOrViper("CORS_ORIGIN", "")),
		WebhookURL:    strings.TrimSpace(getEnvOrViper("ORDER_WEBHOOK_URL", "")),
		AdminUser:     getEnvOrViper("ADMIN_USER", "admin"),
		AdminPassword: getEnvOrViper("ADMIN_PASSWORD", ""),
		Storage: StorageConfig{
			Provider:  getEnvOrViper("STORAGE_PROVIDER", "local"),
			Bucket:    strings.TrimSpace(getEnvOrViper("STORAGE_BUCKET", "")),
			Region:    getEnvOrViper("STORAGE_REGION", "auto"),
			AccessKey: strings.TrimSpace(getEnvOrViper("STORAGE_ACCESS_KEY", "")),
			SecretKey: strings.TrimSpace(getEnvOrViper("STORAGE_SECRET_KEY", "")),
			Endpoint:  strings.TrimSpace(getEnvOrViper("STORAGE_ENDPOINT", "")),
			CDNDomain: strings.TrimSpace(getEnvOrViper("STORAGE_CDN_DOMAIN", "")),
			LocalDir:  getEnvOrViper("STORAGE_LOCAL_DIR", "./uploads"),
		},
		TaskConfig: TaskConfig{
			SessionPruneSpec: getEnvOrViper("SESSION_PRUNE_SPEC", "0 */10 * * * *"),
			StockAlertSpec:   getEnvOrViper("STOCK_ALERT_SPEC", "0 0 8 * * *"),
			StockThreshold:   viper.GetInt("STOCK_THRESHOLD"),
		},
	}

	if cfg.TaskConfig.StockThreshold <= 0 {
		cfg.TaskConfig.StockThreshold = 3
	}

	if cfg.IsProduction() && cfg.SessionSecret == "" {
		return nil, fmt.Errorf("生产环境必须设置 SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		// 开发环境允许缺省密钥，重启后旧会话失效
		cfg.SessionSecret = "fc-shop-dev-secret"
	}
	if cfg.Storage.Provider == "s3" && cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("s3 模式必须设置 STORAGE_BUCKET")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
