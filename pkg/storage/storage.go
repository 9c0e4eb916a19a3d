package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// Provider 媒体对象存储提供者接口
// 文件本体由前端直传，后端只管理对象的生命周期与访问
type Provider interface {
	// Delete 删除对象
	Delete(ctx context.Context, key string) error

	// PublicURL 对象的公开访问 URL
	PublicURL(key string) string

	// SignedURL 获取签名 URL（私有存储时使用）
	SignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ==================== 配置 ====================

// Config 存储配置
type Config struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点（R2 / MinIO 等）
	CDNDomain string // CDN 域名（可选）
	LocalDir  string // local 模式的文件目录
	LocalBase string // local 模式的 URL 前缀
}

// ==================== 工厂方法 ====================

// NewProvider 按配置创建存储提供者
func NewProvider(cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Provider(cfg)
	case "local", "":
		return NewLocalProvider(cfg), nil
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// NewKey 生成对象 key：日期目录 + uuid 文件名，保留原始后缀
func NewKey(filename string) string {
	ext := filepath.Ext(filename)
	datePath := time.Now().Format("2006/01/02")
	return fmt.Sprintf("%s/%s%s", datePath, uuid.New().String(), ext)
}

// ==================== S3 实现 ====================

// S3Provider S3 兼容对象存储（AWS S3 / R2 / MinIO）
type S3Provider struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

// NewS3Provider 创建 S3 提供者
func NewS3Provider(cfg *Config) (*S3Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载S3配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Provider{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

func (p *S3Provider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("对象 key 为空")
	}
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (p *S3Provider) PublicURL(key string) string {
	if p.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", p.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

func (p *S3Provider) SignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("对象 key 为空")
	}
	presignClient := s3.NewPresignClient(p.client)
	presigned, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

// ==================== 本地实现 ====================

// LocalProvider 本地磁盘存储，开发环境用
type LocalProvider struct {
	dir  string
	base string
}

// NewLocalProvider 创建本地提供者
func NewLocalProvider(cfg *Config) *LocalProvider {
	dir := cfg.LocalDir
	if dir == "" {
		dir = "./uploads"
	}
	base := cfg.LocalBase
	if base == "" {
		base = "/uploads"
	}
	return &LocalProvider{dir: dir, base: base}
}

func (p *LocalProvider) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("对象 key 为空")
	}
	// key 里带目录分隔，拼接前去掉越界路径
	clean := filepath.Clean("/" + key)
	err := os.Remove(filepath.Join(p.dir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalProvider) PublicURL(key string) string {
	return strings.TrimRight(p.base, "/") + "/" + key
}

func (p *LocalProvider) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	// 本地存储没有私有访问概念，直接返回公开 URL
	return p.PublicURL(key), nil
}
