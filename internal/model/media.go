package model

import (
	"path/filepath"
	"strings"

	"gorm.io/datatypes"
)

// ==================== Media 媒体资源 ====================

// MediaType 媒体类型
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeOther = "other"
)

// Media 媒体资源元数据（文件本体存储在对象存储或本地目录）
type Media struct {
	BaseModel

	Filename   string `gorm:"size:255;not null" json:"filename"`
	StorageKey string `gorm:"size:500;index" json:"storage_key"`
	URL        string `gorm:"size:500" json:"url"`
	MediaType  string `gorm:"size:20;index;default:other" json:"media_type"`
	Size       int64  `gorm:"default:0" json:"size"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
}

func (Media) TableName() string {
	return "media"
}

// DetectMediaType 根据文件后缀判断媒体类型
func DetectMediaType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return MediaTypeImage
	case ".mp4", ".webm", ".mov", ".avi":
		return MediaTypeVideo
	default:
		return MediaTypeOther
	}
}
