package dto

// ==================== 媒体 ====================

// RegisterMediaRequest 登记媒体元数据请求
// 文件本体由前端直传对象存储，这里只记元数据
type RegisterMediaRequest struct {
	Filename  string                 `json:"filename" binding:"required,max=255"`
	URL       string                 `json:"url" binding:"omitempty,max=500"`
	Size      int64                  `json:"size" binding:"omitempty,min=0"`
	MediaType string                 `json:"mediaType" binding:"omitempty,oneof=image video other"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// MediaView 媒体视图
type MediaView struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"`
}

// ListMediaRequest 媒体列表请求
type ListMediaRequest struct {
	MediaType string `form:"media_type"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}
