package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/service"
)

// ==================== MediaController 媒体控制器 ====================

// MediaController 后台媒体库控制器
type MediaController struct {
	mediaService *service.MediaService
}

// NewMediaController 创建媒体控制器
func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

// Register 登记媒体
// @Summary 登记媒体元数据
// @Tags Admin/Media
// @Accept json
// @Produce json
// @Param request body dto.RegisterMediaRequest true "媒体元数据"
// @Success 200 {object} map[string]interface{}
// @Router /media [post]
func (c *MediaController) Register(ctx *gin.Context) {
	var req dto.RegisterMediaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	media, err := c.mediaService.Register(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "登记成功",
		"data":    media,
	})
}

// ListMedia 媒体列表
// @Summary 媒体列表
// @Tags Admin/Media
// @Produce json
// @Param media_type query string false "类型过滤 image/video/other"
// @Success 200 {object} map[string]interface{}
// @Router /media [get]
func (c *MediaController) ListMedia(ctx *gin.Context) {
	var req dto.ListMediaRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	list, total, err := c.mediaService.ListMedia(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"list":  list,
			"total": total,
		},
	})
}

// DeleteMedia 删除媒体
// @Summary 删除媒体记录及对象
// @Tags Admin/Media
// @Produce json
// @Param id path int true "媒体 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /media/{id} [delete]
func (c *MediaController) DeleteMedia(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	if err := c.mediaService.DeleteMedia(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// SignedURL 获取签名访问链接
// @Summary 媒体签名链接
// @Tags Admin/Media
// @Produce json
// @Param id path int true "媒体 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /media/{id}/signed-url [get]
func (c *MediaController) SignedURL(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	url, err := c.mediaService.SignedURL(ctx.Request.Context(), id, 15*time.Minute)
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"url": url},
	})
}
