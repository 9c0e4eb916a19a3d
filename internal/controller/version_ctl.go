package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/service"
)

// ==================== VersionController 站点版本控制器 ====================

// VersionController 站点版本控制器
type VersionController struct {
	versionService *service.VersionService
}

// NewVersionController 创建站点版本控制器
func NewVersionController(versionService *service.VersionService) *VersionController {
	return &VersionController{versionService: versionService}
}

// ==================== 店面接口 ====================

// ActiveVersion 当前生效版本（店面渲染用）
// @Summary 当前站点版本
// @Tags Storefront
// @Produce json
// @Success 200 {object} dto.VersionView
// @Router /versions/active [get]
func (c *VersionController) ActiveVersion(ctx *gin.Context) {
	version, err := c.versionService.ActiveVersion(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}
	ctx.JSON(http.StatusOK, version)
}

// ==================== 后台接口 ====================

// ListVersions 版本列表
// @Summary 站点版本列表
// @Tags Admin/Versions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /versions [get]
func (c *VersionController) ListVersions(ctx *gin.Context) {
	list, err := c.versionService.ListVersions(ctx.Request.Context())
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
		"data":    list,
	})
}

// CreateVersion 创建版本
// @Summary 创建站点版本
// @Tags Admin/Versions
// @Accept json
// @Produce json
// @Param request body dto.CreateVersionRequest true "版本配置"
// @Success 200 {object} map[string]interface{}
// @Router /versions [post]
func (c *VersionController) CreateVersion(ctx *gin.Context) {
	var req dto.CreateVersionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	version, err := c.versionService.CreateVersion(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    version,
	})
}

// ActivateVersion 切换激活版本
// @Summary 激活站点版本
// @Tags Admin/Versions
// @Produce json
// @Param id path int true "版本 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /versions/{id}/activate [put]
func (c *VersionController) ActivateVersion(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	version, err := c.versionService.ActivateVersion(ctx.Request.Context(), id)
	if err != nil {
		c.writeVersionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "已激活",
		"data":    version,
	})
}

// DeleteVersion 删除版本
// @Summary 删除站点版本
// @Tags Admin/Versions
// @Produce json
// @Param id path int true "版本 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /versions/{id} [delete]
func (c *VersionController) DeleteVersion(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	if err := c.versionService.DeleteVersion(ctx.Request.Context(), id); err != nil {
		c.writeVersionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// ==================== 辅助方法 ====================

func (c *VersionController) writeVersionError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrVersionNotFound) {
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
}
