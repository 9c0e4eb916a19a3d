package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品控制器
// 店面只读接口返回裸视图；后台维护接口走统一信封
type ProductController struct {
	catalogService *service.CatalogService
}

// NewProductController 创建商品控制器
func NewProductController(catalogService *service.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// ==================== 店面接口 ====================

// ListProducts 店面商品目录（只含上架商品）
// @Summary 商品目录
// @Tags Storefront
// @Produce json
// @Param category query string false "分类"
// @Param keyword query string false "关键词"
// @Success 200 {array} dto.ProductView
// @Router /products [get]
func (c *ProductController) ListProducts(ctx *gin.Context) {
	var req dto.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	list, _, err := c.catalogService.ListProducts(ctx.Request.Context(), &req, false)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// GetProduct 店面商品详情
// @Summary 商品详情
// @Tags Storefront
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.ProductView
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID 格式错误"})
		return
	}

	product, err := c.catalogService.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}

	// 下架商品对店面不可见
	if !product.IsActive {
		ctx.JSON(http.StatusNotFound, gin.H{"error": service.ErrProductNotFound.Error()})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// ==================== 后台接口 ====================

// AdminListProducts 后台商品列表（含下架商品）
// @Summary 后台商品列表
// @Tags Admin/Products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products/all [get]
func (c *ProductController) AdminListProducts(ctx *gin.Context) {
	var req dto.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	list, total, err := c.catalogService.ListProducts(ctx.Request.Context(), &req, true)
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

// CreateProduct 创建商品
// @Summary 创建商品
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "商品信息"
// @Success 200 {object} map[string]interface{}
// @Router /products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	product, err := c.catalogService.CreateProduct(ctx.Request.Context(), &req)
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
		"data":    product,
	})
}

// UpdateProduct 更新商品（部分字段）
// @Summary 更新商品
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.UpdateProductRequest true "待更新字段"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id} [put]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	product, err := c.catalogService.UpdateProduct(ctx.Request.Context(), id, &req)
	if err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    product,
	})
}

// DeleteProduct 删除商品
// @Summary 删除商品及其变体
// @Tags Admin/Products
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	if err := c.catalogService.DeleteProduct(ctx.Request.Context(), id); err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// AdjustProductStock 调整商品本体库存
// @Summary 调整商品库存
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.AdjustStockRequest true "库存增量"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id}/stock [patch]
func (c *ProductController) AdjustProductStock(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	product, err := c.catalogService.AdjustProductStock(ctx.Request.Context(), id, req.Delta)
	if err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "库存已调整",
		"data":    product,
	})
}

// ==================== 变体接口 ====================

// AddVariation 追加变体
// @Summary 给商品追加变体
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.CreateVariationRequest true "变体信息"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id}/variations [post]
func (c *ProductController) AddVariation(ctx *gin.Context) {
	productID, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.CreateVariationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	variation, err := c.catalogService.AddVariation(ctx.Request.Context(), productID, &req)
	if err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    variation,
	})
}

// UpdateVariation 更新变体
// @Summary 更新变体
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param vid path int true "变体 ID"
// @Param request body dto.UpdateVariationRequest true "待更新字段"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id}/variations/{vid} [put]
func (c *ProductController) UpdateVariation(ctx *gin.Context) {
	productID, err1 := parseID(ctx, "id")
	variationID, err2 := parseID(ctx, "vid")
	if err1 != nil || err2 != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.UpdateVariationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	variation, err := c.catalogService.UpdateVariation(ctx.Request.Context(), productID, variationID, &req)
	if err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    variation,
	})
}

// DeleteVariation 删除变体
// @Summary 删除变体
// @Tags Admin/Products
// @Produce json
// @Param id path int true "商品 ID"
// @Param vid path int true "变体 ID"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id}/variations/{vid} [delete]
func (c *ProductController) DeleteVariation(ctx *gin.Context) {
	productID, err1 := parseID(ctx, "id")
	variationID, err2 := parseID(ctx, "vid")
	if err1 != nil || err2 != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	if err := c.catalogService.DeleteVariation(ctx.Request.Context(), productID, variationID); err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// AdjustVariationStock 调整变体库存
// @Summary 调整变体库存
// @Tags Admin/Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param vid path int true "变体 ID"
// @Param request body dto.AdjustStockRequest true "库存增量"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id}/variations/{vid}/stock [patch]
func (c *ProductController) AdjustVariationStock(ctx *gin.Context) {
	productID, err1 := parseID(ctx, "id")
	variationID, err2 := parseID(ctx, "vid")
	if err1 != nil || err2 != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	variation, err := c.catalogService.AdjustVariationStock(ctx.Request.Context(), productID, variationID, req.Delta)
	if err != nil {
		c.writeCatalogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "库存已调整",
		"data":    variation,
	})
}

// ==================== 辅助方法 ====================

// parseID 解析路径里的数字 ID
func parseID(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

// writeCatalogError 目录服务错误到 HTTP 状态码的映射
func (c *ProductController) writeCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrVariationNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
	case errors.Is(err, repository.ErrInsufficientStock):
		ctx.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
	}
}
