package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/service"
)

// ==================== CheckoutController 结算控制器 ====================

// CheckoutController 店面结算控制器
// 响应直接用前端既有的 camelCase 形状，不套管理端信封
type CheckoutController struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutController 创建结算控制器
func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// Checkout 提交订单
// @Summary 购物车结算
// @Tags Storefront
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "购物车与顾客信息"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /checkout [post]
func (c *CheckoutController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.checkoutService.Checkout(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrVariationNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTotalMismatch), errors.Is(err, service.ErrPriceMismatch):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientStock):
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "下单失败，请稍后重试"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}
