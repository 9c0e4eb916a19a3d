package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 后台订单控制器
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ListOrders 订单列表
// @Summary 订单列表
// @Tags Admin/Orders
// @Produce json
// @Param status query string false "状态过滤"
// @Param start_date query string false "起始日期 2006-01-02"
// @Param end_date query string false "截止日期 2006-01-02"
// @Param keyword query string false "顾客邮箱/姓氏关键词"
// @Success 200 {object} map[string]interface{}
// @Router /orders [get]
func (c *OrderController) ListOrders(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	list, total, err := c.orderService.ListOrders(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) || errors.Is(err, service.ErrInvalidDateRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
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
		"data": gin.H{
			"list":  list,
			"total": total,
		},
	})
}

// ListCustomers 顾客列表
// @Summary 顾客列表
// @Tags Admin/Customers
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} map[string]interface{}
// @Router /customers [get]
func (c *OrderController) ListCustomers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	list, total, err := c.orderService.ListCustomers(ctx.Request.Context(), page, pageSize)
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

// GetOrder 订单详情
// @Summary 订单详情
// @Tags Admin/Orders
// @Produce json
// @Param id path int true "订单 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /orders/{id} [get]
func (c *OrderController) GetOrder(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	order, err := c.orderService.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		c.writeOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    order,
	})
}

// UpdateStatus 推进订单状态
// @Summary 更新订单状态
// @Tags Admin/Orders
// @Accept json
// @Produce json
// @Param id path int true "订单 ID"
// @Param request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /orders/{id}/status [put]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "ID 格式错误",
		})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	order, err := c.orderService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		c.writeOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "状态已更新",
		"data":    order,
	})
}

// GetStats 订单统计
// @Summary 订单统计
// @Tags Admin/Orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /orders/stats [get]
func (c *OrderController) GetStats(ctx *gin.Context) {
	stats, err := c.orderService.GetStats(ctx.Request.Context())
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
		"data":    stats,
	})
}

// ==================== 辅助方法 ====================

// writeOrderError 订单服务错误到 HTTP 状态码的映射
func (c *OrderController) writeOrderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidOrderStatus):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
	}
}
