package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/service"
	"fc_shop_v1/pkg/logger"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 后台认证控制器
// 登录态走 HttpOnly 会话 Cookie，前端不接触令牌本体
type AuthController struct {
	userService *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// ==================== 认证接口 ====================

// Login 登录
// @Summary 后台登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	token, user, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
		})
		return
	}

	middleware.SetSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: true,
		User:          user,
	})
}

// Logout 登出
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	// 没有有效会话也允许登出，幂等
	if token, err := ctx.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if claims, err := middleware.ParseSessionToken(token); err == nil {
			middleware.CloseSession(claims.ID)
		}
	}

	middleware.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
}

// Status 会话状态
// @Summary 会话状态
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /auth/status [get]
func (c *AuthController) Status(ctx *gin.Context) {
	token, err := ctx.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	claims, err := middleware.ParseSessionToken(token)
	if err != nil {
		middleware.ClearSessionCookie(ctx)
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	user, err := c.userService.GetSessionUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: true,
		User:          user,
	})
}

// ChangePassword 修改密码
// @Summary 修改当前用户密码
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	if err := c.userService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}

	logger.L().Info("密码修改成功", zap.String("username", middleware.GetUsername(ctx)))
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "密码修改成功",
	})
}
