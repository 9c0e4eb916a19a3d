package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/pkg/logger"
)

// ==================== NotifyService 订单通知服务 ====================

// NotifyService 下单成功后向外部 webhook 推送订单确认
// webhookURL 为空时所有通知都是空操作
type NotifyService struct {
	client     *resty.Client
	webhookURL string
}

// NewNotifyService 创建通知服务
func NewNotifyService(webhookURL string) *NotifyService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)

	return &NotifyService{
		client:     client,
		webhookURL: webhookURL,
	}
}

// Enabled 是否配置了通知地址
func (s *NotifyService) Enabled() bool {
	return s.webhookURL != ""
}

// OrderConfirmed 推送订单确认
// 通知失败不影响订单本身，只记日志
func (s *NotifyService) OrderConfirmed(ctx context.Context, confirmation *dto.CheckoutResponse) error {
	if !s.Enabled() {
		return nil
	}

	payload := map[string]interface{}{
		"event":     "order.confirmed",
		"timestamp": time.Now().Format(time.RFC3339),
		"order":     confirmation,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.webhookURL)

	if err != nil {
		logger.L().Warn("订单通知推送失败",
			zap.String("order_number", confirmation.OrderNumber),
			zap.Error(err))
		return err
	}
	if resp.StatusCode() >= 400 {
		logger.L().Warn("订单通知被拒绝",
			zap.String("order_number", confirmation.OrderNumber),
			zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("webhook 返回 %d", resp.StatusCode())
	}

	return nil
}

// StockAlert 推送低库存告警
func (s *NotifyService) StockAlert(ctx context.Context, alerts []dto.StockAlertItem) error {
	if !s.Enabled() || len(alerts) == 0 {
		return nil
	}

	payload := map[string]interface{}{
		"event":     "stock.low",
		"timestamp": time.Now().Format(time.RFC3339),
		"alerts":    alerts,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.webhookURL)

	if err != nil {
		logger.L().Warn("低库存告警推送失败", zap.Error(err))
		return err
	}
	if resp.StatusCode() >= 400 {
		logger.L().Warn("低库存告警被拒绝", zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("webhook 返回 %d", resp.StatusCode())
	}

	return nil
}
