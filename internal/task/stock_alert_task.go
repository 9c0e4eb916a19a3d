package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/service"
	"fc_shop_v1/pkg/logger"
)

// ==================== StockAlertTask 低库存巡检任务 ====================

// StockAlertTask 定期巡检变体库存，低于阈值时写告警日志并推送 webhook
// 灯具是小批量手工补货，运营靠告警盘点
type StockAlertTask struct {
	variationRepo repository.VariationRepository
	productRepo   repository.ProductRepository
	notify        *service.NotifyService
	Cron          *cron.Cron

	spec      string
	threshold int
}

// NewStockAlertTask 创建低库存巡检任务
func NewStockAlertTask(productRepo repository.ProductRepository, variationRepo repository.VariationRepository, notify *service.NotifyService, spec string, threshold int) *StockAlertTask {
	return &StockAlertTask{
		variationRepo: variationRepo,
		productRepo:   productRepo,
		notify:        notify,
		Cron:          cron.New(cron.WithSeconds()),
		spec:          spec,
		threshold:     threshold,
	}
}

// Start 启动定时任务
func (t *StockAlertTask) Start() error {
	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.inspect(ctx)
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	logger.L().Info("低库存巡检任务已启动",
		zap.String("spec", t.spec),
		zap.Int("threshold", t.threshold))
	return nil
}

// Stop 停止定时任务
func (t *StockAlertTask) Stop() {
	t.Cron.Stop()
}

// inspect 巡检一轮
func (t *StockAlertTask) inspect(ctx context.Context) {
	variations, err := t.variationRepo.ListLowStock(ctx, t.threshold)
	if err != nil {
		logger.L().Error("低库存巡检查询失败", zap.Error(err))
		return
	}
	if len(variations) == 0 {
		logger.L().Info("低库存巡检完成，无告警")
		return
	}

	alerts := make([]dto.StockAlertItem, 0, len(variations))
	for i := range variations {
		v := &variations[i]
		product, err := t.productRepo.GetByID(ctx, v.ProductID)
		if err != nil || product == nil {
			continue
		}
		logger.L().Warn("变体库存告警",
			zap.String("product", product.Name),
			zap.String("variation", v.VariationValue),
			zap.Int64("variation_id", v.ID),
			zap.Int("stock", v.Stock))
		alerts = append(alerts, dto.StockAlertItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			VariationID:    v.ID,
			VariationValue: v.VariationValue,
			Stock:          v.Stock,
		})
	}

	if t.notify != nil {
		if err := t.notify.StockAlert(ctx, alerts); err != nil {
			logger.L().Warn("低库存告警推送未成功", zap.Error(err))
		}
	}
}
