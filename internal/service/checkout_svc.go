package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/pkg/logger"
)

// ==================== CheckoutService 结算服务 ====================

// CheckoutService 购物车结算
// 顾客 upsert、订单与订单项落库、库存扣减在同一个工作单元内完成，
// 任何一步失败则整单回滚，不产生半成品订单
type CheckoutService struct {
	uow    repository.CheckoutUnitOfWork
	notify *NotifyService
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(uow repository.CheckoutUnitOfWork, notify *NotifyService) *CheckoutService {
	return &CheckoutService{
		uow:    uow,
		notify: notify,
	}
}

// Checkout 提交结算
func (s *CheckoutService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	var resp *dto.CheckoutResponse

	err := s.uow.Transaction(ctx, func(tx *repository.CheckoutTx) error {
		// 1. 校验购物车并计算应付总额（分）
		var total int64
		for i := range req.Items {
			item := &req.Items[i]
			lineAmount, err := s.verifyItem(ctx, tx, item)
			if err != nil {
				return err
			}
			total += lineAmount * int64(item.Quantity)
		}

		// 前端提交的 totalAmount 必须与逐行计算一致
		if total != toCents(req.TotalAmount) {
			return ErrTotalMismatch
		}

		// 2. 按邮箱 upsert 顾客
		customer, err := s.upsertCustomer(ctx, tx, &req.Customer)
		if err != nil {
			return err
		}

		// 3. 创建订单
		order := &model.Order{
			CustomerID:  customer.ID,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		// 4. 订单项（成交价快照）
		items := make([]model.OrderItem, 0, len(req.Items))
		for i := range req.Items {
			item := &req.Items[i]
			items = append(items, model.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				VariationID: item.VariationID,
				Quantity:    item.Quantity,
				PriceAmount: toCents(item.Price),
			})
		}
		if err := tx.Items.CreateBatch(ctx, items); err != nil {
			return err
		}

		// 5. 扣库存，不足则整单回滚
		for i := range req.Items {
			item := &req.Items[i]
			if item.VariationID > 0 {
				err = tx.Variations.AddStock(ctx, item.VariationID, -item.Quantity)
			} else {
				err = tx.Products.AddStock(ctx, item.ProductID, -item.Quantity)
			}
			if err != nil {
				return err
			}
		}

		resp = &dto.CheckoutResponse{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber(),
			Customer: dto.CheckoutCustomerView{
				ID:        customer.ID,
				FirstName: customer.FirstName,
				LastName:  customer.LastName,
				Email:     customer.Email,
				Phone:     customer.Phone,
			},
			TotalAmount: order.GetTotal(),
			Status:      order.Status,
			CreatedAt:   formatTime(order.CreatedAt),
		}
		return nil
	})

	if err != nil {
		middleware.CheckoutFailedTotal.WithLabelValues(checkoutFailReason(err)).Inc()
		return nil, err
	}

	middleware.OrdersCreatedTotal.Inc()
	logger.L().Info("订单创建成功",
		zap.Int64("order_id", resp.OrderID),
		zap.String("order_number", resp.OrderNumber))

	// 确认通知异步发送，不阻塞下单响应
	if s.notify != nil && s.notify.Enabled() {
		confirmation := *resp
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = s.notify.OrderConfirmed(notifyCtx, &confirmation)
		}()
	}

	return resp, nil
}

// verifyItem 校验单行购物车，返回成交单价（分）
func (s *CheckoutService) verifyItem(ctx context.Context, tx *repository.CheckoutTx, item *dto.CheckoutItem) (int64, error) {
	product, err := tx.Products.GetByID(ctx, item.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil || !product.IsActive {
		return 0, ErrProductNotFound
	}

	// 成交价以目录价为准，前端提交的单价必须一致
	expected := product.PriceAmount
	if item.VariationID > 0 {
		variation, err := tx.Variations.GetByID(ctx, item.VariationID)
		if err != nil {
			return 0, err
		}
		if variation == nil || variation.ProductID != item.ProductID {
			return 0, ErrVariationNotFound
		}
		expected = variation.EffectivePriceAmount(product.PriceAmount)
	}

	if toCents(item.Price) != expected {
		return 0, ErrPriceMismatch
	}
	return expected, nil
}

// upsertCustomer 按归一化邮箱查找顾客，存在则合并更新，不存在则创建
func (s *CheckoutService) upsertCustomer(ctx context.Context, tx *repository.CheckoutTx, info *dto.CheckoutCustomer) (*model.Customer, error) {
	existing, err := tx.Customers.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		customer := &model.Customer{
			FirstName:      info.FirstName,
			LastName:       info.LastName,
			Email:          info.Email,
			Phone:          info.Phone,
			Address:        info.Address,
			City:           info.City,
			PostalCode:     info.PostalCode,
			Country:        info.Country,
			DeliveryMethod: info.DeliveryMethod,
			RelayPoint:     info.RelayPoint,
		}
		if err := tx.Customers.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	// 老顾客：新提交的非空字段覆盖档案，空字段保留历史值
	existing.FirstName = info.FirstName
	existing.LastName = info.LastName
	existing.Phone = info.Phone
	if info.Address != "" {
		existing.Address = info.Address
	}
	if info.City != "" {
		existing.City = info.City
	}
	if info.PostalCode != "" {
		existing.PostalCode = info.PostalCode
	}
	if info.Country != "" {
		existing.Country = info.Country
	}
	if info.DeliveryMethod != "" {
		existing.DeliveryMethod = info.DeliveryMethod
	}
	if len(info.RelayPoint) > 0 {
		existing.RelayPoint = info.RelayPoint
	}

	if err := tx.Customers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// checkoutFailReason 失败原因归类，用于指标标签
func checkoutFailReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrTotalMismatch):
		return "total_mismatch"
	case errors.Is(err, ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrVariationNotFound):
		return "unknown_item"
	default:
		return "internal"
	}
}

// ==================== 错误定义 ====================

var (
	ErrTotalMismatch = errors.New("订单金额与明细不一致")
	ErrPriceMismatch = errors.New("商品价格已变动，请刷新后重试")
)
