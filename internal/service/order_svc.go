package service

import (
	"context"
	"errors"
	"time"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/middleware"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单管理（后台）
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, customerRepo: customerRepo}
}

// ==================== 查询 ====================

// ListOrders 订单列表，支持状态/日期区间/关键词过滤
func (s *OrderService) ListOrders(ctx context.Context, req *dto.ListOrdersRequest) ([]*dto.OrderView, int64, error) {
	filter := repository.OrderFilter{
		Status:   req.Status,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if req.Status != "" && !model.IsValidOrderStatus(req.Status) {
		return nil, 0, ErrInvalidOrderStatus
	}

	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		// 含当天
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	list := make([]*dto.OrderView, len(orders))
	for i := range orders {
		list[i] = s.toOrderView(&orders[i])
	}
	return list, total, nil
}

// GetOrder 订单详情，带顾客与订单项
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*dto.OrderView, error) {
	order, err := s.orderRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.toOrderView(order), nil
}

// GetStats 订单统计
func (s *OrderService) GetStats(ctx context.Context) (*repository.OrderStats, error) {
	return s.orderRepo.GetStats(ctx)
}

// ListCustomers 顾客列表（后台），按创建时间倒序
func (s *OrderService) ListCustomers(ctx context.Context, page, pageSize int) ([]dto.OrderCustomerView, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	list := make([]dto.OrderCustomerView, len(customers))
	for i := range customers {
		c := &customers[i]
		list[i] = dto.OrderCustomerView{
			ID:             c.ID,
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			Email:          c.Email,
			Phone:          c.Phone,
			Address:        c.Address,
			City:           c.City,
			PostalCode:     c.PostalCode,
			Country:        c.Country,
			DeliveryMethod: c.DeliveryMethod,
		}
	}
	return list, total, nil
}

// ==================== 状态流转 ====================

// UpdateStatus 推进订单状态
// 只允许沿流程推进：pending→processing→shipped→delivered，
// 发货前可取消；delivered / cancelled 为终态
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*dto.OrderView, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !model.CanTransitionOrderStatus(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	middleware.OrderStatusChangedTotal.WithLabelValues(status).Inc()
	return s.GetOrder(ctx, id)
}

// ==================== 辅助方法 ====================

// toOrderView 转换为 DTO
func (s *OrderService) toOrderView(order *model.Order) *dto.OrderView {
	view := &dto.OrderView{
		ID:          order.ID,
		OrderNumber: order.OrderNumber(),
		Status:      order.Status,
		CanCancel:   order.CanCancel(),
		TotalAmount: order.GetTotal(),
		CreatedAt:   formatTime(order.CreatedAt),
		Items:       make([]dto.OrderItemView, 0, len(order.Items)),
	}

	if order.Customer != nil {
		view.Customer = &dto.OrderCustomerView{
			ID:             order.Customer.ID,
			FirstName:      order.Customer.FirstName,
			LastName:       order.Customer.LastName,
			Email:          order.Customer.Email,
			Phone:          order.Customer.Phone,
			Address:        order.Customer.Address,
			City:           order.Customer.City,
			PostalCode:     order.Customer.PostalCode,
			Country:        order.Customer.Country,
			DeliveryMethod: order.Customer.DeliveryMethod,
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		view.Items = append(view.Items, dto.OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			Price:       item.GetPrice(),
		})
	}
	return view
}

// ==================== 错误定义 ====================

var (
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvalidOrderStatus = errors.New("订单状态值不合法")
	ErrInvalidTransition  = errors.New("订单状态不允许该流转")
	ErrInvalidDateRange   = errors.New("日期格式错误，应为 2006-01-02")
)
