package memstore

import (
	"context"
	"sort"
	"strings"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 订单 ====================

type orderStore struct {
	s *Store
}

func (r *orderStore) Create(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order.ID = r.s.next("orders")
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	touch(&order.CreatedAt, &order.UpdatedAt)

	stored := *order
	stored.Customer = nil
	stored.Items = nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r *orderStore) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (r *orderStore) GetByIDWithRelations(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	r.s.attachRelationsLocked(&order)
	return &order, nil
}

func (r *orderStore) List(_ context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.s.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && o.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && o.CreatedAt.After(*filter.EndDate) {
			continue
		}
		if filter.Keyword != "" {
			customer, ok := r.s.customers[o.CustomerID]
			kw := strings.ToLower(filter.Keyword)
			if !ok ||
				(!strings.Contains(strings.ToLower(customer.Email), kw) &&
					!strings.Contains(strings.ToLower(customer.LastName), kw)) {
				continue
			}
		}
		r.s.attachRelationsLocked(&o)
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	total := int64(len(orders))

	page := filter.Page
	pageSize := filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(orders) {
		return []model.Order{}, total, nil
	}
	end := start + pageSize
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end], total, nil
}

func (r *orderStore) UpdateStatus(_ context.Context, id int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order, ok := r.s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	touch(nil, &order.UpdatedAt)
	r.s.orders[id] = order
	return nil
}

func (r *orderStore) GetStats(_ context.Context) (*repository.OrderStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &repository.OrderStats{}
	for _, o := range r.s.orders {
		stats.TotalOrders++
		stats.TotalAmount += o.TotalAmount
		switch o.Status {
		case model.OrderStatusPending:
			stats.PendingOrders++
		case model.OrderStatusProcessing:
			stats.ProcessingOrders++
		case model.OrderStatusShipped:
			stats.ShippedOrders++
		case model.OrderStatusDelivered:
			stats.DeliveredOrders++
		case model.OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	return stats, nil
}

// attachRelationsLocked 拼装顾客与订单项（调用方持有锁）
func (s *Store) attachRelationsLocked(order *model.Order) {
	if customer, ok := s.customers[order.CustomerID]; ok {
		c := customer
		order.Customer = &c
	}
	var items []model.OrderItem
	for _, item := range s.orderItems {
		if item.OrderID == order.ID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	order.Items = items
}

// ==================== 订单项 ====================

type orderItemStore struct {
	s *Store
}

func (r *orderItemStore) CreateBatch(_ context.Context, items []model.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range items {
		r.createLocked(&items[i])
	}
	return nil
}

func (r *orderItemStore) createLocked(item *model.OrderItem) {
	item.ID = r.s.next("order_items")
	touch(&item.CreatedAt, nil)
	r.s.orderItems[item.ID] = *item
}

func (r *orderItemStore) GetByOrderID(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []model.OrderItem
	for _, item := range r.s.orderItems {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
