package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository/memstore"
)

func seedOrder(t *testing.T, store *memstore.Store, status string) *model.Order {
	t.Helper()
	ctx := context.Background()

	customer := &model.Customer{FirstName: "Marie", LastName: "Dupont", Email: "marie@example.com"}
	require.NoError(t, store.Customers().Create(ctx, customer))

	order := &model.Order{CustomerID: customer.ID, TotalAmount: 4990, Status: status}
	require.NoError(t, store.Orders().Create(ctx, order))
	return order
}

func TestOrderStatusFlow(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())
	order := seedOrder(t, store, model.OrderStatusPending)

	// pending → processing → shipped → delivered
	for _, status := range []string{model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered} {
		view, err := svc.UpdateStatus(ctx, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, view.Status)
	}

	// 终态后不允许再动
	_, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderStatusIllegalJump(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())
	order := seedOrder(t, store, model.OrderStatusPending)

	// 不允许跳过 processing 直接发货
	_, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// 未知状态值
	_, err = svc.UpdateStatus(ctx, order.ID, "refunded")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	// 不存在的订单
	_, err = svc.UpdateStatus(ctx, 999, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderCancelBeforeShipment(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())

	order := seedOrder(t, store, model.OrderStatusProcessing)
	before, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, before.CanCancel)

	view, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, view.Status)
	assert.False(t, view.CanCancel)

	// 已发货订单不能取消
	shipped := seedOrder(t, store, model.OrderStatusShipped)
	shippedView, err := svc.GetOrder(ctx, shipped.ID)
	require.NoError(t, err)
	assert.False(t, shippedView.CanCancel)

	_, err = svc.UpdateStatus(ctx, shipped.ID, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListOrdersFilterValidation(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())
	seedOrder(t, store, model.OrderStatusPending)

	_, _, err := svc.ListOrders(ctx, &dto.ListOrdersRequest{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, _, err = svc.ListOrders(ctx, &dto.ListOrdersRequest{StartDate: "01/02/2026"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	list, total, err := svc.ListOrders(ctx, &dto.ListOrdersRequest{Status: model.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Customer)
	assert.NotEmpty(t, list[0].OrderNumber)
}

func TestGetOrderWithRelations(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())

	order := seedOrder(t, store, model.OrderStatusPending)
	require.NoError(t, store.OrderItems().CreateBatch(ctx, []model.OrderItem{
		{OrderID: order.ID, ProductID: 1, Quantity: 2, PriceAmount: 4990},
	}))

	view, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "marie@example.com", view.Customer.Email)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 49.90, view.Items[0].Price, 0.001)

	_, err = svc.GetOrder(ctx, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListCustomers(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	svc := NewOrderService(store.Orders(), store.Customers())

	require.NoError(t, store.Customers().Create(ctx, &model.Customer{
		FirstName: "Marie", LastName: "Dupont", Email: "marie@example.com", City: "Lyon",
	}))
	require.NoError(t, store.Customers().Create(ctx, &model.Customer{
		FirstName: "Claire", LastName: "Fontaine", Email: "claire@example.com",
	}))

	list, total, err := svc.ListCustomers(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)

	// 分页越界返回空页，总数不变
	list, total, err = svc.ListCustomers(ctx, 3, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Empty(t, list)
}
