package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
	"fc_shop_v1/internal/repository/memstore"
)

// ==================== 测试辅助 ====================

func setupCheckout(t *testing.T) (*memstore.Store, *CheckoutService) {
	t.Helper()
	store := memstore.NewStore()
	svc := NewCheckoutService(store.Checkout(), NewNotifyService(""))
	return store, svc
}

func seedProduct(t *testing.T, store *memstore.Store, priceCents int64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:        "Lampe Galet",
		Category:    "ambiance",
		PriceAmount: priceCents,
		Stock:       stock,
		IsActive:    true,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func checkoutRequest(p *model.Product, quantity int) *dto.CheckoutRequest {
	price := p.GetPrice()
	return &dto.CheckoutRequest{
		Customer: dto.CheckoutCustomer{
			FirstName: "Marie",
			LastName:  "Dupont",
			Email:     "marie@example.com",
			Phone:     "0612345678",
		},
		Items: []dto.CheckoutItem{
			{ProductID: p.ID, Quantity: quantity, Price: price},
		},
		TotalAmount: price * float64(quantity),
	}
}

// ==================== 结算流程 ====================

func TestCheckoutSuccess(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 10)

	resp, err := svc.Checkout(ctx, checkoutRequest(p, 2))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("FC-%d%04d", time.Now().Year(), resp.OrderID), resp.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, resp.Status)
	assert.InDelta(t, 99.80, resp.TotalAmount, 0.001)
	assert.Equal(t, "marie@example.com", resp.Customer.Email)

	// 库存已扣
	got, _ := store.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 8, got.Stock)

	// 订单项落库，成交价做了快照
	items, _ := store.OrderItems().GetByOrderID(ctx, resp.OrderID)
	require.Len(t, items, 1)
	assert.Equal(t, int64(4990), items[0].PriceAmount)
}

func TestCheckoutVariation(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 0)

	override := int64(5990)
	v := &model.ProductVariation{ProductID: p.ID, VariationValue: "noir", PriceAmount: &override, Stock: 4}
	require.NoError(t, store.Variations().Create(ctx, v))

	req := checkoutRequest(p, 1)
	req.Items[0].VariationID = v.ID
	req.Items[0].Price = 59.90
	req.TotalAmount = 59.90

	resp, err := svc.Checkout(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 59.90, resp.TotalAmount, 0.001)

	got, _ := store.Variations().GetByID(ctx, v.ID)
	assert.Equal(t, 3, got.Stock)
	// 商品本体库存不动
	gotP, _ := store.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 0, gotP.Stock)
}

func TestCheckoutTotalMismatch(t *testing.T) {
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 10)

	req := checkoutRequest(p, 2)
	req.TotalAmount = 49.90 // 少报一件

	_, err := svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestCheckoutPriceMismatch(t *testing.T) {
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 10)

	req := checkoutRequest(p, 1)
	req.Items[0].Price = 1.00 // 篡改单价
	req.TotalAmount = 1.00

	_, err := svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrPriceMismatch)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 1)

	_, err := svc.Checkout(ctx, checkoutRequest(p, 3))
	assert.True(t, errors.Is(err, repository.ErrInsufficientStock))

	// 整单回滚：没有订单、没有顾客、库存没动
	_, total, _ := store.Orders().List(ctx, repository.OrderFilter{})
	assert.Equal(t, int64(0), total)
	customer, _ := store.Customers().GetByEmail(ctx, "marie@example.com")
	assert.Nil(t, customer)
	got, _ := store.Products().GetByID(ctx, p.ID)
	assert.Equal(t, 1, got.Stock)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	_, svc := setupCheckout(t)

	req := &dto.CheckoutRequest{
		Customer:    dto.CheckoutCustomer{FirstName: "M", LastName: "D", Email: "m@example.com", Phone: "06"},
		Items:       []dto.CheckoutItem{{ProductID: 42, Quantity: 1, Price: 10}},
		TotalAmount: 10,
	}
	_, err := svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCheckoutInactiveProductRejected(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 10)

	p.IsActive = false
	require.NoError(t, store.Products().Update(ctx, p))

	_, err := svc.Checkout(ctx, checkoutRequest(p, 1))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ==================== 顾客 upsert ====================

func TestCheckoutCustomerUpsert(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p := seedProduct(t, store, 4990, 10)

	first, err := svc.Checkout(ctx, checkoutRequest(p, 1))
	require.NoError(t, err)

	// 同一邮箱换大小写再下一单：复用档案，更新联系方式
	req := checkoutRequest(p, 1)
	req.Customer.Email = "MARIE@Example.com"
	req.Customer.Phone = "0700000000"
	req.Customer.City = "Lyon"
	second, err := svc.Checkout(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Customer.ID, second.Customer.ID)

	customer, _ := store.Customers().GetByID(ctx, first.Customer.ID)
	assert.Equal(t, "0700000000", customer.Phone)
	assert.Equal(t, "Lyon", customer.City)

	// 第二单没填地址字段，历史值保留
	req3 := checkoutRequest(p, 1)
	req3.Customer.City = ""
	_, err = svc.Checkout(ctx, req3)
	require.NoError(t, err)
	customer, _ = store.Customers().GetByID(ctx, first.Customer.ID)
	assert.Equal(t, "Lyon", customer.City)
}

func TestCheckoutMultipleItems(t *testing.T) {
	ctx := context.Background()
	store, svc := setupCheckout(t)
	p1 := seedProduct(t, store, 4990, 5)
	p2 := seedProduct(t, store, 12000, 5)

	req := &dto.CheckoutRequest{
		Customer: dto.CheckoutCustomer{FirstName: "Luc", LastName: "Martin", Email: "luc@example.com", Phone: "06"},
		Items: []dto.CheckoutItem{
			{ProductID: p1.ID, Quantity: 2, Price: 49.90},
			{ProductID: p2.ID, Quantity: 1, Price: 120.00},
		},
		TotalAmount: 219.80,
	}

	resp, err := svc.Checkout(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 219.80, resp.TotalAmount, 0.001)

	items, _ := store.OrderItems().GetByOrderID(ctx, resp.OrderID)
	assert.Len(t, items, 2)
}
