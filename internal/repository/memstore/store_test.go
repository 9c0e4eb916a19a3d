package memstore

import (
	"context"
	"errors"
	"testing"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 商品与变体 ====================

func TestProductStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := store.Products()

	p := &model.Product{
		Name:        "Lampe Galet",
		Category:    "ambiance",
		PriceAmount: 4990,
		Stock:       10,
		IsActive:    true,
		Variations: []model.ProductVariation{
			{VariationType: "color", VariationValue: "blanc", Stock: 5},
			{VariationType: "color", VariationValue: "noir", Stock: 3},
		},
	}
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create 未分配 ID")
	}

	got, err := products.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Lampe Galet" {
		t.Fatalf("GetByID = %+v", got)
	}
	if len(got.Variations) != 2 {
		t.Fatalf("variations = %d, want 2", len(got.Variations))
	}

	// 不存在的商品返回 (nil, nil)
	missing, err := products.GetByID(ctx, 999)
	if err != nil || missing != nil {
		t.Fatalf("missing product = (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestProductStoreListFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := store.Products()

	products.Create(ctx, &model.Product{Name: "Lampe Galet", Category: "ambiance", IsActive: true})
	products.Create(ctx, &model.Product{Name: "Lampe Bureau", Category: "bureau", IsActive: true})
	products.Create(ctx, &model.Product{Name: "Ancienne Lampe", Category: "ambiance", IsActive: false})

	// 店面目录：只看上架
	list, total, err := products.List(ctx, repository.ProductFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("active list = %d/%d, want 2/2", len(list), total)
	}

	// 分类过滤
	list, _, _ = products.List(ctx, repository.ProductFilter{Category: "bureau"})
	if len(list) != 1 || list[0].Name != "Lampe Bureau" {
		t.Fatalf("category filter = %+v", list)
	}

	// 关键词大小写不敏感
	list, _, _ = products.List(ctx, repository.ProductFilter{Keyword: "galet"})
	if len(list) != 1 {
		t.Fatalf("keyword filter = %d, want 1", len(list))
	}
}

func TestAddStockFloor(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	variations := store.Variations()

	v := &model.ProductVariation{ProductID: 1, VariationValue: "blanc", Stock: 2}
	variations.Create(ctx, v)

	if err := variations.AddStock(ctx, v.ID, -2); err != nil {
		t.Fatalf("AddStock(-2): %v", err)
	}
	// 再扣就为负了，必须拒绝
	if err := variations.AddStock(ctx, v.ID, -1); !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("AddStock 超扣 = %v, want ErrInsufficientStock", err)
	}

	got, _ := variations.GetByID(ctx, v.ID)
	if got.Stock != 0 {
		t.Fatalf("stock = %d, want 0", got.Stock)
	}
}

// ==================== 顾客 ====================

func TestCustomerStoreEmailLookup(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	customers := store.Customers()

	c := &model.Customer{FirstName: "Marie", LastName: "Dupont", Email: "Marie@Example.com"}
	if err := customers.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 写入时归一化为小写
	got, err := customers.GetByEmail(ctx, "  MARIE@example.COM ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != c.ID {
		t.Fatalf("GetByEmail = %+v", got)
	}
	if got.Email != "marie@example.com" {
		t.Fatalf("email = %s, want normalized", got.Email)
	}
}

// ==================== 订单 ====================

func TestOrderStoreRelationsAndStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	customer := &model.Customer{FirstName: "Luc", LastName: "Martin", Email: "luc@example.com"}
	store.Customers().Create(ctx, customer)

	order := &model.Order{CustomerID: customer.ID, TotalAmount: 9980, Status: model.OrderStatusPending}
	store.Orders().Create(ctx, order)
	store.OrderItems().CreateBatch(ctx, []model.OrderItem{
		{OrderID: order.ID, ProductID: 1, Quantity: 2, PriceAmount: 4990},
	})

	got, err := store.Orders().GetByIDWithRelations(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByIDWithRelations: %v", err)
	}
	if got.Customer == nil || got.Customer.Email != "luc@example.com" {
		t.Fatalf("customer = %+v", got.Customer)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v", got.Items)
	}

	if err := store.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusProcessing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ = store.Orders().GetByID(ctx, order.ID)
	if got.Status != model.OrderStatusProcessing {
		t.Fatalf("status = %s", got.Status)
	}

	// 不存在的订单
	if err := store.Orders().UpdateStatus(ctx, 999, model.OrderStatusShipped); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("UpdateStatus missing = %v, want ErrNotFound", err)
	}
}

// ==================== 站点版本 ====================

func TestVersionStoreSingleActive(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	versions := store.Versions()

	v1 := &model.SiteVersion{ShopMode: model.ShopModeFocus, ThemeDecoration: model.ThemeDecorationNone, IsActive: true}
	v2 := &model.SiteVersion{ShopMode: model.ShopModeGeneral, ThemeDecoration: model.ThemeDecorationNoel, IsActive: true}
	versions.Create(ctx, v1)
	versions.Create(ctx, v2) // 创建时请求激活，应顶掉 v1

	active, err := versions.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active == nil || active.ID != v2.ID {
		t.Fatalf("active = %+v, want v2", active)
	}

	// 切回 v1
	if err := versions.Activate(ctx, v1.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	list, _ := versions.List(ctx)
	activeCount := 0
	for _, v := range list {
		if v.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("active count = %d, want 1", activeCount)
	}

	if err := versions.Activate(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Activate missing = %v, want ErrNotFound", err)
	}
}

// ==================== 事务 ====================

func TestCheckoutUowRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := &model.Product{Name: "Lampe Galet", PriceAmount: 4990, Stock: 10, IsActive: true}
	store.Products().Create(ctx, p)

	boom := errors.New("boom")
	err := store.Checkout().Transaction(ctx, func(tx *repository.CheckoutTx) error {
		if err := tx.Products.AddStock(ctx, p.ID, -5); err != nil {
			return err
		}
		if err := tx.Orders.Create(ctx, &model.Order{CustomerID: 1, TotalAmount: 100, Status: model.OrderStatusPending}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction err = %v", err)
	}

	// 回滚后库存与订单都没动
	got, _ := store.Products().GetByID(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock after rollback = %d, want 10", got.Stock)
	}
	orders, total, _ := store.Orders().List(ctx, repository.OrderFilter{})
	if total != 0 || len(orders) != 0 {
		t.Fatalf("orders after rollback = %d", total)
	}
}

func TestCheckoutUowCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := &model.Product{Name: "Lampe Galet", PriceAmount: 4990, Stock: 10, IsActive: true}
	store.Products().Create(ctx, p)

	var orderID int64
	err := store.Checkout().Transaction(ctx, func(tx *repository.CheckoutTx) error {
		if err := tx.Products.AddStock(ctx, p.ID, -3); err != nil {
			return err
		}
		order := &model.Order{CustomerID: 1, TotalAmount: 14970, Status: model.OrderStatusPending}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	got, _ := store.Products().GetByID(ctx, p.ID)
	if got.Stock != 7 {
		t.Fatalf("stock after commit = %d, want 7", got.Stock)
	}
	order, _ := store.Orders().GetByID(ctx, orderID)
	if order == nil {
		t.Fatal("order not committed")
	}
}
