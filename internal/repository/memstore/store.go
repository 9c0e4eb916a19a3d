// Package memstore 提供仓储接口的内存实现。
// 未配置数据库时作为默认后端，数据只活在进程内，重启即丢。
package memstore

import (
	"context"
	"sync"
	"time"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== Store 内存存储 ====================

// Store 以 map 为后备的实体存储，自增整型主键
// 所有读写都经过 mu，多个仓库适配器共享同一份数据
type Store struct {
	mu sync.RWMutex

	products   map[int64]model.Product
	variations map[int64]model.ProductVariation
	customers  map[int64]model.Customer
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	users      map[int64]model.User
	media      map[int64]model.Media
	versions   map[int64]model.SiteVersion

	nextID map[string]int64
}

// NewStore 创建空的内存存储
func NewStore() *Store {
	return &Store{
		products:   make(map[int64]model.Product),
		variations: make(map[int64]model.ProductVariation),
		customers:  make(map[int64]model.Customer),
		orders:     make(map[int64]model.Order),
		orderItems: make(map[int64]model.OrderItem),
		users:      make(map[int64]model.User),
		media:      make(map[int64]model.Media),
		versions:   make(map[int64]model.SiteVersion),
		nextID:     make(map[string]int64),
	}
}

// next 分配下一个自增 ID（调用方必须持有写锁）
func (s *Store) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// ==================== 仓库适配器入口 ====================

// Products 商品仓库
func (s *Store) Products() repository.ProductRepository { return &productStore{s: s} }

// Variations 变体仓库
func (s *Store) Variations() repository.VariationRepository { return &variationStore{s: s} }

// Customers 顾客仓库
func (s *Store) Customers() repository.CustomerRepository { return &customerStore{s: s} }

// Orders 订单仓库
func (s *Store) Orders() repository.OrderRepository { return &orderStore{s: s} }

// OrderItems 订单项仓库
func (s *Store) OrderItems() repository.OrderItemRepository { return &orderItemStore{s: s} }

// Users 用户仓库
func (s *Store) Users() repository.UserRepository { return &userStore{s: s} }

// Media 媒体仓库
func (s *Store) Media() repository.MediaRepository { return &mediaStore{s: s} }

// Versions 站点版本仓库
func (s *Store) Versions() repository.VersionRepository { return &versionStore{s: s} }

// Checkout 结算工作单元
func (s *Store) Checkout() repository.CheckoutUnitOfWork { return &checkoutUow{s: s} }

// ==================== 事务支持 ====================

// checkoutUow 快照式事务：复制整个存储，fn 在副本上执行，
// 成功后整体换入，失败则丢弃副本。单写者模型下足够。
type checkoutUow struct {
	s *Store
}

func (u *checkoutUow) Transaction(_ context.Context, fn func(tx *repository.CheckoutTx) error) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	shadow := u.s.cloneLocked()
	err := fn(&repository.CheckoutTx{
		Customers:  shadow.Customers(),
		Orders:     shadow.Orders(),
		Items:      shadow.OrderItems(),
		Products:   shadow.Products(),
		Variations: shadow.Variations(),
	})
	if err != nil {
		return err
	}

	u.s.adoptLocked(shadow)
	return nil
}

// cloneLocked 深拷贝当前存储（调用方持有锁）
func (s *Store) cloneLocked() *Store {
	clone := NewStore()
	for k, v := range s.products {
		clone.products[k] = v
	}
	for k, v := range s.variations {
		clone.variations[k] = v
	}
	for k, v := range s.customers {
		c := v
		if v.RelayPoint != nil {
			c.RelayPoint = make(map[string]interface{}, len(v.RelayPoint))
			for rk, rv := range v.RelayPoint {
				c.RelayPoint[rk] = rv
			}
		}
		clone.customers[k] = c
	}
	for k, v := range s.orders {
		clone.orders[k] = v
	}
	for k, v := range s.orderItems {
		clone.orderItems[k] = v
	}
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.media {
		clone.media[k] = v
	}
	for k, v := range s.versions {
		clone.versions[k] = v
	}
	for k, v := range s.nextID {
		clone.nextID[k] = v
	}
	return clone
}

// adoptLocked 将副本内容整体换入（调用方持有锁）
func (s *Store) adoptLocked(shadow *Store) {
	s.products = shadow.products
	s.variations = shadow.variations
	s.customers = shadow.customers
	s.orders = shadow.orders
	s.orderItems = shadow.orderItems
	s.users = shadow.users
	s.media = shadow.media
	s.versions = shadow.versions
	s.nextID = shadow.nextID
}

// touch 统一填充审计时间
func touch(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now()
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil {
		*updatedAt = now
	}
}
