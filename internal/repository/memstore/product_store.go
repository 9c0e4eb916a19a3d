package memstore

import (
	"context"
	"sort"
	"strings"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 商品 ====================

type productStore struct {
	s *Store
}

func (r *productStore) Create(_ context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.ID = r.s.next("products")
	touch(&product.CreatedAt, &product.UpdatedAt)

	// 变体与商品分表存放，读取时再拼装
	variations := product.Variations
	product.Variations = nil
	r.s.products[product.ID] = *product

	for i := range variations {
		v := &variations[i]
		v.ID = r.s.next("product_variations")
		v.ProductID = product.ID
		touch(&v.CreatedAt, &v.UpdatedAt)
		r.s.variations[v.ID] = *v
	}
	product.Variations = variations
	return nil
}

func (r *productStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	product.Variations = r.s.variationsOfLocked(id)
	return &product, nil
}

func (r *productStore) List(_ context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var products []model.Product
	for _, p := range r.s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.OnlyActive && !p.IsActive {
			continue
		}
		if filter.Keyword != "" {
			kw := strings.ToLower(filter.Keyword)
			if !strings.Contains(strings.ToLower(p.Name), kw) &&
				!strings.Contains(strings.ToLower(p.Description), kw) {
				continue
			}
		}
		p.Variations = r.s.variationsOfLocked(p.ID)
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	total := int64(len(products))

	if filter.Page > 0 {
		pageSize := filter.PageSize
		if pageSize <= 0 {
			pageSize = 20
		}
		start := (filter.Page - 1) * pageSize
		if start >= len(products) {
			return []model.Product{}, total, nil
		}
		end := start + pageSize
		if end > len(products) {
			end = len(products)
		}
		products = products[start:end]
	}

	return products, total, nil
}

func (r *productStore) Update(_ context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	touch(&product.CreatedAt, &product.UpdatedAt)

	stored := *product
	stored.Variations = nil
	r.s.products[product.ID] = stored
	return nil
}

func (r *productStore) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.products, id)
	for vid, v := range r.s.variations {
		if v.ProductID == id {
			delete(r.s.variations, vid)
		}
	}
	return nil
}

func (r *productStore) AddStock(_ context.Context, id int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product, ok := r.s.products[id]
	if !ok || product.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	product.Stock += delta
	touch(nil, &product.UpdatedAt)
	r.s.products[id] = product
	return nil
}

// variationsOfLocked 取某商品的全部变体（调用方持有锁）
func (s *Store) variationsOfLocked(productID int64) []model.ProductVariation {
	var list []model.ProductVariation
	for _, v := range s.variations {
		if v.ProductID == productID {
			list = append(list, v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// ==================== 变体 ====================

type variationStore struct {
	s *Store
}

func (r *variationStore) Create(_ context.Context, variation *model.ProductVariation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	variation.ID = r.s.next("product_variations")
	touch(&variation.CreatedAt, &variation.UpdatedAt)
	r.s.variations[variation.ID] = *variation
	return nil
}

func (r *variationStore) GetByID(_ context.Context, id int64) (*model.ProductVariation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	variation, ok := r.s.variations[id]
	if !ok {
		return nil, nil
	}
	return &variation, nil
}

func (r *variationStore) GetByProductID(_ context.Context, productID int64) ([]model.ProductVariation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.variationsOfLocked(productID), nil
}

func (r *variationStore) Update(_ context.Context, variation *model.ProductVariation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.variations[variation.ID]; !ok {
		return repository.ErrNotFound
	}
	touch(&variation.CreatedAt, &variation.UpdatedAt)
	r.s.variations[variation.ID] = *variation
	return nil
}

func (r *variationStore) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.variations, id)
	return nil
}

func (r *variationStore) AddStock(_ context.Context, id int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	variation, ok := r.s.variations[id]
	if !ok || variation.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	variation.Stock += delta
	touch(nil, &variation.UpdatedAt)
	r.s.variations[id] = variation
	return nil
}

func (r *variationStore) ListLowStock(_ context.Context, threshold int) ([]model.ProductVariation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []model.ProductVariation
	for _, v := range r.s.variations {
		if v.Stock <= threshold {
			list = append(list, v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Stock < list[j].Stock })
	return list, nil
}
