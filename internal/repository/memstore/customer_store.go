package memstore

import (
	"context"
	"sort"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 顾客 ====================

type customerStore struct {
	s *Store
}

func (r *customerStore) Create(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	customer.ID = r.s.next("customers")
	customer.Email = model.NormalizeEmail(customer.Email)
	touch(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerStore) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (r *customerStore) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	normalized := model.NormalizeEmail(email)
	for _, c := range r.s.customers {
		if model.NormalizeEmail(c.Email) == normalized {
			customer := c
			return &customer, nil
		}
	}
	return nil, nil
}

func (r *customerStore) Update(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	customer.Email = model.NormalizeEmail(customer.Email)
	touch(&customer.CreatedAt, &customer.UpdatedAt)
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerStore) List(_ context.Context, page, pageSize int) ([]model.Customer, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customers := make([]model.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	total := int64(len(customers))

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(customers) {
		return []model.Customer{}, total, nil
	}
	end := start + pageSize
	if end > len(customers) {
		end = len(customers)
	}
	return customers[start:end], total, nil
}
