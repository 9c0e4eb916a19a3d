package memstore

import (
	"context"
	"time"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 后台用户 ====================

type userStore struct {
	s *Store
}

func (r *userStore) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.ID = r.s.next("users")
	touch(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = *user
	return nil
}

func (r *userStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *userStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Password = passwordHash
	touch(nil, &user.UpdatedAt)
	r.s.users[id] = user
	return nil
}

func (r *userStore) UpdateLastLogin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	r.s.users[id] = user
	return nil
}

func (r *userStore) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}
