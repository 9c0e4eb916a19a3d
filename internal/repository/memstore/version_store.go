package memstore

import (
	"context"
	"sort"

	"fc_shop_v1/internal/model"
	"fc_shop_v1/internal/repository"
)

// ==================== 站点版本 ====================

type versionStore struct {
	s *Store
}

func (r *versionStore) Create(_ context.Context, version *model.SiteVersion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// 新版本要求激活时，先取消其他版本的激活
	if version.IsActive {
		r.deactivateAllLocked()
	}

	version.ID = r.s.next("site_versions")
	touch(&version.CreatedAt, &version.UpdatedAt)
	r.s.versions[version.ID] = *version
	return nil
}

func (r *versionStore) GetByID(_ context.Context, id int64) (*model.SiteVersion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	version, ok := r.s.versions[id]
	if !ok {
		return nil, nil
	}
	return &version, nil
}

func (r *versionStore) GetActive(_ context.Context) (*model.SiteVersion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var active *model.SiteVersion
	for _, v := range r.s.versions {
		if !v.IsActive {
			continue
		}
		if active == nil || v.UpdatedAt.After(active.UpdatedAt) {
			version := v
			active = &version
		}
	}
	return active, nil
}

func (r *versionStore) List(_ context.Context) ([]model.SiteVersion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	versions := make([]model.SiteVersion, 0, len(r.s.versions))
	for _, v := range r.s.versions {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].CreatedAt.After(versions[j].CreatedAt)
	})
	return versions, nil
}

func (r *versionStore) Activate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	version, ok := r.s.versions[id]
	if !ok {
		return repository.ErrNotFound
	}

	r.deactivateAllLocked()
	version.IsActive = true
	touch(nil, &version.UpdatedAt)
	r.s.versions[id] = version
	return nil
}

func (r *versionStore) deactivateAllLocked() {
	for id, v := range r.s.versions {
		if v.IsActive {
			v.IsActive = false
			touch(nil, &v.UpdatedAt)
			r.s.versions[id] = v
		}
	}
}

func (r *versionStore) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.versions, id)
	return nil
}
