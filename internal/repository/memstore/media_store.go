package memstore

import (
	"context"
	"sort"

	"fc_shop_v1/internal/model"
)

// ==================== 媒体 ====================

type mediaStore struct {
	s *Store
}

func (r *mediaStore) Create(_ context.Context, media *model.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	media.ID = r.s.next("media")
	touch(&media.CreatedAt, &media.UpdatedAt)
	r.s.media[media.ID] = *media
	return nil
}

func (r *mediaStore) GetByID(_ context.Context, id int64) (*model.Media, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	media, ok := r.s.media[id]
	if !ok {
		return nil, nil
	}
	return &media, nil
}

func (r *mediaStore) List(_ context.Context, mediaType string, page, pageSize int) ([]model.Media, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []model.Media
	for _, m := range r.s.media {
		if mediaType != "" && m.MediaType != mediaType {
			continue
		}
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	total := int64(len(list))

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []model.Media{}, total, nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total, nil
}

func (r *mediaStore) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.media, id)
	return nil
}
