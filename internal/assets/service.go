package assets

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List returns every asset depreciated to today.
func (s *Service) List(ctx context.Context) ([]Asset, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	asOf := s.now()
	for i := range items {
		items[i] = Depreciate(items[i], asOf)
	}
	return items, nil
}
