package pricing

import (
	"context"
	"fmt"
)

// Service exposes the current price configuration. Reads go to the store on
// demand so a configuration edit is visible to the next booking immediately.
type Service interface {
	Current(ctx context.Context) (PriceConfig, error)
	Update(ctx context.Context, cfg PriceConfig) (PriceConfig, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Current(ctx context.Context) (PriceConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return PriceConfig{}, fmt.Errorf("failed to load price configuration: %w", err)
	}
	return cfg, nil
}

func (s *ServiceImpl) Update(ctx context.Context, cfg PriceConfig) (PriceConfig, error) {
	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		return PriceConfig{}, fmt.Errorf("failed to update price configuration: %w", err)
	}
	return updated, nil
}
