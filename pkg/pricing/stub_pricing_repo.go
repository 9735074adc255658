package pricing

import "context"

type StubRepository struct {
	cfg PriceConfig
}

func NewStubRepository(cfg PriceConfig) *StubRepository {
	return &StubRepository{cfg: cfg}
}

func (s *StubRepository) Get(ctx context.Context) (PriceConfig, error) {
	return s.cfg, nil
}

func (s *StubRepository) Update(ctx context.Context, cfg PriceConfig) (PriceConfig, error) {
	s.cfg = cfg
	return s.cfg, nil
}
