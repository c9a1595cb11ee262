package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/api/metrics"
	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// CatalogCache abstracts the read-through cache in front of the disc
// catalog (Redis). A nil cache disables caching.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Disc, bool, error)
	Set(ctx context.Context, discs []domain.Disc) error
	Invalidate(ctx context.Context) error
}

// DiscService implements catalog listing, search, and admin CRUD.
// Search and filter run in memory over the (cached) full listing; the
// catalog is small and the match is a substring test over stringified
// attributes, which Mongo cannot index usefully.
type DiscService struct {
	repo  ports.DiscRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewDiscService(repo ports.DiscRepository, cache CatalogCache, log zerolog.Logger) *DiscService {
	return &DiscService{repo: repo, cache: cache, log: log}
}

func (s *DiscService) List(ctx context.Context) ([]domain.Disc, error) {
	if s.cache != nil {
		discs, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if ok {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return discs, nil
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	discs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, discs); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return discs, nil
}

func (s *DiscService) Get(ctx context.Context, id int) (*domain.Disc, error) {
	return s.repo.Get(ctx, id)
}

func (s *DiscService) SearchByType(ctx context.Context, term string) ([]domain.Disc, error) {
	return s.Filter(ctx, term, domain.FilterType)
}

func (s *DiscService) Filter(ctx context.Context, term string, mode domain.FilterMode) ([]domain.Disc, error) {
	discs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Disc, 0, len(discs))
	for _, d := range discs {
		if d.Matches(term, mode) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (s *DiscService) Create(ctx context.Context, disc *domain.Disc) (*domain.Disc, error) {
	created, err := s.repo.Create(ctx, disc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Int("disc_id", created.ID).Str("type", created.Type).Msg("disc created")
	return created, nil
}

func (s *DiscService) Update(ctx context.Context, disc *domain.Disc) (*domain.Disc, error) {
	updated, err := s.repo.Update(ctx, disc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *DiscService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DiscService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
