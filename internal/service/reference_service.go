package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
)

type referenceRepository interface {
	ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
}

// ReferenceService serves the small read-only lists the conversion dialog
// fetches on open.
type ReferenceService struct {
	repo     referenceRepository
	cache    cacheStore
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewReferenceService constructs the reference service. Cache may be nil.
func NewReferenceService(repo referenceRepository, cache cacheStore, logger *zap.Logger, cacheTTL time.Duration) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// AcademicYears returns all academic years.
func (s *ReferenceService) AcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	const key = "reference:academic_years"
	if s.cache != nil {
		var cached []models.AcademicYear
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}
	years, err := s.repo.ListAcademicYears(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
	}
	s.store(ctx, key, years)
	return years, nil
}

// Classes returns all classes.
func (s *ReferenceService) Classes(ctx context.Context) ([]models.Class, error) {
	const key = "reference:classes"
	if s.cache != nil {
		var cached []models.Class
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	s.store(ctx, key, classes)
	return classes, nil
}

func (s *ReferenceService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache reference list", zap.String("key", key), zap.Error(err))
	}
}
