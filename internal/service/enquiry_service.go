package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
)

type enquiryRepository interface {
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error)
	FindByID(ctx context.Context, id int64) (*models.Enquiry, error)
	Create(ctx context.Context, enquiry *models.Enquiry) error
	Update(ctx context.Context, enquiry *models.Enquiry) error
	UpdateStatus(ctx context.Context, id int64, status models.EnquiryStatus) error
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CreateEnquiryRequest holds payload for registering enquiries.
type CreateEnquiryRequest struct {
	ChildName    string     `json:"child_name" validate:"required"`
	ParentName   string     `json:"parent_name" validate:"required"`
	ParentPhone  string     `json:"parent_phone" validate:"required"`
	ParentEmail  string     `json:"parent_email" validate:"omitempty,email"`
	GradeLevel   int        `json:"grade_level" validate:"required,min=1"`
	Source       string     `json:"source"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	Notes        string     `json:"notes"`
}

// UpdateEnquiryRequest holds payload for editing enquiries.
type UpdateEnquiryRequest struct {
	ChildName    string     `json:"child_name" validate:"required"`
	ParentName   string     `json:"parent_name" validate:"required"`
	ParentPhone  string     `json:"parent_phone" validate:"required"`
	ParentEmail  string     `json:"parent_email" validate:"omitempty,email"`
	GradeLevel   int        `json:"grade_level" validate:"required,min=1"`
	Source       string     `json:"source"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	Notes        string     `json:"notes"`
}

// UpdateEnquiryStatusRequest moves an enquiry through the funnel.
type UpdateEnquiryStatusRequest struct {
	Status models.EnquiryStatus `json:"status" validate:"required"`
}

type enquiryPage struct {
	Items []models.Enquiry `json:"items"`
	Total int              `json:"total"`
}

// EnquiryService handles enquiry use-cases.
type EnquiryService struct {
	repo      enquiryRepository
	cache     cacheStore
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewEnquiryService constructs the enquiry service. Cache may be nil.
func NewEnquiryService(repo enquiryRepository, cache cacheStore, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *EnquiryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{repo: repo, cache: cache, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// List returns enquiries and pagination metadata, reading through the cache.
func (s *EnquiryService) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, *models.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	key := enquiryListKey(filter, page, size)
	if s.cache != nil {
		var cached enquiryPage
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached.Items, &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}, nil
		}
	}

	enquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enquiries")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, enquiryPage{Items: enquiries, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache enquiry page", zap.Error(err))
		}
	}

	return enquiries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one enquiry.
func (s *EnquiryService) Get(ctx context.Context, id int64) (*models.Enquiry, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiry")
	}
	return enquiry, nil
}

// Create registers a new enquiry in NEW status.
func (s *EnquiryService) Create(ctx context.Context, req CreateEnquiryRequest) (*models.Enquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enquiry payload")
	}
	enquiry := &models.Enquiry{
		ChildName:    req.ChildName,
		ParentName:   req.ParentName,
		ParentPhone:  req.ParentPhone,
		ParentEmail:  req.ParentEmail,
		GradeLevel:   req.GradeLevel,
		Source:       req.Source,
		Status:       models.EnquiryStatusNew,
		FollowUpDate: req.FollowUpDate,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enquiry")
	}
	s.invalidate(ctx)
	return enquiry, nil
}

// Update modifies editable fields of an enquiry. Lifecycle status is changed
// only through UpdateStatus or conversion.
func (s *EnquiryService) Update(ctx context.Context, id int64, req UpdateEnquiryRequest) (*models.Enquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enquiry payload")
	}
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiry")
	}
	enquiry.ChildName = req.ChildName
	enquiry.ParentName = req.ParentName
	enquiry.ParentPhone = req.ParentPhone
	enquiry.ParentEmail = req.ParentEmail
	enquiry.GradeLevel = req.GradeLevel
	enquiry.Source = req.Source
	enquiry.FollowUpDate = req.FollowUpDate
	enquiry.Notes = req.Notes
	if err := s.repo.Update(ctx, enquiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enquiry")
	}
	s.invalidate(ctx)
	return enquiry, nil
}

// UpdateStatus enforces the funnel lifecycle before persisting a transition.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id int64, req UpdateEnquiryStatusRequest) (*models.Enquiry, error) {
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown enquiry status %q", req.Status))
	}
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiry")
	}
	if !enquiry.Status.CanTransitionTo(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot move enquiry from %s to %s", enquiry.Status, req.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enquiry status")
	}
	enquiry.Status = req.Status
	s.invalidate(ctx)
	return enquiry, nil
}

func (s *EnquiryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "enquiries:*"); err != nil {
		s.logger.Warn("failed to invalidate enquiry cache", zap.Error(err))
	}
}

func enquiryListKey(filter models.EnquiryFilter, page, size int) string {
	grade := ""
	if filter.GradeLevel != nil {
		grade = fmt.Sprintf("%d", *filter.GradeLevel)
	}
	return fmt.Sprintf("enquiries:list:%s:%s:%s:%s:%s:%s:%d:%d",
		filter.Status, grade, filter.Source, filter.Search, filter.SortBy, filter.SortOrder, page, size)
}
