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

type conversionEnquiryStore interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.Enquiry, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnquiryStatus) error
}

type conversionStudentStore interface {
	NextAdmissionSeq(ctx context.Context) (int64, error)
	Create(ctx context.Context, student *models.Student) error
	FindByEnquiryID(ctx context.Context, enquiryID int64) (*models.Student, error)
}

type conversionFeeStore interface {
	ListStructures(ctx context.Context, academicYearID, classID int64, codes []models.FeeTypeCode) ([]models.FeeStructure, error)
	CreateRecords(ctx context.Context, records []models.FeeRecord) error
}

type conversionReferenceStore interface {
	FindAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error)
	FindClass(ctx context.Context, id int64) (*models.Class, error)
}

type conversionInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// ConversionObserver receives batch outcome counts for instrumentation.
type ConversionObserver interface {
	RecordConversion(converted, failed, feesGenerated int)
}

// ConversionService promotes confirmed enquiries into students in a single
// batch. The batch is processed item by item and is not atomic: individual
// failures are reported in the result and do not abort the remainder.
type ConversionService struct {
	enquiries conversionEnquiryStore
	students  conversionStudentStore
	fees      conversionFeeStore
	reference conversionReferenceStore
	cache     conversionInvalidator
	observer  ConversionObserver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConversionService constructs the conversion service. Cache and observer
// may be nil.
func NewConversionService(
	enquiries conversionEnquiryStore,
	students conversionStudentStore,
	fees conversionFeeStore,
	reference conversionReferenceStore,
	cache conversionInvalidator,
	observer ConversionObserver,
	validate *validator.Validate,
	logger *zap.Logger,
) *ConversionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionService{
		enquiries: enquiries,
		students:  students,
		fees:      fees,
		reference: reference,
		cache:     cache,
		observer:  observer,
		validator: validate,
		logger:    logger,
	}
}

// Convert runs the batch conversion and returns the per-batch summary.
func (s *ConversionService) Convert(ctx context.Context, req models.ConvertEnquiriesRequest) (*models.ConvertEnquiriesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conversion payload")
	}

	feeTypes, err := s.resolveFeeTypes(req)
	if err != nil {
		return nil, err
	}

	year, err := s.reference.FindAcademicYear(ctx, req.AcademicYearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	if _, err := s.reference.FindClass(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	structures := map[models.FeeTypeCode]models.FeeStructure{}
	if req.GenerateFees {
		list, err := s.fees.ListStructures(ctx, req.AcademicYearID, req.ClassID, feeTypes)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee structures")
		}
		for _, structure := range list {
			structures[structure.FeeType] = structure
		}
		for _, code := range feeTypes {
			if _, ok := structures[code]; !ok {
				s.logger.Warn("no fee structure configured, skipping fee type",
					zap.String("fee_type", string(code)),
					zap.Int64("academic_year_id", req.AcademicYearID),
					zap.Int64("class_id", req.ClassID))
			}
		}
	}

	found, err := s.enquiries.FindByIDs(ctx, req.EnquiryIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiries")
	}
	byID := make(map[int64]models.Enquiry, len(found))
	for _, enquiry := range found {
		byID[enquiry.ID] = enquiry
	}

	result := &models.ConvertEnquiriesResult{Errors: []models.ConversionError{}}

	for _, id := range req.EnquiryIDs {
		enquiry, ok := byID[id]
		if !ok {
			result.Errors = append(result.Errors, models.ConversionError{EnquiryID: id, Error: "enquiry not found"})
			continue
		}
		if !enquiry.Status.Confirmable() {
			result.Errors = append(result.Errors, models.ConversionError{EnquiryID: id, Error: fmt.Sprintf("enquiry is not in CONFIRMED status (current: %s)", enquiry.Status)})
			continue
		}

		student, err := s.admitStudent(ctx, enquiry, req, year)
		if err != nil {
			result.Errors = append(result.Errors, models.ConversionError{EnquiryID: id, Error: err.Error()})
			continue
		}

		if err := s.enquiries.UpdateStatus(ctx, id, models.EnquiryStatusConverted); err != nil {
			// The student already exists; report the inconsistency but keep going.
			s.logger.Error("student admitted but enquiry status update failed",
				zap.Int64("enquiry_id", id), zap.String("student_id", student.ID), zap.Error(err))
			result.Errors = append(result.Errors, models.ConversionError{EnquiryID: id, Error: "student admitted but enquiry status update failed"})
		}
		result.ConvertedCount++

		if req.GenerateFees {
			generated, err := s.generateFees(ctx, student, feeTypes, structures)
			if err != nil {
				s.logger.Warn("failed to generate fee records", zap.String("student_id", student.ID), zap.Error(err))
				continue
			}
			result.FeesGeneratedCount += generated
		}
	}

	s.invalidateCaches(ctx)

	if s.observer != nil {
		s.observer.RecordConversion(result.ConvertedCount, len(result.Errors), result.FeesGeneratedCount)
	}

	s.logger.Info("batch conversion finished",
		zap.Int("requested", len(req.EnquiryIDs)),
		zap.Int("converted", result.ConvertedCount),
		zap.Int("fees_generated", result.FeesGeneratedCount),
		zap.Int("failed", len(result.Errors)))

	return result, nil
}

func (s *ConversionService) resolveFeeTypes(req models.ConvertEnquiriesRequest) ([]models.FeeTypeCode, error) {
	if !req.GenerateFees {
		return nil, nil
	}
	if len(req.FeeTypes) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one fee type is required when generating fees")
	}
	codes := make([]models.FeeTypeCode, 0, len(req.FeeTypes))
	for _, raw := range req.FeeTypes {
		code := models.FeeTypeCode(raw)
		if !code.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown fee type %q", raw))
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (s *ConversionService) admitStudent(ctx context.Context, enquiry models.Enquiry, req models.ConvertEnquiriesRequest, year *models.AcademicYear) (*models.Student, error) {
	// A student row can already exist when an earlier batch admitted the
	// student but failed to flip the enquiry status. Reuse it instead of
	// admitting the same child twice.
	existing, err := s.students.FindByEnquiryID(ctx, enquiry.ID)
	if err == nil && existing != nil {
		s.logger.Info("reusing existing admission for enquiry",
			zap.Int64("enquiry_id", enquiry.ID),
			zap.String("admission_no", existing.AdmissionNo))
		return existing, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for an existing admission")
	}

	seq, err := s.students.NextAdmissionSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate admission number")
	}
	enquiryID := enquiry.ID
	student := &models.Student{
		AdmissionNo:    fmt.Sprintf("ADM-%d-%04d", year.StartDate.Year(), seq),
		FullName:       enquiry.ChildName,
		ParentName:     enquiry.ParentName,
		ParentPhone:    enquiry.ParentPhone,
		ParentEmail:    enquiry.ParentEmail,
		AcademicYearID: req.AcademicYearID,
		ClassID:        req.ClassID,
		EnquiryID:      &enquiryID,
		Active:         true,
	}
	if err := s.students.Create(ctx, student); err != nil {
		s.logger.Error("failed to create student from enquiry", zap.Int64("enquiry_id", enquiry.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create student record")
	}
	return student, nil
}

func (s *ConversionService) generateFees(ctx context.Context, student *models.Student, codes []models.FeeTypeCode, structures map[models.FeeTypeCode]models.FeeStructure) (int, error) {
	now := time.Now().UTC()
	records := make([]models.FeeRecord, 0, len(codes))
	for _, code := range codes {
		structure, ok := structures[code]
		if !ok {
			continue
		}
		records = append(records, models.FeeRecord{
			StudentID: student.ID,
			FeeType:   code,
			Amount:    structure.Amount,
			Status:    models.FeeRecordStatusPending,
			DueDate:   now.AddDate(0, 0, structure.DueInDays),
		})
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := s.fees.CreateRecords(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// invalidateCaches nudges every screen observing these keys to refetch. Best
// effort: a failed invalidation only delays freshness.
func (s *ConversionService) invalidateCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{"enquiries:*", "students:*", "feePayments:*"} {
		if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
