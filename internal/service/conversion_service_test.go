package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edupanel/admissions-api/internal/models"
)

type mockConvEnquiries struct {
	enquiries map[int64]models.Enquiry
	statusErr map[int64]error
}

func (m *mockConvEnquiries) FindByIDs(ctx context.Context, ids []int64) ([]models.Enquiry, error) {
	var found []models.Enquiry
	for _, id := range ids {
		if e, ok := m.enquiries[id]; ok {
			found = append(found, e)
		}
	}
	return found, nil
}

func (m *mockConvEnquiries) UpdateStatus(ctx context.Context, id int64, status models.EnquiryStatus) error {
	if err := m.statusErr[id]; err != nil {
		return err
	}
	e := m.enquiries[id]
	e.Status = status
	m.enquiries[id] = e
	return nil
}

type mockConvStudents struct {
	seq       int64
	created   []models.Student
	existing  map[int64]*models.Student
	createErr error
}

func (m *mockConvStudents) NextAdmissionSeq(ctx context.Context) (int64, error) {
	m.seq++
	return m.seq, nil
}

func (m *mockConvStudents) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	student.ID = fmt.Sprintf("student-%d", m.seq)
	m.created = append(m.created, *student)
	return nil
}

func (m *mockConvStudents) FindByEnquiryID(ctx context.Context, enquiryID int64) (*models.Student, error) {
	if s, ok := m.existing[enquiryID]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

type mockConvFees struct {
	structures []models.FeeStructure
	records    []models.FeeRecord
	createErr  error
}

func (m *mockConvFees) ListStructures(ctx context.Context, academicYearID, classID int64, codes []models.FeeTypeCode) ([]models.FeeStructure, error) {
	return m.structures, nil
}

func (m *mockConvFees) CreateRecords(ctx context.Context, records []models.FeeRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, records...)
	return nil
}

type mockConvReference struct {
	year    *models.AcademicYear
	class   *models.Class
	yearErr error
}

func (m *mockConvReference) FindAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error) {
	if m.yearErr != nil {
		return nil, m.yearErr
	}
	return m.year, nil
}

func (m *mockConvReference) FindClass(ctx context.Context, id int64) (*models.Class, error) {
	return m.class, nil
}

type mockInvalidator struct {
	patterns []string
}

func (m *mockInvalidator) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

type mockObserver struct {
	converted, failed, fees int
}

func (m *mockObserver) RecordConversion(converted, failed, feesGenerated int) {
	m.converted = converted
	m.failed = failed
	m.fees = feesGenerated
}

func confirmedEnquiry(id int64, name string) models.Enquiry {
	return models.Enquiry{ID: id, ChildName: name, ParentName: "Parent " + name, GradeLevel: 3, Status: models.EnquiryStatusConfirmed}
}

func newConversionFixture() (*mockConvEnquiries, *mockConvStudents, *mockConvFees, *mockConvReference, *mockInvalidator, *mockObserver) {
	enquiries := &mockConvEnquiries{
		enquiries: map[int64]models.Enquiry{
			1: confirmedEnquiry(1, "Amara"),
			2: {ID: 2, ChildName: "Binta", Status: models.EnquiryStatusNew},
			3: confirmedEnquiry(3, "Kofi"),
		},
		statusErr: map[int64]error{},
	}
	students := &mockConvStudents{}
	fees := &mockConvFees{structures: []models.FeeStructure{
		{AcademicYearID: 2, ClassID: 5, FeeType: models.FeeTypeAdmission, Amount: 1500, DueInDays: 14},
		{AcademicYearID: 2, ClassID: 5, FeeType: models.FeeTypeAnnual, Amount: 9000, DueInDays: 30},
	}}
	reference := &mockConvReference{
		year:  &models.AcademicYear{ID: 2, Name: "2026/2027", StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		class: &models.Class{ID: 5, Name: "Grade 3A", GradeLevel: 3},
	}
	return enquiries, students, fees, reference, &mockInvalidator{}, &mockObserver{}
}

func TestConversionServiceConvertsConfirmedEnquiries(t *testing.T) {
	enquiries, students, fees, reference, invalidator, observer := newConversionFixture()
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, observer, validator.New(), zap.NewNop())

	result, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1, 3},
		AcademicYearID: 2,
		ClassID:        5,
		GenerateFees:   true,
		FeeTypes:       []string{"ADMISSION", "ANNUAL"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ConvertedCount)
	assert.Equal(t, 4, result.FeesGeneratedCount)
	assert.Empty(t, result.Errors)

	require.Len(t, students.created, 2)
	assert.Equal(t, "ADM-2026-0001", students.created[0].AdmissionNo)
	assert.Equal(t, "Amara", students.created[0].FullName)
	assert.Equal(t, models.EnquiryStatusConverted, enquiries.enquiries[1].Status)
	assert.Equal(t, models.EnquiryStatusConverted, enquiries.enquiries[3].Status)

	assert.ElementsMatch(t, []string{"enquiries:*", "students:*", "feePayments:*"}, invalidator.patterns)
	assert.Equal(t, 2, observer.converted)
	assert.Equal(t, 4, observer.fees)
}

func TestConversionServiceReportsPerItemErrors(t *testing.T) {
	enquiries, students, fees, reference, invalidator, observer := newConversionFixture()
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, observer, validator.New(), zap.NewNop())

	result, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1, 2, 99},
		AcademicYearID: 2,
		ClassID:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConvertedCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, int64(2), result.Errors[0].EnquiryID)
	assert.Contains(t, result.Errors[0].Error, "not in CONFIRMED status")
	assert.Equal(t, int64(99), result.Errors[1].EnquiryID)
	assert.Equal(t, "enquiry not found", result.Errors[1].Error)

	// NEW enquiry untouched.
	assert.Equal(t, models.EnquiryStatusNew, enquiries.enquiries[2].Status)
	assert.Equal(t, 1, observer.converted)
	assert.Equal(t, 2, observer.failed)
}

func TestConversionServiceRequiresFeeTypesWhenGeneratingFees(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	_, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 2,
		ClassID:        5,
		GenerateFees:   true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one fee type")
	assert.Empty(t, students.created)
	assert.Empty(t, invalidator.patterns)
}

func TestConversionServiceRejectsUnknownFeeType(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	_, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 2,
		ClassID:        5,
		GenerateFees:   true,
		FeeTypes:       []string{"LUNCH"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown fee type "LUNCH"`)
	assert.Empty(t, students.created)
}

func TestConversionServiceMissingAcademicYear(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	reference.yearErr = sql.ErrNoRows
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	_, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 99,
		ClassID:        5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "academic year not found")
	assert.Empty(t, students.created)
}

func TestConversionServiceSkipsUnconfiguredFeeTypes(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	// Only ADMISSION is configured.
	fees.structures = fees.structures[:1]
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	result, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 2,
		ClassID:        5,
		GenerateFees:   true,
		FeeTypes:       []string{"ADMISSION", "TRANSPORT"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConvertedCount)
	assert.Equal(t, 1, result.FeesGeneratedCount)
	require.Len(t, fees.records, 1)
	assert.Equal(t, models.FeeTypeAdmission, fees.records[0].FeeType)
}

func TestConversionServiceReusesExistingAdmission(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	// Enquiry 1 was admitted in an earlier batch whose status update failed,
	// so it is still CONFIRMED. Resubmitting must not admit the child twice.
	enquiryID := int64(1)
	students.existing = map[int64]*models.Student{
		1: {ID: "student-77", AdmissionNo: "ADM-2026-0077", FullName: "Amara", EnquiryID: &enquiryID, Active: true},
	}
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	result, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 2,
		ClassID:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConvertedCount)
	assert.Empty(t, result.Errors)
	assert.Empty(t, students.created, "no second student row for the same enquiry")
	assert.Equal(t, models.EnquiryStatusConverted, enquiries.enquiries[1].Status)
}

func TestConversionServiceStatusUpdateFailureStillCounts(t *testing.T) {
	enquiries, students, fees, reference, invalidator, _ := newConversionFixture()
	enquiries.statusErr[1] = fmt.Errorf("db down")
	svc := NewConversionService(enquiries, students, fees, reference, invalidator, nil, validator.New(), zap.NewNop())

	result, err := svc.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1},
		AcademicYearID: 2,
		ClassID:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConvertedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "status update failed")
	assert.Len(t, students.created, 1)
}
