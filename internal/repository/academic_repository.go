package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupanel/admissions-api/internal/models"
)

// AcademicRepository serves the read-only reference lists used by the
// conversion pipeline.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository constructs an AcademicRepository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// ListAcademicYears returns all academic years, current first.
func (r *AcademicRepository) ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	const query = `SELECT id, name, is_current, start_date, end_date FROM academic_years ORDER BY is_current DESC, start_date DESC`
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}

// FindAcademicYear fetches one academic year.
func (r *AcademicRepository) FindAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error) {
	const query = `SELECT id, name, is_current, start_date, end_date FROM academic_years WHERE id = $1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id); err != nil {
		return nil, err
	}
	return &year, nil
}

// ListClasses returns all classes ordered by grade level.
func (r *AcademicRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, grade_level, capacity FROM classes ORDER BY grade_level, name`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindClass fetches one class.
func (r *AcademicRepository) FindClass(ctx context.Context, id int64) (*models.Class, error) {
	const query = `SELECT id, name, grade_level, capacity FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}
