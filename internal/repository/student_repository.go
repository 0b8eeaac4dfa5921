package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupanel/admissions-api/internal/models"
)

// StudentRepository manages persistence for students created by conversion.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// NextAdmissionSeq returns the next value of the admission number sequence.
func (r *StudentRepository) NextAdmissionSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.GetContext(ctx, &seq, "SELECT nextval('students_admission_seq')"); err != nil {
		return 0, fmt.Errorf("next admission seq: %w", err)
	}
	return seq, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, admission_no, full_name, parent_name, parent_phone, parent_email, academic_year_id, class_id, enquiry_id, active, created_at, updated_at)
        VALUES (:id, :admission_no, :full_name, :parent_name, :parent_phone, :parent_email, :academic_year_id, :class_id, :enquiry_id, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// FindByEnquiryID returns the student created from an enquiry, if any.
func (r *StudentRepository) FindByEnquiryID(ctx context.Context, enquiryID int64) (*models.Student, error) {
	const query = `SELECT id, admission_no, full_name, parent_name, parent_phone, parent_email, academic_year_id, class_id, enquiry_id, active, created_at, updated_at
        FROM students WHERE enquiry_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, enquiryID); err != nil {
		return nil, err
	}
	return &student, nil
}
