package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edupanel/admissions-api/internal/models"
)

// FeeRepository manages fee structures and generated fee records.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// ListStructures returns the fee structures configured for the given year,
// class and fee type codes.
func (r *FeeRepository) ListStructures(ctx context.Context, academicYearID, classID int64, codes []models.FeeTypeCode) ([]models.FeeStructure, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, academic_year_id, class_id, fee_type, amount, due_in_days
        FROM fee_structures WHERE academic_year_id = ? AND class_id = ? AND fee_type IN (?)`, academicYearID, classID, codes)
	if err != nil {
		return nil, fmt.Errorf("build fee structure query: %w", err)
	}
	query = r.db.Rebind(query)

	var structures []models.FeeStructure
	if err := r.db.SelectContext(ctx, &structures, query, args...); err != nil {
		return nil, fmt.Errorf("list fee structures: %w", err)
	}
	return structures, nil
}

// CreateRecords bulk-inserts generated fee records.
func (r *FeeRepository) CreateRecords(ctx context.Context, records []models.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range records {
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
	}
	const query = `INSERT INTO fee_records (student_id, fee_type, amount, status, due_date, created_at)
        VALUES (:student_id, :fee_type, :amount, :status, :due_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, records); err != nil {
		return fmt.Errorf("create fee records: %w", err)
	}
	return nil
}
