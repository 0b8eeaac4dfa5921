package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edupanel/admissions-api/internal/models"
)

// EnquiryRepository manages persistence for admissions enquiries.
type EnquiryRepository struct {
	db *sqlx.DB
}

// NewEnquiryRepository constructs an EnquiryRepository.
func NewEnquiryRepository(db *sqlx.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// List returns enquiries matching the provided filters.
func (r *EnquiryRepository) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error) {
	base := "FROM enquiries e"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.GradeLevel != nil {
		conditions = append(conditions, fmt.Sprintf("e.grade_level = $%d", len(args)+1))
		args = append(args, *filter.GradeLevel)
	}
	if filter.Source != "" {
		conditions = append(conditions, fmt.Sprintf("e.source = $%d", len(args)+1))
		args = append(args, filter.Source)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(e.child_name) LIKE $%d OR LOWER(e.parent_name) LIKE $%d OR e.parent_phone LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"child_name":     "e.child_name",
		"created_at":     "e.created_at",
		"follow_up_date": "e.follow_up_date",
		"status":         "e.status",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "e.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT e.id, e.child_name, e.parent_name, e.parent_phone, e.parent_email, e.grade_level, e.source, e.status, e.follow_up_date, e.notes, e.created_at, e.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var enquiries []models.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enquiries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count enquiries: %w", err)
	}
	return enquiries, total, nil
}

// FindByID fetches a single enquiry.
func (r *EnquiryRepository) FindByID(ctx context.Context, id int64) (*models.Enquiry, error) {
	const query = `SELECT id, child_name, parent_name, parent_phone, parent_email, grade_level, source, status, follow_up_date, notes, created_at, updated_at
        FROM enquiries WHERE id = $1`
	var enquiry models.Enquiry
	if err := r.db.GetContext(ctx, &enquiry, query, id); err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// FindByIDs fetches the enquiries for a batch of identifiers. Missing ids are
// simply absent from the result.
func (r *EnquiryRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Enquiry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, child_name, parent_name, parent_phone, parent_email, grade_level, source, status, follow_up_date, notes, created_at, updated_at
        FROM enquiries WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build enquiry batch query: %w", err)
	}
	query = r.db.Rebind(query)

	var enquiries []models.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query, args...); err != nil {
		return nil, fmt.Errorf("find enquiries by ids: %w", err)
	}
	return enquiries, nil
}

// Create inserts a new enquiry and backfills the generated id.
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	now := time.Now().UTC()
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = now
	}
	enquiry.UpdatedAt = now
	const query = `INSERT INTO enquiries (child_name, parent_name, parent_phone, parent_email, grade_level, source, status, follow_up_date, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		enquiry.ChildName, enquiry.ParentName, enquiry.ParentPhone, enquiry.ParentEmail,
		enquiry.GradeLevel, enquiry.Source, enquiry.Status, enquiry.FollowUpDate,
		enquiry.Notes, enquiry.CreatedAt, enquiry.UpdatedAt,
	).Scan(&enquiry.ID); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

// Update modifies an existing enquiry's editable fields.
func (r *EnquiryRepository) Update(ctx context.Context, enquiry *models.Enquiry) error {
	enquiry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE enquiries SET child_name = :child_name, parent_name = :parent_name, parent_phone = :parent_phone, parent_email = :parent_email,
        grade_level = :grade_level, source = :source, follow_up_date = :follow_up_date, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, enquiry); err != nil {
		return fmt.Errorf("update enquiry: %w", err)
	}
	return nil
}

// UpdateStatus moves an enquiry to the given lifecycle status.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id int64, status models.EnquiryStatus) error {
	const query = `UPDATE enquiries SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enquiry status: %w", err)
	}
	return nil
}
