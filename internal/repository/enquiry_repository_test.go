package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupanel/admissions-api/internal/models"
)

func newEnquiryMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func enquiryColumns() []string {
	return []string{"id", "child_name", "parent_name", "parent_phone", "parent_email", "grade_level", "source", "status", "follow_up_date", "notes", "created_at", "updated_at"}
}

func TestEnquiryRepositoryList(t *testing.T) {
	db, mock, cleanup := newEnquiryMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	rows := sqlmock.NewRows(enquiryColumns()).
		AddRow(int64(1), "Amara", "Mrs. Obi", "0800", "obi@example.com", 3, "WALK_IN", "NEW", time.Now(), "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT e.id, e.child_name, e.parent_name, e.parent_phone, e.parent_email, e.grade_level, e.source, e.status, e.follow_up_date, e.notes, e.created_at, e.updated_at\n        FROM enquiries e WHERE 1=1 ORDER BY e.created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enquiries e WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	enquiries, total, err := repo.List(context.Background(), models.EnquiryFilter{})
	require.NoError(t, err)
	assert.Len(t, enquiries, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newEnquiryMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectQuery("SELECT e.id, (.+) FROM enquiries e WHERE 1=1 AND e.status = \\$1").
		WithArgs(models.EnquiryStatusConfirmed).
		WillReturnRows(sqlmock.NewRows(enquiryColumns()))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM enquiries e WHERE 1=1 AND e.status = \\$1").
		WithArgs(models.EnquiryStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), models.EnquiryFilter{Status: models.EnquiryStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryFindByIDs(t *testing.T) {
	db, mock, cleanup := newEnquiryMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	rows := sqlmock.NewRows(enquiryColumns()).
		AddRow(int64(1), "Amara", "Mrs. Obi", "0800", "", 3, "WALK_IN", "CONFIRMED", nil, "", time.Now(), time.Now()).
		AddRow(int64(3), "Kofi", "Mr. Mensah", "0801", "", 3, "REFERRAL", "CONFIRMED", nil, "", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM enquiries WHERE id IN").
		WithArgs(int64(1), int64(3)).
		WillReturnRows(rows)

	enquiries, err := repo.FindByIDs(context.Background(), []int64{1, 3})
	require.NoError(t, err)
	assert.Len(t, enquiries, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newEnquiryMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectQuery("INSERT INTO enquiries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	enquiry := &models.Enquiry{ChildName: "Amara", ParentName: "Mrs. Obi", GradeLevel: 3, Source: "WALK_IN", Status: models.EnquiryStatusNew}
	err := repo.Create(context.Background(), enquiry)
	require.NoError(t, err)
	assert.Equal(t, int64(42), enquiry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newEnquiryMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectExec("UPDATE enquiries SET status").
		WithArgs(int64(7), models.EnquiryStatusConverted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 7, models.EnquiryStatusConverted))
	assert.NoError(t, mock.ExpectationsWereMet())
}
