package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupanel/admissions-api/internal/models"
)

func newFeeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "postgres"), mock, func() { db.Close() }
}

func TestFeeRepositoryListStructures(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "academic_year_id", "class_id", "fee_type", "amount", "due_in_days"}).
		AddRow(int64(1), int64(2), int64(5), "ADMISSION", 1500.0, 14).
		AddRow(int64(2), int64(2), int64(5), "ANNUAL", 9000.0, 30)
	mock.ExpectQuery("SELECT (.+) FROM fee_structures WHERE academic_year_id = \\$1 AND class_id = \\$2 AND fee_type IN").
		WithArgs(int64(2), int64(5), models.FeeTypeAdmission, models.FeeTypeAnnual).
		WillReturnRows(rows)

	structures, err := repo.ListStructures(context.Background(), 2, 5, []models.FeeTypeCode{models.FeeTypeAdmission, models.FeeTypeAnnual})
	require.NoError(t, err)
	require.Len(t, structures, 2)
	assert.Equal(t, models.FeeTypeAdmission, structures[0].FeeType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListStructuresEmptyCodes(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	structures, err := repo.ListStructures(context.Background(), 2, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, structures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryCreateRecords(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec("INSERT INTO fee_records").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	records := []models.FeeRecord{
		{StudentID: "s1", FeeType: models.FeeTypeAdmission, Amount: 1500, Status: models.FeeRecordStatusPending, DueDate: time.Now()},
		{StudentID: "s1", FeeType: models.FeeTypeAnnual, Amount: 9000, Status: models.FeeRecordStatusPending, DueDate: time.Now()},
	}
	require.NoError(t, repo.CreateRecords(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}
