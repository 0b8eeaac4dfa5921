package models

import "time"

// FeeTypeCode identifies which fee schedule to generate for a converted student.
type FeeTypeCode string

// Supported fee type codes.
const (
	FeeTypeAdmission FeeTypeCode = "ADMISSION"
	FeeTypeAnnual    FeeTypeCode = "ANNUAL"
	FeeTypeMonthly   FeeTypeCode = "MONTHLY"
	FeeTypeTransport FeeTypeCode = "TRANSPORT"
	FeeTypeExam      FeeTypeCode = "EXAM"
)

// Valid reports whether the code belongs to the closed fee type set.
func (c FeeTypeCode) Valid() bool {
	switch c {
	case FeeTypeAdmission, FeeTypeAnnual, FeeTypeMonthly, FeeTypeTransport, FeeTypeExam:
		return true
	}
	return false
}

// FeeRecordStatus tracks payment state of a generated fee record.
type FeeRecordStatus string

const (
	FeeRecordStatusPending FeeRecordStatus = "PENDING"
	FeeRecordStatusPaid    FeeRecordStatus = "PAID"
	FeeRecordStatusWaived  FeeRecordStatus = "WAIVED"
)

// FeeStructure maps a fee type to its amount for a given year and class.
type FeeStructure struct {
	ID             int64       `db:"id" json:"id"`
	AcademicYearID int64       `db:"academic_year_id" json:"academic_year_id"`
	ClassID        int64       `db:"class_id" json:"class_id"`
	FeeType        FeeTypeCode `db:"fee_type" json:"fee_type"`
	Amount         float64     `db:"amount" json:"amount"`
	DueInDays      int         `db:"due_in_days" json:"due_in_days"`
}

// FeeRecord is a payable generated for a student at conversion time.
type FeeRecord struct {
	ID        int64           `db:"id" json:"id"`
	StudentID string          `db:"student_id" json:"student_id"`
	FeeType   FeeTypeCode     `db:"fee_type" json:"fee_type"`
	Amount    float64         `db:"amount" json:"amount"`
	Status    FeeRecordStatus `db:"status" json:"status"`
	DueDate   time.Time       `db:"due_date" json:"due_date"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
