package models

import "time"

// Student represents a learner enrolled through the admissions funnel.
type Student struct {
	ID             string    `db:"id" json:"id"`
	AdmissionNo    string    `db:"admission_no" json:"admission_no"`
	FullName       string    `db:"full_name" json:"full_name"`
	ParentName     string    `db:"parent_name" json:"parent_name"`
	ParentPhone    string    `db:"parent_phone" json:"parent_phone"`
	ParentEmail    string    `db:"parent_email" json:"parent_email"`
	AcademicYearID int64     `db:"academic_year_id" json:"academic_year_id"`
	ClassID        int64     `db:"class_id" json:"class_id"`
	EnquiryID      *int64    `db:"enquiry_id" json:"enquiry_id,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
