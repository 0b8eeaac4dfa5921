package models

import "time"

// EnquiryStatus represents the admissions funnel lifecycle of an enquiry.
type EnquiryStatus string

// Possible enquiry statuses.
const (
	EnquiryStatusNew       EnquiryStatus = "NEW"
	EnquiryStatusConfirmed EnquiryStatus = "CONFIRMED"
	EnquiryStatusConverted EnquiryStatus = "CONVERTED"
	EnquiryStatusCancelled EnquiryStatus = "CANCELLED"
)

// enquiryTransitions captures the allowed lifecycle edges. CONVERTED and
// CANCELLED are absorbing states.
var enquiryTransitions = map[EnquiryStatus][]EnquiryStatus{
	EnquiryStatusNew:       {EnquiryStatusConfirmed, EnquiryStatusCancelled},
	EnquiryStatusConfirmed: {EnquiryStatusConverted, EnquiryStatusCancelled},
}

// Valid reports whether the status is a known lifecycle state.
func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusConfirmed, EnquiryStatusConverted, EnquiryStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to the target status.
func (s EnquiryStatus) CanTransitionTo(target EnquiryStatus) bool {
	for _, next := range enquiryTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Confirmable reports whether the enquiry is eligible for batch conversion.
func (s EnquiryStatus) Confirmable() bool {
	return s == EnquiryStatusConfirmed
}

// Enquiry is a prospective-student record moving through the admissions funnel.
type Enquiry struct {
	ID           int64         `db:"id" json:"id"`
	ChildName    string        `db:"child_name" json:"child_name"`
	ParentName   string        `db:"parent_name" json:"parent_name"`
	ParentPhone  string        `db:"parent_phone" json:"parent_phone"`
	ParentEmail  string        `db:"parent_email" json:"parent_email"`
	GradeLevel   int           `db:"grade_level" json:"grade_level"`
	Source       string        `db:"source" json:"source"`
	Status       EnquiryStatus `db:"status" json:"status"`
	FollowUpDate *time.Time    `db:"follow_up_date" json:"follow_up_date,omitempty"`
	Notes        string        `db:"notes" json:"notes"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// EnquiryFilter encapsulates allowed search parameters for listing enquiries.
type EnquiryFilter struct {
	Status     EnquiryStatus
	GradeLevel *int
	Source     string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
