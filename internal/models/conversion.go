package models

// ConvertEnquiriesRequest is the batch-convert wire contract. Field names and
// types are fixed for client compatibility.
type ConvertEnquiriesRequest struct {
	EnquiryIDs     []int64  `json:"enquiry_ids" validate:"required,min=1"`
	AcademicYearID int64    `json:"academic_year_id" validate:"required"`
	ClassID        int64    `json:"class_id" validate:"required"`
	GenerateFees   bool     `json:"generate_fees"`
	FeeTypes       []string `json:"fee_types"`
}

// ConversionError reports a single enquiry that could not be converted.
type ConversionError struct {
	EnquiryID int64  `json:"enquiry_id"`
	Error     string `json:"error"`
}

// ConvertEnquiriesResult summarises a batch conversion. The batch is not
// atomic: a non-empty errors list alongside a positive converted count is a
// valid terminal outcome.
type ConvertEnquiriesResult struct {
	ConvertedCount     int               `json:"converted_count"`
	FeesGeneratedCount int               `json:"fees_generated_count,omitempty"`
	Errors             []ConversionError `json:"errors"`
}
