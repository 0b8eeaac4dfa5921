package console

import (
	"strconv"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
)

// Validation messages shown when a required field is missing. Checks run
// in order and stop at the first failure.
const (
	msgSelectAcademicYear = "Please select an academic year."
	msgSelectClass        = "Please select a class."
	msgSelectFeeType      = "Please select at least one fee type."
)

// defaultFeeTypes is the starter subset offered when fee generation is
// switched on.
var defaultFeeTypes = []string{
	string(models.FeeTypeAdmission),
	string(models.FeeTypeAnnual),
}

// ConvertForm holds the editable state of the convert dialog. The id
// fields stay in string form until the request is built.
type ConvertForm struct {
	AcademicYearID string
	ClassID        string
	GenerateFees   bool
	FeeTypes       []string
}

// NewConvertForm returns a form with fee generation switched off.
func NewConvertForm() ConvertForm {
	return ConvertForm{}
}

// EnableFees switches fee generation on, seeding the starter fee types
// when none were chosen yet.
func (f *ConvertForm) EnableFees() {
	f.GenerateFees = true
	if len(f.FeeTypes) == 0 {
		f.FeeTypes = append([]string(nil), defaultFeeTypes...)
	}
}

// DisableFees switches fee generation off.
func (f *ConvertForm) DisableFees() {
	f.GenerateFees = false
}

// ToggleFeeType flips one fee type code in or out of the chosen set.
func (f *ConvertForm) ToggleFeeType(code string) {
	for i, c := range f.FeeTypes {
		if c == code {
			f.FeeTypes = append(f.FeeTypes[:i], f.FeeTypes[i+1:]...)
			return
		}
	}
	f.FeeTypes = append(f.FeeTypes, code)
}

// Validate checks required fields in order and returns the first failure.
func (f *ConvertForm) Validate() error {
	if f.AcademicYearID == "" {
		return appErrors.Clone(appErrors.ErrValidation, msgSelectAcademicYear)
	}
	if f.ClassID == "" {
		return appErrors.Clone(appErrors.ErrValidation, msgSelectClass)
	}
	if f.GenerateFees && len(f.FeeTypes) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, msgSelectFeeType)
	}
	return nil
}

// Build validates the form and assembles one conversion request for the
// given enquiry ids. Ids are coerced from their string form here; values
// that do not parse are treated the same as missing ones.
func (f *ConvertForm) Build(enquiryIDs []int64) (models.ConvertEnquiriesRequest, error) {
	if err := f.Validate(); err != nil {
		return models.ConvertEnquiriesRequest{}, err
	}
	yearID, err := strconv.ParseInt(f.AcademicYearID, 10, 64)
	if err != nil {
		return models.ConvertEnquiriesRequest{}, appErrors.Clone(appErrors.ErrValidation, msgSelectAcademicYear)
	}
	classID, err := strconv.ParseInt(f.ClassID, 10, 64)
	if err != nil {
		return models.ConvertEnquiriesRequest{}, appErrors.Clone(appErrors.ErrValidation, msgSelectClass)
	}
	req := models.ConvertEnquiriesRequest{
		EnquiryIDs:     enquiryIDs,
		AcademicYearID: yearID,
		ClassID:        classID,
		GenerateFees:   f.GenerateFees,
	}
	if f.GenerateFees {
		req.FeeTypes = append([]string(nil), f.FeeTypes...)
	}
	return req, nil
}
