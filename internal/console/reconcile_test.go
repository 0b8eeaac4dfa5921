package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupanel/admissions-api/internal/models"
)

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(message string) { f.successes = append(f.successes, message) }
func (f *fakeNotifier) Error(message string)   { f.errors = append(f.errors, message) }

type fakeInvalidator struct {
	keys []string
}

func (f *fakeInvalidator) Invalidate(keys ...string) { f.keys = append(f.keys, keys...) }

func TestReconcilePluralWithFees(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(enquiry(1, models.EnquiryStatusConfirmed))
	notifier := &fakeNotifier{}
	caches := &fakeInvalidator{}

	NewReconciler(sel, notifier, caches).Reconcile(models.ConvertEnquiriesResult{
		ConvertedCount:     3,
		FeesGeneratedCount: 6,
		Errors:             []models.ConversionError{},
	})

	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Converted 3 enquiries to students and generated 6 fee records", notifier.successes[0])
	assert.Empty(t, notifier.errors)
	assert.Zero(t, sel.Count())
	assert.Equal(t, []string{"students", "feePayments", "enquiries"}, caches.keys)
}

func TestReconcileSingularOmitsFeeClause(t *testing.T) {
	notifier := &fakeNotifier{}

	NewReconciler(NewSelection(), notifier, &fakeInvalidator{}).Reconcile(models.ConvertEnquiriesResult{
		ConvertedCount: 1,
	})

	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Converted 1 enquiry to students", notifier.successes[0])
	assert.NotContains(t, notifier.successes[0], "fee")
}

func TestReconcileErrorShowsCountAndFirstLine(t *testing.T) {
	notifier := &fakeNotifier{}

	NewReconciler(NewSelection(), notifier, &fakeInvalidator{}).Reconcile(models.ConvertEnquiriesResult{
		ConvertedCount: 2,
		Errors: []models.ConversionError{
			{EnquiryID: 7, Error: "Line1\nLine2"},
			{EnquiryID: 8, Error: "Other"},
		},
	})

	require.Len(t, notifier.successes, 1, "mixed result still reports the converted subset")
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "2 enquiries could not be converted: Line1", notifier.errors[0])
	assert.NotContains(t, notifier.errors[0], "Line2")
	assert.NotContains(t, notifier.errors[0], "Other")
}

func TestReconcileAllFailedEmitsOnlyError(t *testing.T) {
	notifier := &fakeNotifier{}
	caches := &fakeInvalidator{}
	sel := NewSelection()
	sel.Toggle(enquiry(9, models.EnquiryStatusConfirmed))

	NewReconciler(sel, notifier, caches).Reconcile(models.ConvertEnquiriesResult{
		ConvertedCount: 0,
		Errors:         []models.ConversionError{{EnquiryID: 9, Error: "enquiry not found"}},
	})

	assert.Empty(t, notifier.successes)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "1 enquiry could not be converted: enquiry not found", notifier.errors[0])
	assert.Zero(t, sel.Count())
	assert.Equal(t, []string{"students", "feePayments", "enquiries"}, caches.keys)
}
