package console

import (
	"fmt"
	"strings"

	"github.com/edupanel/admissions-api/internal/models"
)

// Notifier publishes toast notifications to the application shell.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// CacheInvalidator marks cached query keys stale so any screen observing
// them refetches in the background.
type CacheInvalidator interface {
	Invalidate(keys ...string)
}

// invalidatedKeys are the caches that go stale after a conversion.
var invalidatedKeys = []string{"students", "feePayments", "enquiries"}

// Reconciler translates a batch conversion result into notifications,
// cache invalidation, and a cleared selection.
type Reconciler struct {
	selection *Selection
	notifier  Notifier
	caches    CacheInvalidator
}

// NewReconciler constructs a Reconciler.
func NewReconciler(selection *Selection, notifier Notifier, caches CacheInvalidator) *Reconciler {
	return &Reconciler{selection: selection, notifier: notifier, caches: caches}
}

// Reconcile consumes one conversion result. A partial failure is a valid
// terminal outcome, so a success notice and an error notice can both be
// emitted for the same result. The selection is always cleared and the
// dependent caches always invalidated.
func (r *Reconciler) Reconcile(result models.ConvertEnquiriesResult) {
	if result.ConvertedCount > 0 {
		message := fmt.Sprintf("Converted %d %s to students",
			result.ConvertedCount, pluralize(result.ConvertedCount, "enquiry", "enquiries"))
		if result.FeesGeneratedCount > 0 {
			message += fmt.Sprintf(" and generated %d %s",
				result.FeesGeneratedCount, pluralize(result.FeesGeneratedCount, "fee record", "fee records"))
		}
		r.notifier.Success(message)
	}
	if len(result.Errors) > 0 {
		r.notifier.Error(fmt.Sprintf("%d %s could not be converted: %s",
			len(result.Errors), pluralize(len(result.Errors), "enquiry", "enquiries"),
			firstLine(result.Errors[0].Error)))
	}
	r.selection.Clear()
	r.caches.Invalidate(invalidatedKeys...)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
