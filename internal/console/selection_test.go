package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edupanel/admissions-api/internal/models"
)

func enquiry(id int64, status models.EnquiryStatus) models.Enquiry {
	return models.Enquiry{ID: id, Status: status}
}

func TestSelectionToggleIgnoresNonConfirmable(t *testing.T) {
	sel := NewSelection()

	sel.Toggle(enquiry(2, models.EnquiryStatusNew))
	assert.False(t, sel.Has(2))
	assert.Zero(t, sel.Count())

	sel.Toggle(enquiry(4, models.EnquiryStatusCancelled))
	sel.Toggle(enquiry(5, models.EnquiryStatusConverted))
	assert.Zero(t, sel.Count())

	sel.Toggle(enquiry(1, models.EnquiryStatusConfirmed))
	assert.True(t, sel.Has(1))
	sel.Toggle(enquiry(1, models.EnquiryStatusConfirmed))
	assert.False(t, sel.Has(1))
}

func TestSelectionToggleAllVisibleConfirmableSubset(t *testing.T) {
	page := []models.Enquiry{
		enquiry(1, models.EnquiryStatusConfirmed),
		enquiry(2, models.EnquiryStatusNew),
		enquiry(3, models.EnquiryStatusConfirmed),
	}
	sel := NewSelection()

	sel.ToggleAll(page)
	assert.Equal(t, []int64{1, 3}, sel.IDs())

	sel.Toggle(enquiry(2, models.EnquiryStatusNew))
	assert.Equal(t, []int64{1, 3}, sel.IDs(), "toggling a NEW enquiry must be a no-op")

	sel.ToggleAll(page)
	assert.Zero(t, sel.Count(), "second toggle-all restores the prior state")
}

func TestSelectionToggleAllDoesNotTouchOtherPages(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(enquiry(42, models.EnquiryStatusConfirmed))

	page := []models.Enquiry{
		enquiry(1, models.EnquiryStatusConfirmed),
		enquiry(3, models.EnquiryStatusConfirmed),
	}
	sel.ToggleAll(page)
	assert.Equal(t, []int64{1, 3, 42}, sel.IDs())

	sel.ToggleAll(page)
	assert.Equal(t, []int64{42}, sel.IDs(), "id from another page survives both passes")
}

func TestSelectionToggleAllPartialSelectionAddsRemainder(t *testing.T) {
	page := []models.Enquiry{
		enquiry(1, models.EnquiryStatusConfirmed),
		enquiry(3, models.EnquiryStatusConfirmed),
	}
	sel := NewSelection()
	sel.Toggle(page[0])

	sel.ToggleAll(page)
	assert.Equal(t, []int64{1, 3}, sel.IDs(), "partial selection selects the rest, not deselects")
}

func TestSelectionSyncVisibleDropsHiddenMembers(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(enquiry(1, models.EnquiryStatusConfirmed))
	sel.Toggle(enquiry(3, models.EnquiryStatusConfirmed))

	sel.SyncVisible([]models.Enquiry{enquiry(3, models.EnquiryStatusConfirmed)})
	assert.Equal(t, []int64{3}, sel.IDs())

	sel.SyncVisible(nil)
	assert.Zero(t, sel.Count())
}
