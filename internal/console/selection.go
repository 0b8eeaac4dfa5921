package console

import (
	"sort"

	"github.com/edupanel/admissions-api/internal/models"
)

// Selection tracks the enquiry ids picked for batch conversion. Membership
// is restricted to enquiries in CONFIRMED status and is never persisted.
type Selection struct {
	ids map[int64]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

// Toggle flips membership for one enquiry. Enquiries that are not in
// CONFIRMED status are ignored entirely, selected or not.
func (s *Selection) Toggle(enquiry models.Enquiry) {
	if !enquiry.Status.Confirmable() {
		return
	}
	if _, ok := s.ids[enquiry.ID]; ok {
		delete(s.ids, enquiry.ID)
		return
	}
	s.ids[enquiry.ID] = struct{}{}
}

// ToggleAll selects every confirmable enquiry on the visible page, or
// deselects them all when every one of them is already selected. Ids
// outside the visible page are left untouched.
func (s *Selection) ToggleAll(visible []models.Enquiry) {
	confirmable := make([]int64, 0, len(visible))
	allSelected := true
	for _, e := range visible {
		if !e.Status.Confirmable() {
			continue
		}
		confirmable = append(confirmable, e.ID)
		if _, ok := s.ids[e.ID]; !ok {
			allSelected = false
		}
	}
	if len(confirmable) == 0 {
		return
	}
	for _, id := range confirmable {
		if allSelected {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
	}
}

// SyncVisible drops members that are no longer part of the visible
// confirmable subset, typically after a page or filter change.
func (s *Selection) SyncVisible(visible []models.Enquiry) {
	keep := make(map[int64]struct{}, len(visible))
	for _, e := range visible {
		if e.Status.Confirmable() {
			keep[e.ID] = struct{}{}
		}
	}
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// Has reports whether the id is currently selected.
func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected enquiries. The convert call to
// action is hidden while this is zero.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[int64]struct{})
}
