package console

import (
	"context"

	"github.com/edupanel/admissions-api/internal/models"
)

// conversionAPI is the slice of the backend the dialog depends on.
type conversionAPI interface {
	AcademicYears(ctx context.Context) ([]models.AcademicYear, error)
	Classes(ctx context.Context) ([]models.Class, error)
	Convert(ctx context.Context, req models.ConvertEnquiriesRequest) (*models.ConvertEnquiriesResult, error)
}

// ConvertDialog drives the convert modal lifecycle: opening fetches the
// reference lists, submitting issues exactly one batch call, and the
// result is handed to the reconciler.
type ConvertDialog struct {
	api        conversionAPI
	selection  *Selection
	reconciler *Reconciler
	notifier   Notifier

	Form    ConvertForm
	Years   []models.AcademicYear
	Classes []models.Class

	open bool
	busy bool
}

// NewConvertDialog constructs a closed dialog.
func NewConvertDialog(api conversionAPI, selection *Selection, reconciler *Reconciler, notifier Notifier) *ConvertDialog {
	return &ConvertDialog{api: api, selection: selection, reconciler: reconciler, notifier: notifier}
}

// Open fetches the academic year and class lists, resets the form, and
// shows the dialog. The dialog stays closed when a reference fetch fails.
func (d *ConvertDialog) Open(ctx context.Context) error {
	years, err := d.api.AcademicYears(ctx)
	if err != nil {
		d.notifier.Error(err.Error())
		return err
	}
	classes, err := d.api.Classes(ctx)
	if err != nil {
		d.notifier.Error(err.Error())
		return err
	}
	d.Years = years
	d.Classes = classes
	d.Form = NewConvertForm()
	d.open = true
	return nil
}

// Close hides the dialog. A submission already in flight completes but
// its result is discarded.
func (d *ConvertDialog) Close() {
	d.open = false
}

// IsOpen reports whether the dialog is visible.
func (d *ConvertDialog) IsOpen() bool {
	return d.open
}

// Busy reports whether a submission is in flight.
func (d *ConvertDialog) Busy() bool {
	return d.busy
}

// Submit validates the form and issues the batch conversion call. Invalid
// input is surfaced as a notification without touching the network. A
// second submit while one is in flight is refused. On a request-level
// failure the dialog stays open with the field values intact; on success
// the result is reconciled and the dialog closes.
func (d *ConvertDialog) Submit(ctx context.Context) error {
	if d.busy {
		return nil
	}
	req, err := d.Form.Build(d.selection.IDs())
	if err != nil {
		d.notifier.Error(err.Error())
		return nil
	}

	d.busy = true
	result, err := d.api.Convert(ctx, req)
	d.busy = false

	if err != nil {
		d.notifier.Error(err.Error())
		d.selection.Clear()
		return err
	}
	if !d.open {
		return nil
	}
	d.reconciler.Reconcile(*result)
	d.open = false
	return nil
}
