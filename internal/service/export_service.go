package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
	"github.com/edupanel/admissions-api/pkg/export"
)

type exportEnquiryStore interface {
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ExportService renders the admissions funnel as downloadable documents.
type ExportService struct {
	enquiries exportEnquiryStore
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	title     string
}

// NewExportService constructs the export service.
func NewExportService(enquiries exportEnquiryStore, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger, title string) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Admissions Funnel"
	}
	return &ExportService{enquiries: enquiries, csv: csv, pdf: pdf, logger: logger, title: title}
}

// FunnelCSV renders the filtered enquiry list as CSV.
func (s *ExportService) FunnelCSV(ctx context.Context, filter models.EnquiryFilter) ([]byte, error) {
	table, err := s.buildTable(ctx, filter)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(*table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, nil
}

// FunnelPDF renders the filtered enquiry list as a tabular PDF.
func (s *ExportService) FunnelPDF(ctx context.Context, filter models.EnquiryFilter) ([]byte, error) {
	table, err := s.buildTable(ctx, filter)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.Render(*table, s.title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, nil
}

func (s *ExportService) buildTable(ctx context.Context, filter models.EnquiryFilter) (*export.Table, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 100
	}
	enquiries, _, err := s.enquiries.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiries for export")
	}

	table := &export.Table{
		Columns: []export.Column{
			{Key: "id", Title: "ID"},
			{Key: "child_name", Title: "Child"},
			{Key: "parent_name", Title: "Parent"},
			{Key: "parent_phone", Title: "Phone"},
			{Key: "grade_level", Title: "Grade"},
			{Key: "source", Title: "Source"},
			{Key: "status", Title: "Status"},
			{Key: "created_at", Title: "Created"},
		},
	}
	for _, enquiry := range enquiries {
		table.Rows = append(table.Rows, map[string]string{
			"id":           strconv.FormatInt(enquiry.ID, 10),
			"child_name":   enquiry.ChildName,
			"parent_name":  enquiry.ParentName,
			"parent_phone": enquiry.ParentPhone,
			"grade_level":  strconv.Itoa(enquiry.GradeLevel),
			"source":       enquiry.Source,
			"status":       string(enquiry.Status),
			"created_at":   enquiry.CreatedAt.Format(time.DateOnly),
		})
	}
	return table, nil
}
