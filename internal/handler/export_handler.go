package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/service"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
	"github.com/edupanel/admissions-api/pkg/response"
)

// ExportHandler serves funnel downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Funnel godoc
// @Summary Export the enquiry funnel
// @Tags Enquiries
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /enquiries/export [get]
func (h *ExportHandler) Funnel(c *gin.Context) {
	filter := parseEnquiryFilter(c)
	stamp := time.Now().UTC().Format("20060102")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := h.exports.FunnelCSV(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=enquiries-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.exports.FunnelPDF(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=enquiries-%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
