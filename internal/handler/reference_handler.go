package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/service"
	"github.com/edupanel/admissions-api/pkg/response"
)

// ReferenceHandler serves the reference lists consumed by the conversion dialog.
type ReferenceHandler struct {
	reference *service.ReferenceService
}

// NewReferenceHandler constructs ReferenceHandler.
func NewReferenceHandler(reference *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

// AcademicYears godoc
// @Summary List academic years
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *ReferenceHandler) AcademicYears(c *gin.Context) {
	years, err := h.reference.AcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years, nil)
}

// Classes godoc
// @Summary List classes
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ReferenceHandler) Classes(c *gin.Context) {
	classes, err := h.reference.Classes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}
