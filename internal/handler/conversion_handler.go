package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
	"github.com/edupanel/admissions-api/pkg/response"
)

type conversionService interface {
	Convert(ctx context.Context, req models.ConvertEnquiriesRequest) (*models.ConvertEnquiriesResult, error)
}

// ConversionHandler exposes the batch conversion endpoint.
type ConversionHandler struct {
	conversions conversionService
}

// NewConversionHandler constructs ConversionHandler.
func NewConversionHandler(conversions conversionService) *ConversionHandler {
	return &ConversionHandler{conversions: conversions}
}

// Convert godoc
// @Summary Convert confirmed enquiries to students
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param payload body models.ConvertEnquiriesRequest true "Conversion payload"
// @Success 200 {object} response.Envelope
// @Router /enquiries/convert [post]
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req models.ConvertEnquiriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.conversions.Convert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
