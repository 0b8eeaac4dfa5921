package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/models"
	"github.com/edupanel/admissions-api/internal/service"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
	"github.com/edupanel/admissions-api/pkg/response"
)

// EnquiryHandler exposes enquiry endpoints.
type EnquiryHandler struct {
	enquiries *service.EnquiryService
}

// NewEnquiryHandler constructs EnquiryHandler.
func NewEnquiryHandler(enquiries *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries}
}

// List godoc
// @Summary List enquiries
// @Tags Enquiries
// @Produce json
// @Param status query string false "Filter by status"
// @Param gradeLevel query int false "Filter by applied grade level"
// @Param source query string false "Filter by source"
// @Param search query string false "Search by child, parent or phone"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *gin.Context) {
	filter := parseEnquiryFilter(c)

	enquiries, pagination, err := h.enquiries.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiries, pagination)
}

// Get godoc
// @Summary Get enquiry detail
// @Tags Enquiries
// @Produce json
// @Param id path int true "Enquiry ID"
// @Success 200 {object} response.Envelope
// @Router /enquiries/{id} [get]
func (h *EnquiryHandler) Get(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enquiry, err := h.enquiries.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiry, nil)
}

// Create godoc
// @Summary Register enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param payload body service.CreateEnquiryRequest true "Enquiry payload"
// @Success 201 {object} response.Envelope
// @Router /enquiries [post]
func (h *EnquiryHandler) Create(c *gin.Context) {
	var req service.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// Update godoc
// @Summary Update enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Param payload body service.UpdateEnquiryRequest true "Enquiry payload"
// @Success 200 {object} response.Envelope
// @Router /enquiries/{id} [put]
func (h *EnquiryHandler) Update(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiry, nil)
}

// UpdateStatus godoc
// @Summary Move enquiry through the funnel
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param id path int true "Enquiry ID"
// @Param payload body service.UpdateEnquiryStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /enquiries/{id}/status [patch]
func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	id, err := enquiryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateEnquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Status = models.EnquiryStatus(strings.ToUpper(string(req.Status)))
	enquiry, err := h.enquiries.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiry, nil)
}

func enquiryID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid enquiry id")
	}
	return id, nil
}

func parseEnquiryFilter(c *gin.Context) models.EnquiryFilter {
	var filter models.EnquiryFilter
	if status := c.Query("status"); status != "" {
		filter.Status = models.EnquiryStatus(strings.ToUpper(status))
	}
	if grade := c.Query("gradeLevel"); grade != "" {
		if v, err := strconv.Atoi(grade); err == nil {
			filter.GradeLevel = &v
		}
	}
	filter.Source = c.Query("source")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")
	return filter
}
