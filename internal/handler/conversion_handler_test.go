package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
	"github.com/edupanel/admissions-api/pkg/response"
)

type stubConversionService struct {
	gotReq models.ConvertEnquiriesRequest
	result *models.ConvertEnquiriesResult
	err    error
}

func (s *stubConversionService) Convert(_ context.Context, req models.ConvertEnquiriesRequest) (*models.ConvertEnquiriesResult, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newConvertRouter(svc *stubConversionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/enquiries/convert", NewConversionHandler(svc).Convert)
	return r
}

func TestConversionHandlerConvert(t *testing.T) {
	svc := &stubConversionService{result: &models.ConvertEnquiriesResult{
		ConvertedCount:     2,
		FeesGeneratedCount: 4,
		Errors:             []models.ConversionError{},
	}}
	r := newConvertRouter(svc)

	body := `{"enquiry_ids":[1,3],"academic_year_id":2,"class_id":5,"generate_fees":true,"fee_types":["ADMISSION","ANNUAL"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 3}, svc.gotReq.EnquiryIDs)
	assert.True(t, svc.gotReq.GenerateFees)

	var envelope struct {
		Data models.ConvertEnquiriesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.ConvertedCount)
	assert.Equal(t, 4, envelope.Data.FeesGeneratedCount)
	assert.Empty(t, envelope.Data.Errors)
}

func TestConversionHandlerConvertMalformedBody(t *testing.T) {
	svc := &stubConversionService{}
	r := newConvertRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries/convert", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.gotReq.EnquiryIDs)
}

func TestConversionHandlerConvertServiceError(t *testing.T) {
	svc := &stubConversionService{err: appErrors.Clone(appErrors.ErrValidation, "academic year not found")}
	r := newConvertRouter(svc)

	body := `{"enquiry_ids":[1],"academic_year_id":999,"class_id":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "academic year not found", envelope.Error.Message)
}
