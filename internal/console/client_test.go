package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupanel/admissions-api/internal/models"
)

func TestClientConvert(t *testing.T) {
	var gotAuth string
	var gotBody models.ConvertEnquiriesRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/enquiries/convert", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"converted_count":2,"fees_generated_count":4,"errors":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v1", "tok123")
	result, err := client.Convert(context.Background(), models.ConvertEnquiriesRequest{
		EnquiryIDs:     []int64{1, 3},
		AcademicYearID: 2,
		ClassID:        5,
		GenerateFees:   true,
		FeeTypes:       []string{"ADMISSION"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, []int64{1, 3}, gotBody.EnquiryIDs)
	assert.Equal(t, int64(2), gotBody.AcademicYearID)
	assert.Equal(t, 2, result.ConvertedCount)
	assert.Equal(t, 4, result.FeesGeneratedCount)
}

func TestClientConvertSurfacesEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_ERROR","message":"academic year not found","status":400}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v1", "")
	_, err := client.Convert(context.Background(), models.ConvertEnquiriesRequest{EnquiryIDs: []int64{1}})
	require.Error(t, err)
	assert.Equal(t, "academic year not found", err.Error())
}

func TestClientListEnquiries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/enquiries", r.URL.Path)
		assert.Equal(t, "CONFIRMED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data":[{"id":1,"child_name":"Amara","status":"CONFIRMED"}],
			"pagination":{"page":2,"page_size":20,"total_count":41}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v1", "")
	enquiries, pagination, err := client.ListEnquiries(context.Background(), models.EnquiryFilter{
		Status: models.EnquiryStatusConfirmed,
		Page:   2,
	})
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, int64(1), enquiries[0].ID)
	assert.Equal(t, models.EnquiryStatusConfirmed, enquiries[0].Status)
	require.NotNil(t, pagination)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestClientReferenceLists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/academic-years":
			_, _ = w.Write([]byte(`{"data":[{"id":2,"name":"2026/2027","is_current":true}]}`))
		case "/api/v1/classes":
			_, _ = w.Write([]byte(`{"data":[{"id":5,"name":"Grade 5","grade_level":5}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v1", "")

	years, err := client.AcademicYears(context.Background())
	require.NoError(t, err)
	require.Len(t, years, 1)
	assert.True(t, years[0].IsCurrent)

	classes, err := client.Classes(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Grade 5", classes[0].Name)
}
