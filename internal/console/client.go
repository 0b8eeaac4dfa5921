package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/edupanel/admissions-api/internal/models"
	appErrors "github.com/edupanel/admissions-api/pkg/errors"
)

// Client is a thin HTTP client for the admissions API, shaped around the
// endpoints the console consumes.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient constructs a Client. baseURL points at the API prefix, e.g.
// "http://localhost:8080/api/v1". An empty token skips authentication.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Error      *appErrors.Error   `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

// ListEnquiries fetches one page of enquiries.
func (c *Client) ListEnquiries(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, *models.Pagination, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.GradeLevel != nil {
		query.Set("gradeLevel", strconv.Itoa(*filter.GradeLevel))
	}
	if filter.Source != "" {
		query.Set("source", filter.Source)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}

	var enquiries []models.Enquiry
	env, err := c.do(ctx, http.MethodGet, "/enquiries", query, nil, &enquiries)
	if err != nil {
		return nil, nil, err
	}
	return enquiries, env.Pagination, nil
}

// AcademicYears fetches the academic year reference list.
func (c *Client) AcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	var years []models.AcademicYear
	if _, err := c.do(ctx, http.MethodGet, "/academic-years", nil, nil, &years); err != nil {
		return nil, err
	}
	return years, nil
}

// Classes fetches the class reference list.
func (c *Client) Classes(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if _, err := c.do(ctx, http.MethodGet, "/classes", nil, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Convert submits one batch conversion request.
func (c *Client) Convert(ctx context.Context, req models.ConvertEnquiriesRequest) (*models.ConvertEnquiriesResult, error) {
	var result models.ConvertEnquiriesResult
	if _, err := c.do(ctx, http.MethodPost, "/enquiries/convert", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 300 {
		return nil, decodeErr
	}
	if resp.StatusCode >= 300 {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, err
		}
	}
	return &env, nil
}
