package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/VxVxN/trendingcompanies/internal/models"
)

const CompaniesPath = "/api/companies"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch companies: %d %s", e.StatusCode, e.StatusText)
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// URL returns the absolute companies endpoint.
func (c *Client) URL() string {
	return c.baseURL + CompaniesPath
}

// FetchCompanies performs a single GET against the companies endpoint.
// Transport errors are returned as-is.
func (c *Client) FetchCompanies(ctx context.Context) ([]models.Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	return DecodeCompanies(resp.Body)
}

func (c *Client) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

// DecodeCompanies reads a {"data": [...]} envelope. A missing or null data
// array decodes to an empty, non-nil slice. Decoder errors are returned
// unwrapped so their message is what the page shows.
func DecodeCompanies(r io.Reader) ([]models.Company, error) {
	var body models.CompaniesResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return []models.Company{}, nil
	}
	return body.Data, nil
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
