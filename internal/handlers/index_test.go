package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VxVxN/trendingcompanies/internal/directory"
	"github.com/VxVxN/trendingcompanies/internal/models"
	"github.com/VxVxN/trendingcompanies/internal/view"
)

type fetchFunc func(ctx context.Context) ([]models.Company, error)

func (f fetchFunc) FetchCompanies(ctx context.Context) ([]models.Company, error) { return f(ctx) }

func blockingFetcher(ctx context.Context) ([]models.Company, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestController(t *testing.T, fetcher directory.Fetcher, wait time.Duration) *Controller {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewController(fetcher, renderer, logger, wait)
}

func serve(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func TestIndexHandlerRendersCompanies(t *testing.T) {
	controller := newTestController(t, fetchFunc(func(ctx context.Context) ([]models.Company, error) {
		return []models.Company{{
			CompanyID:    1,
			DisplayName:  "Test Company",
			LiveURL:      "https://test.com/investor",
			LogoLightURL: "",
			Events: []models.CompanyEvent{
				{EventID: 7, EventTitle: "Q3 2022", EventDate: "2022-10-26T08:00:00.000Z", FiscalYear: "2022"},
				{EventID: 8, EventTitle: "Q4 2022", EventDate: "2023-02-14T08:00:00.000Z", FiscalYear: "2022"},
			},
		}}, nil
	}), 0)

	rec := serve(t, controller.IndexHandler, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := document(t, rec)
	cards := doc.Find("article.company-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Test Company", cards.Find("#company-1-name").Text())
	assert.Equal(t, 0, cards.Find("img").Length())
	assert.Equal(t, "Q3 2022 - 2022", cards.Find(".latest-event p").Text())
}

func TestIndexHandlerRendersEmptyList(t *testing.T) {
	controller := newTestController(t, fetchFunc(func(ctx context.Context) ([]models.Company, error) {
		return []models.Company{}, nil
	}), 0)

	doc := document(t, serve(t, controller.IndexHandler, "/"))
	assert.Equal(t, 1, doc.Find(".no-companies").Length())
	assert.Equal(t, 0, doc.Find(".error-state").Length())
}

func TestIndexHandlerRendersError(t *testing.T) {
	controller := newTestController(t, fetchFunc(func(ctx context.Context) ([]models.Company, error) {
		return nil, &directory.StatusError{StatusCode: 404, StatusText: "Not Found"}
	}), 0)

	rec := serve(t, controller.IndexHandler, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	doc := document(t, rec)
	assert.Equal(t, "Error loading companies: Failed to fetch companies: 404 Not Found", doc.Find(".error-state p").Text())
	assert.Equal(t, 1, doc.Find("button.retry-button").Length())
}

func TestIndexHandlerRendersLoadingAfterWait(t *testing.T) {
	controller := newTestController(t, fetchFunc(blockingFetcher), 10*time.Millisecond)

	doc := document(t, serve(t, controller.IndexHandler, "/"))
	assert.Equal(t, 1, doc.Find(".loading-state").Length())
	assert.Equal(t, 0, doc.Find(".error-state, .company-list, .no-companies").Length())
}

func TestIndexHandlerClientGone(t *testing.T) {
	controller := newTestController(t, fetchFunc(blockingFetcher), 0)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		controller.IndexHandler(rec, req)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after the client went away")
	}
	assert.Empty(t, rec.Body.String())
}

func TestGetCompaniesJSON(t *testing.T) {
	tests := []struct {
		name   string
		fetch  fetchFunc
		wait   time.Duration
		status int
		body   string
	}{
		{
			name: "loaded",
			fetch: func(ctx context.Context) ([]models.Company, error) {
				return []models.Company{{CompanyID: 1}}, nil
			},
			status: http.StatusOK,
		},
		{
			name: "failed",
			fetch: func(ctx context.Context) ([]models.Company, error) {
				return nil, errors.New("Network error")
			},
			status: http.StatusBadGateway,
			body:   `{"loading":false,"companies":[],"error":"Network error"}`,
		},
		{
			name:   "still loading",
			fetch:  blockingFetcher,
			wait:   10 * time.Millisecond,
			status: http.StatusAccepted,
			body:   `{"loading":true,"companies":[],"error":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(t, tt.fetch, tt.wait)

			rec := serve(t, controller.GetCompanies, "/companies.json")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
				return
			}

			var got struct {
				Loading   bool             `json:"loading"`
				Companies []models.Company `json:"companies"`
				Error     *string          `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.False(t, got.Loading)
			assert.Nil(t, got.Error)
			require.Len(t, got.Companies, 1)
			assert.Equal(t, 1, got.Companies[0].CompanyID)
		})
	}
}

func TestHealthz(t *testing.T) {
	controller := newTestController(t, fetchFunc(blockingFetcher), 0)

	rec := serve(t, controller.Healthz, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
