package models

import (
	"fmt"
	"time"
)

type CompanyEvent struct {
	ReportURL    string   `json:"reportUrl,omitempty"`
	PdfURL       string   `json:"pdfUrl,omitempty"`
	AudioURL     string   `json:"audioUrl,omitempty"`
	EventID      int      `json:"eventId"`
	EventTitle   string   `json:"eventTitle"`
	EventDate    string   `json:"eventDate"`
	QnATimestamp *float64 `json:"qnaTimestamp,omitempty"`
	FiscalPeriod string   `json:"fiscalPeriod"`
	FiscalYear   string   `json:"fiscalYear"`
}

type ColorSettings struct {
	BrandColor string `json:"brandColor"`
}

type Company struct {
	CompanyID         int            `json:"companyId"`
	CompanyName       string         `json:"companyName"`
	CompanyCountry    string         `json:"companyCountry"`
	CompanyTicker     string         `json:"companyTicker"`
	DisplayName       string         `json:"displayName"`
	InfoURL           string         `json:"infoUrl"`
	LiveURL           string         `json:"liveUrl"`
	LogoLightURL      string         `json:"logoLightUrl"`
	LogoDarkURL       string         `json:"logoDarkUrl"`
	IconURL           *string        `json:"iconUrl"`
	Description       string         `json:"description"`
	ReportingCurrency string         `json:"reportingCurrency"`
	ColorSettings     ColorSettings  `json:"colorSettings"`
	Events            []CompanyEvent `json:"events"`
	ISINs             []string       `json:"isins"`
}

// CompaniesResponse is the envelope returned by GET /api/companies.
type CompaniesResponse struct {
	Data []Company `json:"data"`
}

// LatestEvent returns the first event as delivered by the API, or nil when the
// company has none. Events are never re-sorted by date.
func (c Company) LatestEvent() *CompanyEvent {
	if len(c.Events) == 0 {
		return nil
	}
	return &c.Events[0]
}

// NameID is the id of the card heading, referenced by aria-labelledby.
func (c Company) NameID() string {
	return fmt.Sprintf("company-%d-name", c.CompanyID)
}

func (e CompanyEvent) Summary() string {
	return fmt.Sprintf("%s - %s", e.EventTitle, e.FiscalYear)
}

func (e CompanyEvent) Date() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, e.EventDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ISODate returns the UTC calendar date of the event, or "" if EventDate is not RFC 3339.
func (e CompanyEvent) ISODate() string {
	t, ok := e.Date()
	if !ok {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func (e CompanyEvent) DisplayDate() string {
	t, ok := e.Date()
	if !ok {
		return e.EventDate
	}
	return t.UTC().Format("Jan 2, 2006")
}
