// Package holidayapi fetches public holidays from a Nager.Date compatible REST API.
package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// PublicHoliday is one entry of GET /api/v3/PublicHolidays/{year}/{country}
type PublicHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

// DisplayName prefers the local name
func (h PublicHoliday) DisplayName() string {
	if h.LocalName != "" {
		return h.LocalName
	}
	return h.Name
}

// Day parses Date as a UTC calendar day
func (h PublicHoliday) Day() (time.Time, error) {
	return time.Parse("2006-01-02", h.Date)
}

type Client interface {
	PublicHolidays(ctx context.Context, year int) ([]PublicHoliday, error)
}

type client struct {
	baseURL    string
	country    string
	httpClient *http.Client
}

// NewClient creates a holiday API client for one country
func NewClient(baseURL, country string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		country:    strings.ToUpper(country),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) PublicHolidays(ctx context.Context, year int) ([]PublicHoliday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("holiday API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}
	log.Printf("Fetched %d public holidays for %s %d", len(holidays), c.country, year)
	return holidays, nil
}
