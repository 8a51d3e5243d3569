package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// Client reads the volunteer sheet through the Sheets values endpoint.
// Column layout: lastname, firstname, email, sms.
type Client struct {
	baseURL   string
	apiKey    string
	sheetID   string
	readRange string
	skipRows  int

	http *http.Client
}

func NewClient(apiKey, sheetID, readRange string, skipRows int) *Client {
	return &Client{
		baseURL:   "https://sheets.googleapis.com",
		apiKey:    apiKey,
		sheetID:   sheetID,
		readRange: readRange,
		skipRows:  skipRows,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at another endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) FetchMembers(ctx context.Context) ([]entity.Member, error) {
	log.Printf("Fetching Google Sheet %s, range %s", c.sheetID, c.readRange)

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		c.baseURL, url.PathEscape(c.sheetID), url.PathEscape(c.readRange), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sheets fetch failed (status %d): %s", resp.StatusCode, string(body))
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("sheets decode failed: %w", err)
	}

	rows := vr.Values
	if len(rows) <= c.skipRows {
		log.Printf("⚠️ Sheet has only %d rows, nothing after the %d header rows", len(rows), c.skipRows)
		return nil, nil
	}
	rows = rows[c.skipRows:]

	members := make([]entity.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, entity.Member{
			LastName:  cell(row, 0),
			FirstName: cell(row, 1),
			Email:     cell(row, 2),
			Phone:     cell(row, 3),
		})
	}

	log.Printf("Retrieved %d rows from Google Sheet", len(members))
	return members, nil
}

type valueRange struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
