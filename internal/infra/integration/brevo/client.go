package brevo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// ErrContactNotFound is the normal zero-match outcome of an email lookup
// (Brevo 404). Callers treat it as "no match", never as a failure.
var ErrContactNotFound = errors.New("brevo: contact not found")

const pageSize = 50

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FindByEmail is the point lookup behind the matcher's email path.
func (c *Client) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	endpoint := fmt.Sprintf("%s/contacts/%s", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrContactNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brevo get contact failed (status %d): %s", resp.StatusCode, string(body))
	}

	var dto contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("brevo decode failed: %w", err)
	}

	contact := dto.toEntity()
	return &contact, nil
}

// ListContacts downloads the whole contact base, page by page. The result
// is the read-only snapshot the name index scans for the rest of the run.
func (c *Client) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	var all []entity.Contact
	offset := 0

	for {
		log.Printf("Fetching Brevo contacts batch: offset=%d, limit=%d", offset, pageSize)

		page, err := c.listPage(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, dto := range page {
			all = append(all, dto.toEntity())
		}

		if len(page) < pageSize {
			break
		}
		offset += pageSize
	}

	log.Printf("Downloaded %d contacts from Brevo", len(all))
	return all, nil
}

func (c *Client) listPage(ctx context.Context, limit, offset int) ([]contactResponse, error) {
	endpoint := fmt.Sprintf("%s/contacts?limit=%d&offset=%d", c.baseURL, limit, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brevo list contacts failed (status %d): %s", resp.StatusCode, string(body))
	}

	var page contactsPageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("brevo decode failed: %w", err)
	}

	return page.Contacts, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
}
