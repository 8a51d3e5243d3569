package helloasso

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

const pageSize = 50

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	OrgSlug      string
	FormType     string // usually "membership"
	FormSlug     string
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.FormType == "" {
		cfg.FormType = "membership"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchMembers walks the membership form items with the continuation token.
// Pagination stops when the token is missing or stops advancing: the API
// repeats the last token on the final page.
func (c *Client) FetchMembers(ctx context.Context) ([]entity.Member, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("Fetching HelloAsso members for org '%s' and form '%s'", c.cfg.OrgSlug, c.cfg.FormSlug)

	var members []entity.Member
	var continuation string

	for {
		page, err := c.fetchItemsPage(ctx, token, continuation)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Data {
			members = append(members, entity.Member{
				LastName:       strings.TrimSpace(item.Payer.LastName),
				FirstName:      strings.TrimSpace(item.Payer.FirstName),
				Email:          strings.TrimSpace(item.Payer.Email),
				MembershipDate: normalizeDate(item.Order.Date),
			})
		}

		previous := continuation
		continuation = page.Pagination.ContinuationToken
		if continuation == "" || continuation == previous {
			break
		}
	}

	log.Printf("Retrieved %d HelloAsso members", len(members))
	return members, nil
}

func (c *Client) fetchItemsPage(ctx context.Context, token, continuation string) (*itemsResponse, error) {
	endpoint := fmt.Sprintf("%s/v5/organizations/%s/forms/%s/%s/items?pageSize=%d",
		c.cfg.BaseURL, c.cfg.OrgSlug, c.cfg.FormType, c.cfg.FormSlug, pageSize)
	if continuation != "" {
		endpoint += "&continuationToken=" + url.QueryEscape(continuation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("helloasso request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("helloasso fetch items failed (status %d): %s", resp.StatusCode, string(body))
	}

	var page itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("helloasso decode failed: %w", err)
	}

	return &page, nil
}

// accessToken runs the client-credentials flow. Tokens are short-lived but
// outlive a run, so one per FetchMembers is enough.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("helloasso token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("helloasso token failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("helloasso token decode failed: %w", err)
	}

	return tr.AccessToken, nil
}

// normalizeDate converts the ISO-8601 order date to the export layout.
// Unparsable values pass through raw: the reconciler keeps them as text but
// they never win a merge.
func normalizeDate(iso string) string {
	if iso == "" {
		return ""
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(entity.DateLayout)
		}
	}

	log.Printf("⚠️ Could not parse order date '%s'", iso)
	return iso
}
