// Package confluence publishes rendered documents to a wiki space. The
// capability is optional: a nil *Publisher means absent.
package confluence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the wiki connection settings.
type Config struct {
	BaseURL  string
	Email    string
	APIToken string
}

// Publisher writes pages through the Confluence content API.
type Publisher struct {
	cfg        Config
	httpClient *http.Client
}

// NewPublisher creates a Publisher for the configured wiki.
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CreatePage stores a new page in the given space and returns its URL.
// The body is expected in storage representation.
func (p *Publisher) CreatePage(spaceKey, title, storageBody string) (string, error) {
	payload := map[string]any{
		"type":  "page",
		"title": title,
		"space": map[string]any{"key": spaceKey},
		"body": map[string]any{
			"storage": map[string]any{
				"value":          storageBody,
				"representation": "storage",
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/rest/api/content", p.cfg.BaseURL), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.cfg.Email, p.cfg.APIToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("Confluence authentication failed (401/403). Please check your credentials.")
		default:
			return "", fmt.Errorf("Confluence API returned status %d for page creation in space %s", resp.StatusCode, spaceKey)
		}
	}

	var created struct {
		ID    string `json:"id"`
		Links struct {
			Base  string `json:"base"`
			WebUI string `json:"webui"`
		} `json:"_links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode page creation response: %w", err)
	}

	pageURL := created.Links.Base + created.Links.WebUI
	log.Info().Str("space", spaceKey).Str("title", title).Str("url", pageURL).Msg("Published wiki page")
	return pageURL, nil
}
