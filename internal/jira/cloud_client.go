package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type cloudClient struct {
	cfg         Config
	httpClient  *http.Client
	lastRequest time.Time

	// Session Cache
	cache      map[string]*cacheEntry
	cacheMutex sync.RWMutex
}

type cacheEntry struct {
	Value       any
	Expiration  time.Time
	AccessCount int
	OriginalTTL time.Duration
}

// NewCloudClient creates a Jira client talking to the Cloud REST APIs.
func NewCloudClient(cfg Config) Client {
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	return &cloudClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *cloudClient) getFromCache(key string) (any, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")

	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		return nil, false
	}

	// Sliding window extension
	if entry.AccessCount < 6 {
		entry.Expiration = time.Now().Add(entry.OriginalTTL)
		entry.AccessCount++
		log.Trace().Str("key", key).Int("count", entry.AccessCount).Msg("Extended cache TTL")
	}

	return entry.Value, true
}

func (c *cloudClient) addToCache(key string, value any, ttl time.Duration) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Value:       value,
		Expiration:  time.Now().Add(ttl),
		OriginalTTL: ttl,
		AccessCount: 1,
	}
	log.Debug().Str("key", key).Dur("ttl", ttl).Msg("Added to cache")
}

func (c *cloudClient) throttle(isMetadata bool) {
	// Metadata requests (sprint, project lookups) are allowed to burst
	// sequentially to avoid artificial delay during discovery.
	if isMetadata {
		c.lastRequest = time.Now()
		return
	}

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling Jira request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *cloudClient) authenticateRequest(req *http.Request) {
	// Prioritize Personal Access Token, fall back to Cloud basic auth.
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
		return
	}
	if c.cfg.Email != "" && c.cfg.APIToken != "" {
		req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	}
}

func statusError(code int, context string) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("Jira authentication failed (401/403). Please check your credentials.")
	case http.StatusNotFound:
		return fmt.Errorf("%s not found", context)
	case http.StatusTooManyRequests:
		return fmt.Errorf("Jira rate limit exceeded (429).")
	default:
		return fmt.Errorf("Jira API returned status %d for %s", code, context)
	}
}

func (c *cloudClient) SearchIssues(jql string, startAt int, maxResults int) (*SearchResponse, error) {
	cacheKey := fmt.Sprintf("search:%s:%d:%d", jql, startAt, maxResults)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(*SearchResponse), nil
	}

	c.throttle(false)

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("startAt", fmt.Sprintf("%d", startAt))
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("fields", "summary,description,issuetype,status,priority,assignee,reporter,labels,created,updated,timetracking")

	searchURL := fmt.Sprintf("%s/rest/api/2/search?%s", c.cfg.BaseURL, params.Encode())
	log.Info().Msg("Requesting issues from Jira")
	log.Debug().Str("url", searchURL).Str("jql", jql).Msg("Jira search details")
	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, "issue search")
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Jira search response: %w", err)
	}

	c.addToCache(cacheKey, &result, 5*time.Minute)

	return &result, nil
}

func (c *cloudClient) GetSprint(sprintID int) (*Sprint, error) {
	cacheKey := fmt.Sprintf("sprint:%d", sprintID)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(*Sprint), nil
	}

	c.throttle(true)

	sprintURL := fmt.Sprintf("%s/rest/agile/1.0/sprint/%d", c.cfg.BaseURL, sprintID)
	req, err := http.NewRequest("GET", sprintURL, nil)
	if err != nil {
		return nil, err
	}

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, fmt.Sprintf("sprint %d", sprintID))
	}

	var sprint Sprint
	if err := json.NewDecoder(resp.Body).Decode(&sprint); err != nil {
		return nil, fmt.Errorf("failed to decode sprint response: %w", err)
	}

	c.addToCache(cacheKey, &sprint, 10*time.Minute)
	return &sprint, nil
}

func (c *cloudClient) CreateIssue(r CreateIssueRequest) (string, error) {
	c.throttle(false)

	fields := map[string]any{
		"project":     map[string]any{"key": r.ProjectKey},
		"summary":     r.Summary,
		"description": r.Description,
		"issuetype":   map[string]any{"name": r.IssueType},
	}
	if r.Priority != "" {
		fields["priority"] = map[string]any{"name": r.Priority}
	}
	if len(r.Labels) > 0 {
		fields["labels"] = r.Labels
	}

	body, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return "", err
	}

	createURL := fmt.Sprintf("%s/rest/api/2/issue", c.cfg.BaseURL)
	req, err := http.NewRequest("POST", createURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, fmt.Sprintf("issue creation in %s", r.ProjectKey))
	}

	var created CreatedIssueDTO
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode issue creation response: %w", err)
	}

	log.Info().Str("key", created.Key).Msg("Created Jira issue")
	return created.Key, nil
}

func (c *cloudClient) FindProjects(query string) ([]any, error) {
	cacheKey := "find_projects:" + query
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]any), nil
	}

	c.throttle(true)

	params := url.Values{}
	params.Set("query", query)
	params.Set("maxResults", "30")

	searchURL := fmt.Sprintf("%s/rest/api/2/projects/picker?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, "project search")
	}

	var pickerResponse struct {
		Projects []any `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pickerResponse); err != nil {
		return nil, fmt.Errorf("failed to decode project picker response: %w", err)
	}

	// Normalize picker project structure to the standard project shape
	var result []any
	for _, p := range pickerResponse.Projects {
		pMap, ok := p.(map[string]any)
		if !ok {
			log.Warn().Msg("Failed to type-assert project from picker response")
			continue
		}
		result = append(result, map[string]any{
			"id":   pMap["id"],
			"key":  pMap["key"],
			"name": pMap["name"],
		})
	}

	c.addToCache(cacheKey, result, 5*time.Minute)
	return result, nil
}

func (c *cloudClient) FindBoards(projectKey string, nameFilter string) ([]any, error) {
	cacheKey := fmt.Sprintf("find_boards:%s:%s", projectKey, nameFilter)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]any), nil
	}

	c.throttle(true)

	params := url.Values{}
	if projectKey != "" {
		params.Set("projectKeyOrId", projectKey)
	}
	if nameFilter != "" {
		params.Set("name", nameFilter)
	}
	params.Set("maxResults", "30")

	searchURL := fmt.Sprintf("%s/rest/agile/1.0/board?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, "board search")
	}

	var resultObj FindBoardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&resultObj); err != nil {
		return nil, fmt.Errorf("failed to decode board search response: %w", err)
	}

	c.addToCache(cacheKey, resultObj.Values, 5*time.Minute)
	return resultObj.Values, nil
}
