package jira

import (
	"time"
)

// Config holds the authentication and connection settings for Jira.
type Config struct {
	BaseURL string

	// Cloud basic auth
	Email    string
	APIToken string

	// Personal Access Token (takes precedence when set)
	Token string

	// Performance Settings
	RequestDelay time.Duration
}

// Sprint is the subset of agile sprint metadata used for display names.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// CreateIssueRequest carries the fields for issue creation.
type CreateIssueRequest struct {
	ProjectKey  string
	Summary     string
	Description string
	IssueType   string
	Priority    string
	Labels      []string
}

// Client is the interface for interacting with Jira.
type Client interface {
	SearchIssues(jql string, startAt int, maxResults int) (*SearchResponse, error)
	GetSprint(sprintID int) (*Sprint, error)
	CreateIssue(req CreateIssueRequest) (string, error)
	FindProjects(query string) ([]any, error)
	FindBoards(projectKey string, nameFilter string) ([]any, error)
}

// NewClient creates a new Jira client based on the provided configuration.
func NewClient(cfg Config) Client {
	return NewCloudClient(cfg)
}
