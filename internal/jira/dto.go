package jira

import "time"

// SearchResponse is the top-level container for Jira search results.
type SearchResponse struct {
	Total  int        `json:"total"`
	Issues []IssueDTO `json:"issues"`
}

// IssueDTO represents a single issue in the Jira search response.
type IssueDTO struct {
	Key    string    `json:"key"`
	Fields FieldsDTO `json:"fields"`
}

// FieldsDTO contains the specific fields we care about.
type FieldsDTO struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	IssueType   struct {
		Name    string `json:"name"`
		Subtask bool   `json:"subtask"`
	} `json:"issuetype"`
	Status struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		StatusCategory struct {
			Key string `json:"key"`
		} `json:"statusCategory"`
	} `json:"status"`
	Priority *struct {
		Name string `json:"name"`
	} `json:"priority"`
	Assignee *struct {
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	Reporter *struct {
		DisplayName string `json:"displayName"`
	} `json:"reporter"`
	Labels       []string `json:"labels"`
	Created      string   `json:"created"`
	Updated      string   `json:"updated"`
	TimeTracking *struct {
		OriginalEstimateSeconds  int64 `json:"originalEstimateSeconds"`
		TimeSpentSeconds         int64 `json:"timeSpentSeconds"`
		RemainingEstimateSeconds int64 `json:"remainingEstimateSeconds"`
	} `json:"timetracking"`
}

// FindBoardsResponse is used for the board search API.
type FindBoardsResponse struct {
	Values []any `json:"values"`
}

// CreatedIssueDTO is the response body of the issue creation API.
type CreatedIssueDTO struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// ParseTime is a helper for the strict Jira time format.
func ParseTime(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.000-0700", s)
}
