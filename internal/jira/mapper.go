package jira

import (
	"devhub-mcp/internal/analytics"
)

// MapIssue transforms a Jira DTO into the read-only view consumed by the
// analytics core. Absent optional fields map to empty strings, absent time
// tracking maps to zero seconds.
func MapIssue(item IssueDTO) analytics.Issue {
	issue := analytics.Issue{
		Key:         item.Key,
		Summary:     item.Fields.Summary,
		Description: item.Fields.Description,
		Status:      item.Fields.Status.Name,
		Type:        item.Fields.IssueType.Name,
		Labels:      item.Fields.Labels,
	}

	if item.Fields.Priority != nil {
		issue.Priority = item.Fields.Priority.Name
	}
	if item.Fields.Assignee != nil {
		issue.Assignee = item.Fields.Assignee.DisplayName
	}
	if item.Fields.Reporter != nil {
		issue.Reporter = item.Fields.Reporter.DisplayName
	}

	if t, err := ParseTime(item.Fields.Created); err == nil {
		issue.Created = t
	}
	if t, err := ParseTime(item.Fields.Updated); err == nil {
		issue.Updated = t
	}

	if tt := item.Fields.TimeTracking; tt != nil {
		issue.OriginalEstimate = tt.OriginalEstimateSeconds
		issue.TimeSpent = tt.TimeSpentSeconds
		issue.TimeRemaining = tt.RemainingEstimateSeconds
	}

	return issue
}

// MapIssues converts a full search response, skipping subtasks.
func MapIssues(resp *SearchResponse) []analytics.Issue {
	issues := make([]analytics.Issue, 0, len(resp.Issues))
	for _, dto := range resp.Issues {
		if dto.Fields.IssueType.Subtask {
			continue
		}
		issues = append(issues, MapIssue(dto))
	}
	return issues
}
