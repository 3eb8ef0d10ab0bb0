package jira

import (
	"encoding/json"
	"testing"
	"time"
)

const searchResponseFixture = `{
	"total": 3,
	"issues": [
		{
			"key": "PROJ-1",
			"fields": {
				"summary": "Login fails on SSO tenants",
				"description": "Stack trace attached",
				"issuetype": {"name": "Bug", "subtask": false},
				"status": {"id": "3", "name": "In Progress", "statusCategory": {"key": "indeterminate"}},
				"priority": {"name": "High"},
				"assignee": {"displayName": "Ana Reyes"},
				"reporter": {"displayName": "Ben Ito"},
				"labels": ["auth", "regression"],
				"created": "2025-05-01T09:30:00.000+0200",
				"updated": "2025-05-10T17:45:00.000+0200",
				"timetracking": {
					"originalEstimateSeconds": 28800,
					"timeSpentSeconds": 14400,
					"remainingEstimateSeconds": 14400
				}
			}
		},
		{
			"key": "PROJ-2",
			"fields": {
				"summary": "Bare minimum issue",
				"issuetype": {"name": "Task", "subtask": false},
				"status": {"id": "1", "name": "To Do", "statusCategory": {"key": "new"}}
			}
		},
		{
			"key": "PROJ-3",
			"fields": {
				"summary": "A subtask that must be skipped",
				"issuetype": {"name": "Sub-task", "subtask": true},
				"status": {"id": "1", "name": "To Do", "statusCategory": {"key": "new"}}
			}
		}
	]
}`

func decodeFixture(t *testing.T) *SearchResponse {
	t.Helper()
	var resp SearchResponse
	if err := json.Unmarshal([]byte(searchResponseFixture), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return &resp
}

func TestMapIssue_AllFields(t *testing.T) {
	resp := decodeFixture(t)
	issue := MapIssue(resp.Issues[0])

	if issue.Key != "PROJ-1" {
		t.Errorf("key = %q", issue.Key)
	}
	if issue.Summary != "Login fails on SSO tenants" {
		t.Errorf("summary = %q", issue.Summary)
	}
	if issue.Status != "In Progress" {
		t.Errorf("status = %q", issue.Status)
	}
	if issue.Type != "Bug" {
		t.Errorf("type = %q", issue.Type)
	}
	if issue.Priority != "High" {
		t.Errorf("priority = %q", issue.Priority)
	}
	if issue.Assignee != "Ana Reyes" {
		t.Errorf("assignee = %q", issue.Assignee)
	}
	if issue.Reporter != "Ben Ito" {
		t.Errorf("reporter = %q", issue.Reporter)
	}
	if len(issue.Labels) != 2 || issue.Labels[0] != "auth" {
		t.Errorf("labels = %v", issue.Labels)
	}

	wantCreated := time.Date(2025, 5, 1, 9, 30, 0, 0, time.FixedZone("", 2*3600))
	if !issue.Created.Equal(wantCreated) {
		t.Errorf("created = %v, want %v", issue.Created, wantCreated)
	}

	if issue.OriginalEstimate != 28800 || issue.TimeSpent != 14400 || issue.TimeRemaining != 14400 {
		t.Errorf("time tracking = %d/%d/%d", issue.OriginalEstimate, issue.TimeSpent, issue.TimeRemaining)
	}
}

func TestMapIssue_AbsentOptionals(t *testing.T) {
	resp := decodeFixture(t)
	issue := MapIssue(resp.Issues[1])

	if issue.Priority != "" || issue.Assignee != "" || issue.Reporter != "" {
		t.Errorf("optional fields should map to empty strings: %+v", issue)
	}
	if issue.OriginalEstimate != 0 || issue.TimeSpent != 0 {
		t.Errorf("absent time tracking should map to zero: %+v", issue)
	}
	if !issue.Created.IsZero() || !issue.Updated.IsZero() {
		t.Errorf("unparsable timestamps should stay zero: %+v", issue)
	}
}

func TestMapIssues_SkipsSubtasks(t *testing.T) {
	resp := decodeFixture(t)
	issues := MapIssues(resp)

	if len(issues) != 2 {
		t.Fatalf("len(issues) = %d, want 2 (subtask skipped)", len(issues))
	}
	for _, issue := range issues {
		if issue.Key == "PROJ-3" {
			t.Errorf("subtask PROJ-3 was not skipped")
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "2025-05-01T09:30:00.000+0200", false},
		{"NegativeOffset", "2024-12-31T23:59:59.999-0500", false},
		{"MissingMillis", "2025-05-01T09:30:00+0200", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
