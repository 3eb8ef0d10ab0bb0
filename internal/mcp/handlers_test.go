package mcp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"devhub-mcp/internal/analytics"
	"devhub-mcp/internal/jira"
)

// mockJiraClient overrides individual operations per test; unset operations
// return empty results.
type mockJiraClient struct {
	searchIssuesFunc func(jql string, startAt, maxResults int) (*jira.SearchResponse, error)
	getSprintFunc    func(sprintID int) (*jira.Sprint, error)
	createIssueFunc  func(req jira.CreateIssueRequest) (string, error)
	findProjectsFunc func(query string) ([]any, error)
	findBoardsFunc   func(projectKey, nameFilter string) ([]any, error)
}

func (m *mockJiraClient) SearchIssues(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
	if m.searchIssuesFunc != nil {
		return m.searchIssuesFunc(jql, startAt, maxResults)
	}
	return &jira.SearchResponse{}, nil
}

func (m *mockJiraClient) GetSprint(sprintID int) (*jira.Sprint, error) {
	if m.getSprintFunc != nil {
		return m.getSprintFunc(sprintID)
	}
	return &jira.Sprint{ID: sprintID, Name: fmt.Sprintf("Sprint %d", sprintID)}, nil
}

func (m *mockJiraClient) CreateIssue(req jira.CreateIssueRequest) (string, error) {
	if m.createIssueFunc != nil {
		return m.createIssueFunc(req)
	}
	return "PROJ-1", nil
}

func (m *mockJiraClient) FindProjects(query string) ([]any, error) {
	if m.findProjectsFunc != nil {
		return m.findProjectsFunc(query)
	}
	return []any{}, nil
}

func (m *mockJiraClient) FindBoards(projectKey, nameFilter string) ([]any, error) {
	if m.findBoardsFunc != nil {
		return m.findBoardsFunc(projectKey, nameFilter)
	}
	return []any{}, nil
}

// searchIssueDTO builds a minimal DTO for search responses in tests.
func searchIssueDTO(key, summary, status string) jira.IssueDTO {
	var dto jira.IssueDTO
	dto.Key = key
	dto.Fields.Summary = summary
	dto.Fields.Status.Name = status
	dto.Fields.IssueType.Name = "Task"
	return dto
}

func TestHandleSprintHealth_RequiresSprintID(t *testing.T) {
	s := NewServer(&mockJiraClient{}, nil, nil)

	if _, err := s.handleSprintHealth(0); err == nil {
		t.Fatal("expected error for missing sprint_id")
	}
}

func TestHandleSprintHealth_PropagatesSearchError(t *testing.T) {
	s := NewServer(&mockJiraClient{
		searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
			return nil, errors.New("jira unavailable")
		},
	}, nil, nil)

	if _, err := s.handleSprintHealth(42); err == nil || !strings.Contains(err.Error(), "jira unavailable") {
		t.Fatalf("expected search error to propagate, got %v", err)
	}
}

func TestHandleSprintHealth_SprintNameFallback(t *testing.T) {
	s := NewServer(&mockJiraClient{
		searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
			if !strings.Contains(jql, "sprint = 42") {
				t.Errorf("unexpected JQL: %q", jql)
			}
			return &jira.SearchResponse{Issues: []jira.IssueDTO{
				searchIssueDTO("P-1", "one", "Done"),
			}}, nil
		},
		getSprintFunc: func(sprintID int) (*jira.Sprint, error) {
			return nil, errors.New("agile API not available")
		},
	}, nil, nil)

	data, err := s.handleSprintHealth(42)
	if err != nil {
		t.Fatalf("sprint name lookup failure must not fail the analysis: %v", err)
	}

	result, ok := data.(analytics.SprintHealthResult)
	if !ok {
		t.Fatalf("unexpected result type %T", data)
	}
	if result.SprintName != "Sprint 42" {
		t.Errorf("sprintName = %q, want fallback \"Sprint 42\"", result.SprintName)
	}
}

func TestHandleSprintHealth_UsesResolvedName(t *testing.T) {
	s := NewServer(&mockJiraClient{
		getSprintFunc: func(sprintID int) (*jira.Sprint, error) {
			return &jira.Sprint{ID: sprintID, Name: "June Iteration", State: "active"}, nil
		},
	}, nil, nil)

	data, err := s.handleSprintHealth(7)
	if err != nil {
		t.Fatal(err)
	}
	if result := data.(analytics.SprintHealthResult); result.SprintName != "June Iteration" {
		t.Errorf("sprintName = %q, want \"June Iteration\"", result.SprintName)
	}
}

func TestHandleWorkloadDashboard_JQLComposition(t *testing.T) {
	tests := []struct {
		name       string
		projectKey string
		sprintID   int
		expected   string
	}{
		{
			"BothFilters", "PROJ", 5,
			"project = PROJ AND sprint = 5 AND assignee is not EMPTY AND resolution is EMPTY",
		},
		{
			"ProjectOnly", "PROJ", 0,
			"project = PROJ AND assignee is not EMPTY AND resolution is EMPTY",
		},
		{
			"NoFilters", "", 0,
			"assignee is not EMPTY AND resolution is EMPTY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotJQL string
			s := NewServer(&mockJiraClient{
				searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
					gotJQL = jql
					return &jira.SearchResponse{}, nil
				},
			}, nil, nil)

			if _, err := s.handleWorkloadDashboard(tt.projectKey, tt.sprintID); err != nil {
				t.Fatal(err)
			}
			if gotJQL != tt.expected {
				t.Errorf("jql = %q, want %q", gotJQL, tt.expected)
			}
		})
	}
}

func TestHandleAnalyzeText_DegradesOnSearchFailure(t *testing.T) {
	s := NewServer(&mockJiraClient{
		searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
			return nil, errors.New("search is down")
		},
	}, nil, nil)

	data, err := s.handleAnalyzeText("PROJ", "The importer crashes on merged header cells in uploads")
	if err != nil {
		t.Fatalf("similar-issue failure must not fail the analysis: %v", err)
	}

	analysis := data.(analytics.TextAnalysis)
	if analysis.SuggestedType != "Bug" {
		t.Errorf("suggestedType = %q, want Bug", analysis.SuggestedType)
	}
	if len(analysis.SimilarIssues) != 0 {
		t.Errorf("similarIssues = %v, want none", analysis.SimilarIssues)
	}
}

func TestHandleAnalyzeText_AttachesSimilarIssues(t *testing.T) {
	s := NewServer(&mockJiraClient{
		searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
			if !strings.Contains(jql, "ORDER BY created DESC") {
				t.Errorf("similar-issue JQL missing ordering: %q", jql)
			}
			if maxResults != 3 {
				t.Errorf("maxResults = %d, want 3", maxResults)
			}
			return &jira.SearchResponse{Issues: []jira.IssueDTO{
				searchIssueDTO("PROJ-9", "Importer crash on merged cells", "Open"),
			}}, nil
		},
	}, nil, nil)

	data, err := s.handleAnalyzeText("PROJ", "The importer crashes on merged header cells in uploads")
	if err != nil {
		t.Fatal(err)
	}

	analysis := data.(analytics.TextAnalysis)
	if len(analysis.SimilarIssues) != 1 || analysis.SimilarIssues[0].Key != "PROJ-9" {
		t.Errorf("similarIssues = %v", analysis.SimilarIssues)
	}
}

func TestHandleCreateSmartIssue_DryRun(t *testing.T) {
	created := false
	s := NewServer(&mockJiraClient{
		createIssueFunc: func(req jira.CreateIssueRequest) (string, error) {
			created = true
			return "PROJ-1", nil
		},
	}, nil, nil)

	data, err := s.handleCreateSmartIssue("PROJ", "Fix the broken export dialog for admins", "", true)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("dry_run must not create an issue")
	}

	result := data.(map[string]any)
	if result["dryRun"] != true {
		t.Errorf("result missing dryRun flag: %v", result)
	}
	if result["summary"] != "Fix the broken export dialog for admins" {
		t.Errorf("summary = %v", result["summary"])
	}
}

func TestHandleCreateSmartIssue_UsesClassification(t *testing.T) {
	var gotReq jira.CreateIssueRequest
	s := NewServer(&mockJiraClient{
		createIssueFunc: func(req jira.CreateIssueRequest) (string, error) {
			gotReq = req
			return "PROJ-77", nil
		},
	}, nil, nil)

	text := "URGENT: the payments api endpoint crashes under load during checkout"
	data, err := s.handleCreateSmartIssue("PROJ", text, "", false)
	if err != nil {
		t.Fatal(err)
	}

	if gotReq.IssueType != "Bug" {
		t.Errorf("issueType = %q, want Bug", gotReq.IssueType)
	}
	if gotReq.Priority != "Critical" {
		t.Errorf("priority = %q, want Critical", gotReq.Priority)
	}
	if gotReq.ProjectKey != "PROJ" {
		t.Errorf("projectKey = %q", gotReq.ProjectKey)
	}

	result := data.(map[string]any)
	if result["key"] != "PROJ-77" {
		t.Errorf("key = %v, want PROJ-77", result["key"])
	}
}

func TestHandleCreateSmartIssue_SummaryFromFirstLine(t *testing.T) {
	var gotReq jira.CreateIssueRequest
	s := NewServer(&mockJiraClient{
		createIssueFunc: func(req jira.CreateIssueRequest) (string, error) {
			gotReq = req
			return "PROJ-2", nil
		},
	}, nil, nil)

	text := "Importer rejects valid spreadsheets\n\nFull details with a stack trace follow here."
	if _, err := s.handleCreateSmartIssue("PROJ", text, "", false); err != nil {
		t.Fatal(err)
	}
	if gotReq.Summary != "Importer rejects valid spreadsheets" {
		t.Errorf("summary = %q", gotReq.Summary)
	}
}

func TestHandleReleaseNotes_Validation(t *testing.T) {
	s := NewServer(&mockJiraClient{}, nil, nil)

	tests := []struct {
		name string
		args releaseNotesArgs
	}{
		{"MissingProject", releaseNotesArgs{Version: "1.0", FromDate: "2025-01-01", ToDate: "2025-02-01"}},
		{"MissingVersion", releaseNotesArgs{ProjectKey: "PROJ", FromDate: "2025-01-01", ToDate: "2025-02-01"}},
		{"MissingDates", releaseNotesArgs{ProjectKey: "PROJ", Version: "1.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.handleReleaseNotes(tt.args); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestHandleReleaseNotes_CapabilityErrors(t *testing.T) {
	s := NewServer(&mockJiraClient{}, nil, nil)

	base := releaseNotesArgs{
		ProjectKey: "PROJ", Version: "1.0",
		FromDate: "2025-01-01", ToDate: "2025-02-01",
	}

	t.Run("GitHubAbsent", func(t *testing.T) {
		args := base
		args.GitHubOwner = "acme"
		args.GitHubRepo = "widgets"
		if _, err := s.handleReleaseNotes(args); !errors.Is(err, ErrGitHubUnavailable) {
			t.Errorf("err = %v, want ErrGitHubUnavailable", err)
		}
	})

	t.Run("ConfluenceAbsent", func(t *testing.T) {
		args := base
		args.PublishSpace = "ENG"
		if _, err := s.handleReleaseNotes(args); !errors.Is(err, ErrConfluenceUnavailable) {
			t.Errorf("err = %v, want ErrConfluenceUnavailable", err)
		}
	})
}

func TestHandleReleaseNotes_Generates(t *testing.T) {
	var gotJQL string
	s := NewServer(&mockJiraClient{
		searchIssuesFunc: func(jql string, startAt, maxResults int) (*jira.SearchResponse, error) {
			gotJQL = jql
			return &jira.SearchResponse{Issues: []jira.IssueDTO{
				searchIssueDTO("PROJ-1", "Something resolved", "Done"),
			}}, nil
		},
	}, nil, nil)

	data, err := s.handleReleaseNotes(releaseNotesArgs{
		ProjectKey: "PROJ", Version: "2.1.0",
		FromDate: "2025-05-01", ToDate: "2025-06-01",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, fragment := range []string{"project = PROJ", "resolutiondate >= '2025-05-01'", "resolutiondate <= '2025-06-01'"} {
		if !strings.Contains(gotJQL, fragment) {
			t.Errorf("jql missing %q: %q", fragment, gotJQL)
		}
	}

	result := data.(map[string]any)
	notes, ok := result["notes"].(analytics.ReleaseNotes)
	if !ok {
		t.Fatalf("unexpected notes type %T", result["notes"])
	}
	if notes.Version != "2.1.0" || notes.Stats.IssueCount != 1 {
		t.Errorf("notes = %+v", notes)
	}
	if _, published := result["publishedUrl"]; published {
		t.Error("publishedUrl must be absent without publish_space")
	}
}

func TestComposeJQL(t *testing.T) {
	tests := []struct {
		name     string
		clauses  []string
		expected string
	}{
		{"AllPresent", []string{"a = 1", "b = 2"}, "a = 1 AND b = 2"},
		{"SkipsEmpty", []string{"", "b = 2", ""}, "b = 2"},
		{"AllEmpty", []string{"", ""}, ""},
		{"None", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composeJQL(tt.clauses...); got != tt.expected {
				t.Errorf("composeJQL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"str":     "value",
		"num":     float64(42),
		"numStr":  "17",
		"boolean": true,
	}

	if got := argString(args, "str"); got != "value" {
		t.Errorf("argString = %q", got)
	}
	if got := argString(args, "missing"); got != "" {
		t.Errorf("argString(missing) = %q, want empty", got)
	}
	if got := argInt(args, "num"); got != 42 {
		t.Errorf("argInt(float64) = %d, want 42", got)
	}
	if got := argInt(args, "numStr"); got != 17 {
		t.Errorf("argInt(string) = %d, want 17", got)
	}
	if got := argInt(args, "missing"); got != 0 {
		t.Errorf("argInt(missing) = %d, want 0", got)
	}
	if !argBool(args, "boolean") {
		t.Error("argBool = false, want true")
	}
	if argBool(args, "missing") {
		t.Error("argBool(missing) = true, want false")
	}
}
