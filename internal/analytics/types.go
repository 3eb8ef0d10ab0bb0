package analytics

import "time"

// Issue is the read-only tracker view consumed by every analytic operation.
// Time tracking fields are in seconds; zero means the field was absent.
type Issue struct {
	Key         string
	Summary     string
	Description string
	Status      string
	Priority    string
	Assignee    string
	Reporter    string
	Type        string
	Labels      []string
	Created     time.Time
	Updated     time.Time

	OriginalEstimate int64
	TimeSpent        int64
	TimeRemaining    int64
}

// IssueBreakdown tallies a collection into the four status buckets.
// Done + InProgress + Todo + Blocked always equals Total.
type IssueBreakdown struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"inProgress"`
	Todo       int `json:"todo"`
	Blocked    int `json:"blocked"`
}

// SprintHealthResult is the outcome of one sprint health scoring pass.
type SprintHealthResult struct {
	SprintID        int            `json:"sprintId"`
	SprintName      string         `json:"sprintName"`
	HealthScore     int            `json:"healthScore"`
	HealthStatus    string         `json:"healthStatus"`
	Breakdown       IssueBreakdown `json:"breakdown"`
	CompletionRate  int            `json:"completionRate"`
	BurndownHealth  string         `json:"burndownHealth"`
	BlockedCount    int            `json:"blockedCount"`
	Risks           []string       `json:"risks"`
	Recommendations []string       `json:"recommendations"`
}

// MemberWorkload holds per-assignee metrics.
type MemberWorkload struct {
	Member      string   `json:"member"`
	Assigned    int      `json:"assigned"`
	InProgress  int      `json:"inProgress"`
	Overdue     int      `json:"overdue"`
	Status      string   `json:"workloadStatus"`
	RiskFactors []string `json:"riskFactors"`
}

// WorkloadDashboard aggregates team-level workload metrics.
type WorkloadDashboard struct {
	Members         []MemberWorkload `json:"members"`
	TeamSize        int              `json:"teamSize"`
	TotalIssues     int              `json:"totalIssues"`
	AverageWorkload float64          `json:"averageWorkload"`
	BalanceScore    int              `json:"balanceScore"`
	Recommendations []string         `json:"recommendations"`
	Bottlenecks     []string         `json:"bottlenecks"`
}

// SimilarIssue is a best-effort text-search hit.
type SimilarIssue struct {
	Key        string  `json:"key"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"`
}

// TextAnalysis is the result of classifying free-form issue text.
type TextAnalysis struct {
	SuggestedType        string         `json:"suggestedType"`
	SuggestedPriority    string         `json:"suggestedPriority"`
	SuggestedLabels      []string       `json:"suggestedLabels"`
	EstimatedStoryPoints int            `json:"estimatedStoryPoints"`
	SimilarIssues        []SimilarIssue `json:"similarIssues"`
	Suggestions          []string       `json:"suggestions"`
}

// ReleaseEntry is one issue rendered into a release-note category.
type ReleaseEntry struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
}

// ReleaseStats carries aggregate counts; source-control fields stay zero
// when the capability is unavailable.
type ReleaseStats struct {
	IssueCount   int `json:"issueCount"`
	TotalCommits int `json:"totalCommits"`
	FilesChanged int `json:"filesChanged"`
}

// ReleaseNotes partitions a resolved issue collection into five mutually
// exclusive categories plus rendered representations.
type ReleaseNotes struct {
	Version         string         `json:"version"`
	ReleaseDate     string         `json:"releaseDate"`
	Summary         string         `json:"summary"`
	Highlights      []string       `json:"highlights"`
	Features        []ReleaseEntry `json:"features"`
	Improvements    []ReleaseEntry `json:"improvements"`
	BugFixes        []ReleaseEntry `json:"bugFixes"`
	BreakingChanges []ReleaseEntry `json:"breakingChanges"`
	Deprecated      []ReleaseEntry `json:"deprecated"`
	Contributors    []string       `json:"contributors"`
	Stats           ReleaseStats   `json:"stats"`
	Markdown        string         `json:"markdown"`
	StorageMarkup   string         `json:"storageMarkup"`
}
