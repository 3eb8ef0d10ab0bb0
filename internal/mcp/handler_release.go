package mcp

import (
	"context"
	"fmt"
	"time"

	"devhub-mcp/internal/analytics"
	"devhub-mcp/internal/github"
	"devhub-mcp/internal/jira"

	"github.com/rs/zerolog/log"
)

type releaseNotesArgs struct {
	ProjectKey   string
	Version      string
	FromDate     string
	ToDate       string
	GitHubOwner  string
	GitHubRepo   string
	Base         string
	Head         string
	PublishSpace string
}

// handleReleaseNotes categorizes the issues resolved in the date range.
// GitHub statistics are best-effort and degrade to zero; publishing needs
// the Confluence capability and an explicit publish_space.
func (s *Server) handleReleaseNotes(args releaseNotesArgs) (any, error) {
	if args.ProjectKey == "" || args.Version == "" {
		return nil, fmt.Errorf("project_key and version are required")
	}
	if args.FromDate == "" || args.ToDate == "" {
		return nil, fmt.Errorf("from_date and to_date are required (YYYY-MM-DD)")
	}

	// Explicit GitHub arguments against an absent capability fail fast
	// instead of silently producing zeros.
	wantsGitHub := args.GitHubOwner != "" && args.GitHubRepo != ""
	if wantsGitHub && s.code == nil {
		return nil, ErrGitHubUnavailable
	}
	if args.PublishSpace != "" && s.wiki == nil {
		return nil, ErrConfluenceUnavailable
	}

	jql := fmt.Sprintf(
		"project = %s AND status in (Resolved, Closed, Done) AND resolutiondate >= '%s' AND resolutiondate <= '%s'",
		args.ProjectKey, args.FromDate, args.ToDate)

	response, err := s.jira.SearchIssues(jql, 0, 500)
	if err != nil {
		return nil, err
	}
	issues := jira.MapIssues(response)

	stats := s.fetchReleaseStats(args, wantsGitHub)

	notes := analytics.BuildReleaseNotes(args.Version, args.ToDate, issues, stats)
	log.Info().Str("version", args.Version).Int("issues", notes.Stats.IssueCount).Msg("Generated release notes")

	result := map[string]any{"notes": notes}

	if wantsGitHub {
		if prs := s.fetchMergedPullRequests(args); len(prs) > 0 {
			result["mergedPullRequests"] = prs
		}
	}

	if args.PublishSpace != "" {
		title := analytics.StorageTitle(args.ProjectKey, args.Version)
		url, err := s.wiki.CreatePage(args.PublishSpace, title, notes.StorageMarkup)
		if err != nil {
			return nil, fmt.Errorf("release notes were generated but publishing failed: %w", err)
		}
		result["publishedUrl"] = url
	}

	return result, nil
}

// fetchReleaseStats enriches the notes with commit statistics when a
// comparison was requested. Lookup failures degrade to zeros.
func (s *Server) fetchReleaseStats(args releaseNotesArgs, wantsGitHub bool) analytics.ReleaseStats {
	var stats analytics.ReleaseStats
	if !wantsGitHub || args.Base == "" {
		return stats
	}

	head := args.Head
	if head == "" {
		head = "main"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmp, err := s.code.Compare(ctx, args.GitHubOwner, args.GitHubRepo, args.Base, head)
	if err != nil {
		log.Warn().Err(err).Str("repo", args.GitHubOwner+"/"+args.GitHubRepo).Msg("Commit comparison failed, statistics default to zero")
		return stats
	}

	stats.TotalCommits = cmp.TotalCommits
	stats.FilesChanged = cmp.FilesChanged
	return stats
}

// fetchMergedPullRequests lists the recently merged PRs for the release
// context. Like the commit statistics, a failed lookup degrades to none.
func (s *Server) fetchMergedPullRequests(args releaseNotesArgs) []github.PullRequest {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prs, err := s.code.MergedPullRequests(ctx, args.GitHubOwner, args.GitHubRepo, 20)
	if err != nil {
		log.Warn().Err(err).Str("repo", args.GitHubOwner+"/"+args.GitHubRepo).Msg("Pull request listing failed, omitting from release notes")
		return nil
	}
	return prs
}
