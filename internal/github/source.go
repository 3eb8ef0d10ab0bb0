// Package github wraps the source-control API used for release-note
// statistics. The capability is optional: a nil *Source means absent.
package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v62/github"
	"github.com/rs/zerolog/log"
)

// ComparisonStats is the subset of a commit comparison the analytics use.
type ComparisonStats struct {
	TotalCommits int `json:"totalCommits"`
	FilesChanged int `json:"filesChanged"`
}

// PullRequest is a thin view over a merged pull request.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Source provides read access to commits and pull requests.
type Source struct {
	client *gh.Client
}

// NewSource creates a Source authenticated with the given token.
func NewSource(token string) *Source {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Source{client: client}
}

// Compare fetches the commit comparison between base and head.
func (s *Source) Compare(ctx context.Context, owner, repo, base, head string) (*ComparisonStats, error) {
	cmp, _, err := s.client.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s...%s in %s/%s: %w", base, head, owner, repo, err)
	}

	stats := &ComparisonStats{
		TotalCommits: cmp.GetTotalCommits(),
		FilesChanged: len(cmp.Files),
	}
	log.Debug().Str("repo", owner+"/"+repo).Int("commits", stats.TotalCommits).Msg("Fetched commit comparison")
	return stats, nil
}

// MergedPullRequests lists recently closed PRs that were actually merged.
func (s *Source) MergedPullRequests(ctx context.Context, owner, repo string, limit int) ([]PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	prs, _, err := s.client.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
	}

	merged := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}
		merged = append(merged, PullRequest{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			Author: pr.GetUser().GetLogin(),
		})
	}
	return merged, nil
}
