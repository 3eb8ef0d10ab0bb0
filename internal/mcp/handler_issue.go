package mcp

import (
	"fmt"
	"strings"

	"devhub-mcp/internal/analytics"
	"devhub-mcp/internal/jira"

	"github.com/rs/zerolog/log"
)

// handleAnalyzeText classifies the text and attaches best-effort similar
// issues. The lookup never fails the call: any search error degrades to an
// empty list.
func (s *Server) handleAnalyzeText(projectKey, text string) (any, error) {
	if projectKey == "" || text == "" {
		return nil, fmt.Errorf("project_key and text are required")
	}

	analysis := analytics.ClassifyText(text)
	analysis.AttachSimilarIssues(s.findSimilarIssues(projectKey, text))
	return analysis, nil
}

// handleCreateSmartIssue classifies the text and creates the issue with the
// inferred fields. With dry_run the classification is returned unused.
func (s *Server) handleCreateSmartIssue(projectKey, text, summary string, dryRun bool) (any, error) {
	if projectKey == "" || text == "" {
		return nil, fmt.Errorf("project_key and text are required")
	}

	analysis := analytics.ClassifyText(text)
	analysis.AttachSimilarIssues(s.findSimilarIssues(projectKey, text))

	if summary == "" {
		summary = firstLine(text)
	}

	result := map[string]any{
		"analysis": analysis,
		"summary":  summary,
	}
	if dryRun {
		result["dryRun"] = true
		return result, nil
	}

	key, err := s.jira.CreateIssue(jira.CreateIssueRequest{
		ProjectKey:  projectKey,
		Summary:     summary,
		Description: text,
		IssueType:   analysis.SuggestedType,
		Priority:    analysis.SuggestedPriority,
		Labels:      analysis.SuggestedLabels,
	})
	if err != nil {
		return nil, err
	}

	result["key"] = key
	return result, nil
}

// findSimilarIssues runs the best-effort text search. Failures are logged
// and swallowed: the classifier result stands on its own.
func (s *Server) findSimilarIssues(projectKey, text string) []analytics.SimilarIssue {
	terms := analytics.SearchTerms(text)
	if len(terms) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, fmt.Sprintf("summary ~ %q", term))
	}
	jql := fmt.Sprintf("project = %s AND (%s) ORDER BY created DESC", projectKey, strings.Join(clauses, " OR "))

	response, err := s.jira.SearchIssues(jql, 0, 3)
	if err != nil {
		log.Debug().Err(err).Str("project", projectKey).Msg("Similar-issue search failed, returning none")
		return nil
	}

	similar := make([]analytics.SimilarIssue, 0, len(response.Issues))
	for _, dto := range response.Issues {
		similar = append(similar, analytics.SimilarIssue{
			Key:     dto.Key,
			Summary: dto.Fields.Summary,
			// Placeholder rank: the tracker's text search does not expose a
			// usable relevance score.
			Similarity: 0.5,
		})
	}
	return similar
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if len(text) > 120 {
		text = text[:120]
	}
	return text
}
