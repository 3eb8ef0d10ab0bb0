package mcp

import (
	"fmt"

	"devhub-mcp/internal/analytics"
	"devhub-mcp/internal/jira"

	"github.com/rs/zerolog/log"
)

// handleSprintHealth fetches the sprint's issues and scores them. The sprint
// name lookup is best-effort: when the agile API fails we keep a synthesized
// name rather than failing the analysis.
func (s *Server) handleSprintHealth(sprintID int) (any, error) {
	if sprintID == 0 {
		return nil, fmt.Errorf("sprint_id is required")
	}

	response, err := s.jira.SearchIssues(fmt.Sprintf("sprint = %d", sprintID), 0, 200)
	if err != nil {
		return nil, err
	}
	issues := jira.MapIssues(response)

	name := s.resolveSprintName(sprintID)

	result := analytics.ScoreSprintHealth(sprintID, name, issues)
	log.Info().Int("sprint", sprintID).Int("score", result.HealthScore).Str("status", result.HealthStatus).Msg("Scored sprint health")
	return result, nil
}

// resolveSprintName returns the sprint's display name, or "Sprint <id>" when
// the agile API lookup fails.
func (s *Server) resolveSprintName(sprintID int) string {
	sprint, err := s.jira.GetSprint(sprintID)
	if err != nil {
		log.Warn().Err(err).Int("sprint", sprintID).Msg("Sprint name lookup failed, using fallback")
		return fmt.Sprintf("Sprint %d", sprintID)
	}
	return sprint.Name
}
