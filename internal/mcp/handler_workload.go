package mcp

import (
	"fmt"
	"time"

	"devhub-mcp/internal/analytics"
	"devhub-mcp/internal/jira"

	"github.com/rs/zerolog/log"
)

// handleWorkloadDashboard groups currently open assigned issues by member
// and computes the balance metrics. Both filters are optional; without them
// the query covers every open assigned issue visible to the credentials.
func (s *Server) handleWorkloadDashboard(projectKey string, sprintID int) (any, error) {
	var projectClause, sprintClause string
	if projectKey != "" {
		projectClause = fmt.Sprintf("project = %s", projectKey)
	}
	if sprintID != 0 {
		sprintClause = fmt.Sprintf("sprint = %d", sprintID)
	}

	jql := composeJQL(projectClause, sprintClause, "assignee is not EMPTY", "resolution is EMPTY")

	response, err := s.jira.SearchIssues(jql, 0, 500)
	if err != nil {
		return nil, err
	}
	issues := jira.MapIssues(response)

	dashboard := analytics.BuildWorkloadDashboard(issues, time.Now())
	log.Info().Int("team", dashboard.TeamSize).Int("balance", dashboard.BalanceScore).Msg("Built workload dashboard")
	return dashboard, nil
}
