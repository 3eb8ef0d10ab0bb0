package mcp

func (s *Server) listTools() any {
	return map[string]any{
		"tools": []any{
			map[string]any{
				"name":        "find_projects",
				"description": "Search for Jira projects by name or key (at least 3 characters).",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{"type": "string", "description": "Project name or key to search for"},
					},
					"required": []string{"query"},
				},
			},
			map[string]any{
				"name":        "find_boards",
				"description": "Search for Agile boards, optionally filtered by project key or board name.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"project_key": map[string]any{"type": "string", "description": "Optional project key"},
						"name_filter": map[string]any{"type": "string", "description": "Filter by board name"},
					},
				},
			},
			map[string]any{
				"name": "analyze_sprint_health",
				"description": "Score the health of a sprint (0-100) from its issue collection: status breakdown, " +
					"completion rate, blocked work, burndown classification, risks and recommendations. " +
					"The scoring is a deterministic rule-based heuristic over the fetched issues, not a forecast.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sprint_id": map[string]any{"type": "integer", "description": "The sprint ID to analyze"},
					},
					"required": []string{"sprint_id"},
				},
			},
			map[string]any{
				"name": "team_workload_dashboard",
				"description": "Build a per-assignee workload dashboard over currently open issues: assigned/in-progress/stale counts, " +
					"workload status per member, a 0-100 balance score derived from the spread of assigned counts, " +
					"bottlenecks and rebalancing recommendations. Issues without an assignee are excluded.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"project_key": map[string]any{"type": "string", "description": "Optional project key to scope the analysis"},
						"sprint_id":   map[string]any{"type": "integer", "description": "Optional sprint ID to scope the analysis"},
					},
				},
			},
			map[string]any{
				"name": "analyze_issue_text",
				"description": "Classify free-form issue text with keyword heuristics: suggested type, priority, labels and a " +
					"story-point estimate, plus a best-effort search for similar existing issues in the project. " +
					"Matching is case-insensitive substring containment; treat the output as a triage aid, not ground truth.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"project_key": map[string]any{"type": "string", "description": "The project key (e.g., PROJ)"},
						"text":        map[string]any{"type": "string", "description": "The issue description text to analyze"},
					},
					"required": []string{"project_key", "text"},
				},
			},
			map[string]any{
				"name": "create_smart_issue",
				"description": "Classify the given text and create a Jira issue with the inferred type, priority and labels. " +
					"Set dry_run to preview the classification without creating anything.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"project_key": map[string]any{"type": "string", "description": "The project key"},
						"text":        map[string]any{"type": "string", "description": "The issue description text"},
						"summary":     map[string]any{"type": "string", "description": "Optional explicit summary; defaults to the first line of the text"},
						"dry_run":     map[string]any{"type": "boolean", "description": "If true, return the classification without creating the issue"},
					},
					"required": []string{"project_key", "text"},
				},
			},
			map[string]any{
				"name": "generate_release_notes",
				"description": "Generate categorized release notes from issues resolved in a date range: features, improvements, " +
					"bug fixes, breaking changes and deprecations, with contributors and statistics. " +
					"Optionally enrich the statistics from a GitHub commit comparison and publish the result to a Confluence space.",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"project_key":   map[string]any{"type": "string", "description": "The project key"},
						"version":       map[string]any{"type": "string", "description": "The release version label (e.g., 2.3.0)"},
						"from_date":     map[string]any{"type": "string", "description": "Start of the resolution date range (YYYY-MM-DD)"},
						"to_date":       map[string]any{"type": "string", "description": "End of the resolution date range (YYYY-MM-DD)"},
						"github_owner":  map[string]any{"type": "string", "description": "Optional GitHub owner for commit statistics"},
						"github_repo":   map[string]any{"type": "string", "description": "Optional GitHub repository for commit statistics"},
						"base":          map[string]any{"type": "string", "description": "Base ref for the commit comparison (e.g., previous release tag)"},
						"head":          map[string]any{"type": "string", "description": "Head ref for the commit comparison (default: main)"},
						"publish_space": map[string]any{"type": "string", "description": "Optional Confluence space key to publish the notes to"},
					},
					"required": []string{"project_key", "version", "from_date", "to_date"},
				},
			},
		},
	}
}
