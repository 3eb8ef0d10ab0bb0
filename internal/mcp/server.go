package mcp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"devhub-mcp/internal/confluence"
	"devhub-mcp/internal/github"
	"devhub-mcp/internal/jira"

	"github.com/rs/zerolog/log"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// Sentinel errors for tools that need an unconfigured capability. They are
// returned instead of dereferencing an absent client.
var (
	ErrGitHubUnavailable     = errors.New("GitHub capability is not configured: set GITHUB_TOKEN to enable source-control statistics")
	ErrConfluenceUnavailable = errors.New("Confluence capability is not configured: set CONFLUENCE_URL to enable publishing")
)

// Server holds the collaborator handles for the MCP server. The Jira client
// is always present; code and wiki may be nil (absent capability).
type Server struct {
	jira jira.Client
	code *github.Source
	wiki *confluence.Publisher
}

// NewServer creates a new MCP server.
func NewServer(jiraClient jira.Client, code *github.Source, wiki *confluence.Publisher) *Server {
	return &Server{jira: jiraClient, code: code, wiki: wiki}
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result any
	var errRes any

	switch req.Method {
	case "initialize":
		result = map[string]any{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]any{},
			"serverInfo": map[string]any{
				"name":    "devhub-mcp",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]any{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (any, any) {
	var call struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]any{"code": -32602, "message": "Invalid params"}
	}

	log.Debug().Str("tool", call.Name).Msg("Tool call")

	var data any
	var err error

	switch call.Name {
	case "find_projects":
		data, err = s.jira.FindProjects(argString(call.Arguments, "query"))
	case "find_boards":
		data, err = s.jira.FindBoards(argString(call.Arguments, "project_key"), argString(call.Arguments, "name_filter"))
	case "analyze_sprint_health":
		data, err = s.handleSprintHealth(argInt(call.Arguments, "sprint_id"))
	case "team_workload_dashboard":
		data, err = s.handleWorkloadDashboard(argString(call.Arguments, "project_key"), argInt(call.Arguments, "sprint_id"))
	case "analyze_issue_text":
		data, err = s.handleAnalyzeText(argString(call.Arguments, "project_key"), argString(call.Arguments, "text"))
	case "create_smart_issue":
		data, err = s.handleCreateSmartIssue(
			argString(call.Arguments, "project_key"),
			argString(call.Arguments, "text"),
			argString(call.Arguments, "summary"),
			argBool(call.Arguments, "dry_run"))
	case "generate_release_notes":
		data, err = s.handleReleaseNotes(releaseNotesArgs{
			ProjectKey:   argString(call.Arguments, "project_key"),
			Version:      argString(call.Arguments, "version"),
			FromDate:     argString(call.Arguments, "from_date"),
			ToDate:       argString(call.Arguments, "to_date"),
			GitHubOwner:  argString(call.Arguments, "github_owner"),
			GitHubRepo:   argString(call.Arguments, "github_repo"),
			Base:         argString(call.Arguments, "base"),
			Head:         argString(call.Arguments, "head"),
			PublishSpace: argString(call.Arguments, "publish_space"),
		})
	default:
		return nil, map[string]any{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		log.Error().Err(err).Str("tool", call.Name).Msg("Tool call failed")
		return nil, map[string]any{"code": -32000, "message": err.Error()}
	}

	return map[string]any{
		"content": []any{
			map[string]any{
				"type": "text",
				"text": formatResult(data),
			},
		},
	}, nil
}
