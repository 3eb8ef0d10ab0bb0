package commands

import (
	"devhub-mcp/internal/config"
	"devhub-mcp/internal/confluence"
	"devhub-mcp/internal/github"
	"devhub-mcp/internal/jira"
	"devhub-mcp/internal/logging"
	"devhub-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	jiraClient jira.Client
	codeSource *github.Source
	wikiClient *confluence.Publisher
)

var rootCmd = &cobra.Command{
	Use:   "devhub-mcp",
	Short: "devhub-mcp is an MCP server for issue-tracker, source-control and wiki analytics",
	Long: `An MCP Server that exposes Jira, GitHub and Confluence operations as tools
and layers deterministic analytics (sprint health scoring, workload balancing,
issue-text classification, release-note generation) over the fetched data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		jiraClient = jira.NewClient(cfg.Jira)

		// Optional capabilities stay nil when unconfigured; tools that need
		// them return a distinguished error instead.
		if cfg.HasGitHub() {
			codeSource = github.NewSource(cfg.GitHubToken)
		}
		if cfg.HasConfluence() {
			wikiClient = confluence.NewPublisher(cfg.Confluence)
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Bool("github", cfg.HasGitHub()).
			Bool("confluence", cfg.HasConfluence()).
			Msg("devhub-mcp starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(jiraClient, codeSource, wikiClient)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Stdio loop terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
