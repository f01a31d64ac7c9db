package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/ghost-vault/internal/config"
	"github.com/Kamar-Folarin/ghost-vault/internal/github"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/output"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

var (
	scorePolicy string
	jsonOutput  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ui.Success("Migrations applied (%s)", a.store.Dialect())
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <github-url>",
	Short: "Fetch a repository and print its health score",
	Long: `Fetch a GitHub repository and score its health without storing anything.
Output is a table on a terminal and JSON otherwise; --json forces JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scoreRun(cmd.Context(), args[0])
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one sweep: expire overdue projects and rescore stale ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sweepRun(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ghostvault %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scorePolicy, "policy", health.PolicyDetailed, "Scoring policy: detailed or submission")
	scoreCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	sweepCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")

	rootCmd.AddCommand(migrateCmd, scoreCmd, sweepCmd, versionCmd)
}

func wantJSON() bool {
	return jsonOutput || !output.IsTerminal(os.Stdout)
}

func scoreRun(ctx context.Context, repoURL string) error {
	// Scoring never touches the database, so its settings are not validated.
	cfg, err := config.Read(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	logger.SetOutput(os.Stderr)

	client, err := github.NewClient(cfg.GitHub, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	projects := vault.NewProjectService(nil, client, health.SubmissionPolicy{}, logger)
	report, err := projects.ScoreURL(ctx, repoURL, scorePolicy)
	if err != nil {
		return err
	}

	if wantJSON() {
		return ui.JSON(report)
	}
	ui.Score(report.RepoFullName, report.Facts, report.Score, projects.Now())
	return nil
}

func sweepRun(ctx context.Context) error {
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	a.logger.SetOutput(os.Stderr)

	status, err := a.sweeper.RunOnce(ctx)
	if err != nil {
		return err
	}

	if wantJSON() {
		return ui.JSON(status)
	}
	ui.Success("Sweep finished: %d expired, %d rescored", status.Expired, status.Rescored)
	for _, msg := range status.Errors {
		ui.Warning("%s", msg)
	}
	return nil
}
