package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/config"
	"github.com/UnitVectorY-Labs/repoexplain/internal/explainer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/fetcher"
	seclog "github.com/UnitVectorY-Labs/repoexplain/internal/log"
	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/UnitVectorY-Labs/repoexplain/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment overrides, e.g. REPOEXPLAIN_API_URL.
const envPrefix = "REPOEXPLAIN"

// NewExplainCmd creates the explain command.
func NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <owner>/<repo>",
		Short: "Explain a repository from its README",
		Long: `Fetch the README of a GitHub repository and print a report with four
sections: Purpose, Stack, How to Run and Gaps/Risks.

The repository may be given as owner/repo or as a github.com URL.

Settings are resolved from built-in defaults, then the config file
(--config, ./.repoexplain.yaml, the XDG config directory, ~/.repoexplain.yaml),
then REPOEXPLAIN_* environment variables, then flags.`,
		Example: `  repoexplain explain pallets/flask
  repoexplain explain https://github.com/golang/go --branch master --json
  GITHUB_TOKEN=... repoexplain explain octo/tool --markdown --render`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one argument, got %d", models.ErrInvalidReference, len(args))
			}
			return nil
		},
		RunE: runExplain,
	}

	cmd.Flags().StringP("branch", "b", "",
		"Branch to read the README from (no fallback when set)")
	cmd.Flags().String("token", "",
		"GitHub token (default $REPOEXPLAIN_TOKEN or $GITHUB_TOKEN)")
	cmd.Flags().BoolP("json", "j", false,
		"Output the report as JSON")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the report as Markdown")
	cmd.Flags().Bool("render", false,
		"Render Markdown output for the terminal (implies --markdown)")
	cmd.Flags().Bool("no-tree", false,
		"Do not fetch the repository file tree")
	cmd.Flags().Bool("no-metadata", false,
		"Do not fetch repository metadata (default branch, license, topics)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("api-url", config.DefaultAPIURL,
		"GitHub REST API base URL")
	cmd.Flags().StringP("config", "c", "",
		"Path to a YAML config file")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ref, err := models.ParseRepoRef(args[0], cfg.Branch)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := seclog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	f, err := fetcher.New(fetcher.Options{
		Token:            cfg.Token,
		BaseURL:          cfg.APIURL,
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout,
		BranchCandidates: cfg.Branches,
		FetchMetadata:    cfg.FetchMetadata,
		FetchTree:        cfg.FetchTree,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	a := analyzer.New(
		analyzer.WithPurposeMaxLength(cfg.PurposeMaxLength),
		analyzer.WithStackRules(cfg.StackRules()...),
	)
	w := report.NewWriter(cfg.Format(), cmd.OutOrStdout(), report.Options{Render: cfg.Render})

	logger.Debug("explaining repository",
		"repository", ref.String(),
		"api_url", cfg.APIURL,
		"anonymous", cfg.Token == "",
		"config_file", cfg.ConfigFilePath,
	)

	return explainer.New(f, a, w, logger).Run(ctx, ref)
}

// buildConfig layers defaults, the config file, environment variables and
// flags, in that order. The result is not validated.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path := config.FindConfigFile(configPath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply config %s: %w", path, err)
		}
		cfg.ConfigFilePath = path
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", envPrefix+"_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}
	for _, name := range []string{"token", "branch", "api-url", "timeout", "no-tree", "no-metadata", "json", "markdown", "render"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}

	// IsSet is true only for changed flags and present env vars, so file
	// values survive untouched defaults.
	if v.IsSet("token") {
		cfg.Token = strings.TrimSpace(v.GetString("token"))
	}
	if v.IsSet("branch") {
		cfg.Branch = strings.TrimSpace(v.GetString("branch"))
	}
	if v.IsSet("api-url") {
		cfg.APIURL = v.GetString("api-url")
	}
	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("no-tree") {
		cfg.FetchTree = !v.GetBool("no-tree")
	}
	if v.IsSet("no-metadata") {
		cfg.FetchMetadata = !v.GetBool("no-metadata")
	}

	cfg.JSONReport = v.GetBool("json")
	cfg.Render = v.GetBool("render")
	cfg.MarkdownReport = v.GetBool("markdown") || cfg.Render

	return cfg, nil
}

// getVerboseFlag reads --verbose from the command or the root.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
