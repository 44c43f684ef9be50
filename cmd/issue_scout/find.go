package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/config"
	"github.com/jonathan/issue-scout/internal/pipeline"
	"github.com/jonathan/issue-scout/internal/types"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search, analyze, and rank open-source issues",
	Long: `Searches GitHub for open, unassigned issues matching your preferences, analyzes each candidate with an AI model, and presents the best matches ranked by fit.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runFind,
}

var (
	findConfigPath  string
	findTopic       string
	findLanguage    string
	findSkill       string
	findTime        string
	findLimit       int
	findMaxResults  int
	findNoSeen      bool
	findExport      string
	findVerbose     bool
	findAPIKey      string
	findToken       string
	findModelTier   string
	findConcurrency int
	findDataDir     string
)

func init() {
	// Config file flag (processed first)
	findCmd.Flags().StringVar(&findConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	findCmd.Flags().StringVarP(&findTopic, "topic", "t", "", "Topic or domain to search (e.g. \"web development\", \"machine learning\")")
	findCmd.Flags().StringVarP(&findLanguage, "language", "l", "", "Programming language filter (e.g. go, python)")
	findCmd.Flags().StringVarP(&findSkill, "skill", "s", "", "Your skill level: beginner, intermediate, or advanced")
	findCmd.Flags().StringVar(&findTime, "time", "", "Time budget: quick_win, half_day, full_day, weekend, or deep_dive")
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 0, "Maximum ranked results to present")
	findCmd.Flags().IntVar(&findMaxResults, "max-results", 0, "Maximum issues fetched from GitHub search")
	findCmd.Flags().BoolVar(&findNoSeen, "no-seen", false, "Exclude issues you have already seen")
	findCmd.Flags().StringVarP(&findExport, "export", "o", "", "Export results to a file (.json or .md)")
	findCmd.Flags().BoolVarP(&findVerbose, "verbose", "v", false, "Print detailed debug information")
	findCmd.Flags().StringVar(&findModelTier, "model-tier", "", "Model tier for analysis: lite, standard, or advanced")
	findCmd.Flags().IntVar(&findConcurrency, "concurrency", 0, "Parallel issue analyses")
	findCmd.Flags().StringVar(&findDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	// Credentials can be passed as flags, or read from env vars
	findCmd.Flags().StringVar(&findAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	findCmd.Flags().StringVar(&findToken, "github-token", "", "GitHub personal access token (optional, defaults to GITHUB_TOKEN env var)")

	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if findConfigPath != "" {
		loadedCfg, err := config.LoadConfig(findConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if findVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", findConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("topic") {
		cfg.Topic = findTopic
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = findLanguage
	}
	if cmd.Flags().Changed("skill") {
		cfg.Skill = findSkill
	}
	if cmd.Flags().Changed("time") {
		cfg.TimeBudget = findTime
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = findLimit
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults = findMaxResults
	}
	if cmd.Flags().Changed("model-tier") {
		cfg.ModelTier = findModelTier
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = findConcurrency
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = findDataDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = findAPIKey
	}
	if cmd.Flags().Changed("github-token") {
		cfg.GithubToken = findToken
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = findVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Skill:      string(types.SkillIntermediate),
		TimeBudget: string(types.TimeHalfDay),
		Limit:      10,
		DataDir:    pipeline.DefaultDataDir(),
	}
	cfg = cfg.MergeWithDefaults(defaults)
	if cfg.CachePath == "" {
		cfg.CachePath = pipeline.DefaultCachePath(cfg.DataDir)
	}

	// Step 4: Validate merged inputs
	prefs := &types.UserPreferences{
		Topic:      cfg.Topic,
		Language:   cfg.Language,
		Skill:      types.SkillLevel(cfg.Skill),
		TimeBudget: types.TimeBudget(cfg.TimeBudget),
	}
	if err := prefs.Validate(); err != nil {
		return err
	}

	// Step 5: Credential handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.GithubToken == "" {
		cfg.GithubToken = os.Getenv("GITHUB_TOKEN")
	}

	opts := pipeline.RunOptions{
		Prefs:       prefs,
		MaxResults:  cfg.MaxResults,
		Limit:       cfg.Limit,
		SkipSeen:    findNoSeen,
		ExportPath:  findExport,
		Verbose:     cfg.Verbose,
		APIKey:      cfg.APIKey,
		GithubToken: cfg.GithubToken,
		ModelTier:   cfg.ModelTier,
		Concurrency: cfg.Concurrency,
		DataDir:     cfg.DataDir,
		CachePath:   cfg.CachePath,
		Out:         os.Stdout,
	}

	return pipeline.Run(ctx, opts)
}
