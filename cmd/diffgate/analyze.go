package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/viant/diffgate/analyzer"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/inspector/repository"
	"github.com/viant/diffgate/report"
	"github.com/viant/diffgate/source"
	"github.com/viant/diffgate/telemetry"
)

const defaultConfigFile = ".diffgate.yaml"

// ErrLimitExceeded is returned when the diff exceeds a limit and fail_on_exceed is set
var ErrLimitExceeded = errors.New("limits exceeded")

type analyzeOptions struct {
	diffFile           string
	configFile         string
	format             string
	maxUnits           int
	maxScore           int
	maxLines           int
	baseDir            string
	workers            int
	abortOnAccessError bool
	metricsFile        string
	verbose            bool
}

// newAnalyzeCmd creates the analyze sub command, e.g.
//
//	git diff main... | diffgate analyze --format human
//	diffgate analyze --diff-file pr.diff --max-score 50
func newAnalyzeCmd() *cobra.Command {
	options := analyzeOptions{
		configFile: defaultConfigFile,
		workers:    runtime.NumCPU(),
	}
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a unified diff and score its production changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, &options)
		},
	}
	flags := analyzeCmd.Flags()
	flags.StringVar(&options.diffFile, "diff-file", "", "unified diff file, stdin when empty")
	flags.StringVar(&options.configFile, "config", options.configFile, "YAML configuration file")
	flags.StringVar(&options.format, "format", "", "output format: github, json, human or comment")
	flags.IntVar(&options.maxUnits, "max-units", 0, "maximum production units")
	flags.IntVar(&options.maxScore, "max-score", 0, "maximum weighted score")
	flags.IntVar(&options.maxLines, "max-lines", 0, "maximum production lines added")
	flags.StringVar(&options.baseDir, "base-dir", "", "directory diff paths are relative to, detected repository root when empty")
	flags.IntVar(&options.workers, "workers", options.workers, "number of files analyzed concurrently")
	flags.BoolVar(&options.abortOnAccessError, "abort-on-access-error", false, "fail when a changed file cannot be read")
	flags.StringVar(&options.metricsFile, "metrics-file", "", "write prometheus metrics in text format to this file")
	flags.BoolVar(&options.verbose, "verbose", false, "enable debug logging")
	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, options *analyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if options.workers <= 0 {
		return errors.New("workers must be greater than 0")
	}
	level := slog.LevelInfo
	if options.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(ctx, cmd, options)
	if err != nil {
		return err
	}
	text, err := readDiff(cmd, options.diffFile)
	if err != nil {
		return err
	}
	baseDir := options.baseDir
	if baseDir == "" {
		baseDir = "."
		if repo, err := repository.New().DetectRepository(ctx, "."); err == nil {
			baseDir = repo.Root
			logger.Debug("detected repository", "kind", repo.Kind, "root", repo.Root, "name", repo.Name)
		}
	}

	analyzerOptions := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithConcurrency(options.workers),
	}
	var registry *prometheus.Registry
	if options.metricsFile != "" {
		registry = prometheus.NewRegistry()
		metrics, err := telemetry.New(registry)
		if err != nil {
			return err
		}
		analyzerOptions = append(analyzerOptions, analyzer.WithMetrics(metrics))
	}
	srv, err := analyzer.New(cfg, analyzerOptions...)
	if err != nil {
		return err
	}
	result, err := srv.AnalyzeDiff(ctx, text, source.NewFS(baseDir))
	if err != nil {
		return err
	}
	if registry != nil {
		if err := telemetry.WriteFile(options.metricsFile, registry); err != nil {
			return err
		}
	}
	if err := report.Write(cmd.OutOrStdout(), result, cfg); err != nil {
		return err
	}
	if result.Summary.ExceedsLimit && cfg.Limits.FailOnExceed {
		return ErrLimitExceeded
	}
	return nil
}

// loadConfig loads the config file, falling back to defaults when the default file is absent, then applies flags
func loadConfig(ctx context.Context, cmd *cobra.Command, options *analyzeOptions) (*config.Config, error) {
	cfg := config.Default()
	explicit := cmd.Flags().Changed("config")
	if _, err := os.Stat(options.configFile); err == nil || explicit {
		loaded, err := config.Load(ctx, options.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", options.configFile, err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(options.format))
	}
	if flags.Changed("max-units") {
		cfg.Limits.MaxProdUnits = config.Int(options.maxUnits)
	}
	if flags.Changed("max-score") {
		cfg.Limits.MaxWeightedScore = config.Int(options.maxScore)
	}
	if flags.Changed("max-lines") {
		cfg.Limits.MaxProdLines = config.Int(options.maxLines)
	}
	if options.abortOnAccessError {
		cfg.OnAccessError = config.AccessAbort
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDiff(cmd *cobra.Command, diffFile string) (string, error) {
	if diffFile == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read diff from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(diffFile)
	if err != nil {
		return "", fmt.Errorf("failed to read diff: %w", err)
	}
	return string(data), nil
}
