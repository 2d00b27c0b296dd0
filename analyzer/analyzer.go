package analyzer

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/viant/afs"
	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/analyzer/classifier"
	"github.com/viant/diffgate/analyzer/scoring"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/diff"
	"github.com/viant/diffgate/inspector"
	"github.com/viant/diffgate/source"
	"github.com/viant/diffgate/telemetry"
	"golang.org/x/sync/errgroup"
)

// Analyzer maps diff lines onto code units, classifies and scores them
type Analyzer struct {
	config      *config.Config
	factory     *inspector.Factory
	classifier  *classifier.Classifier
	logger      *slog.Logger
	metrics     *telemetry.Metrics
	concurrency int
	fs          afs.Service
}

// New creates an analyzer for a validated configuration; nil uses config.Default
func New(cfg *config.Config, options ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ret := &Analyzer{
		config:      cfg,
		factory:     inspector.NewFactory(nil),
		classifier:  classifier.New(cfg.Classification),
		logger:      slog.Default(),
		concurrency: runtime.NumCPU(),
		fs:          afs.New(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.concurrency < 1 {
		ret.concurrency = 1
	}
	return ret, nil
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() *config.Config {
	return a.config
}

// AnalyzeDiff parses unified diff text and analyzes it
func (a *Analyzer) AnalyzeDiff(ctx context.Context, text string, accessor source.Accessor) (*change.Result, error) {
	files, err := diff.Parse(text)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, files, accessor)
}

// Analyze maps every file diff onto its code units and scores the production changes.
// Files are processed concurrently; results are folded in diff order.
func (a *Analyzer) Analyze(ctx context.Context, files []*diff.FileDiff, accessor source.Accessor) (*change.Result, error) {
	started := time.Now()
	partials := make([]*partial, len(files))
	group := errgroup.Group{}
	group.SetLimit(a.concurrency)
	for i, file := range files {
		group.Go(func() error {
			partials[i] = a.mapFile(ctx, file, accessor)
			return nil
		})
	}
	_ = group.Wait()

	result := &change.Result{
		Changes: []*change.Change{},
		Scope: change.Scope{
			AnalyzedFiles:   []string{},
			SkippedFiles:    []*change.SkippedFile{},
			IgnoredPatterns: []string{},
			Files:           []*change.FileRecord{},
		},
	}
	for _, p := range partials {
		if p.err != nil {
			return nil, p.err
		}
		if p.ignored != "" {
			result.Scope.AddIgnoredPattern(p.ignored)
		}
		if p.skipped != nil {
			result.Scope.SkippedFiles = append(result.Scope.SkippedFiles, p.skipped)
			a.metrics.File(telemetry.OutcomeSkipped)
			continue
		}
		result.Scope.AnalyzedFiles = append(result.Scope.AnalyzedFiles, p.path)
		result.Scope.Files = append(result.Scope.Files, p.record)
		result.Changes = append(result.Changes, p.changes...)
		if p.record.Deleted {
			a.metrics.File(telemetry.OutcomeDeleted)
		} else {
			a.metrics.File(telemetry.OutcomeAnalyzed)
		}
		for _, aChange := range p.changes {
			a.metrics.Change(string(aChange.Classification))
		}
	}
	result.Summary = scoring.Score(result.Changes, a.config.Weights, a.config.Limits)
	elapsed := time.Since(started)
	a.metrics.Run(result.Summary.WeightedScore, elapsed)
	a.logger.Info("analysis complete",
		"files", len(files),
		"analyzed", len(result.Scope.AnalyzedFiles),
		"skipped", len(result.Scope.SkippedFiles),
		"changes", len(result.Changes),
		"weightedScore", result.Summary.WeightedScore,
		"exceedsLimit", result.Summary.ExceedsLimit,
		"elapsed", elapsed)
	return result, nil
}
