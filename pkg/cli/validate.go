package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nigelhorne/schema-validator/pkg/config"
	"github.com/nigelhorne/schema-validator/pkg/extract"
	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/report"
	"github.com/nigelhorne/schema-validator/pkg/schema"
	"github.com/nigelhorne/schema-validator/pkg/validation"
	"github.com/nigelhorne/schema-validator/pkg/vocabulary"
)

// Block outcomes recorded in metrics
const (
	blockOK      = "ok"
	blockSkipped = "skipped"
	blockPanic   = "panic"
)

type validateOptions struct {
	file        string
	configPath  string
	sarifOut    string
	metricsFile string
	logLevel    string
	github      bool
	annotations bool
	dynamic     bool
	watch       bool
	rules       bool
}

// newValidateCommand creates the validate command
func newValidateCommand(stdout, stderr io.Writer) *Command {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &validateOptions{}
	fs.StringVar(&opts.file, "file", "", "Path or URL of the HTML or JSON-LD document (required)")
	fs.BoolVar(&opts.github, "github", false, "Write a SARIF report instead of text output")
	fs.BoolVar(&opts.annotations, "annotations", false, "Also print GitHub Actions annotations to stderr")
	fs.BoolVar(&opts.dynamic, "dynamic", false, "Also validate against the schema.org vocabulary")
	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: .schema-validator.yaml if present)")
	fs.StringVar(&opts.sarifOut, "sarif-out", report.DefaultSARIFPath, "SARIF report path")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.watch, "watch", false, "Re-validate a local file whenever it changes")
	fs.BoolVar(&opts.rules, "rules", false, "List available rules and exit")

	return &Command{
		Name:        "validate",
		Description: "Validate the JSON-LD in a page or file",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					return nil
				}
				return &ExitError{Code: report.ExitFailure, Err: err}
			}

			explicit := make(map[string]bool)
			fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runValidate(ctx, opts, explicit, stdout, stderr)
		},
	}
}

// apply layers explicitly set flags over the loaded configuration
func (o *validateOptions) apply(cfg *config.Config, explicit map[string]bool) {
	if o.dynamic {
		cfg.Dynamic = true
	}
	if explicit["sarif-out"] {
		cfg.Output.SARIFPath = o.sarifOut
	}
	if explicit["metrics-file"] {
		cfg.Output.MetricsFile = o.metricsFile
	}
	if explicit["log-level"] {
		cfg.LogLevel = o.logLevel
	}
}

func runValidate(ctx context.Context, opts *validateOptions, explicit map[string]bool, stdout, stderr io.Writer) error {
	if opts.rules {
		return writeRules(stdout)
	}
	if opts.file == "" {
		return &ExitError{Code: report.ExitFailure, Err: errors.New("--file is required")}
	}
	if opts.watch && extract.IsURL(opts.file) {
		return &ExitError{Code: report.ExitFailure, Err: errors.New("--watch needs a local file")}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return &ExitError{Code: report.ExitFailure, Err: err}
	}
	opts.apply(cfg, explicit)
	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: report.ExitFailure, Err: err}
	}

	logger := observability.NewLogger(cfg.Level(), stderr)
	promRegistry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promRegistry)

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	r := &runner{
		cfg:         cfg,
		github:      opts.github,
		annotations: opts.annotations,
		loader:      vocabulary.NewLoader(cfg.LoaderConfig(), store, logger, metrics),
		validator:   validation.NewValidator(logger, metrics),
		logger:      logger,
		metrics:     metrics,
		stdout:      stdout,
		stderr:      stderr,
		httpClient:  &http.Client{Timeout: cfg.Vocabulary.FetchTimeout},
	}

	var code int
	if opts.watch {
		code, err = r.watch(ctx, opts.file)
	} else {
		code, err = r.run(ctx, opts.file)
	}

	metrics.SetExitCode(code)
	if cfg.Output.MetricsFile != "" {
		if werr := observability.WriteTextfile(promRegistry, cfg.Output.MetricsFile); werr != nil {
			logger.WithError(werr).Warn("failed to write metrics")
		}
	}

	if err != nil {
		return &ExitError{Code: report.ExitFailure, Err: err}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// openStore selects the Redis cache when configured, falling back to the
// cache directory when Redis cannot be reached.
func openStore(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (vocabulary.Store, func()) {
	if cfg.Vocabulary.RedisURL != "" {
		store, err := vocabulary.NewRedisStore(ctx, cfg.Vocabulary.RedisURL)
		if err == nil {
			return store, func() { store.Close() }
		}
		logger.WithError(err).Warn("redis vocabulary cache unavailable, using cache directory")
	}
	if cfg.Vocabulary.CacheDir == "" {
		return nil, func() {}
	}
	return vocabulary.NewFileStore(cfg.Vocabulary.CacheDir), func() {}
}

// runner performs one validation pass over an input
type runner struct {
	cfg         *config.Config
	github      bool
	annotations bool
	loader      *vocabulary.Loader
	validator   *validation.Validator
	logger      logrus.FieldLogger
	metrics     *observability.Metrics
	stdout      io.Writer
	stderr      io.Writer
	httpClient  *http.Client
}

// run validates location and writes the report. The returned code is the
// finding-derived exit status; an error means the input could not be read.
func (r *runner) run(ctx context.Context, location string) (int, error) {
	data, err := extract.Read(ctx, r.httpClient, location)
	if err != nil {
		return report.ExitFailure, err
	}

	blocks, err := extract.Blocks(data)
	if errors.Is(err, extract.ErrNoBlocks) {
		r.logger.WithField("input", location).Warn("no JSON-LD blocks found")
	} else if err != nil {
		return report.ExitFailure, err
	}

	registry := schema.New()
	if r.cfg.Dynamic {
		if err := r.loader.LoadInto(ctx, registry); err != nil {
			r.logger.WithError(err).Warn("vocabulary unavailable, dynamic checks will find no definitions")
		}
	}

	vctx := validation.NewContext(registry, r.cfg.Dynamic)
	for i, block := range blocks {
		r.validateBlock(block, i, vctx)
	}

	findings := vctx.Findings()
	code := report.ExitCode(findings)

	// Annotations never go to stdout, which carries only the report
	if r.annotations && r.stderr != nil {
		if err := report.WriteAnnotations(r.stderr, findings, location); err != nil {
			return report.ExitFailure, err
		}
	}

	if r.github {
		sarif := report.BuildSARIF(findings, location, Version)
		if err := report.WriteSARIF(r.cfg.Output.SARIFPath, sarif); err != nil {
			return report.ExitFailure, err
		}
		if _, err := fmt.Fprintf(r.stdout, "SARIF report written to %s (%d findings)\n", r.cfg.Output.SARIFPath, len(findings)); err != nil {
			return report.ExitFailure, err
		}
		return code, nil
	}

	if err := report.WriteText(r.stdout, findings, vctx.Passes()); err != nil {
		return report.ExitFailure, err
	}
	if err := report.WriteSummary(r.stdout, findings); err != nil {
		return report.ExitFailure, err
	}
	return code, nil
}

// validateBlock validates one JSON-LD block. Malformed blocks are skipped
// and a panic only loses the block that caused it.
func (r *runner) validateBlock(block []byte, index int, vctx *validation.Context) {
	logger := r.logger.WithField("block", index)

	defer func() {
		if rec := recover(); rec != nil {
			logger.WithError(observability.MustRecover(rec)).Error("validation aborted, skipping block")
			r.metrics.RecordBlock(blockPanic)
		}
	}()

	start := time.Now()
	if err := r.validator.ValidateDocument(block, vctx); err != nil {
		logger.WithError(err).Warn("skipping malformed JSON-LD block")
		r.metrics.RecordBlock(blockSkipped)
		return
	}
	logger.WithField("elapsed", time.Since(start)).Debug("validated block")
	r.metrics.RecordBlock(blockOK)
}
