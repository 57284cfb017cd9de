package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/habittracker/structlint/internal/cli/config"
	"github.com/habittracker/structlint/internal/cli/output"
	"github.com/habittracker/structlint/internal/state"
	"github.com/habittracker/structlint/internal/watch"
	"github.com/habittracker/structlint/pkg/lint"
	_ "github.com/habittracker/structlint/pkg/lint/rules" // register rules
	"github.com/habittracker/structlint/pkg/syntax"
	"github.com/spf13/cobra"
)

// ErrIssuesFound is returned by lint when unsuppressed issues remain.
var ErrIssuesFound = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Path     string   // File or directory path
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Record   bool     // Record findings as the new baseline
	Baseline bool     // Suppress findings present in the latest baseline
	Watch    bool     // Re-lint on change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "Run lint rules on syntax tree documents",
		Long: `Analyze syntax tree documents for structural convention violations.

Tree documents are .json, .yaml/.yml or .msgpack files emitted by the parser.
The path defaults to trees_dir from structlint.yaml. Rules can be disabled,
re-graded and configured in the lint section of the project file.

With --record the findings of this run become the baseline; with --baseline
findings already present in the latest recorded run are suppressed.
--record cannot be combined with --watch.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint all tree documents
  structlint lint

  # Lint a specific directory
  structlint lint ./build/trees/model

  # Output as JSON
  structlint lint --format json

  # Disable specific rules
  structlint lint --disable TS01,ST01

  # Only report errors
  structlint lint --severity error

  # Accept current findings, then report only new ones
  structlint lint --record
  structlint lint --baseline`,
		Args: cobra.MaximumNArgs(1),
		// Remaining issues are reported as an error; usage text would
		// corrupt the report.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record findings as the new baseline")
	cmd.Flags().BoolVar(&opts.Baseline, "baseline", false, "Only report findings not in the latest baseline")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when tree documents change")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// lintRun carries the state shared by one-shot and watch mode.
type lintRun struct {
	cfg      *config.Config
	opts     *LintOptions
	analyzer *lint.Analyzer
	logger   *slog.Logger
	r        *output.Renderer
	target   string
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)

	if _, ok := lint.ParseSeverity(opts.Severity); !ok {
		return fmt.Errorf("invalid severity %q (expected error, warning, info or hint)", opts.Severity)
	}
	// Each pass would replace the baseline with its own findings.
	if opts.Watch && opts.Record {
		return errors.New("--record cannot be combined with --watch")
	}

	analyzer, err := lint.NewAnalyzer(buildLintConfig(cmdCtx.Cfg, opts))
	if err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	analyzer.WithLogger(cmdCtx.Logger)

	run := &lintRun{
		cfg:      cmdCtx.Cfg,
		opts:     opts,
		analyzer: analyzer,
		logger:   cmdCtx.Logger,
		r:        cmdCtx.Renderer,
		target:   opts.Path,
	}
	if run.target == "" {
		if err := cmdCtx.Cfg.ValidateDirectories(); err != nil {
			return err
		}
		run.target = cmdCtx.Cfg.TreesDir
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Watch {
		return run.watch(ctx)
	}
	return run.once(ctx)
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := lint.NewConfig()

	// Apply project config first (lower precedence)
	if cfg != nil && cfg.Lint != nil {
		projectLint := cfg.Lint
		for _, id := range projectLint.Disabled {
			lintCfg.Disable(normalizeRuleID(id))
		}
		if len(projectLint.Enabled) > 0 {
			lintCfg.EnableOnly(normalizeRuleIDs(projectLint.Enabled)...)
		}
		for id, sev := range projectLint.Severity {
			if s, ok := lint.ParseSeverity(sev); ok {
				lintCfg.SetSeverity(normalizeRuleID(id), s)
			}
		}
		for id, ruleOpts := range projectLint.Rules {
			lintCfg.SetRuleOptions(normalizeRuleID(id), ruleOpts)
		}
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(normalizeRuleID(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		lintCfg.EnabledRules = make(map[string]bool)
		lintCfg.EnableOnly(normalizeRuleIDs(opts.Rules)...)
	}

	return lintCfg
}

func normalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func normalizeRuleIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = normalizeRuleID(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// lintReport is the outcome of one pass over the target.
type lintReport struct {
	Results    []lintFileResult
	Analyzed   int
	Skipped    int
	Suppressed int
}

// once lints the target, applies baseline handling and renders the results.
func (l *lintRun) once(ctx context.Context) error {
	report, err := l.lint(ctx)
	if err != nil {
		return err
	}

	report.Results = filterBySeverity(report.Results, l.opts.Severity)

	if l.opts.Baseline || l.opts.Record {
		if err := l.applyState(ctx, report); err != nil {
			return err
		}
	}

	if renderLintResults(l.r, report) {
		return ErrIssuesFound
	}
	return nil
}

// lint analyzes every tree document under the target in parallel.
func (l *lintRun) lint(ctx context.Context) (*lintReport, error) {
	files, err := discoverTrees(l.target)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("discovered tree documents", "count", len(files), "path", l.target)

	results := make([]lintFileResult, len(files))
	decoded := make([]bool, len(files))

	jobs := l.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			root, err := decodeTree(path)
			if err != nil {
				l.logger.Warn("skipping tree document", "path", path, "error", err)
				return nil
			}
			decoded[i] = true
			results[i] = lintFileResult{
				Path:        displayPath(l.cfg.ProjectRoot, path),
				Diagnostics: l.analyzer.Analyze(root),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &lintReport{}
	for i, res := range results {
		if !decoded[i] {
			report.Skipped++
			continue
		}
		report.Analyzed++
		if len(res.Diagnostics) > 0 {
			report.Results = append(report.Results, res)
		}
	}
	return report, nil
}

func decodeTree(path string) (*syntax.Node, error) {
	format, err := syntax.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec // G304: path comes from discovery under the trees directory
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return syntax.Decode(f, format)
}

// applyState suppresses baseline findings and records this run, in that order.
func (l *lintRun) applyState(ctx context.Context, report *lintReport) error {
	store := state.NewSQLiteStore(l.logger)
	if err := store.Open(ctx, l.cfg.StatePath); err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current := toFindings(report.Results)

	if l.opts.Baseline {
		baseline, err := store.LatestBaseline(ctx)
		switch {
		case errors.Is(err, state.ErrNoBaseline):
			l.logger.Warn("no baseline recorded, reporting all findings")
		case err != nil:
			return fmt.Errorf("failed to load baseline: %w", err)
		default:
			l.logger.Debug("loaded baseline", "findings", baseline.Len())
			kept, suppressed := baseline.Filter(current)
			report.Results = fromFindings(kept)
			report.Suppressed = suppressed
		}
	}

	if l.opts.Record {
		run, err := store.RecordRun(ctx, report.Analyzed, current)
		if err != nil {
			return err
		}
		l.logger.Info("recorded baseline", "run", run.ID, "findings", run.Findings)
	}
	return nil
}

func toFindings(results []lintFileResult) []state.Finding {
	var findings []state.Finding
	for _, res := range results {
		for _, d := range res.Diagnostics {
			findings = append(findings, state.Finding{
				Path:     res.Path,
				RuleID:   d.RuleID,
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     d.Line,
			})
		}
	}
	return findings
}

// fromFindings regroups findings by path, preserving order.
func fromFindings(findings []state.Finding) []lintFileResult {
	var results []lintFileResult
	for _, f := range findings {
		sev, _ := lint.ParseSeverity(f.Severity)
		d := lint.Diagnostic{
			RuleID:           f.RuleID,
			Severity:         sev,
			Message:          f.Message,
			Line:             f.Line,
			DocumentationURL: lint.BuildDocURL(f.RuleID),
		}
		if n := len(results); n > 0 && results[n-1].Path == f.Path {
			results[n-1].Diagnostics = append(results[n-1].Diagnostics, d)
			continue
		}
		results = append(results, lintFileResult{Path: f.Path, Diagnostics: []lint.Diagnostic{d}})
	}
	return results
}

// watch lints once, then again after every batch of changes until interrupted.
func (l *lintRun) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	info, err := os.Stat(l.target)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", l.target, err)
	}
	dir, match := l.target, syntax.IsTreeDocument
	if !info.IsDir() {
		target := filepath.Clean(l.target)
		dir = filepath.Dir(target)
		match = func(p string) bool { return filepath.Clean(p) == target }
	}

	pass := func(ctx context.Context) {
		if err := l.once(ctx); err != nil && !errors.Is(err, ErrIssuesFound) {
			l.r.Error(err.Error())
		}
	}

	pass(ctx)
	l.r.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", dir))

	return watch.Run(ctx, watch.Options{Dir: dir, Match: match, Logger: l.logger}, func(ctx context.Context, changed []string) {
		l.logger.Info("change detected", "files", len(changed))
		l.r.Println("")
		l.r.StatusLine(fmt.Sprintf("%d changed", len(changed)), "", strings.Join(changed, ", "))
		pass(ctx)
	})
}

func filterBySeverity(results []lintFileResult, severityThreshold string) []lintFileResult {
	threshold, ok := lint.ParseSeverity(severityThreshold)
	if !ok {
		threshold = lint.SeverityWarning
	}

	var filtered []lintFileResult
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{
				Path:        r.Path,
				Diagnostics: diags,
			})
		}
	}
	return filtered
}

func summarize(report *lintReport) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed:   report.Analyzed,
		FilesWithIssues: len(report.Results),
		Suppressed:      report.Suppressed,
	}
	for _, res := range report.Results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

// renderLintResults writes the report and reports whether issues remain.
func renderLintResults(r *output.Renderer, report *lintReport) bool {
	summary := summarize(report)

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := output.LintOutput{
			Summary: summary,
			Files:   []output.LintFileResult{},
		}
		for _, res := range report.Results {
			fileResult := output.LintFileResult{Path: res.Path}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					RuleID:           d.RuleID,
					Severity:         d.Severity.String(),
					Message:          d.Message,
					Line:             d.Line,
					DocumentationURL: d.DocumentationURL,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return summary.TotalIssues > 0
	}

	if len(report.Results) == 0 {
		msg := fmt.Sprintf("No lint issues found in %d files", summary.FilesAnalyzed)
		if summary.Suppressed > 0 {
			msg += fmt.Sprintf(" (%d suppressed by baseline)", summary.Suppressed)
		}
		r.Success(msg)
		return false
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, res := range report.Results {
		if markdown {
			r.Header(2, res.Path)
		} else {
			r.Println(r.Styles().FilePath.Render(res.Path))
		}
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d", d.Line)
			if d.Line == 0 {
				loc = "-"
			}
			if markdown {
				r.Printf("- `%s` line %s **%s** %s\n", d.Severity.String(), loc, d.RuleID, d.Message)
				continue
			}
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-5s", loc)),
				severityStyle(r, d.Severity),
				r.Styles().RuleID.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	line := fmt.Sprintf("Summary: %s in %d of %d files", strings.Join(summaryParts, ", "), summary.FilesWithIssues, summary.FilesAnalyzed)
	if summary.Suppressed > 0 {
		line += fmt.Sprintf(" (%d suppressed by baseline)", summary.Suppressed)
	}
	r.Println(line)

	return true
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
