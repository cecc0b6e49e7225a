package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/fishcap/internal/chart"
	"github.com/verte-zerg/fishcap/internal/config"
	"github.com/verte-zerg/fishcap/internal/export"
	"github.com/verte-zerg/fishcap/internal/generator"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/store"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

const (
	defaultExportTitle = export.DefaultTitle
	defaultSeedTools   = 5
	reportAll          = "all"
)

var (
	reportView       string
	reportSort       string
	reportCategories []string
	reportColor      bool
	reportShort      bool

	exportOut      string
	exportOpen     bool
	exportTitle    string
	exportCompare  []string
	exportMaxValue float64

	seedTools int
	seedValue int64
)

// loadAssessment returns the named assessment, or the first stored one.
// Samples are seeded into an empty database first.
func loadAssessment(ctx context.Context, st *store.Store, tax *taxonomy.Taxonomy, name string) (model.Assessment, error) {
	if _, err := st.EnsureSamples(ctx, generator.Samples(tax)); err != nil {
		return model.Assessment{}, fmt.Errorf("failed to seed samples: %w", err)
	}
	if name != "" {
		a, err := st.GetAssessment(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			return model.Assessment{}, fmt.Errorf("assessment %q not found (run: fishcap list)", name)
		}
		return a, err
	}
	all, err := st.ListAssessments(ctx)
	if err != nil {
		return model.Assessment{}, err
	}
	if len(all) == 0 {
		return model.Assessment{}, errors.New("no assessments stored")
	}
	return all[0], nil
}

func argName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [assessment]",
		Short: "Print charts for an assessment",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportView, "view", reportAll, "chart to print: bars, radar, heat or all")
	cmd.Flags().StringVar(&reportSort, "sort", defaultSort, "bar order: category, value-desc or value-asc")
	cmd.Flags().StringSliceVar(&reportCategories, "categories", nil, "categories to show (default: all)")
	cmd.Flags().BoolVar(&reportColor, "color", false, "force colored output")
	cmd.Flags().BoolVar(&reportShort, "short-labels", false, "use abbreviated metric labels")
	return cmd
}

type reportOptions struct {
	View       string
	Sort       score.SortMode
	Categories []string
	Short      bool
	Width      int
	Style      chart.Style
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	sortMode, err := score.ParseSortMode(reportSort)
	if err != nil {
		return fmt.Errorf("invalid --sort value: %w", err)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tax := taxonomy.Default()
	a, err := loadAssessment(cmd.Context(), st, tax, argName(args))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	opt := reportOptions{
		View:       reportView,
		Sort:       sortMode,
		Categories: reportCategories,
		Short:      reportShort,
		Width:      chart.TerminalWidth(),
		Style:      chart.StyleFor(out, reportColor),
	}
	return renderReport(out, tax, a, opt)
}

func renderReport(w io.Writer, tax *taxonomy.Taxonomy, a model.Assessment, opt reportOptions) error {
	sel := score.NewSelection(tax.CategoryNames()...)
	if len(opt.Categories) > 0 {
		sel = score.NewSelection()
		for _, name := range opt.Categories {
			name = strings.TrimSpace(name)
			if _, ok := tax.Category(name); !ok {
				return fmt.Errorf("unknown category %q (available: %s)", name, strings.Join(tax.CategoryNames(), ", "))
			}
			sel.Add(name)
		}
	}
	switch opt.View {
	case reportAll, string(model.ViewBars), string(model.ViewRadar), string(model.ViewHeat):
	default:
		return fmt.Errorf("--view must be one of bars, radar, heat or all")
	}

	values := sel.Filter(tax, a.Scores)
	chartOpt := chart.Options{
		Width: opt.Width,
		Max:   score.ScaleMax(a.Scores, score.Ceiling),
		Short: opt.Short,
		Style: opt.Style,
	}

	lines := []string{a.Name}
	if a.Subject != "" {
		lines = append(lines, "Subject: "+a.Subject)
	}
	lines = append(lines, "")
	rows := [][]string{}
	for _, stat := range score.Summarize(tax, a.Scores) {
		rows = append(rows, []string{stat.Name, chart.FormatValue(stat.Average, false)})
	}
	lines = append(lines, chart.FormatTable([]string{"Category", "Average"}, rows, map[int]bool{1: true})...)
	if strongest, weakest, ok := score.Extremes(tax, a.Scores); ok {
		lines = append(lines, "", fmt.Sprintf("Strongest: %s %s | Weakest: %s %s",
			tax.Label(strongest, opt.Short), chart.FormatValue(a.Scores[strongest], false),
			tax.Label(weakest, opt.Short), chart.FormatValue(a.Scores[weakest], false)))
	}
	if a.Recommendation != "" {
		lines = append(lines, "Recommendation: "+a.Recommendation)
	}

	if opt.View == reportAll || opt.View == string(model.ViewBars) {
		order := score.Order(tax, values, opt.Sort, sel)
		lines = append(lines, "", chart.Legend(sel.Visible(tax), opt.Style), "")
		lines = append(lines, chart.Bars(tax, values, order, chartOpt)...)
	}
	if opt.View == reportAll || opt.View == string(model.ViewRadar) {
		axes := []chart.Axis{}
		series := chart.RadarSeries{Name: a.Name}
		for _, name := range sel.VisibleMetrics(tax) {
			color := ""
			if c, ok := tax.CategoryOf(name); ok {
				color = c.Color
			}
			axes = append(axes, chart.Axis{Label: tax.Label(name, opt.Short), Color: color, Value: values[name]})
			series.Values = append(series.Values, values[name])
			series.EdgeColors = append(series.EdgeColors, color)
		}
		radarOpt := chartOpt
		radarOpt.Width = minInt(opt.Width, 48)
		lines = append(lines, "")
		lines = append(lines, chart.Radar(axes, []chart.RadarSeries{series}, radarOpt)...)
	}
	if opt.View == reportAll || opt.View == string(model.ViewHeat) {
		lines = append(lines, "")
		lines = append(lines, chart.Heat(tax, sel.Visible(tax), values, chartOpt)...)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [assessment]",
		Short: "Write an HTML report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", config.DefaultExportPath(), "output HTML file")
	cmd.Flags().BoolVar(&exportOpen, "open", false, "open the report in a browser")
	cmd.Flags().StringVar(&exportTitle, "title", defaultExportTitle, "page title")
	cmd.Flags().StringSliceVar(&exportCompare, "compare", nil, "assessments overlaid on the comparison radar, or \"all\"")
	cmd.Flags().Float64Var(&exportMaxValue, "max-value", 0, "scale maximum (0 means max(scores, 5))")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "out", &exportOut, fileCfg.Export.Out)
	applyBoolConfig(cmd, "open", &exportOpen, fileCfg.Export.Open)
	applyStringConfig(cmd, "title", &exportTitle, fileCfg.Export.Title)
	applyStringSliceConfig(cmd, "compare", &exportCompare, fileCfg.Export.Compare)

	cfg := model.ExportConfig{
		Assessment: argName(args),
		Compare:    exportCompare,
		Out:        exportOut,
		Open:       exportOpen,
		Title:      exportTitle,
		MaxValue:   exportMaxValue,
	}
	if cfg.Out == "" {
		return fmt.Errorf("--out must not be empty")
	}
	if cfg.MaxValue < 0 {
		return fmt.Errorf("--max-value must be >= 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	tax := taxonomy.Default()
	primary, err := loadAssessment(ctx, st, tax, cfg.Assessment)
	if err != nil {
		return err
	}
	compare, err := resolveCompare(ctx, st, primary.Name, cfg.Compare)
	if err != nil {
		return err
	}

	report := export.Report{Title: cfg.Title, MaxValue: cfg.MaxValue, Primary: primary, Compare: compare}
	if err := export.WriteFile(cfg.Out, tax, report); err != nil {
		return err
	}
	logger.Info("exported report",
		zap.String("assessment", primary.Name),
		zap.String("out", cfg.Out),
		zap.Int("compare", len(compare)),
	)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if cfg.Open {
		if err := export.Open(cfg.Out); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

func resolveCompare(ctx context.Context, st *store.Store, primary string, names []string) ([]model.Assessment, error) {
	if len(names) == 1 && names[0] == reportAll {
		all, err := st.ListAssessments(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]model.Assessment, 0, len(all))
		for _, a := range all {
			if a.Name != primary {
				out = append(out, a)
			}
		}
		return out, nil
	}
	out := make([]model.Assessment, 0, len(names))
	for _, name := range names {
		a, err := st.GetAssessment(ctx, strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("compare %q: %w", name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored assessments",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	tax := taxonomy.Default()
	if _, err := st.EnsureSamples(ctx, generator.Samples(tax)); err != nil {
		return fmt.Errorf("failed to seed samples: %w", err)
	}
	all, err := st.ListAssessments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assessments: %w", err)
	}
	for _, line := range listTable(tax, all) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listTable(tax *taxonomy.Taxonomy, all []model.Assessment) []string {
	headers := []string{"Name", "Subject"}
	headers = append(headers, tax.CategoryNames()...)
	headers = append(headers, score.TotalName, "Created")
	right := map[int]bool{}
	for i := 2; i < len(headers)-1; i++ {
		right[i] = true
	}
	rows := make([][]string, 0, len(all))
	for _, a := range all {
		row := []string{a.Name, a.Subject}
		for _, stat := range score.Summarize(tax, a.Scores) {
			row = append(row, chart.FormatValue(stat.Average, false))
		}
		row = append(row, a.CreatedAt.Local().Format("2006-01-02"))
		rows = append(rows, row)
	}
	return chart.FormatTable(headers, rows, right)
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import assessments from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

type importFile struct {
	Assessments []importAssessment `toml:"assessment"`
}

type importAssessment struct {
	Name           string             `toml:"name"`
	Subject        string             `toml:"subject"`
	Recommendation string             `toml:"recommendation"`
	Scores         map[string]float64 `toml:"scores"`
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	tax := taxonomy.Default()
	assessments, err := parseImport(f, tax)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	for _, a := range assessments {
		if _, err := st.SaveAssessment(cmd.Context(), a); err != nil {
			return fmt.Errorf("failed to save %q: %w", a.Name, err)
		}
		logger.Info("imported assessment", zap.String("assessment", a.Name), zap.Int("scores", len(a.Scores)))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", a.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// parseImport decodes [[assessment]] tables and checks every metric against
// the taxonomy. Scores must lie in [0, score.Ceiling].
func parseImport(r io.Reader, tax *taxonomy.Taxonomy) ([]model.Assessment, error) {
	var file importFile
	meta, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode import: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown import key %q", undecoded[0].String())
	}
	if len(file.Assessments) == 0 {
		return nil, errors.New("no [[assessment]] entries found")
	}
	seen := map[string]bool{}
	out := make([]model.Assessment, 0, len(file.Assessments))
	for i, in := range file.Assessments {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, fmt.Errorf("assessment %d: name is required", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("assessment %q listed twice", name)
		}
		seen[name] = true
		scores := score.ScoreSet{}
		for metric, v := range in.Scores {
			if _, ok := tax.Metric(metric); !ok {
				return nil, fmt.Errorf("assessment %q: unknown metric %q", name, metric)
			}
			if v < 0 || v > score.Ceiling {
				return nil, fmt.Errorf("assessment %q: %s must be between 0 and %.0f", name, metric, score.Ceiling)
			}
			scores[metric] = v
		}
		out = append(out, model.Assessment{
			Name:           name,
			Subject:        in.Subject,
			Recommendation: in.Recommendation,
			Scores:         scores,
		})
	}
	return out, nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the sample assessments and generated tools",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().IntVar(&seedTools, "tools", defaultSeedTools, "number of generated tool assessments")
	cmd.Flags().Int64Var(&seedValue, "seed", generator.DefaultSeed, "random seed for generated tools")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	if seedTools < 0 {
		return fmt.Errorf("--tools must be >= 0")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tax := taxonomy.Default()
	all := append(generator.Samples(tax), generator.NewSeeded(seedValue).Tools(tax, seedTools)...)
	for _, a := range all {
		if _, err := st.SaveAssessment(cmd.Context(), a); err != nil {
			return fmt.Errorf("failed to save %q: %w", a.Name, err)
		}
	}
	logger.Info("seeded assessments", zap.Int("count", len(all)), zap.Int64("seed", seedValue))
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored %d assessments\n", len(all)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <assessment>",
		Short: "Delete a stored assessment",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.DeleteAssessment(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("assessment %q not found", args[0])
		}
		return fmt.Errorf("failed to delete: %w", err)
	}
	logger.Info("deleted assessment", zap.String("assessment", args[0]))
	return nil
}
