// Package main provides the CLI entrypoint for fishcap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/fishcap/internal/anim"
	"github.com/verte-zerg/fishcap/internal/config"
	"github.com/verte-zerg/fishcap/internal/dashboard"
	"github.com/verte-zerg/fishcap/internal/generator"
	"github.com/verte-zerg/fishcap/internal/logging"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/store"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

const (
	defaultView           = string(model.ViewBars)
	defaultSort           = string(score.SortCategory)
	defaultDurationMs     = 1500
	defaultFPS            = 60
	defaultBarEasing      = anim.EaseCubicOut
	defaultRadarEasing    = anim.EaseBezier
	defaultResizeDebounce = 300
	maxFPS                = 240
)

var (
	dbPath  string
	logPath string
	verbose bool

	logger *zap.Logger

	dashAssessment  string
	dashView        string
	dashSort        string
	dashMaxValue    float64
	dashDurationMs  int
	dashFPS         int
	dashBarEasing   string
	dashRadarEasing string
	dashDebounceMs  int
	dashShortLabels bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fishcap",
		Short:         "FISH capital score dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			logger, err = logging.New(logPath, verbose)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to the assessment database")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", config.DefaultLogPath(), "path to the log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.Flags().StringVar(&dashAssessment, "assessment", "", "assessment to show first (default: first stored)")
	rootCmd.Flags().StringVar(&dashView, "view", defaultView, "initial tab: bars, radar, heat or compare")
	rootCmd.Flags().StringVar(&dashSort, "sort", defaultSort, "bar order: category, value-desc or value-asc")
	rootCmd.Flags().Float64Var(&dashMaxValue, "max-value", 0, "scale maximum (0 means max(scores, 5))")
	rootCmd.Flags().IntVar(&dashDurationMs, "duration-ms", defaultDurationMs, "animation duration in milliseconds")
	rootCmd.Flags().IntVar(&dashFPS, "fps", defaultFPS, "animation frames per second")
	rootCmd.Flags().StringVar(&dashBarEasing, "bar-easing", defaultBarEasing, "easing for bars and heat map")
	rootCmd.Flags().StringVar(&dashRadarEasing, "radar-easing", defaultRadarEasing, "easing for the radar: bezier (overshoots), bezier-legacy (literal curve), cubic-out or linear")
	rootCmd.Flags().IntVar(&dashDebounceMs, "resize-debounce-ms", defaultResizeDebounce, "quiet period before replaying after a resize")
	rootCmd.Flags().BoolVar(&dashShortLabels, "short-labels", false, "use abbreviated metric labels")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newDeleteCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "assessment", &dashAssessment, fileCfg.Dashboard.Assessment)
	applyStringConfig(cmd, "view", &dashView, fileCfg.Dashboard.View)
	applyStringConfig(cmd, "sort", &dashSort, fileCfg.Dashboard.Sort)
	applyFloatConfig(cmd, "max-value", &dashMaxValue, fileCfg.Dashboard.MaxValue)
	applyIntConfig(cmd, "duration-ms", &dashDurationMs, fileCfg.Dashboard.DurationMs)
	applyIntConfig(cmd, "fps", &dashFPS, fileCfg.Dashboard.FPS)
	applyStringConfig(cmd, "bar-easing", &dashBarEasing, fileCfg.Dashboard.BarEasing)
	applyStringConfig(cmd, "radar-easing", &dashRadarEasing, fileCfg.Dashboard.RadarEasing)
	applyIntConfig(cmd, "resize-debounce-ms", &dashDebounceMs, fileCfg.Dashboard.ResizeDebounceMs)
	applyBoolConfig(cmd, "short-labels", &dashShortLabels, fileCfg.Dashboard.ShortLabels)

	sortMode, err := score.ParseSortMode(dashSort)
	if err != nil {
		return fmt.Errorf("invalid --sort value: %w", err)
	}
	cfg := model.DashboardConfig{
		Assessment:     dashAssessment,
		View:           model.View(dashView),
		Sort:           sortMode,
		MaxValue:       dashMaxValue,
		Duration:       time.Duration(dashDurationMs) * time.Millisecond,
		FPS:            dashFPS,
		BarEasing:      dashBarEasing,
		RadarEasing:    dashRadarEasing,
		ResizeDebounce: time.Duration(dashDebounceMs) * time.Millisecond,
		ShortLabels:    dashShortLabels,
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tax := taxonomy.Default()
	ctx := context.Background()
	seeded, err := st.EnsureSamples(ctx, generator.Samples(tax))
	if err != nil {
		return fmt.Errorf("failed to seed samples: %w", err)
	}
	if seeded {
		logger.Info("seeded sample assessments", zap.String("db", dbPath))
	}
	assessments, err := st.ListAssessments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assessments: %w", err)
	}

	m, err := dashboard.NewModel(tax, assessments, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("dashboard started",
		zap.Int("assessments", len(assessments)),
		zap.String("view", string(cfg.View)),
		zap.Duration("duration", cfg.Duration),
	)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logger.Info("wrote config template", zap.String("path", path))
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fishcap configuration
# Uncomment a value to enable it. CLI flags override config values.

[dashboard]
# assessment = "Team"          # Assessment shown first
# view = %q                 # bars, radar, heat or compare
# sort = %q             # category, value-desc or value-asc
# max-value = 5.0              # Scale maximum (0 means max(scores, 5))
# duration-ms = %d           # Animation duration
# fps = %d                     # Animation frames per second
# bar-easing = %q       # cubic-out, bezier, bezier-legacy or linear
# radar-easing = %q        # Easing for the radar
# resize-debounce-ms = %d     # Quiet period before replaying after a resize
# short-labels = false         # Abbreviated metric labels

[export]
# out = %q
# open = false                 # Open the report in a browser
# title = %q
# compare = ["Business A"]     # Assessments overlaid on the comparison radar
`,
		defaultView,
		defaultSort,
		defaultDurationMs,
		defaultFPS,
		defaultBarEasing,
		defaultRadarEasing,
		defaultResizeDebounce,
		config.DefaultExportPath(),
		defaultExportTitle,
	)
}

func validateDashboardConfig(cfg model.DashboardConfig) error {
	if !validView(cfg.View) {
		return fmt.Errorf("--view must be one of bars, radar, heat or compare")
	}
	if cfg.MaxValue < 0 {
		return fmt.Errorf("--max-value must be >= 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration-ms must be > 0")
	}
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	if cfg.ResizeDebounce < 0 {
		return fmt.Errorf("--resize-debounce-ms must be >= 0")
	}
	if _, err := anim.EasingByName(cfg.BarEasing); err != nil {
		return fmt.Errorf("invalid --bar-easing value: %w", err)
	}
	if _, err := anim.EasingByName(cfg.RadarEasing); err != nil {
		return fmt.Errorf("invalid --radar-easing value: %w", err)
	}
	return nil
}

func validView(v model.View) bool {
	for _, known := range model.Views {
		if v == known {
			return true
		}
	}
	return false
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
