package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/fishcap/internal/anim"
	"github.com/verte-zerg/fishcap/internal/config"
	"github.com/verte-zerg/fishcap/internal/generator"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

func validDashboardConfig() model.DashboardConfig {
	return model.DashboardConfig{
		View:        model.ViewBars,
		Sort:        score.SortCategory,
		Duration:    1500 * time.Millisecond,
		FPS:         60,
		BarEasing:   defaultBarEasing,
		RadarEasing: defaultRadarEasing,
	}
}

func TestValidateDashboardConfig(t *testing.T) {
	if err := validateDashboardConfig(validDashboardConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]func(*model.DashboardConfig){
		"view":     func(c *model.DashboardConfig) { c.View = "pie" },
		"max":      func(c *model.DashboardConfig) { c.MaxValue = -1 },
		"duration": func(c *model.DashboardConfig) { c.Duration = 0 },
		"fps":      func(c *model.DashboardConfig) { c.FPS = maxFPS + 1 },
		"debounce": func(c *model.DashboardConfig) { c.ResizeDebounce = -time.Millisecond },
		"easing":   func(c *model.DashboardConfig) { c.RadarEasing = "spring" },
	}
	for name, mutate := range cases {
		cfg := validDashboardConfig()
		mutate(&cfg)
		if err := validateDashboardConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestRadarEasingFlagNamesChoices(t *testing.T) {
	f := newRootCmd().Flags().Lookup("radar-easing")
	if f == nil {
		t.Fatalf("expected radar-easing flag")
	}
	if f.DefValue != anim.EaseBezier {
		t.Fatalf("expected default %q, got %q", anim.EaseBezier, f.DefValue)
	}
	if !strings.Contains(f.Usage, anim.EaseBezierLegacy) {
		t.Fatalf("usage should name %q: %q", anim.EaseBezierLegacy, f.Usage)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	lines := strings.Split(defaultConfigTemplate(), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines[i] = strings.TrimPrefix(line, "# ")
		}
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if cfg.Dashboard.View == nil || *cfg.Dashboard.View != defaultView {
		t.Fatalf("expected view %q, got %v", defaultView, cfg.Dashboard.View)
	}
	if cfg.Export.Compare == nil || len(*cfg.Export.Compare) != 1 {
		t.Fatalf("expected one compare entry, got %v", cfg.Export.Compare)
	}
}

func TestParseImport(t *testing.T) {
	input := `
[[assessment]]
name = "Acme"
subject = "vendor"
recommendation = "Grow the partner network."

[assessment.scores]
"Liquidity & Cash Flow" = 4.5
"Networking & Partnerships" = 2
`
	got, err := parseImport(strings.NewReader(input), taxonomy.Default())
	if err != nil {
		t.Fatalf("parse import: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Acme" || got[0].Subject != "vendor" {
		t.Fatalf("unexpected assessments: %+v", got)
	}
	if got[0].Scores["Liquidity & Cash Flow"] != 4.5 || len(got[0].Scores) != 2 {
		t.Fatalf("unexpected scores: %v", got[0].Scores)
	}
}

func TestParseImportRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":     ``,
		"no name":   "[[assessment]]\nsubject = \"x\"\n",
		"metric":    "[[assessment]]\nname = \"A\"\n[assessment.scores]\n\"Luck\" = 3\n",
		"range":     "[[assessment]]\nname = \"A\"\n[assessment.scores]\n\"Debt Management\" = 7\n",
		"duplicate": "[[assessment]]\nname = \"A\"\n[[assessment]]\nname = \"A\"\n",
		"key":       "[[assessment]]\nname = \"A\"\nowner = \"me\"\n",
	}
	for name, input := range cases {
		if _, err := parseImport(strings.NewReader(input), taxonomy.Default()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRenderReport(t *testing.T) {
	tax := taxonomy.Default()
	team := generator.Samples(tax)[0]
	var buf bytes.Buffer
	opt := reportOptions{View: reportAll, Sort: score.SortValueDesc, Width: 80}
	if err := renderReport(&buf, tax, team, opt); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Team", "Financial", "3.6", "Total", "3.7", "Strongest:", "Liquidity", "4.2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected plain output without a style")
	}
}

func TestRenderReportCategories(t *testing.T) {
	tax := taxonomy.Default()
	team := generator.Samples(tax)[0]
	var buf bytes.Buffer
	opt := reportOptions{View: string(model.ViewBars), Sort: score.SortCategory, Categories: []string{taxonomy.Social}, Width: 80}
	if err := renderReport(&buf, tax, team, opt); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	social, _ := tax.Category(taxonomy.Social)
	financial, _ := tax.Category(taxonomy.Financial)
	if !strings.Contains(out, social.Metrics[0].Label(false)) {
		t.Fatalf("expected social metrics in bars")
	}
	if strings.Contains(out, financial.Metrics[0].Label(false)+" │") {
		t.Fatalf("financial bars must be hidden")
	}

	buf.Reset()
	opt.Categories = []string{taxonomy.Social, taxonomy.Social}
	if err := renderReport(&buf, tax, team, opt); err != nil {
		t.Fatalf("render report with repeated category: %v", err)
	}
	if !strings.Contains(buf.String(), social.Metrics[0].Label(false)) {
		t.Fatalf("repeated category must stay visible:\n%s", buf.String())
	}

	opt.Categories = []string{"Spiritual"}
	if err := renderReport(&buf, tax, team, opt); err == nil {
		t.Fatalf("expected unknown category error")
	}
	opt.Categories = nil
	opt.View = "pie"
	if err := renderReport(&buf, tax, team, opt); err == nil {
		t.Fatalf("expected unknown view error")
	}
}

func TestListTable(t *testing.T) {
	tax := taxonomy.Default()
	samples := generator.Samples(tax)
	lines := listTable(tax, samples)
	if len(lines) != len(samples)+1 {
		t.Fatalf("expected header and %d rows, got %d", len(samples), len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name") || !strings.Contains(lines[0], score.TotalName) {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], generator.BusinessSample) || !strings.Contains(lines[2], "3.4") {
		t.Fatalf("unexpected business row: %q", lines[2])
	}
}
