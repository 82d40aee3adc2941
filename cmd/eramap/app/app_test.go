package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/eramap/cmd/eramap/cmd/scrape"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		InputPath:     filepath.Join("testdata", "page.html"),
		ReferencePath: filepath.Join("testdata", "regimes.yaml"),
		OutputPath:    filepath.Join(t.TempDir(), "era_years.json"),
		Timeout:       time.Second,
		WindowMin:     200,
		WindowMax:     600,
		LogFormat:     "json",
		LogOutput:     "discard",
	}
}

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	resetViper(t)
	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2026-01-01", "test", WithConfig(config), WithLogger(&logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// execute runs the root command and returns what it printed.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	resetViper(t)
	app, err := New("1.0.0", "abc123", "2026-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2026-01-01" {
		t.Errorf("Date() = %s, want 2026-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Pipeline verifies the configured pipeline extracts from the input file.
func TestApp_Pipeline(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	p, err := app.Pipeline()
	if err != nil {
		t.Fatalf("Pipeline() failed: %v", err)
	}
	x, err := p.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if x.Source != "file" {
		t.Errorf("Source = %q, want file", x.Source)
	}
	if len(x.Records) != 7 {
		t.Errorf("len(Records) = %d, want 7", len(x.Records))
	}
}

// TestApp_PipelineErrors verifies configuration problems surface as errors.
func TestApp_PipelineErrors(t *testing.T) {
	t.Run("missing overrides file", func(t *testing.T) {
		config := testConfig(t)
		config.OverridesPath = filepath.Join(t.TempDir(), "absent.yaml")
		if _, err := newTestApp(t, config).Pipeline(); err == nil {
			t.Error("Pipeline() succeeded, want error")
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		config := testConfig(t)
		config.WindowMin, config.WindowMax = 600, 200
		_, err := newTestApp(t, config).Pipeline()
		if !errors.IsValidationError(err) {
			t.Errorf("Pipeline() error = %v, want validation error", err)
		}
	})
}

// TestApp_Scrape runs the scrape command end to end.
func TestApp_Scrape(t *testing.T) {
	config := testConfig(t)
	app := newTestApp(t, config)

	out, err := execute(t, app, "scrape", "--format", "json")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}

	var summary scrape.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("summary is not JSON: %v\n%s", err, out)
	}
	if summary.Scraped != 7 || summary.Written != 4 {
		t.Errorf("scraped/written = %d/%d, want 7/4", summary.Scraped, summary.Written)
	}
	if summary.Degraded {
		t.Error("run degraded with a readable reference")
	}
	if len(summary.Missing) != 1 || summary.Missing[0] != (eras.Entry{Regime: "西晉", Era: "永寧"}) {
		t.Errorf("Missing = %v, want [西晉/永寧]", summary.Missing)
	}

	data, err := os.ReadFile(config.OutputPath)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	var records []eras.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("artifact is not JSON: %v", err)
	}
	if len(records) != 4 || records[0].Era != "神麚" {
		t.Errorf("artifact = %v, want 4 records led by 神麚", records)
	}
}

// TestApp_ConfigFile verifies --config settings apply below explicit flags.
func TestApp_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "from_file.json")
	report := filepath.Join(dir, "report.md")
	path := filepath.Join(dir, "eramap.yaml")
	content := "output_path: " + output + "\nreport_path: " + report + "\nformat: yaml\npage: ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config := testConfig(t)
	app := newTestApp(t, config)

	out, err := execute(t, app, "scrape", "--config", path, "--page", "flag page", "-o", "json")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("--format flag should win over the file:\n%s", out)
	}
	if config.Page != "flag page" {
		t.Errorf("Page = %q, want the flag value", config.Page)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("artifact not written to output_path: %v", err)
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written to report_path: %v", err)
	}
}

// TestApp_Extract runs the extract command end to end.
func TestApp_Extract(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	out, err := execute(t, app, "extract", "-o", "yaml", "--regime", "成漢")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(out, "era: 建初") || strings.Contains(out, "泰始") {
		t.Errorf("unexpected extract output:\n%s", out)
	}
}

// TestApp_InvalidFormat verifies --format is validated before running.
func TestApp_InvalidFormat(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	if _, err := execute(t, app, "extract", "--format", "xml"); err == nil {
		t.Error("expected error for --format xml")
	}
}

// TestApp_Version verifies version output.
func TestApp_Version(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	out, err := execute(t, app, "version", "-v")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"eramap 1.0.0", "abc123", "2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}
