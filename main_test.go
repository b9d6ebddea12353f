package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ranking-period/internal/analytics/application"
	"ranking-period/internal/observability/metrics"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func testConfig(t *testing.T) application.Config {
	t.Helper()
	return application.Config{
		DefaultGranularity: "hourly",
		OutputFormat:       application.FormatText,
		ExportDir:          t.TempDir(),
		WindowLimit:        100,
	}
}

func TestRunResolveDefaultsToClock(t *testing.T) {
	var out bytes.Buffer
	clock := fixedClock{at: time.Date(2021, time.March, 15, 14, 37, 0, 0, time.UTC)}
	if err := run([]string{"resolve"}, testConfig(t), &out, log.New(io.Discard, "", 0), clock); err != nil {
		t.Fatalf("run resolve: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "hourly:1615816800") {
		t.Fatalf("unexpected output %q", text)
	}
	if !strings.Contains(text, "2021-03-15T14:59:59Z") {
		t.Fatalf("expected end of hour in output %q", text)
	}
}

func TestRunResolveJSON(t *testing.T) {
	var out bytes.Buffer
	args := []string{"resolve", "-granularity", "recently", "-ts", "1615819020", "-format", "json"}
	if err := run(args, testConfig(t), &out, log.New(io.Discard, "", 0), systemClock{}); err != nil {
		t.Fatalf("run resolve: %v", err)
	}
	var res application.Resolution
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Window.Period != 1615816800 || res.Window.StartAt != 1615816800-23*3600 {
		t.Fatalf("unexpected window %+v", res.Window)
	}
}

func TestRunCatalog(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"catalog"}, testConfig(t), &out, log.New(io.Discard, "", 0), systemClock{}); err != nil {
		t.Fatalf("run catalog: %v", err)
	}
	if !strings.Contains(out.String(), "592200") || !strings.Contains(out.String(), "recently") {
		t.Fatalf("unexpected catalog %q", out.String())
	}
}

func TestRunCalendarXLSXWritesExportDir(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	args := []string{"calendar", "-granularity", "quarterly", "-from", "1609459200", "-to", "1640995199", "-format", "xlsx"}
	if err := run(args, cfg, &out, log.New(io.Discard, "", 0), systemClock{}); err != nil {
		t.Fatalf("run calendar: %v", err)
	}
	path := filepath.Join(cfg.ExportDir, "calendar_quarterly_1609459200_1640995199.xlsx")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected export file: %v", err)
	}
}

func TestRunCalendarCSVToStdout(t *testing.T) {
	var out bytes.Buffer
	args := []string{"calendar", "-granularity", "daily", "-from", "1615766400", "-to", "1615939199", "-format", "csv"}
	if err := run(args, testConfig(t), &out, log.New(io.Discard, "", 0), systemClock{}); err != nil {
		t.Fatalf("run calendar: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 days, got %d lines", len(lines))
	}
}

func TestRunErrors(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	if err := run(nil, testConfig(t), io.Discard, logger, systemClock{}); err == nil {
		t.Fatalf("expected usage error")
	}
	if err := run([]string{"rank"}, testConfig(t), io.Discard, logger, systemClock{}); err == nil {
		t.Fatalf("expected unknown command error")
	}
	if err := run([]string{"calendar", "-granularity", "total", "-to", "10"}, testConfig(t), io.Discard, logger, systemClock{}); err == nil {
		t.Fatalf("expected unsupported calendar error")
	}
}

func TestRunWritesMetricsTextfileOnError(t *testing.T) {
	metrics.Init(nil)
	cfg := testConfig(t)
	cfg.MetricsTextfile = filepath.Join(t.TempDir(), "period.prom")

	err := run([]string{"resolve", "-granularity", "minutely", "-ts", "0"}, cfg, io.Discard, log.New(io.Discard, "", 0), systemClock{})
	if err == nil {
		t.Fatalf("expected unknown granularity error")
	}
	data, rerr := os.ReadFile(cfg.MetricsTextfile)
	if rerr != nil {
		t.Fatalf("expected metrics textfile after failed run: %v", rerr)
	}
	if !strings.Contains(string(data), `result="error"`) {
		t.Fatalf("expected error sample in textfile, got %q", data)
	}
}

func TestRunRejectsUnsupportedPrintFormat(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	var out bytes.Buffer
	args := []string{"resolve", "-granularity", "daily", "-ts", "1615819020", "-format", " JSON "}
	if err := run(args, testConfig(t), &out, logger, systemClock{}); err != nil {
		t.Fatalf("run resolve with upper-case format: %v", err)
	}
	var res application.Resolution
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("expected json output, decode: %v", err)
	}

	for _, args := range [][]string{
		{"resolve", "-ts", "0", "-format", "pdf"},
		{"catalog", "-format", "xml"},
		{"catalog", "-format", "csv"},
	} {
		out.Reset()
		if err := run(args, testConfig(t), &out, logger, systemClock{}); err == nil {
			t.Fatalf("expected format error for %v", args)
		}
		if out.Len() != 0 {
			t.Fatalf("expected no output for %v, got %q", args, out.String())
		}
	}
}
