package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"ranking-period/internal/analytics/application"
	"ranking-period/internal/analytics/interfaces"
	"ranking-period/internal/observability/metrics"
)

const usage = `usage: periodctl <command> [flags]

commands:
  resolve   resolve the ranking bucket containing a timestamp
  catalog   list granularities with their interval codes
  calendar  list consecutive buckets covering a range`

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	metrics.Init(logger)

	if err := run(os.Args[1:], cfg, os.Stdout, logger, systemClock{}); err != nil {
		logger.Fatalf("periodctl: %v", err)
	}
}

// run executes one command. The metrics textfile is written on every exit path
// so failed runs still report their error samples.
func run(args []string, cfg application.Config, out io.Writer, logger *log.Logger, clock Clock) (err error) {
	if cfg.MetricsTextfile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
				logger.Printf("metrics textfile error: path=%s err=%v", cfg.MetricsTextfile, werr)
				if err == nil {
					err = werr
				}
			}
		}()
	}
	if len(args) == 0 {
		return errors.New(usage)
	}
	svc := application.NewResolverService(logger, cfg.WindowLimit)

	switch args[0] {
	case "resolve":
		return runResolve(args[1:], cfg, svc, out, clock)
	case "catalog":
		return runCatalog(args[1:], cfg, svc, out)
	case "calendar":
		return runCalendar(args[1:], cfg, svc, out, logger)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func runResolve(args []string, cfg application.Config, svc *application.ResolverService, out io.Writer, clock Clock) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	granularity := fs.String("granularity", cfg.DefaultGranularity, "granularity name")
	ts := fs.Int64("ts", clock.Now().Unix(), "unix timestamp in seconds")
	format := fs.String("format", textOrJSON(cfg.OutputFormat), "output format: text|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := parsePrintFormat(format); err != nil {
		return err
	}

	res, err := svc.Resolve(*granularity, *ts)
	if err != nil {
		return err
	}
	if *format == application.FormatJSON {
		return writeJSON(out, res)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "granularity\t%s\n", res.Name)
	fmt.Fprintf(tw, "key\t%s\n", res.Key)
	fmt.Fprintf(tw, "period\t%d\t%s\n", res.Window.Period, res.Window.PeriodTime().Format(time.RFC3339))
	fmt.Fprintf(tw, "start_at\t%d\t%s\n", res.Window.StartAt, res.Window.StartTime().Format(time.RFC3339))
	fmt.Fprintf(tw, "end_at\t%d\t%s\n", res.Window.EndAt, res.Window.EndTime().Format(time.RFC3339))
	if res.Interval != "" {
		fmt.Fprintf(tw, "interval\t%s\t%ds\n", res.Interval, res.IntervalSeconds)
	}
	return tw.Flush()
}

func runCatalog(args []string, cfg application.Config, svc *application.ResolverService, out io.Writer) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	format := fs.String("format", textOrJSON(cfg.OutputFormat), "output format: text|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := parsePrintFormat(format); err != nil {
		return err
	}

	entries := svc.Catalog()
	if *format == application.FormatJSON {
		return writeJSON(out, entries)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINTERVAL\tSECONDS")
	for _, entry := range entries {
		code, seconds := "-", "-"
		if entry.FixedLength {
			code = entry.Interval
			seconds = fmt.Sprintf("%d", entry.IntervalSeconds)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", entry.ID, entry.Name, code, seconds)
	}
	return tw.Flush()
}

func runCalendar(args []string, cfg application.Config, svc *application.ResolverService, out io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	granularity := fs.String("granularity", cfg.DefaultGranularity, "granularity name")
	from := fs.Int64("from", 0, "range start, unix seconds")
	to := fs.Int64("to", 0, "range end, unix seconds (inclusive)")
	format := fs.String("format", cfg.OutputFormat, "output format: text|json|csv|xlsx|pdf")
	outPath := fs.String("out", "", "output file; binary formats default to the export dir")
	if err := fs.Parse(args); err != nil {
		return err
	}
	*format = strings.ToLower(*format)
	if !application.ValidFormat(*format) {
		return fmt.Errorf("unsupported format %q", *format)
	}

	rows, err := svc.Calendar(*granularity, *from, *to)
	if err != nil {
		return err
	}

	switch *format {
	case application.FormatText:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tSTART\tEND")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Key, row.Window.StartTime().Format(time.RFC3339), row.Window.EndTime().Format(time.RFC3339))
		}
		return tw.Flush()
	case application.FormatJSON:
		return writeJSON(out, rows)
	}

	data, err := interfaces.BuildCalendar(*format, rows)
	if err != nil {
		return err
	}
	path := *outPath
	if path == "" {
		if *format == application.FormatCSV {
			_, err := out.Write(data)
			return err
		}
		if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
			return err
		}
		name := fmt.Sprintf("calendar_%s_%d_%d.%s", rows[0].Name, *from, *to, *format)
		path = filepath.Join(cfg.ExportDir, name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Printf("calendar exported: granularity=%s windows=%d path=%s", rows[0].Name, len(rows), path)
	return nil
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// textOrJSON narrows the configured format for commands that only print.
func textOrJSON(format string) string {
	if strings.ToLower(format) == application.FormatJSON {
		return application.FormatJSON
	}
	return application.FormatText
}

// parsePrintFormat lowercases format in place and rejects anything but text or json.
func parsePrintFormat(format *string) error {
	*format = strings.ToLower(strings.TrimSpace(*format))
	switch *format {
	case application.FormatText, application.FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: want text or json", *format)
	}
}

// ---- Adapters ----

// Clock provides the default timestamp for resolve.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
