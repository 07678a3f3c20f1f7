package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mahim2022/websiteAuditTool/internal/auditor"
	"github.com/mahim2022/websiteAuditTool/internal/output"
	"github.com/mahim2022/websiteAuditTool/internal/pageaudit"
	"github.com/mahim2022/websiteAuditTool/internal/platform/logger"
)

var errAuditFailed = errors.New("audit did not complete")

type options struct {
	url         string
	sampleLimit int
	concurrency int
	timeout     time.Duration
	jsonOut     bool
	verbose     bool
}

func main() {
	opts := parseFlags()
	if !opts.jsonOut {
		output.PrintBanner()
	}
	if err := run(opts); err != nil {
		if !errors.Is(err, errAuditFailed) {
			fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.url, "u", "", "Target URL to audit")
	flag.IntVar(&opts.sampleLimit, "links", 3, "Outbound links to health-check")
	flag.IntVar(&opts.concurrency, "t", 4, "Probe worker count")
	flag.DurationVar(&opts.timeout, "timeout", 60*time.Second, "Overall audit timeout")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print the raw JSON report instead of the summary")
	flag.BoolVar(&opts.verbose, "v", false, "Enable verbose logging")
	flag.Parse()
	return opts
}

func run(opts options) error {
	if opts.url == "" {
		return errors.New("-u (target URL) is required")
	}
	if opts.sampleLimit < 1 {
		return fmt.Errorf("-links must be at least 1 (got %d)", opts.sampleLimit)
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("-t must be at least 1 (got %d)", opts.concurrency)
	}
	if opts.timeout <= 0 {
		return fmt.Errorf("-timeout must be positive (got %s)", opts.timeout)
	}

	level := "ERROR"
	if opts.verbose {
		level = "DEBUG"
	}
	// Logs go to stderr so stdout stays clean for the report.
	log := logger.NewText(level, os.Stderr)

	engine := pageaudit.NewEngine(
		pageaudit.NewHTTPClient(),
		pageaudit.NewLinkProber(opts.sampleLimit, opts.concurrency),
		pageaudit.NewRedirectChecker(),
		pageaudit.NewResourceChecker(),
		log,
	)
	service := auditor.NewService(engine, log)

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	report, err := service.Audit(ctx, opts.url)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		output.PrintReport(os.Stdout, report)
	}

	// The report above already describes the failure; the exit code mirrors it.
	if report.Error != "" {
		return errAuditFailed
	}
	return nil
}
