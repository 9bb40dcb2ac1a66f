package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sriram-PR/seo-audit/pkg/config"
	"github.com/Sriram-PR/seo-audit/pkg/log"
	"github.com/Sriram-PR/seo-audit/pkg/orchestrate"
)

const (
	defaultConfigFile = "seo-audit.yaml"
	shutdownGrace     = 30 * time.Second
)

type auditOptions struct {
	configFile string
	logLevel   string
	outputDir  string
	summaries  []string
}

func newAuditCmd() *cobra.Command {
	opts := &auditOptions{}
	cmd := &cobra.Command{
		Use:   "audit <origin>",
		Short: "Audit a site and write SEOAnalysis__<domain>.json",
		Example: `  seo-audit audit https://example.com
  seo-audit audit https://example.com --summary md,html --output-dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := withSignalCancel(cmd.Context(), cmd.ErrOrStderr())
			defer stop()
			return runAudit(ctx, opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", defaultConfigFile, "Path to config file")
	cmd.Flags().StringVar(&opts.logLevel, "loglevel", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for the report (overrides output_dir)")
	cmd.Flags().StringSliceVar(&opts.summaries, "summary", nil, "Extra summaries to write: md, html")
	return cmd
}

// runAudit loads configuration, audits origin and prints the written files.
func runAudit(ctx context.Context, opts *auditOptions, origin string, stdout, stderr io.Writer) error {
	logger, err := log.NewLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	appCfg, err := config.Load(opts.configFile, opts.configFile != defaultConfigFile)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		appCfg.OutputDir = opts.outputDir
	}
	if len(opts.summaries) > 0 {
		appCfg.SummaryFormats = opts.summaries
	}
	warnings, err := appCfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	out, runErr := orchestrate.NewAuditor(appCfg, logrus.NewEntry(logger)).Run(ctx, origin)
	if out != nil && out.ReportPath != "" {
		fmt.Fprintf(stdout, "Report: %s\n", out.ReportPath)
		for _, p := range out.SummaryPaths {
			fmt.Fprintf(stdout, "Summary: %s\n", p)
		}
	}
	return runErr
}

// withSignalCancel cancels the returned context on SIGINT or SIGTERM.
// A second signal, or no exit within the grace period, forces exit.
func withSignalCancel(parent context.Context, stderr io.Writer) (context.Context, func()) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "Received signal: %v. Writing partial report...\n", sig)
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "Received second signal: %v. Forcing exit.\n", sig)
			os.Exit(1)
		case <-time.After(shutdownGrace):
			fmt.Fprintln(stderr, "Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
}
