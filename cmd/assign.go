package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tutorgrid/app"
	"github.com/kilianp07/tutorgrid/core/assign"
	"github.com/kilianp07/tutorgrid/core/monitoring"
	"github.com/kilianp07/tutorgrid/infra/logger"
	"github.com/kilianp07/tutorgrid/pkg/render"
)

var assignOpts struct {
	registry string
	out      string
	format   string
	render   bool
	chart    string
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a party file and export the schedule",
	RunE:  runAssign,
}

func init() {
	f := assignCmd.Flags()
	f.StringVarP(&assignOpts.registry, "registry", "r", "", "party file (overrides registry.path and registry.url)")
	f.StringVarP(&assignOpts.out, "out", "o", "", "export file (overrides export.path)")
	f.StringVar(&assignOpts.format, "format", "", "export format: json or csv")
	f.BoolVar(&assignOpts.render, "render", false, "print the schedule as a table")
	f.StringVar(&assignOpts.chart, "chart", "", "write an HTML chart of tutor load to this file")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer monitoring.Recover()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if assignOpts.registry != "" {
		cfg.Registry.Path = assignOpts.registry
		cfg.Registry.URL = ""
	}
	if assignOpts.out != "" {
		cfg.Export.Path = assignOpts.out
	}
	if assignOpts.format != "" {
		cfg.Export.Format = assignOpts.format
		if err := cfg.Export.Validate(); err != nil {
			return err
		}
	}
	if cfg.Registry.Path == "" && cfg.Registry.URL == "" {
		return fmt.Errorf("no party document: use --registry, registry.path or registry.url")
	}

	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	reg, err := svc.LoadRegistry(ctx)
	if err != nil {
		return err
	}
	run, err := svc.Assign(ctx, reg)
	if run.Grid == nil {
		return err
	}
	out := cmd.OutOrStdout()
	if assignOpts.render {
		fmt.Fprintln(out, render.Table(run.Grid, svc.Periods(), svc.Days()))
	}
	if assignOpts.chart != "" {
		if cerr := writeChart(assignOpts.chart, run.Grid, reg.TutorNames(), run.ID); cerr != nil {
			return cerr
		}
	}
	required, assigned := run.Report.Totals()
	fmt.Fprintf(out, "run %s: %d of %d lessons placed\n", run.ID, assigned, required)
	for _, f := range run.Report.Underfilled() {
		fmt.Fprintf(out, "  %s: %d of %d %s\n", f.Student, f.Assigned, f.Required, f.Subject)
	}
	return err
}

func writeChart(path string, grid *assign.Grid, tutors []string, runID string) error {
	html, err := render.LoadChartHTML(grid, tutors, "Tutor load "+runID)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}
