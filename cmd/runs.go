package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tutorgrid/core/assign/logging"
)

var runsOpts struct {
	student string
	tutor   string
	limit   int
	since   time.Duration
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Run log commands",
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List logged assignment runs",
	RunE:  runRunsLs,
}

func init() {
	f := runsLsCmd.Flags()
	f.StringVar(&runsOpts.student, "student", "", "only runs involving this student")
	f.StringVar(&runsOpts.tutor, "tutor", "", "only runs involving this tutor")
	f.IntVar(&runsOpts.limit, "limit", 20, "maximum number of runs, most recent kept")
	f.DurationVar(&runsOpts.since, "since", 0, "only runs newer than this duration")
	runsCmd.AddCommand(runsLsCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := cfg.RunLog.Open()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("run log disabled: set runlog.backend")
	}
	defer func() {
		if err := store.Close(); err != nil {
			if _, ferr := fmt.Fprintf(cmd.ErrOrStderr(), "error while closing run log: %v\n", err); ferr != nil {
				fmt.Println("failed to write to stderr:", ferr)
			}
		}
	}()

	q := logging.RunQuery{Student: runsOpts.student, Tutor: runsOpts.tutor, Limit: runsOpts.limit}
	if runsOpts.since > 0 {
		q.Start = time.Now().Add(-runsOpts.since)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	recs, err := store.Query(ctx, q)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range recs {
		required, assigned := 0, 0
		for _, f := range r.Fulfilment {
			required += f.Required
			assigned += f.Assigned
		}
		fmt.Fprintf(out, "%s\t%s\t%d/%d\n", r.ID, r.Timestamp.Format(time.RFC3339), assigned, required)
	}
	return nil
}
