package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/treenorm/internal/manifest"
	"github.com/menta2k/treenorm/internal/utils"
	"github.com/menta2k/treenorm/pkg/types"
)

var reportRun int64

var reportCmd = &cobra.Command{
	Use:   "report <manifest.db>",
	Short: "Show the summary and skipped files of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().Int64Var(&reportRun, "run", 0, "Run id to report (0 = latest)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if !utils.FileExists(args[0]) {
		return fmt.Errorf("manifest %s does not exist", args[0])
	}
	store, err := manifest.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	runID := reportRun
	if runID == 0 {
		runID, err = store.LatestRun()
		if err != nil {
			return err
		}
	}

	stats, err := store.RunStats(runID)
	if err != nil {
		return fmt.Errorf("run %d: %w", runID, err)
	}
	outcomes, err := store.Outcomes(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %d:\n", runID)
	fmt.Fprintf(out, "  Processed: %d\n", stats.Processed)
	fmt.Fprintf(out, "  Skipped: %d\n", stats.Skipped)
	fmt.Fprintf(out, "  Ignored: %d\n", stats.Ignored)
	fmt.Fprintf(out, "  Directories: %d\n", stats.Dirs)
	fmt.Fprintf(out, "  Written: %s\n", utils.FormatFileSize(stats.BytesWritten))

	for _, o := range outcomes {
		if o.Status == types.StatusSkipped {
			fmt.Fprintf(out, "  skipped %s: %s\n", o.Source, o.Message)
		}
	}
	return nil
}
