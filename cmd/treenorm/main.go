package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/menta2k/treenorm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "treenorm <input-dir> <output-dir>",
	Short: "Resize and crop every PNG in a directory tree",
	Long: `treenorm mirrors an input directory tree into an output directory.
Every file ending in .png is stretched to 96x96 and cropped to a fixed
inset rectangle; other files are ignored. Files that cannot be decoded
are reported and skipped without failing the run.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runNormalize,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = treenorm.GetVersion()
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(reportCmd)
}
