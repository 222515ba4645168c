package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/menta2k/treenorm/internal/config"
	"github.com/menta2k/treenorm/internal/manifest"
	"github.com/menta2k/treenorm/internal/utils"
	"github.com/menta2k/treenorm/pkg/normalizer"
	"github.com/menta2k/treenorm/pkg/processing"
)

var (
	configPath   string
	manifestPath string
	logLevel     string
	logFormat    string
	quiet        bool
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file overriding geometry, resampling and logging")
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "SQLite file recording every per-file outcome")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Diagnostics level: debug|info|warn|error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Diagnostics format: text|json")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the run summary")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Explicit flags win over the file.
	if cmd.Flags().Changed("log-level") || configPath == "" {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") || configPath == "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	proc, err := processing.NewProcessorWithConfig(cfg.ProcessingConfig())
	if err != nil {
		return err
	}

	opts := []normalizer.Option{normalizer.WithLogger(logger)}

	var store *manifest.Store
	if manifestPath != "" {
		// The manifest may live under the output root, so nothing is
		// created until the input root is known to be usable.
		if !utils.DirExists(inputDir) {
			return fmt.Errorf("normalize failed: %w: %s", normalizer.ErrInputRoot, inputDir)
		}
		store, err = manifest.Open(manifestPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.BeginRun(inputDir, outputDir); err != nil {
			return err
		}
		opts = append(opts, normalizer.WithRecorder(store))
	}

	startTime := time.Now()
	stats, err := normalizer.New(proc, opts...).Normalize(inputDir, outputDir)
	if store != nil {
		if ferr := store.FinishRun(stats); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	if !quiet {
		w, h := proc.OutputSize()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nSummary:\n")
		fmt.Fprintf(out, "  Processed: %d (%dx%d)\n", stats.Processed, w, h)
		fmt.Fprintf(out, "  Skipped: %d\n", stats.Skipped)
		fmt.Fprintf(out, "  Ignored: %d\n", stats.Ignored)
		fmt.Fprintf(out, "  Directories: %d\n", stats.Dirs)
		fmt.Fprintf(out, "  Written: %s\n", utils.FormatFileSize(stats.BytesWritten))
		fmt.Fprintf(out, "  Elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))
	}

	return nil
}
