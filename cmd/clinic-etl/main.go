package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-etl/common/logger"
	"clinic-etl/internal/classifier"
	"clinic-etl/internal/config"
	"clinic-etl/internal/service"
	"clinic-etl/internal/store"
	"clinic-etl/internal/workbook"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "clinic-etl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clinic-etl",
		Short:         "Extract and code patient interview workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (default $LOG_LEVEL or info)")
	rootCmd.PersistentFlags().String("log-format", "", "json or console (default $LOG_FORMAT or json)")

	rootCmd.AddCommand(extractCmd(), classifyCmd(), runCmd(), templateCmd())
	return rootCmd
}

// withConfig loads the environment config, applies the command's flag
// overrides and hands the result to run. The template command does not use
// it.
func withConfig(run func(cmd *cobra.Command, cfg *config.Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}
		return run(cmd, cfg)
	}
}

// applyFlags overrides config fields with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	overrides := map[string]*string{
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
		"input":      &cfg.InputGlob,
		"records":    &cfg.RecordsJSON,
		"output":     &cfg.OutputPath,
		"lexicon":    &cfg.LexiconPath,
	}
	for name, dst := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	ref, _ := cmd.Flags().GetString("reference-date")
	if ref == "" {
		return nil
	}
	t, ok := classifier.ParseReference(ref)
	if !ok {
		return fmt.Errorf("invalid --reference-date %q, want dd-mm-yyyy", ref)
	}
	cfg.ReferenceDate = t
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return l, nil
}

// addInputFlags registers the flags shared by the commands that read
// interview workbooks.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Glob of interview workbooks (default $INPUT_GLOB or *.xlsx)")
	addRecordsFlag(cmd)
}

func addRecordsFlag(cmd *cobra.Command) {
	cmd.Flags().String("records", "", "Extracted records JSON file (default $RECORDS_JSON or pacientes.json)")
}

func addClassifyFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", "", "Report workbook to write (default $OUTPUT_PATH or reporte_pacientes.xlsx)")
	cmd.Flags().String("lexicon", "", "YAML overlay for the keyword tables (default $LEXICON_PATH)")
	cmd.Flags().String("reference-date", "", "Fallback consultation date (dd-mm-yyyy)")
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract patient records from interview workbooks into JSON",
		RunE: withConfig(func(cmd *cobra.Command, cfg *config.Config) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			files, err := service.FindWorkbooks(cfg.InputGlob, cfg.OutputPath)
			if err != nil {
				return err
			}
			app, err := newApp(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer app.Close()

			records, err := app.pipeline.Extract(cmd.Context(), files)
			if err != nil {
				return err
			}
			if err := store.WriteRecords(cfg.RecordsJSON, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d patients extracted to %s\n", len(records), cfg.RecordsJSON)
			return nil
		}),
	}
	addInputFlags(cmd)
	return cmd
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Code an extracted records JSON into the report workbook",
		RunE: withConfig(func(cmd *cobra.Command, cfg *config.Config) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			records, err := store.ReadRecords(cfg.RecordsJSON)
			if err != nil {
				return err
			}
			app, err := newApp(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer app.Close()

			rows := app.pipeline.Classify(records)
			if _, err := workbook.WriteReport(cfg.OutputPath, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", len(rows), cfg.OutputPath)
			return nil
		}),
	}
	addRecordsFlag(cmd)
	addClassifyFlags(cmd)
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, code and publish a batch of interview workbooks",
		RunE: withConfig(func(cmd *cobra.Command, cfg *config.Config) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			files, err := service.FindWorkbooks(cfg.InputGlob, cfg.OutputPath)
			if err != nil {
				return err
			}
			app, err := newApp(cmd.Context(), cfg, log, true)
			if err != nil {
				return err
			}
			defer app.Close()

			start := time.Now()
			resp, err := app.pipeline.Run(cmd.Context(), service.RunRequest{
				Files:       files,
				RecordsPath: cfg.RecordsJSON,
				OutputPath:  cfg.OutputPath,
			})
			if err != nil {
				return err
			}
			log.Info("Batch finished",
				zap.String("batch_id", resp.BatchID),
				zap.Int("patients", resp.Patients),
				zap.Int("warnings", len(resp.Warnings)),
				zap.Duration("elapsed", time.Since(start)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "batch %s: %d patients written to %s\n", resp.BatchID, resp.Patients, resp.OutputPath)
			for _, w := range resp.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		}),
	}
	addInputFlags(cmd)
	addClassifyFlags(cmd)
	return cmd
}

func templateCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the empty clinical-format workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := workbook.WriteTemplate(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "formato_clinico_autoinmune.xlsx", "Template workbook to write")
	return cmd
}
