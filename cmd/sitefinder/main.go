package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sitefinder/internal/config"
	"sitefinder/internal/domain"
	"sitefinder/internal/enrich"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "sitefinder",
		Short:         "Find the official website of every company in a register spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newInitCmd(), newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runFlags struct {
	configPath string
	input      string
	output     string
	limit      int
	workers    int
	engine     string
	sqlitePath string
	quiet      bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve websites for the input register and write the enriched copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if f.quiet {
				log.SetOutput(io.Discard)
			}

			resolver, err := buildResolver(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			sum, err := enrich.Run(ctx, enrich.Options{
				Input:      f.input,
				Output:     f.output,
				Limit:      cfg.Batch.Limit,
				Workers:    cfg.Batch.Workers,
				SQLitePath: cfg.Export.SQLitePath,
				OnLoad:     func(recs []domain.CompanyRecord) { printColumns(out, recs) },
				OnProgress: func(p enrich.Progress) { printProgress(out, p) },
			}, resolver)
			if err != nil {
				if sum.Rows > 0 {
					fmt.Fprintf(out, "An error occurred: %v\n", err)
					printSummary(out, sum)
				}
				return err
			}

			fmt.Fprintf(out, "Completed! The output is saved in %s\n", f.output)
			printSummary(out, sum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML config file (defaults are used when empty)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "Input.XLSX", "input register (.xlsx or .csv)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "Output.xlsx", "output file (.xlsx or .csv)")
	cmd.Flags().IntVar(&f.limit, "limit", 100, "process only the first N rows (0 = all)")
	cmd.Flags().IntVar(&f.workers, "workers", enrich.DefaultWorkers, "parallel resolutions")
	cmd.Flags().StringVar(&f.engine, "engine", "", "search engine: google or duckduckgo")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "also export resolved websites to this SQLite file")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not log searches and fetches to stderr")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yml"
			if len(args) == 1 {
				path = args[0]
			}
			created, err := config.EnsureUserConfig(path)
			if err != nil {
				return fmt.Errorf("config bootstrap failed: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sitefinder v%s\n", version)
		},
	}
}
