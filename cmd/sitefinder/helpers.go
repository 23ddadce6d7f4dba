package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"sitefinder/internal/config"
	"sitefinder/internal/domain"
	"sitefinder/internal/enrich"
	"sitefinder/internal/scrape"

	"github.com/spf13/cobra"
)

// loadConfig layers defaults, the YAML file, SITEFINDER_* variables and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, f runFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, fmt.Errorf("config load failed (%s): %w", f.configPath, err)
	}
	config.ApplyEnv(&cfg, nil)

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Batch.Limit = f.limit
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if flags.Changed("engine") {
		cfg.Search.Engine = f.engine
	}
	if flags.Changed("sqlite") {
		cfg.Export.SQLitePath = f.sqlitePath
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		return cfg, fmt.Errorf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
	}
	return cfg, nil
}

func buildResolver(cfg config.Config) (*scrape.Resolver, error) {
	search, err := scrape.NewSearcher(cfg)
	if err != nil {
		return nil, err
	}
	return scrape.NewResolver(
		search,
		scrape.NewValidatorFromConfig(cfg),
		cfg.Search.ResultCount,
		cfg.Search.SkipDomains,
	), nil
}

func printColumns(w io.Writer, recs []domain.CompanyRecord) {
	cols := append(append([]string{}, domain.Columns...), domain.ColWebsite)
	fmt.Fprintf(w, "Column names: %q\n", cols)
	fmt.Fprintf(w, "Loaded %d rows\n", len(recs))
}

func printProgress(w io.Writer, p enrich.Progress) {
	status := "no website found"
	if p.Outcome.Found() {
		status = p.Outcome.Website
	}
	fmt.Fprintf(w, "[%d/%d] row %d %q: %s\n", p.Done, p.Total, p.Outcome.Index, p.Outcome.Name, status)
	fmt.Fprintf(w, "Processing: %.2f%% complete\n", p.Percent)
}

func printSummary(w io.Writer, sum enrich.Summary) {
	fmt.Fprintf(w, "Time taken = %.2f seconds for %d items (%d resolved)\n",
		sum.Elapsed.Seconds(), sum.Rows, sum.Resolved)
}
