package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"sitefinder/internal/domain"
	"sitefinder/internal/sheet"
	"sitefinder/internal/store"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked means another run holds the output file.
var ErrLocked = errors.New("output is locked by another run")

type Options struct {
	Input      string
	Output     string
	Limit      int // 0 = every row
	Workers    int
	SQLitePath string

	OnLoad     func(records []domain.CompanyRecord)
	OnProgress func(Progress)
}

type Summary struct {
	RunID    string
	Rows     int
	Resolved int
	Elapsed  time.Duration
}

// Run loads opts.Input, resolves every record, and writes opts.Output. Once
// the input has loaded, the output is written even when processing fails.
func Run(ctx context.Context, opts Options, resolver Resolver) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}

	lock := flock.New(opts.Output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return sum, fmt.Errorf("lock %s: %w", opts.Output, err)
	}
	if !ok {
		return sum, fmt.Errorf("%w: %s", ErrLocked, opts.Output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	records, err := sheet.Read(opts.Input)
	if err != nil {
		return sum, err
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	sum.Rows = len(records)
	if opts.OnLoad != nil {
		opts.OnLoad(records)
	}
	log.Printf("[run] start run_id=%s rows=%d input=%s", sum.RunID, sum.Rows, opts.Input)

	procErr := process(ctx, opts, resolver, records, &sum)

	if err := sheet.Write(opts.Output, records); err != nil {
		sum.Elapsed = time.Since(start)
		return sum, errors.Join(procErr, fmt.Errorf("write output: %w", err))
	}
	log.Printf("[run] wrote output=%s rows=%d resolved=%d", opts.Output, sum.Rows, sum.Resolved)

	var exportErr error
	if opts.SQLitePath != "" {
		exportErr = export(context.WithoutCancel(ctx), opts.SQLitePath, sum.RunID, records)
	}

	sum.Elapsed = time.Since(start)
	return sum, errors.Join(procErr, exportErr)
}

func process(ctx context.Context, opts Options, resolver Resolver, records []domain.CompanyRecord, sum *Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing aborted: %v", r)
			log.Printf("[run] run_id=%s %v", sum.RunID, err)
		}
	}()

	b := &Batch{Resolver: resolver, Workers: opts.Workers, OnProgress: opts.OnProgress}
	outcomes := b.Run(ctx, records)
	sum.Resolved = Attach(records, outcomes)
	return ctx.Err()
}

func export(ctx context.Context, path, runID string, records []domain.CompanyRecord) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open export db: %w", err)
	}
	defer db.Close()

	if err := db.SaveRun(ctx, runID, records); err != nil {
		return fmt.Errorf("export run %s: %w", runID, err)
	}
	log.Printf("[store] exported run_id=%s rows=%d path=%s", runID, len(records), path)
	return nil
}
