package enrich

import (
	"context"
	"log"

	"sitefinder/internal/domain"
	"sitefinder/internal/scrape/util"

	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 16

// Resolver is satisfied by *scrape.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, company string) (string, bool)
}

// Progress is reported once per finished row, in completion order.
type Progress struct {
	Done    int
	Total   int
	Percent float64
	Outcome domain.Outcome
}

// Batch resolves every record on a bounded pool of workers.
type Batch struct {
	Resolver   Resolver
	Workers    int
	OnProgress func(Progress)
}

// Run returns one outcome per record in completion order. A failing row
// never stops the others.
func (b *Batch) Run(ctx context.Context, records []domain.CompanyRecord) []domain.Outcome {
	total := len(records)
	if total == 0 {
		return nil
	}
	workers := b.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	done := make(chan domain.Outcome, workers)
	collected := make(chan []domain.Outcome, 1)

	// single consumer: owns the completed count and the output slice
	go func() {
		out := make([]domain.Outcome, 0, total)
		for o := range done {
			out = append(out, o)
			if b.OnProgress != nil {
				n := len(out)
				b.report(Progress{
					Done:    n,
					Total:   total,
					Percent: 100 * float64(n) / float64(total),
					Outcome: o,
				})
			}
		}
		collected <- out
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			done <- b.resolveOne(ctx, rec)
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()
	close(done)

	return <-collected
}

// report keeps a panicking callback from stopping the consumer, which the
// workers block on.
func (b *Batch) report(p Progress) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[batch] progress callback panic at %d/%d: %v", p.Done, p.Total, r)
		}
	}()
	b.OnProgress(p)
}

func (b *Batch) resolveOne(ctx context.Context, rec domain.CompanyRecord) (out domain.Outcome) {
	out = domain.Outcome{Index: rec.Index, Name: util.SanitizeCompanyName(rec.Name())}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[batch] row=%d company=%q panic: %v", rec.Index, out.Name, r)
			out.Website = ""
		}
	}()

	log.Printf("[batch] processing row=%d company=%q", rec.Index, out.Name)
	if site, ok := b.Resolver.Resolve(ctx, out.Name); ok {
		out.Website = site
	}
	return out
}

// Attach writes each outcome into the record with the same Index and returns
// how many records got a website.
func Attach(records []domain.CompanyRecord, outcomes []domain.Outcome) int {
	pos := make(map[int]int, len(records))
	for i, r := range records {
		pos[r.Index] = i
	}

	found := 0
	for _, o := range outcomes {
		i, ok := pos[o.Index]
		if !ok || !o.Found() {
			continue
		}
		records[i].Website = o.Website
		found++
	}
	return found
}
