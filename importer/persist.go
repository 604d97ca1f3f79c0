package importer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradejournal/journal"
)

const DefaultBatchSize = 50

// BatchStore is the part of journal.Store the importer needs.
type BatchStore interface {
	UpsertTrades(ctx context.Context, trades []journal.Trade) error
}

// BatchFailure describes one batch that did not save. From and To index
// the trades slice given to Persist, To exclusive.
type BatchFailure struct {
	Batch int
	From  int
	To    int
	Err   error
}

type BatchReport struct {
	Saved  int
	Failed []BatchFailure
}

func (r BatchReport) OK() bool { return len(r.Failed) == 0 }

// Persist writes trades in fixed-size batches. A failed batch is recorded
// and the next one is still attempted. Cancelling ctx stops before the next
// batch; remaining batches are reported as failed with ctx.Err().
func Persist(ctx context.Context, store BatchStore, trades []journal.Trade, size int, log zerolog.Logger) BatchReport {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var rep BatchReport
	for batch, from := 0, 0; from < len(trades); batch, from = batch+1, from+size {
		to := min(from+size, len(trades))

		err := ctx.Err()
		if err == nil {
			err = store.UpsertTrades(ctx, trades[from:to])
		}
		if err != nil {
			log.Error().Err(err).Int("batch", batch).Int("from", from).Int("to", to).Msg("batch failed")
			rep.Failed = append(rep.Failed, BatchFailure{Batch: batch, From: from, To: to, Err: err})
			continue
		}
		rep.Saved += to - from
	}

	log.Info().Int("saved", rep.Saved).Int("failed_batches", len(rep.Failed)).Msg("import persisted")
	return rep
}
