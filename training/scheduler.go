package training

import (
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lshgo/dataset"
)

// Scheduler trains all tables of an index in fixed-size batches.
//
// Within a batch one goroutine runs per table, each writing only into its own
// slot of the result slice. Batches are separated by a hard join: no work from
// a later batch starts before every worker of the current batch has finished.
// A worker failure is surfaced after its batch joins; slots filled by sibling
// workers of the same or earlier batches remain valid.
type Scheduler struct {
	// BatchSize is the maximum number of tables trained concurrently.
	// Values below 1 are treated as 1.
	BatchSize int
	// Seed derives each table's random source as Seed + tableID, making a
	// full training run reproducible.
	Seed int64
	// Logger receives batch progress; nil disables logging.
	Logger *slog.Logger
}

// TrainAll trains `tables` projection sets for the dataset and returns them
// indexed by table. On error the returned slice still holds the results of
// every worker that completed successfully.
func (s *Scheduler) TrainAll(data dataset.Dataset, tables int, cfg Config) ([][][]float32, error) {
	batchSize := s.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	out := make([][][]float32, tables)
	for start := 0; start < tables; start += batchSize {
		end := min(start+batchSize, tables)

		var g errgroup.Group
		for t := start; t < end; t++ {
			t := t
			g.Go(func() error {
				rng := rand.New(rand.NewSource(s.Seed + int64(t)))
				pcs, err := TrainTable(data, cfg, rng)
				if err != nil {
					return fmt.Errorf("table %d: %w", t, err)
				}
				out[t] = pcs
				return nil
			})
		}

		err := g.Wait()
		if s.Logger != nil {
			if err != nil {
				s.Logger.Error("training batch failed", "start", start, "end", end, "error", err)
			} else {
				s.Logger.Debug("training batch finished", "start", start, "end", end)
			}
		}
		if err != nil {
			return out, err
		}
	}

	return out, nil
}
