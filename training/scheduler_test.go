package training

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshgo/sampling"
)

func TestScheduler_TrainsEveryTable(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	sched := &Scheduler{BatchSize: 2, Seed: 1}
	out, err := sched.TrainAll(data, 5, cfg)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for tableID, pcs := range out {
		require.NotNil(t, pcs, "table %d untrained", tableID)
		require.Len(t, pcs, 2)
	}
}

func TestScheduler_UnevenLastBatch(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	// 7 tables with batch size 3 leaves a final batch of 1.
	sched := &Scheduler{BatchSize: 3, Seed: 1}
	out, err := sched.TrainAll(data, 7, cfg)
	require.NoError(t, err)
	for _, pcs := range out {
		require.NotNil(t, pcs)
	}
}

func TestScheduler_Deterministic(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	first := &Scheduler{BatchSize: 2, Seed: 42}
	a, err := first.TrainAll(data, 4, cfg)
	require.NoError(t, err)

	second := &Scheduler{BatchSize: 4, Seed: 42}
	b, err := second.TrainAll(data, 4, cfg)
	require.NoError(t, err)

	// Per-table seeds depend only on the scheduler seed and table id, not
	// on the batch size.
	require.Equal(t, a, b)
}

func TestScheduler_PropagatesWorkerError(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 100} // larger than the dataset

	sched := &Scheduler{BatchSize: 2, Seed: 1}
	_, err := sched.TrainAll(data, 3, cfg)
	require.ErrorIs(t, err, sampling.ErrSampleSize)
}

func TestScheduler_ZeroBatchSizeFallsBackToOne(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	sched := &Scheduler{Seed: 1}
	out, err := sched.TrainAll(data, 2, cfg)
	require.NoError(t, err)
	require.NotNil(t, out[0])
	require.NotNil(t, out[1])
}
