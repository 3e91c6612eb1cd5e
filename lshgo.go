package lshgo

import (
	"math/rand"

	"github.com/hupe1980/lshgo/dataset"
	"github.com/hupe1980/lshgo/persistence"
	"github.com/hupe1980/lshgo/training"
)

// Parameter configures an Index. Fields follow the historical on-disk names.
type Parameter struct {
	// M is the legacy bucket-count hint. It only seeds the per-table
	// random arrays kept for format compatibility.
	M uint32
	// L is the number of independent hash tables.
	L uint32
	// D is the vector dimensionality.
	D uint32
	// N is the code bit-width. Must not exceed MaxBitWidth.
	N uint32
	// S is the training sample size per table.
	S uint32
}

// Index is an LSH index with PCA-derived projection directions.
//
// Only TrainAll is concurrent internally. All other methods are
// single-threaded: they must not be called concurrently with themselves,
// with each other, or with an in-flight TrainAll on the same Index.
type Index struct {
	param    Parameter
	tables   []map[uint64][]uint32
	pcs      [][][]float32 // projections[table][bit][dim]
	rndArray [][]uint32    // legacy, persisted for format compatibility
	stats    *BitStatistics
	logger   *Logger
	seed     int64
}

// New creates an empty Index for the given parameters.
func New(param Parameter, opts ...Option) (*Index, error) {
	idx := &Index{
		logger: NoopLogger(),
		seed:   1,
	}
	for _, opt := range opts {
		opt(idx)
	}
	if err := idx.Reset(param); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reset replaces the parameter set and discards all trained state, buckets
// and statistics. The legacy random arrays are regenerated from the seed.
func (idx *Index) Reset(param Parameter) error {
	if param.N < 1 || param.N > MaxBitWidth {
		return &ErrInvalidBitWidth{BitWidth: int(param.N)}
	}

	idx.param = param
	idx.tables = make([]map[uint64][]uint32, param.L)
	for i := range idx.tables {
		idx.tables[i] = make(map[uint64][]uint32)
	}
	idx.pcs = make([][][]float32, param.L)
	idx.stats = nil

	rng := rand.New(rand.NewSource(idx.seed))
	idx.rndArray = make([][]uint32, param.L)
	for i := range idx.rndArray {
		arr := make([]uint32, param.N)
		if param.M > 0 {
			for j := range arr {
				arr[j] = uint32(rng.Intn(int(param.M)))
			}
		}
		idx.rndArray[i] = arr
	}
	return nil
}

// Param returns the index parameters.
func (idx *Index) Param() Parameter { return idx.param }

// Trained reports whether every table has projection directions.
func (idx *Index) Trained() bool {
	for _, pcs := range idx.pcs {
		if pcs == nil {
			return false
		}
	}
	return len(idx.pcs) > 0
}

// TrainAll learns projection directions for every table, running at most
// batchSize trainings concurrently with a hard join between batches. A later
// call fully replaces the previous projections; buckets are not rehashed.
func (idx *Index) TrainAll(data dataset.Dataset, batchSize int) error {
	if uint32(data.Dimension()) != idx.param.D {
		return &ErrDimensionMismatch{Expected: int(idx.param.D), Actual: data.Dimension()}
	}

	sched := &training.Scheduler{
		BatchSize: batchSize,
		Seed:      idx.seed,
		Logger:    idx.logger.Logger,
	}
	cfg := training.Config{
		BitWidth:   int(idx.param.N),
		SampleSize: int(idx.param.S),
	}

	pcs, err := sched.TrainAll(data, int(idx.param.L), cfg)
	idx.logger.LogTrain(int(idx.param.L), batchSize, err)
	if err != nil {
		return err
	}
	idx.pcs = pcs
	return nil
}

// Insert appends id to the bucket of vec's code in every table. Buckets are
// created on demand and never deduplicated or shrunk.
func (idx *Index) Insert(id uint32, vec []float32) {
	for t := range idx.tables {
		code := idx.HashValue(t, vec)
		idx.tables[t][code] = append(idx.tables[t][code], id)
	}
}

// Hash bulk-inserts every row of the dataset under every table, with ids
// equal to row indices.
func (idx *Index) Hash(data dataset.Dataset) {
	for i := 0; i < data.Size(); i++ {
		idx.Insert(uint32(i), data.Row(i))
	}
	idx.logger.LogHash(data.Size())
}

// Lookup returns the ids stored under code in table t, in storage order, or
// nil if the bucket is absent. The returned slice is backed by the bucket and
// must not be modified.
func (idx *Index) Lookup(t int, code uint64) []uint32 {
	return idx.tables[t][code]
}

// Probe invokes visit once per id stored under code in table t, in bucket
// storage order, and returns the bucket size. An absent bucket yields 0
// without invoking visit.
func (idx *Index) Probe(t int, code uint64, visit func(id uint32)) int {
	bucket, ok := idx.tables[t][code]
	if !ok {
		return 0
	}
	for _, id := range bucket {
		visit(id)
	}
	return len(bucket)
}

// Prober supplies the bucket ordering for a multi-probe query. It is
// constructed around a specific query vector by the caller and doubles as the
// probe visitor, so its visited count reflects every candidate seen so far.
type Prober interface {
	// VisitedCount returns the number of candidate ids seen so far.
	VisitedCount() int
	// HasNext reports whether another candidate bucket remains.
	HasNext() bool
	// Next returns the next (table, code) pair to probe.
	Next() (table int, code uint64)
	// Visit records one candidate id.
	Visit(id uint32)
}

// MultiProbeQuery probes buckets in the prober's order until the prober has
// visited targetCount candidates or runs out of buckets. Reaching
// targetCount is not guaranteed.
func (idx *Index) MultiProbeQuery(p Prober, targetCount int) {
	for p.VisitedCount() < targetCount && p.HasNext() {
		t, code := p.Next()
		idx.Probe(t, code, p.Visit)
	}
}

// TableSize returns the number of buckets in table 0.
func (idx *Index) TableSize() int {
	return len(idx.tables[0])
}

// MaxBucketSize returns the size of the largest bucket in table 0.
func (idx *Index) MaxBucketSize() int {
	maxSize := 0
	for _, bucket := range idx.tables[0] {
		if len(bucket) > maxSize {
			maxSize = len(bucket)
		}
	}
	return maxSize
}

// Save writes the index to filename in the exact binary layout.
// The index must be trained; buckets may be empty.
func (idx *Index) Save(filename string) error {
	if !idx.Trained() {
		return ErrNotTrained
	}
	err := persistence.SaveFile(filename, idx.snapshot())
	idx.logger.LogSnapshot("save", filename, err)
	return err
}

// Load replaces the whole index state with the contents of filename.
// On error the index is left unchanged.
func (idx *Index) Load(filename string) error {
	snap, err := persistence.LoadFile(filename)
	idx.logger.LogSnapshot("load", filename, err)
	if err != nil {
		return err
	}
	return idx.restore(snap)
}

// SaveLZ4 writes the index as an LZ4-framed snapshot. The framed payload is
// byte-identical to the plain Save format.
func (idx *Index) SaveLZ4(filename string) error {
	if !idx.Trained() {
		return ErrNotTrained
	}
	err := persistence.SaveFileLZ4(filename, idx.snapshot())
	idx.logger.LogSnapshot("save", filename, err)
	return err
}

// LoadLZ4 replaces the whole index state with an LZ4-framed snapshot.
func (idx *Index) LoadLZ4(filename string) error {
	snap, err := persistence.LoadFileLZ4(filename)
	idx.logger.LogSnapshot("load", filename, err)
	if err != nil {
		return err
	}
	return idx.restore(snap)
}

func (idx *Index) snapshot() *persistence.Snapshot {
	snap := &persistence.Snapshot{
		M:      idx.param.M,
		L:      idx.param.L,
		D:      idx.param.D,
		N:      idx.param.N,
		S:      idx.param.S,
		Tables: make([]persistence.TableRecord, idx.param.L),
	}
	for t := range snap.Tables {
		snap.Tables[t] = persistence.TableRecord{
			RndArray:    idx.rndArray[t],
			Buckets:     idx.tables[t],
			Projections: idx.pcs[t],
		}
	}
	return snap
}

func (idx *Index) restore(snap *persistence.Snapshot) error {
	param := Parameter{M: snap.M, L: snap.L, D: snap.D, N: snap.N, S: snap.S}
	if param.N < 1 || param.N > MaxBitWidth {
		return &ErrInvalidBitWidth{BitWidth: int(param.N)}
	}

	idx.param = param
	idx.tables = make([]map[uint64][]uint32, param.L)
	idx.pcs = make([][][]float32, param.L)
	idx.rndArray = make([][]uint32, param.L)
	for t, rec := range snap.Tables {
		idx.rndArray[t] = rec.RndArray
		idx.tables[t] = rec.Buckets
		idx.pcs[t] = rec.Projections
	}
	idx.stats = nil
	return nil
}
