// Package dataset owns the one-time load of the accident table: read,
// clean, aggregate, then share the result read-only. Cleaning a full
// table is the expensive step, so runs are memoized by a content hash
// of the input bytes rather than by path or time.
package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/velodata/cycling.report/internal/accident"
	"github.com/velodata/cycling.report/internal/analytics"
	"github.com/velodata/cycling.report/internal/fsutil"
	"github.com/velodata/cycling.report/internal/ingest"
	"github.com/velodata/cycling.report/internal/monitoring"
)

// Metadata describes the source dataset for display surfaces.
type Metadata struct {
	Source      string `json:"source"`
	DatasetName string `json:"dataset_name"`
	Producer    string `json:"producer"`
	Period      string `json:"period"`
	License     string `json:"license"`
	URL         string `json:"url"`
}

// Info returns the fixed provenance of the accident dataset.
func Info() Metadata {
	return Metadata{
		Source:      "data.gouv.fr",
		DatasetName: "Accidents de vélo en France",
		Producer:    "BAAC - ONISR (Observatoire National Interministériel de la Sécurité Routière)",
		Period:      "2005-2023",
		License:     "Open License (Licence Ouverte)",
		URL:         "https://www.data.gouv.fr/datasets/accidents-de-velo/",
	}
}

// Snapshot is one cleaned dataset: the canonical record set, its
// cleaning report, and the pre-built aggregates. Snapshots are
// immutable after construction and safe for concurrent reads.
type Snapshot struct {
	Hash    string
	records []*accident.CleanedRecord
	report  *accident.CleaningReport
	aggs    *analytics.Aggregates
}

// CleanedTable returns the full cleaned record set. The returned slice
// is fresh; the records it points to are shared and must not be
// mutated.
func (s *Snapshot) CleanedTable() []*accident.CleanedRecord {
	out := make([]*accident.CleanedRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Report returns the cleaning report for this snapshot.
func (s *Snapshot) Report() *accident.CleaningReport { return s.report }

// Aggregate returns a pre-built aggregate table by name.
func (s *Snapshot) Aggregate(name string) (interface{}, error) {
	return s.aggs.ByName(name)
}

// Aggregates returns the full set of pre-built tables.
func (s *Snapshot) Aggregates() *analytics.Aggregates { return s.aggs }

// Filter returns the records matching the spec.
func (s *Snapshot) Filter(spec analytics.FilterSpec) []*accident.CleanedRecord {
	return analytics.Apply(s.records, spec)
}

// Summary computes the headline figures over the filtered subset.
func (s *Snapshot) Summary(spec analytics.FilterSpec) analytics.Summary {
	return analytics.Summarize(s.Filter(spec))
}

// Trend fits the yearly linear trend over the filtered subset.
func (s *Snapshot) Trend(spec analytics.FilterSpec) analytics.Trend {
	return analytics.YearlyTrend(s.Filter(spec))
}

// Store memoizes cleaning runs keyed by the sha256 of the input bytes.
// It is an injectable dependency: tests construct their own Store (or
// call Load directly) instead of sharing process-global state.
type Store struct {
	opts accident.Options
	fs   fsutil.FileSystem

	mu        sync.Mutex
	snapshots map[string]*Snapshot
}

// NewStore creates a Store that cleans with the given pipeline options
// and reads from the OS filesystem.
func NewStore(opts accident.Options) *Store {
	return NewStoreFS(opts, fsutil.OSFileSystem{})
}

// NewStoreFS creates a Store reading through the given filesystem.
func NewStoreFS(opts accident.Options, fs fsutil.FileSystem) *Store {
	return &Store{
		opts:      opts,
		fs:        fs,
		snapshots: make(map[string]*Snapshot),
	}
}

// LoadFile loads, cleans, and aggregates the dataset at path, reusing a
// cached snapshot when the file content is unchanged.
func (st *Store) LoadFile(path string) (*Snapshot, error) {
	data, err := st.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return st.Load(data)
}

// Load cleans and aggregates the given raw table bytes, memoized on
// their content hash.
func (st *Store) Load(data []byte) (*Snapshot, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	st.mu.Lock()
	if snap, ok := st.snapshots[hash]; ok {
		st.mu.Unlock()
		return snap, nil
	}
	st.mu.Unlock()

	snap, err := build(hash, data, st.opts)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// A concurrent Load of the same bytes may have finished first; keep
	// the stored snapshot so callers share one record set.
	if existing, ok := st.snapshots[hash]; ok {
		return existing, nil
	}
	st.snapshots[hash] = snap
	return snap, nil
}

// Invalidate drops the cached snapshot for a content hash.
func (st *Store) Invalidate(hash string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.snapshots, hash)
}

func build(hash string, data []byte, opts accident.Options) (*Snapshot, error) {
	table, err := ingest.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	records, report, err := accident.Clean(table.Rows, table.Columns, opts)
	if err != nil {
		return nil, err
	}

	monitoring.Logf("cleaned dataset %s: %d raw rows -> %d records (%d rejected, %d malformed), run %s",
		hash[:12], report.OriginalRows, report.CleanedRows, report.Rejections.Total,
		table.MalformedRows, report.RunID)

	return &Snapshot{
		Hash:    hash,
		records: records,
		report:  report,
		aggs:    analytics.Build(records),
	}, nil
}
