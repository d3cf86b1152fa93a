// Package snapshot loads the pre-collected tenant data file into memory
// and serves datasets to the rest of the dashboard. The snapshot is the
// system's only data source: there are no network calls and no database.
package snapshot

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/errors"
	"github.com/tenantscope/dashboard/pkg/record"
)

// document is the on-disk snapshot layout produced by the collector.
type document struct {
	TenantName  string                     `json:"tenantName"`
	CollectedAt time.Time                  `json:"collectedAt"`
	Datasets    map[string][]record.Record `json:"datasets"`
}

// Store holds the loaded snapshot. Reads are lock-protected so a scheduled
// reload can swap the document while requests are in flight; the record
// slices themselves are read-only by contract.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
	cron *cron.Cron
}

// Open loads the snapshot at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the snapshot file and swaps it in atomically. On failure
// the previous document stays active.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return errors.NewSnapshotError(s.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.NewSnapshotError(s.path, err)
	}
	if doc.Datasets == nil {
		doc.Datasets = make(map[string][]record.Record)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	log.Printf("📦 Snapshot loaded: tenant=%s datasets=%d collected=%s",
		doc.TenantName, len(doc.Datasets), doc.CollectedAt.Format(time.RFC3339))
	return nil
}

// GetData returns the named dataset. Absent datasets return an empty
// slice, never nil and never an error. The returned slice must not be
// mutated.
func (s *Store) GetData(dataset string) []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.doc.Datasets[dataset]
	if !ok || rows == nil {
		return []record.Record{}
	}
	return rows
}

// Info describes the loaded snapshot.
func (s *Store) Info() models.SnapshotInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.doc.Datasets))
	for name, rows := range s.doc.Datasets {
		counts[name] = len(rows)
	}
	return models.SnapshotInfo{
		TenantName:  s.doc.TenantName,
		CollectedAt: s.doc.CollectedAt,
		Datasets:    counts,
	}
}

// ScheduleReload starts a cron job re-reading the snapshot file on the
// given schedule ("@every 15m", standard 5-field specs). A failed reload
// logs a warning and keeps serving the previous document.
func (s *Store) ScheduleReload(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.Reload(); err != nil {
			log.Printf("⚠️  Scheduled snapshot reload failed: %v", err)
		}
	})
	if err != nil {
		return errors.NewValidationError("reload_cron", err.Error())
	}

	c.Start()
	s.cron = c
	return nil
}

// StopReload stops the reload schedule, if one is running.
func (s *Store) StopReload() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
