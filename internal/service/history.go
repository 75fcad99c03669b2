package service

import (
	"time"

	"classpoll/internal/model"
)

// HistoryLog is the append-only record of past closed polls. No
// eviction; bounded by process lifetime.
type HistoryLog struct {
	entries []model.HistoryEntry
	lastID  int64
}

// NewHistoryLog creates an empty history log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append records a closed poll and returns the created entry. Ids are
// millisecond timestamps, bumped to stay unique when two closures land
// in the same millisecond.
func (h *HistoryLog) Append(q *model.Question, results []model.ResultEntry) model.HistoryEntry {
	now := time.Now()
	id := now.UnixMilli()
	if id <= h.lastID {
		id = h.lastID + 1
	}
	h.lastID = id

	entry := model.HistoryEntry{
		ID:       id,
		Question: q.Text,
		Options:  q.Options,
		Results:  results,
		ClosedAt: now,
	}
	h.entries = append(h.entries, entry)
	return entry
}

// List returns all entries in insertion order.
func (h *HistoryLog) List() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
