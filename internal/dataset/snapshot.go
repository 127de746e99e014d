package dataset

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Design-for-Changes/visualization/internal/kana"
	"github.com/Design-for-Changes/visualization/internal/models"
)

// Snapshot is one immutable load of the directory-level datasets. A new
// load builds a fresh snapshot; readers keep whatever snapshot they got.
type Snapshot struct {
	Roster   []models.MemberProfile
	Index    *models.SpeechIndex
	LoadedAt time.Time
}

// DirectoryEntry is one row of the member directory.
type DirectoryEntry struct {
	Slug             string `json:"slug"`
	Name             string `json:"member_name"`
	Kana             string `json:"kana,omitempty"`
	Party            string `json:"party,omitempty"`
	Chamber          string `json:"chamber,omitempty"`
	Speeches         int    `json:"speeches"`
	WrittenQuestions int    `json:"written_questions"`
}

// Directory lists all roster members in kana order with their counts from
// the speech index. Members without an index entry show zero counts.
func (s *Snapshot) Directory() []DirectoryEntry {
	entries := make([]DirectoryEntry, 0, len(s.Roster))
	for _, member := range s.Roster {
		entry := DirectoryEntry{
			Slug:    member.Slug,
			Name:    member.MemberName,
			Kana:    member.Kana,
			Party:   member.Party,
			Chamber: member.Chamber,
		}
		if s.Index != nil {
			if counts, ok := s.Index.Index[member.Slug]; ok {
				entry.Speeches = counts.Speeches
				entry.WrittenQuestions = counts.WrittenQuestions
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return kana.SortKey(entries[i].Kana, entries[i].Name) < kana.SortKey(entries[j].Kana, entries[j].Name)
	})
	return entries
}

// Cache holds the current snapshot and swaps it atomically on refresh, so
// requests in flight never observe a half-loaded dataset.
type Cache struct {
	store *Store
	log   *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewCache wraps a store. The cache is empty until the first Refresh.
func NewCache(store *Store, log *slog.Logger) *Cache {
	if log == nil {
		log = store.log
	}
	return &Cache{store: store, log: log}
}

// Refresh reloads the roster and the speech index and installs a new
// snapshot. The roster is mandatory; the index is best-effort and degrades
// to zero counts when unavailable.
func (c *Cache) Refresh(ctx context.Context) error {
	members, err := c.store.Roster(ctx)
	if err != nil {
		return err
	}

	idx, err := c.store.Index(ctx)
	if err != nil {
		c.log.Warn("speech index unavailable", slog.Any("err", err))
		idx = nil
	}

	snap := &Snapshot{Roster: members, Index: idx, LoadedAt: time.Now()}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return nil
}

// Current returns the latest snapshot, or nil before the first refresh.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
