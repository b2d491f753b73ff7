// Package history keeps the bounded, most-recent-first log of played
// channels, persisted across restarts in a JSON state file.
package history

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kanalcli/kanal/internal/persist"
	"github.com/kanalcli/kanal/internal/playlist"
)

// MaxEntries caps the log; older entries fall off the end.
const MaxEntries = 12

// FileName is the state file under the application state dir.
const FileName = "mediaHistory.json"

// Entry is a played channel plus the moment it was played.
type Entry struct {
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Slug     string            `json:"slug"`
	Category playlist.Category `json:"type"`
	ViewedAt time.Time         `json:"viewedAt"`
}

// Channel rebuilds the channel record so a history entry can re-enter the
// selection path like a fresh catalog click.
func (e Entry) Channel() playlist.Channel {
	return playlist.Channel{Name: e.Name, URL: e.URL, Slug: e.Slug, Category: e.Category}
}

// Store is the persisted watch log. Single writer: the UI event loop.
type Store struct {
	path    string
	now     func() time.Time
	entries []Entry
}

// NewStore loads any persisted history from dir. Corrupt or absent state
// starts empty.
func NewStore(dir string) *Store {
	s := &Store{path: filepath.Join(dir, FileName), now: time.Now}
	persist.Load(s.path, &s.entries)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	return s
}

// Record puts ch at the front of the log, replacing any previous entry
// with the same slug, and persists the result.
func (s *Store) Record(ch playlist.Channel) {
	kept := make([]Entry, 0, len(s.entries)+1)
	kept = append(kept, Entry{
		Name:     ch.Name,
		URL:      ch.URL,
		Slug:     ch.Slug,
		Category: ch.Category,
		ViewedAt: s.now(),
	})
	for _, e := range s.entries {
		if e.Slug == ch.Slug {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > MaxEntries {
		kept = kept[:MaxEntries]
	}
	s.entries = kept
	s.save()
}

// List returns the log most-recent-first.
func (s *Store) List() []Entry { return s.entries }

// Clear wipes the log and its state file.
func (s *Store) Clear() {
	s.entries = nil
	s.save()
}

func (s *Store) save() {
	if err := persist.Save(s.path, s.entries); err != nil {
		log.Warn().Err(err).Msg("could not persist watch history")
	}
}
