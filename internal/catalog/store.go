// Package catalog owns the two channel lists and the per-list render
// cursors that the lazy renderer advances chunk by chunk.
package catalog

import "github.com/kanalcli/kanal/internal/playlist"

type categoryList struct {
	channels []playlist.Channel
	cursor   int
}

// Store holds one ordered channel list per category plus a cursor marking
// how many entries have been materialized into the view.
type Store struct {
	lists map[playlist.Category]*categoryList
}

func NewStore() *Store {
	return &Store{lists: map[playlist.Category]*categoryList{
		playlist.TV:    {},
		playlist.Radio: {},
	}}
}

func (s *Store) list(cat playlist.Category) *categoryList {
	l, ok := s.lists[cat]
	if !ok {
		l = &categoryList{}
		s.lists[cat] = l
	}
	return l
}

// SetList replaces a category's channels and resets its render cursor.
func (s *Store) SetList(cat playlist.Category, channels []playlist.Channel) {
	l := s.list(cat)
	l.channels = channels
	l.cursor = 0
}

// List returns the full channel sequence for a category, in source order.
func (s *Store) List(cat playlist.Category) []playlist.Channel {
	return s.list(cat).channels
}

func (s *Store) Len(cat playlist.Category) int { return len(s.list(cat).channels) }

// Rendered reports how many channels of a category have been handed out.
func (s *Store) Rendered(cat playlist.Category) int { return s.list(cat).cursor }

// AdvanceCursor returns the next chunk of at most n unrendered channels and
// moves the cursor past them. Past the end it returns an empty chunk and is
// safe to call again.
func (s *Store) AdvanceCursor(cat playlist.Category, n int) []playlist.Channel {
	l := s.list(cat)
	end := l.cursor + n
	if end > len(l.channels) {
		end = len(l.channels)
	}
	chunk := l.channels[l.cursor:end]
	l.cursor = end
	return chunk
}

// ResetCursor rewinds a category for a full re-render without discarding
// the channel list.
func (s *Store) ResetCursor(cat playlist.Category) { s.list(cat).cursor = 0 }

// First returns a category's first channel, if any.
func (s *Store) First(cat playlist.Category) (playlist.Channel, bool) {
	l := s.list(cat)
	if len(l.channels) == 0 {
		return playlist.Channel{}, false
	}
	return l.channels[0], true
}

// IndexOf locates the first channel with the given slug within a category,
// or -1. Duplicate slugs resolve to the earliest entry.
func (s *Store) IndexOf(cat playlist.Category, slug string) int {
	for i, ch := range s.list(cat).channels {
		if ch.Slug == slug {
			return i
		}
	}
	return -1
}

// FindBySlug searches TV first, then Radio, returning the first match.
func (s *Store) FindBySlug(slug string) (playlist.Channel, bool) {
	for _, cat := range []playlist.Category{playlist.TV, playlist.Radio} {
		if i := s.IndexOf(cat, slug); i >= 0 {
			return s.list(cat).channels[i], true
		}
	}
	return playlist.Channel{}, false
}
