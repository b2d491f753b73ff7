package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanalcli/kanal/internal/playlist"
)

func testChannel(i int) playlist.Channel {
	name := fmt.Sprintf("Channel %d", i)
	return playlist.Channel{
		Name:     name,
		URL:      fmt.Sprintf("http://x/%d.m3u8", i),
		Slug:     playlist.Slugify(name),
		Category: playlist.TV,
	}
}

func TestRecordPrependsMostRecentFirst(t *testing.T) {
	s := NewStore(t.TempDir())

	s.Record(testChannel(1))
	s.Record(testChannel(2))

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "channel-2", entries[0].Slug)
	assert.Equal(t, "channel-1", entries[1].Slug)
}

func TestRecordSameSlugMovesToFrontWithLatestTimestamp(t *testing.T) {
	s := NewStore(t.TempDir())
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Record(testChannel(1))
	clock = clock.Add(time.Minute)
	s.Record(testChannel(2))
	clock = clock.Add(time.Minute)
	s.Record(testChannel(1))

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "channel-1", entries[0].Slug)
	assert.Equal(t, clock, entries[0].ViewedAt)
	assert.Equal(t, "channel-2", entries[1].Slug)
}

func TestHistoryNeverExceedsCap(t *testing.T) {
	s := NewStore(t.TempDir())
	for i := 0; i < MaxEntries+8; i++ {
		s.Record(testChannel(i))
	}

	entries := s.List()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, fmt.Sprintf("channel-%d", MaxEntries+7), entries[0].Slug)
}

func TestHistorySurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	s.Record(testChannel(1))
	s.Record(testChannel(2))

	reloaded := NewStore(dir)
	entries := reloaded.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "channel-2", entries[0].Slug)
}

func TestCorruptStateStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644))

	s := NewStore(dir)
	assert.Empty(t, s.List())
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	s.Record(testChannel(1))

	s.Clear()
	assert.Empty(t, s.List())
	assert.Empty(t, NewStore(dir).List())
}

func TestEntryChannelRoundTrip(t *testing.T) {
	ch := testChannel(3)
	s := NewStore(t.TempDir())
	s.Record(ch)

	assert.Equal(t, ch, s.List()[0].Channel())
}
