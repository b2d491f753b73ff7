// Package session owns the selection state machine: which category and
// channel are active, what the share link says, and when the playback
// engine is told to load something. The highlight, metadata panel, share
// URL and engine source all derive from this one state.
package session

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kanalcli/kanal/internal/catalog"
	"github.com/kanalcli/kanal/internal/deeplink"
	"github.com/kanalcli/kanal/internal/history"
	"github.com/kanalcli/kanal/internal/player"
	"github.com/kanalcli/kanal/internal/playlist"
)

// VolumeStep is the per-keypress volume change.
const VolumeStep = 0.05

// Coordinator synchronizes selection, share link, watch history and the
// playback engine. Single-threaded by construction: every method runs
// inside one UI event.
type Coordinator struct {
	catalog *catalog.Store
	history *history.Store
	engine  player.Engine

	pageURL     string
	radioPoster string

	activeCategory playlist.Category
	active         *playlist.Channel
	shareURL       string

	// OnPlay, when set, observes every playback start (rich presence).
	OnPlay func(ch playlist.Channel)
}

func New(cat *catalog.Store, hist *history.Store, eng player.Engine, pageURL, radioPoster string) *Coordinator {
	return &Coordinator{
		catalog:        cat,
		history:        hist,
		engine:         eng,
		pageURL:        pageURL,
		radioPoster:    radioPoster,
		activeCategory: playlist.TV,
	}
}

// ActiveCategory reports which tab is active.
func (c *Coordinator) ActiveCategory() playlist.Category { return c.activeCategory }

// Active returns the active channel, if any.
func (c *Coordinator) Active() (playlist.Channel, bool) {
	if c.active == nil {
		return playlist.Channel{}, false
	}
	return *c.active, true
}

// ActiveSlug is the identifier every rendered card compares itself
// against; empty while nothing is selected.
func (c *Coordinator) ActiveSlug() string {
	if c.active == nil {
		return ""
	}
	return c.active.Slug
}

// ShareURL is the deep link for the active channel.
func (c *Coordinator) ShareURL() string { return c.shareURL }

// Caption is the one-line metadata summary for the active channel.
func (c *Coordinator) Caption() string {
	if c.active == nil {
		return ""
	}
	return fmt.Sprintf("%s • %s", c.active.Category.Badge(), c.active.URL)
}

// Select makes ch the single active channel: selection state, share link
// and, when autoplay is set, playback. The caller re-renders highlight and
// metadata from the accessors afterwards.
func (c *Coordinator) Select(ch playlist.Channel, cat playlist.Category, autoplay bool) {
	c.active = &ch
	c.activeCategory = cat
	c.shareURL = deeplink.WithChannel(c.pageURL, ch.Slug)
	if autoplay {
		c.Play(ch, cat)
	}
}

// Play loads ch into the engine and records it in the watch history. An
// engine failure is logged but does not roll back the selection; the UI
// keeps showing the attempted channel.
func (c *Coordinator) Play(ch playlist.Channel, cat playlist.Category) {
	poster := ""
	if cat == playlist.Radio {
		poster = c.radioPoster
	}
	c.engine.Poster(poster)

	src := player.Source{Address: ch.URL, MIMEType: player.MIMETypeHLS}
	if err := c.engine.SetSource(src); err != nil {
		log.Warn().Str("channel", ch.Slug).Err(err).Msg("engine rejected source")
	} else if err := c.engine.Play(); err != nil {
		log.Warn().Str("channel", ch.Slug).Err(err).Msg("playback start failed")
	}

	c.history.Record(ch)
	if c.OnPlay != nil {
		c.OnPlay(ch)
	}
}

// Replay restarts the active channel; no-op while nothing is selected.
func (c *Coordinator) Replay() {
	if c.active == nil {
		return
	}
	c.Play(*c.active, c.activeCategory)
}

// SwitchCategory reports whether the active tab changed. On a change the
// caller clears and re-renders the catalog surface and selects the new
// category's first channel without autoplay.
func (c *Coordinator) SwitchCategory(cat playlist.Category) bool {
	if c.activeCategory == cat {
		return false
	}
	c.activeCategory = cat
	return true
}

// Restore reconstructs the selection from a startup deep link. A known
// slug selects its channel with autoplay, switching category as needed;
// an empty or unknown slug falls back to the first TV channel.
func (c *Coordinator) Restore(slug string) (playlist.Channel, bool) {
	if slug != "" {
		if ch, ok := c.catalog.FindBySlug(slug); ok {
			c.Select(ch, ch.Category, true)
			return ch, true
		}
	}
	if first, ok := c.catalog.First(playlist.TV); ok {
		c.Select(first, playlist.TV, true)
		return first, true
	}
	return playlist.Channel{}, false
}

// Navigate selects the channel delta steps away from the active one in the
// active category's full list, with autoplay. No-op at either boundary or
// while nothing is selected.
func (c *Coordinator) Navigate(delta int) (playlist.Channel, bool) {
	if c.active == nil {
		return playlist.Channel{}, false
	}
	list := c.catalog.List(c.activeCategory)
	idx := c.catalog.IndexOf(c.activeCategory, c.active.Slug)
	if idx < 0 {
		return playlist.Channel{}, false
	}
	next := idx + delta
	if next < 0 || next >= len(list) {
		return playlist.Channel{}, false
	}
	c.Select(list[next], c.activeCategory, true)
	return list[next], true
}

// AdjustVolume nudges the engine volume, clamped to [0,1]. Works with or
// without an active channel.
func (c *Coordinator) AdjustVolume(delta float64) float64 {
	v := c.engine.Volume() + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.engine.SetVolume(v)
	return v
}

// ToggleMute flips the engine mute state.
func (c *Coordinator) ToggleMute() bool {
	muted := !c.engine.Muted()
	c.engine.SetMuted(muted)
	return muted
}

// Volume exposes the engine level for the status line.
func (c *Coordinator) Volume() float64 { return c.engine.Volume() }

// Muted exposes the engine mute state for the status line.
func (c *Coordinator) Muted() bool { return c.engine.Muted() }
