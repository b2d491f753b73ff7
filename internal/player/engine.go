// Package player is the playback engine boundary. The rest of the
// application drives whichever engine is configured through the Engine
// interface and knows nothing else about playback.
package player

// MIMETypeHLS is the fixed content type attached to every playback source.
const MIMETypeHLS = "application/x-mpegURL"

// Source describes what the engine should load.
type Source struct {
	Address  string
	MIMEType string
}

// Engine is the opaque playback component. Errors from it are surfaced by
// the engine's own means and never retried by callers.
type Engine interface {
	SetSource(src Source) error
	Play() error
	Volume() float64
	SetVolume(v float64)
	Muted() bool
	SetMuted(muted bool)
	Poster(url string)
	Close() error
}
