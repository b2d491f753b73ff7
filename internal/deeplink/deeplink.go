// Package deeplink reads and writes the channel query parameter of share
// links, so a selection can be restored from a pasted URL.
package deeplink

import "net/url"

const param = "channel"

// ChannelSlug extracts the channel slug from a pasted share link. Absent
// or unparsable links yield an empty slug.
func ChannelSlug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get(param)
}

// WithChannel rewrites base's channel parameter to slug, preserving any
// other query parameters. An empty base produces a bare query string.
func WithChannel(base, slug string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(param, slug)
	u.RawQuery = q.Encode()
	return u.String()
}
