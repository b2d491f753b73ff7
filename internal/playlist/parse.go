package playlist

import (
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	metaMarker    = "#EXTINF"
	commentMarker = "#"
	fallbackName  = "Unknown"
)

// Parse scans extended playlist text and returns one Channel per accepted
// metadata/address pair, in source order. The display name is whatever
// follows the first comma on the #EXTINF line. Blank lines between the
// metadata line and its address are tolerated; a block whose next real line
// is itself a comment has no address and is dropped. Malformed input never
// produces an error, only fewer channels.
func Parse(raw string, cat Category) []Channel {
	lines := strings.Split(raw, "\n")
	var channels []Channel

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, metaMarker) {
			continue
		}

		name := fallbackName
		if _, after, ok := strings.Cut(line, ","); ok {
			if trimmed := strings.TrimSpace(after); trimmed != "" {
				name = trimmed
			}
		}

		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) || strings.HasPrefix(strings.TrimSpace(lines[j]), commentMarker) {
			log.Debug().
				Int("line", i+1).
				Str("name", name).
				Str("feed", string(cat)).
				Msg("playlist entry has no address line, skipped")
			continue
		}

		channels = append(channels, Channel{
			Name:     name,
			URL:      strings.TrimSpace(lines[j]),
			Slug:     Slugify(name),
			Category: cat,
		})
		i = j
	}

	return channels
}
