// Package persist reads and writes the small JSON state files (watch
// history, profile). Loads are best effort: a missing, unreadable or
// corrupt file leaves the destination untouched so callers fall back to
// their zero value.
package persist

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
)

// Load decodes the JSON file at path into v and reports whether anything
// was loaded. It never returns an error.
func Load(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("state file corrupt, starting empty")
		return false
	}
	return true
}

// Save encodes v as JSON at path.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
