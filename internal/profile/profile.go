// Package profile stores the local nickname used to prefill the login
// form. Not an authentication mechanism: nothing is verified or sent
// anywhere.
package profile

import (
	"path/filepath"

	"github.com/kanalcli/kanal/internal/persist"
)

// FileName is the state file under the application state dir.
const FileName = "mediaAuthUser.json"

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Load returns the persisted profile, or a zero profile when nothing
// usable is stored.
func Load(dir string) Profile {
	var p Profile
	persist.Load(filepath.Join(dir, FileName), &p)
	return p
}

// Save persists the profile best effort.
func Save(dir string, p Profile) error {
	return persist.Save(filepath.Join(dir, FileName), p)
}
