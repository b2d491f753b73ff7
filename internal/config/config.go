// Package config carries the static startup configuration: feed URLs,
// branding strings and keyboard help. The application reads it once and
// never revalidates it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Engine names accepted by the -engine flag and config file.
const (
	EngineMPV  = "mpv"
	EngineBeep = "beep"
)

type Config struct {
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	TVSource    string `json:"tvSource"`
	RadioSource string `json:"radioSource"`
	RadioPoster string `json:"radioPoster"`
	// PageURL is the base the share link is built on. Empty yields a bare
	// "?channel=..." query string.
	PageURL      string   `json:"pageUrl"`
	Engine       string   `json:"engine"`
	KeyboardHelp []string `json:"keyboardHelp"`
}

// Default mirrors the stock source configuration.
func Default() Config {
	return Config{
		Title:       "Canlı TV ve Radyo",
		Brand:       "StreamCMS",
		TVSource:    "https://iptv-org.github.io/iptv/countries/tr.m3u",
		RadioSource: "https://raw.githubusercontent.com/ipfm-org/ipfm/main/Radyolar.m3u",
		RadioPoster: "https://media.giphy.com/media/3oriO0OEd9QIDdllqo/giphy.gif",
		Engine:      EngineMPV,
		KeyboardHelp: []string{
			"↑/↓ change channel",
			"←/→ volume down/up",
			"m toggle mute",
			"enter play selection",
			"1/2 or t switch TV/Radio",
			"tab cycle panes · x clear history · q quit",
		},
	}
}

// Load returns the defaults, overridden by the JSON config file at path
// when one exists. A missing file is not an error; an unreadable or
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// StateDir resolves and creates the directory holding the config file,
// state files and log.
func StateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "kanal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
