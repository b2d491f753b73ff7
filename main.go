package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hugolgst/rich-go/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kanalcli/kanal/internal/catalog"
	"github.com/kanalcli/kanal/internal/config"
	"github.com/kanalcli/kanal/internal/deeplink"
	"github.com/kanalcli/kanal/internal/history"
	"github.com/kanalcli/kanal/internal/player"
	"github.com/kanalcli/kanal/internal/playlist"
	"github.com/kanalcli/kanal/internal/session"
	"github.com/kanalcli/kanal/internal/ui"
)

const discordAppID = "1219884747380485142"

func main() {
	var (
		channelFlag = flag.String("channel", "", "channel slug to select at startup")
		urlFlag     = flag.String("url", "", "share link to restore the selection from")
		configFlag  = flag.String("config", "", "path to config file (default <statedir>/config.json)")
		engineFlag  = flag.String("engine", "", "playback engine: mpv or beep")
		debugFlag   = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	stateDir, err := config.StateDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "state dir:", err)
		os.Exit(1)
	}

	closeLog := setupLogging(stateDir, *debugFlag)
	defer closeLog()

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath = filepath.Join(stateDir, "config.json")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *engineFlag != "" {
		cfg.Engine = *engineFlag
	}

	engine, err := newEngine(cfg.Engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer engine.Close()

	store := catalog.NewStore()
	hist := history.NewStore(stateDir)
	coord := session.New(store, hist, engine, cfg.PageURL, cfg.RadioPoster)

	cleanupPresence := setupPresence(coord)
	defer cleanupPresence()

	slug := *channelFlag
	if slug == "" && *urlFlag != "" {
		slug = deeplink.ChannelSlug(*urlFlag)
	}

	model := ui.New(cfg, playlist.NewFetcher(nil), store, hist, coord, stateDir, slug)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func newEngine(name string) (player.Engine, error) {
	switch name {
	case config.EngineBeep:
		return player.NewBeep(), nil
	case config.EngineMPV, "":
		return player.NewMPV()
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

// setupLogging sends zerolog to a file; the terminal belongs to the TUI.
func setupLogging(stateDir string, debug bool) func() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	f, err := os.OpenFile(filepath.Join(stateDir, "kanal.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return func() { f.Close() }
}

// setupPresence wires Discord rich presence onto playback starts. Best
// effort: without a running Discord client nothing is reported.
func setupPresence(coord *session.Coordinator) func() {
	if err := client.Login(discordAppID); err != nil {
		log.Debug().Err(err).Msg("discord presence unavailable")
		return func() {}
	}

	start := time.Now()
	coord.OnPlay = func(ch playlist.Channel) {
		err := client.SetActivity(client.Activity{
			Details:    "Watching " + ch.Name,
			State:      ch.Category.Badge(),
			Timestamps: &client.Timestamps{Start: &start},
		})
		if err != nil {
			log.Debug().Err(err).Msg("discord presence update failed")
		}
	}
	return func() { _ = client.SetActivity(client.Activity{}) }
}
