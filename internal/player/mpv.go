package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// MPV runs an mpv subprocess in idle mode and drives it over its JSON IPC
// socket. It handles HLS video and plain audio streams alike, so it is the
// default engine.
type MPV struct {
	cmd    *exec.Cmd
	conn   net.Conn
	enc    *json.Encoder
	sock   string
	volume float64
	muted  bool
	poster string
	source Source
}

// NewMPV starts mpv idle and connects to its IPC socket.
func NewMPV() (*MPV, error) {
	bin, err := exec.LookPath("mpv")
	if err != nil {
		return nil, fmt.Errorf("mpv not found: %w", err)
	}

	sock := filepath.Join(os.TempDir(), fmt.Sprintf("kanal-mpv-%d.sock", os.Getpid()))
	cmd := exec.Command(bin,
		"--idle=yes",
		"--no-terminal",
		"--force-window=immediate",
		"--input-ipc-server="+sock,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting mpv: %w", err)
	}

	conn, err := dialIPC(sock, 5*time.Second)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("connecting to mpv ipc: %w", err)
	}

	m := &MPV{cmd: cmd, conn: conn, enc: json.NewEncoder(conn), sock: sock, volume: 1}

	// mpv talks back on the same socket; drain it so writes never block.
	go func() {
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
		}
	}()

	return m, nil
}

// dialIPC waits for mpv to create its socket.
func dialIPC(sock string, wait time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(wait)
	for {
		conn, err := net.Dial("unix", sock)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (m *MPV) command(args ...any) error {
	return m.enc.Encode(map[string]any{"command": args})
}

func (m *MPV) SetSource(src Source) error {
	m.source = src
	return m.command("loadfile", src.Address, "replace")
}

func (m *MPV) Play() error {
	return m.command("set_property", "pause", false)
}

func (m *MPV) Volume() float64 { return m.volume }

func (m *MPV) SetVolume(v float64) {
	m.volume = v
	if err := m.command("set_property", "volume", v*100); err != nil {
		log.Warn().Err(err).Msg("mpv volume command failed")
	}
}

func (m *MPV) Muted() bool { return m.muted }

func (m *MPV) SetMuted(muted bool) {
	m.muted = muted
	if err := m.command("set_property", "mute", muted); err != nil {
		log.Warn().Err(err).Msg("mpv mute command failed")
	}
}

// Poster records the still image for audio-only sources. mpv renders its
// own surface, so the URL is only kept for the metadata panel.
func (m *MPV) Poster(url string) { m.poster = url }

func (m *MPV) Close() error {
	_ = m.command("quit")
	_ = m.conn.Close()
	_ = os.Remove(m.sock)
	if m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
		_, _ = m.cmd.Process.Wait()
	}
	return nil
}
