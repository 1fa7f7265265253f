// Package session runs one playback attempt: spawn the engine, establish
// the control channel, then a cooperative tick loop of keyboard poll →
// command → sample → render until quit, engine exit, or channel loss.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/mverdu/skylark/internal/mpv"
	"github.com/mverdu/skylark/internal/overlay"
	"github.com/mverdu/skylark/internal/state"
	"github.com/mverdu/skylark/internal/term"
)

// Exit codes surfaced to the shell. Engine exits pass their own code
// through; ExitNoControlChannel is the distinguished failure for a channel
// that never came up with no fallback control path available.
const (
	ExitOK               = 0
	ExitStartFailure     = 1
	ExitNoControlChannel = 3
)

const (
	defaultKeyWait = 300 * time.Millisecond
	defaultSettle  = 100 * time.Millisecond
	quitGrace      = 5 * time.Second
	confirmMS      = 1500 * time.Millisecond
)

// Favorites is the data-layer collaborator behind the favorite marker.
// Persistence is outside this subsystem; the session only asks and
// toggles.
type Favorites interface {
	Contains(url string) bool
	Toggle(url, name string) bool
}

// Options configure one playback session.
type Options struct {
	URL         string
	StationName string
	PlayMode    string
	Source      string

	MPVPath    string   // optional engine binary override
	SocketPath string   // control endpoint; empty uses the platform default
	ExtraArgs  []string // user-agent, proxy, volume, shutdown length

	Tick            time.Duration // keyboard poll bound, paces the loop
	VolumeStep      int
	ConnectAttempts int
	ConnectDelay    time.Duration

	Favorites Favorites
	Renderer  *overlay.Renderer
	Store     *state.Store
	Logf      func(format string, args ...any)

	// ReadKey is swappable for tests; nil uses the real terminal.
	ReadKey func(timeout time.Duration) (term.Key, bool)
}

// engineHandle is what the loop needs from the spawned process.
type engineHandle interface {
	Running() bool
	ExitCode() int
	SendInput(line string) bool
	Kill()
	Shutdown(grace time.Duration) int
}

// controlClient is what the loop needs from the IPC client.
type controlClient interface {
	GetProperty(name string) (any, bool)
	Command(args ...any) error
	ShowText(text string, duration time.Duration)
	LoadFile(url string) error
	Quit() error
	TakeEndReached() bool
	Closed() bool
	Close() error
}

type session struct {
	engine   engineHandle
	client   controlClient
	meta     mpv.SessionMeta
	readKey  func(timeout time.Duration) (term.Key, bool)
	renderer *overlay.Renderer
	store    *state.Store
	favs     Favorites
	logf     func(format string, args ...any)

	keyWait time.Duration
	settle  time.Duration
	volStep int
}

// Run executes a full session and returns the exit code to surface.
func Run(ctx context.Context, opts Options) int {
	opts = withDefaults(opts)

	bin, err := mpv.FindEngine(opts.MPVPath)
	if err != nil {
		opts.Logf("engine discovery failed: %v", err)
		return ExitStartFailure
	}

	mode := mpv.DefaultSpawnMode()
	eng, err := mpv.Spawn(bin, opts.URL, opts.SocketPath, mode, opts.ExtraArgs)
	if err != nil {
		opts.Logf("spawn engine: %v", err)
		return ExitStartFailure
	}

	conn, err := mpv.Connect(opts.SocketPath, opts.ConnectAttempts, opts.ConnectDelay)
	if err != nil {
		opts.Logf("control channel unavailable at %s: %v", opts.SocketPath, err)
		return runWithoutChannel(ctx, eng, mode, opts)
	}

	client := mpv.NewClient(conn)
	if mode == mpv.IdleLoadMode {
		if err := client.LoadFile(opts.URL); err != nil {
			opts.Logf("load media over channel: %v", err)
			eng.Kill()
			_ = client.Close()
			return ExitNoControlChannel
		}
		time.Sleep(opts.ConnectDelay)
	}

	s := newSession(eng, client, opts)
	return s.loop(ctx)
}

func withDefaults(opts Options) Options {
	if opts.SocketPath == "" {
		opts.SocketPath = mpv.SocketPath()
	}
	if opts.Tick <= 0 {
		opts.Tick = defaultKeyWait
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = 5
	}
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = mpv.DefaultConnectAttempts
	}
	if opts.ConnectDelay <= 0 {
		opts.ConnectDelay = mpv.DefaultConnectDelay
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	if opts.ReadKey == nil {
		opts.ReadKey = term.ReadKey
	}
	return opts
}

func newSession(eng engineHandle, client controlClient, opts Options) *session {
	return &session{
		engine: eng,
		client: client,
		meta: mpv.SessionMeta{
			StationName: opts.StationName,
			PlayMode:    opts.PlayMode,
			ChannelURL:  opts.URL,
			Source:      opts.Source,
		},
		readKey:  opts.ReadKey,
		renderer: opts.Renderer,
		store:    opts.Store,
		favs:     opts.Favorites,
		logf:     opts.Logf,
		keyWait:  opts.Tick,
		settle:   defaultSettle,
		volStep:  opts.VolumeStep,
	}
}

// loop is one control cycle per tick until something ends the session.
func (s *session) loop(ctx context.Context) int {
	defer func() { _ = s.client.Close() }()

	first := true
	var last overlay.Projection
	for {
		select {
		case <-ctx.Done():
			return s.quit()
		default:
		}

		if !s.engine.Running() {
			code := s.engine.ExitCode()
			if code < 0 {
				code = ExitOK
			}
			return code
		}

		if key, ok := s.readKey(s.keyWait); ok {
			if done, code := s.handleKey(key); done {
				return code
			}
		}

		if s.client.TakeEndReached() {
			s.logf("stream ended, shutting down")
			return s.quit()
		}

		snap, responded := mpv.Sample(s.client, s.meta)
		view, stalled := snap, false
		if s.store != nil {
			s.store.Publish(snap, responded)
			// Render from the store: a missed tick keeps the last good
			// state on screen instead of blanking the panel.
			published := s.store.Snapshot()
			if published.HasState {
				view = published.State
			}
			stalled = published.IsStalled()
		}
		if s.client.Closed() {
			s.logf("control channel closed, ending session")
			return s.engine.Shutdown(quitGrace)
		}

		if s.renderer != nil {
			last, _ = s.renderer.Render(view, s.isFavorite(), stalled, first, last)
			first = false
		}
	}
}

func (s *session) handleKey(key term.Key) (done bool, code int) {
	switch key {
	case term.KeyQuit:
		return true, s.quit()
	case term.KeyTogglePause:
		_ = s.client.Command("cycle", "pause")
		snap := s.resample()
		if snap.Pause {
			s.client.ShowText("Paused", confirmMS)
		} else {
			s.client.ShowText("Playing", confirmMS)
		}
	case term.KeyVolumeUp:
		_ = s.client.Command("add", "volume", s.volStep)
		s.client.ShowText(fmt.Sprintf("Vol: %d%%", s.resample().Volume), confirmMS)
	case term.KeyVolumeDown:
		_ = s.client.Command("add", "volume", -s.volStep)
		s.client.ShowText(fmt.Sprintf("Vol: %d%%", s.resample().Volume), confirmMS)
	case term.KeyToggleMute:
		_ = s.client.Command("cycle", "mute")
		if s.resample().Mute {
			s.client.ShowText("Muted", confirmMS)
		} else {
			s.client.ShowText("Sound on", confirmMS)
		}
	case term.KeyToggleFavorite:
		if s.favs != nil && s.meta.ChannelURL != "" {
			s.favs.Toggle(s.meta.ChannelURL, s.meta.StationName)
		}
	}
	return false, 0
}

// resample gives the engine a moment to apply the command, then reads the
// fresh state for the confirmation text.
func (s *session) resample() mpv.PlaybackState {
	time.Sleep(s.settle)
	snap, _ := mpv.Sample(s.client, s.meta)
	return snap
}

func (s *session) quit() int {
	_ = s.client.Quit()
	s.engine.Shutdown(quitGrace)
	return ExitOK
}

func (s *session) isFavorite() bool {
	return s.favs != nil && s.meta.ChannelURL != "" && s.favs.Contains(s.meta.ChannelURL)
}

// runWithoutChannel is the degraded path when the channel never became
// connectable. In direct mode the engine is already playing and accepts
// plain-text commands on stdin, so keep going without the overlay. In
// idle-then-load mode nothing was ever loaded: kill and surface the
// distinguished code.
func runWithoutChannel(ctx context.Context, eng engineHandle, mode mpv.SpawnMode, opts Options) int {
	if mode == mpv.IdleLoadMode {
		eng.Kill()
		return ExitNoControlChannel
	}

	opts.Logf("running in reduced control mode (no state display)")
	for eng.Running() {
		select {
		case <-ctx.Done():
			eng.SendInput("quit")
			return eng.Shutdown(quitGrace)
		default:
		}
		key, ok := opts.ReadKey(opts.Tick)
		if !ok {
			continue
		}
		switch key {
		case term.KeyQuit:
			eng.SendInput("quit")
			return eng.Shutdown(quitGrace)
		case term.KeyTogglePause:
			eng.SendInput("cycle pause")
		case term.KeyVolumeUp:
			eng.SendInput(fmt.Sprintf("add volume %d", opts.VolumeStep))
		case term.KeyVolumeDown:
			eng.SendInput(fmt.Sprintf("add volume -%d", opts.VolumeStep))
		case term.KeyToggleMute:
			eng.SendInput("cycle mute")
		}
	}
	code := eng.ExitCode()
	if code < 0 {
		code = ExitOK
	}
	return code
}
