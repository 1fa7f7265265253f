package app

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/mverdu/skylark/internal/config"
	"github.com/mverdu/skylark/internal/overlay"
	"github.com/mverdu/skylark/internal/prefs"
	"github.com/mverdu/skylark/internal/seslog"
	"github.com/mverdu/skylark/internal/session"
	"github.com/mverdu/skylark/internal/state"
	"github.com/mverdu/skylark/internal/term"
)

// Options configure one Skylark invocation.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/skylark/prefs.toml
	LogPath    string // empty uses the default session log

	URL         string
	StationName string
	PlayMode    string
	Source      string

	Favorite  bool // start with the station already marked
	NoOverlay bool
}

// Run plays one stream until the user quits, the stream ends, or the
// context is cancelled, and returns the process exit code.
func Run(ctx context.Context, opts Options) int {
	if opts.URL == "" {
		fmt.Fprintln(os.Stderr, "skylark: no stream URL given")
		return session.ExitStartFailure
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skylark: load config: %v\n", err)
		return session.ExitStartFailure
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logPath := opts.LogPath
	if logPath == "" {
		logPath = seslog.DefaultPath()
	}
	logf := func(format string, args ...any) {
		seslog.Append(logPath, fmt.Sprintf(format, args...))
	}

	favs := &memFavorites{}
	if opts.Favorite {
		favs.Toggle(opts.URL, opts.StationName)
	}

	sessOpts := session.Options{
		URL:         opts.URL,
		StationName: stationLabel(opts.StationName, opts.URL),
		PlayMode:    opts.PlayMode,
		Source:      opts.Source,
		MPVPath:     cfg.MPVPath,
		ExtraArgs:   cfg.MPVArgs(),
		Tick:        cfg.PollInterval(),
		VolumeStep:  userPrefs.VolumeStep,
		Favorites:   favs,
		Store:       &state.Store{},
		Logf:        logf,
	}

	if !opts.NoOverlay && term.IsInteractive() {
		restore, rawErr := term.EnterRaw()
		if rawErr != nil {
			logf("raw mode unavailable, running without overlay: %v", rawErr)
		} else {
			defer func() { _ = restore() }()
			width, _ := term.Size()
			renderer := overlay.New(os.Stdout, overlay.ByName(userPrefs.Theme), width)
			renderer.HideCursor()
			defer renderer.ShowCursor()
			sessOpts.Renderer = renderer
		}
	}

	logf("session start: %s", opts.URL)
	code := session.Run(ctx, sessOpts)
	logf("session end: exit %d", code)

	if code != session.ExitOK {
		dumpRecentLog(logPath)
	}
	return code
}

// stationLabel prefers the caller's name and falls back to the stream
// host so the panel never shows an empty station line.
func stationLabel(name, raw string) string {
	if name != "" {
		return name
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}

// dumpRecentLog echoes the last few session log lines to stderr after a
// failed run, so the reason is visible without hunting for the file.
func dumpRecentLog(path string) {
	lines, err := seslog.Tail(path, 10)
	if err != nil || len(lines) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "recent session log:")
	for _, line := range lines {
		fmt.Fprintf(os.Stderr, "  %s\n", line)
	}
}
