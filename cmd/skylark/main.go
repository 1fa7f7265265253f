package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/mverdu/skylark/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	logPath := flag.String("log", "", "override session log path (optional)")
	urlFlag := flag.StringP("url", "u", "", "stream URL to play")
	name := flag.StringP("name", "n", "", "station name shown in the panel")
	mode := flag.StringP("mode", "m", "Radio", "play mode label (Radio, Podcast, ...)")
	source := flag.StringP("source", "s", "", "playlist or directory source label")
	favorite := flag.BoolP("fav", "f", false, "start with the station marked as a favorite")
	noOverlay := flag.Bool("no-overlay", false, "disable the status panel")
	flag.Parse()

	url := *urlFlag
	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "usage: skylark [flags] <stream-url>")
		flag.PrintDefaults()
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx, app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		LogPath:     *logPath,
		URL:         url,
		StationName: *name,
		PlayMode:    *mode,
		Source:      *source,
		Favorite:    *favorite,
		NoOverlay:   *noOverlay,
	})
}
