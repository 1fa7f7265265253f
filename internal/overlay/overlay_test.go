package overlay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/mverdu/skylark/internal/mpv"
)

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	return New(buf, ByName("Dracula"), 80, termenv.WithProfile(termenv.Ascii))
}

func liveState() mpv.PlaybackState {
	return mpv.PlaybackState{
		Volume:      40,
		MediaTitle:  "Artist - Song",
		Elapsed:     12.4,
		StationName: "Radio Uno",
		PlayMode:    "Normal",
		ChannelURL:  "http://radio.example/stream",
	}
}

func TestRender_FirstFrameDraws(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	proj, drew := r.Render(liveState(), false, false, true, Projection{})
	if !drew {
		t.Fatalf("first frame did not draw")
	}
	if buf.Len() == 0 {
		t.Fatalf("first frame produced no output")
	}
	if proj.ElapsedSec != 12 {
		t.Fatalf("ElapsedSec = %d, want truncated 12", proj.ElapsedSec)
	}
	out := buf.String()
	for _, want := range []string{"Radio Uno", "Artist - Song", "Vol:40%", "LIVE", "☆"} {
		if !strings.Contains(out, want) {
			t.Fatalf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestRender_EqualProjectionProducesZeroBytes(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	st := liveState()
	proj, _ := r.Render(st, false, false, true, Projection{})
	buf.Reset()

	// Sub-second progress only: projection is unchanged.
	st.Elapsed = 12.9
	next, drew := r.Render(st, false, false, false, proj)
	if drew {
		t.Fatalf("renderer drew for an equal projection")
	}
	if buf.Len() != 0 {
		t.Fatalf("renderer wrote %d bytes for an equal projection, want 0", buf.Len())
	}
	if next != proj {
		t.Fatalf("projection changed: %+v vs %+v", next, proj)
	}
}

func TestRender_ChangedProjectionRedrawsInPlace(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	st := liveState()
	proj, _ := r.Render(st, false, false, true, Projection{})
	buf.Reset()

	st.Volume = 45
	_, drew := r.Render(st, false, false, false, proj)
	if !drew {
		t.Fatalf("renderer skipped a changed projection")
	}
	out := buf.String()
	if !strings.Contains(out, "Vol:45%") {
		t.Fatalf("redraw missing new volume:\n%s", out)
	}
	// Frames after the first reposition the cursor instead of scrolling.
	if !strings.Contains(out, "\x1b[19A") {
		t.Fatalf("redraw did not move the cursor up %d lines:\n%q", PanelLines, out)
	}
	if lines := strings.Count(out, "\r\n"); lines != PanelLines {
		t.Fatalf("panel drew %d lines, want %d", lines, PanelLines)
	}
}

func TestRender_FavoriteMarker(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	_, _ = r.Render(liveState(), true, false, true, Projection{})
	if !strings.Contains(buf.String(), "★") {
		t.Fatalf("favorite marker missing")
	}
}

func TestRender_PausedIndicator(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	st := liveState()
	st.Pause = true
	_, _ = r.Render(st, false, false, true, Projection{})
	if !strings.Contains(buf.String(), "[ PAUSED ]") {
		t.Fatalf("paused indicator missing")
	}
}

func TestRender_StalledIndicator(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	st := liveState()
	proj, _ := r.Render(st, false, false, true, Projection{})
	buf.Reset()

	// Same playback state, engine gone quiet: the projection changes and
	// the status line flags it.
	next, drew := r.Render(st, false, true, false, proj)
	if !drew {
		t.Fatalf("renderer skipped the stalled transition")
	}
	if !next.Stalled {
		t.Fatalf("projection did not record the stalled flag")
	}
	if !strings.Contains(buf.String(), "[ NO SIGNAL ]") {
		t.Fatalf("stalled indicator missing:\n%s", buf.String())
	}
}

func TestRender_StalledOutranksPaused(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	st := liveState()
	st.Pause = true
	_, _ = r.Render(st, false, true, true, Projection{})
	out := buf.String()
	if !strings.Contains(out, "[ NO SIGNAL ]") {
		t.Fatalf("stalled indicator missing:\n%s", out)
	}
	if strings.Contains(out, "[ PAUSED ]") {
		t.Fatalf("paused shown while the engine is not answering:\n%s", out)
	}
}

func TestRender_KnownDurationShowsProgress(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	st := liveState()
	st.Elapsed = 30
	st.Duration = 60
	st.HasDuration = true
	_, _ = r.Render(st, false, false, true, Projection{})
	out := buf.String()
	if !strings.Contains(out, "00:30 / 01:00") {
		t.Fatalf("time readout missing:\n%s", out)
	}
	if strings.Contains(out, "LIVE") {
		t.Fatalf("live marker shown for a known duration")
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Fatalf("half-full progress bar missing:\n%s", out)
	}
}

func TestProgressBar_Clamping(t *testing.T) {
	if got := ProgressBar(120, 60, 10); got != strings.Repeat("█", 10) {
		t.Fatalf("overfull bar = %q, want fully filled", got)
	}
	if got := ProgressBar(-5, 60, 10); got != strings.Repeat("░", 10) {
		t.Fatalf("negative bar = %q, want empty", got)
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "00:00"},
		{"minute_five", 65, "01:05"},
		{"hour_boundary", 3725, "01:02:05"},
		{"negative", -1, "00:00"},
		{"truncates_fraction", 59.9, "00:59"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTime(tc.in); got != tc.want {
				t.Fatalf("FormatTime(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestByName_FallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme"); got.Name != "Dracula" {
		t.Fatalf("ByName fallback = %q, want Dracula", got.Name)
	}
	if got := ByName("nord"); got.Name != "Nord" {
		t.Fatalf("ByName = %q, want case-insensitive Nord", got.Name)
	}
}
