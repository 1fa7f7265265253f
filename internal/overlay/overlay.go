// Package overlay renders the playback panel: a fixed-height block that
// overwrites itself in place each tick instead of scrolling.
package overlay

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/mverdu/skylark/internal/mpv"
)

// PanelLines is the fixed number of terminal lines the panel occupies.
// The cursor moves up exactly this far before a redraw.
const PanelLines = 19

// Projection is the reduced, rounded copy of a snapshot used strictly for
// change detection. Elapsed time is truncated to whole seconds so the
// panel does not churn on sub-second progress. Two snapshots with equal
// projections never cause a redraw.
type Projection struct {
	Mode     string
	Station  string
	Title    string
	URL      string
	Source   string
	Favorite bool

	Pause   bool
	Mute    bool
	Stalled bool
	Volume  int

	HasDuration bool
	DurationSec int
	ElapsedSec  int

	Codec        string
	BitrateKbps  int
	SampleRateHz int
}

// Project reduces a snapshot for change detection.
func Project(st mpv.PlaybackState, favorite, stalled bool) Projection {
	return Projection{
		Mode:         strings.TrimSpace(st.PlayMode),
		Station:      strings.TrimSpace(st.StationName),
		Title:        strings.TrimSpace(st.MediaTitle),
		URL:          strings.TrimSpace(st.ChannelURL),
		Source:       strings.TrimSpace(st.Source),
		Favorite:     favorite,
		Pause:        st.Pause,
		Mute:         st.Mute,
		Stalled:      stalled,
		Volume:       st.Volume,
		HasDuration:  st.HasDuration,
		DurationSec:  int(st.Duration),
		ElapsedSec:   int(st.Elapsed),
		Codec:        st.AudioCodec,
		BitrateKbps:  st.BitrateKbps,
		SampleRateHz: st.SampleRateHz,
	}
}

// Renderer draws the panel through a termenv output. It holds no state
// about past frames; the caller owns the projection history.
type Renderer struct {
	out    *termenv.Output
	styles Styles
	width  int
}

// New builds a renderer writing to w with the given theme and panel width.
func New(w io.Writer, theme Theme, width int, opts ...termenv.OutputOption) *Renderer {
	if width < 44 {
		width = 44
	}
	if width > 100 {
		width = 100
	}
	return &Renderer{
		out:    termenv.NewOutput(w, opts...),
		styles: theme.Styles(),
		width:  width,
	}
}

// HideCursor hides the terminal cursor while the panel is live.
func (r *Renderer) HideCursor() { r.out.HideCursor() }

// ShowCursor restores the cursor; call on every session exit path.
func (r *Renderer) ShowCursor() { r.out.ShowCursor() }

// Render draws the panel for st unless its projection equals last (and
// this is not the first frame), in which case it produces no output at
// all, cursor movement included. Returns the new projection and whether a
// draw happened.
func (r *Renderer) Render(st mpv.PlaybackState, favorite, stalled, first bool, last Projection) (Projection, bool) {
	proj := Project(st, favorite, stalled)
	if !first && proj == last {
		return proj, false
	}

	if first {
		r.out.ClearScreen()
	} else {
		r.out.CursorUp(PanelLines)
	}
	for _, line := range r.panel(st, proj) {
		_, _ = r.out.WriteString(line)
		r.out.ClearLineRight()
		_, _ = r.out.WriteString("\r\n")
	}
	return proj, true
}

func (r *Renderer) panel(st mpv.PlaybackState, proj Projection) []string {
	s := r.styles
	lines := make([]string, 0, PanelLines)

	for _, l := range logoLines {
		lines = append(lines, s.Logo.Render(r.fit(l)))
	}
	lines = append(lines, "")
	lines = append(lines, s.Progress.Render(r.fit(r.progressLine(st))))
	lines = append(lines, s.Muted.Render(strings.Repeat("─", r.width)))
	lines = append(lines, "")

	mode := proj.Mode
	if mode == "" {
		mode = "Normal"
	}
	lines = append(lines, s.Mode.Render(r.fit("  Mode: "+mode)))
	lines = append(lines, "")

	marker := "☆"
	if proj.Favorite {
		marker = "★"
	}
	station := proj.Station
	if station == "" {
		station = "Playing"
	}
	lines = append(lines, s.Station.Render(r.fit("  "+marker+" "+station)))
	lines = append(lines, s.Muted.Render(r.fit(r.detailLine(proj))))
	lines = append(lines, "")

	title := proj.Title
	if title == "" {
		title = "—"
	}
	lines = append(lines, s.Title.Render(r.fit("  Now playing: "+title)))
	lines = append(lines, "")

	switch {
	case proj.Stalled:
		lines = append(lines, s.Stalled.Render(r.fit("  [ NO SIGNAL ]")))
	case proj.Pause:
		lines = append(lines, s.Paused.Render(r.fit("  [ PAUSED ]")))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, "")
	lines = append(lines, s.Buttons.Render(r.fit(buttonLine(proj))))

	return lines
}

// progressLine renders either a proportional bar for a known duration or
// an indeterminate marker plus elapsed time for live streams.
func (r *Renderer) progressLine(st mpv.PlaybackState) string {
	if st.HasDuration {
		barWidth := min(40, r.width-25)
		bar := ProgressBar(st.Elapsed, st.Duration, barWidth)
		return fmt.Sprintf("  %s  %s / %s", bar, FormatTime(st.Elapsed), FormatTime(st.Duration))
	}
	indet := strings.Repeat("─", min(20, r.width/3))
	return fmt.Sprintf("  %s  %s  LIVE", FormatTime(st.Elapsed), indet)
}

func (r *Renderer) detailLine(proj Projection) string {
	var parts []string
	lower := strings.ToLower(proj.Source)
	if strings.HasSuffix(lower, ".m3u") || strings.HasSuffix(lower, ".m3u8") {
		parts = append(parts, "M3U: "+proj.Source)
	}
	if proj.Codec != "" {
		parts = append(parts, proj.Codec)
	}
	if proj.BitrateKbps > 0 {
		parts = append(parts, fmt.Sprintf("%d kbps", proj.BitrateKbps))
	}
	if proj.SampleRateHz > 0 {
		parts = append(parts, fmt.Sprintf("%d Hz", proj.SampleRateHz))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " · ")
}

func buttonLine(proj Projection) string {
	mute := "[M] Mute"
	if proj.Mute {
		mute = "[M] Muted"
	}
	return fmt.Sprintf("  [P] Pause  [+] Vol+  [-] Vol-  %s  Vol:%d%%  [F] Fav  [Q] Quit", mute, proj.Volume)
}

// ProgressBar renders a filled bar with the fill proportion clamped to
// [0,1].
func ProgressBar(elapsed, duration float64, width int) string {
	if width < 1 {
		width = 1
	}
	ratio := 0.0
	if duration > 0 {
		ratio = elapsed / duration
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatTime renders seconds as H:MM:SS when an hour is reached, MM:SS
// otherwise. Negative input renders as 00:00.
func FormatTime(seconds float64) string {
	if seconds < 0 || seconds != seconds {
		return "00:00"
	}
	total := int(seconds)
	mins, secs := total/60, total%60
	hours, mins := mins/60, mins%60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func (r *Renderer) fit(s string) string {
	return runewidth.Truncate(s, r.width, "…")
}
