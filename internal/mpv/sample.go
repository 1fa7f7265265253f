package mpv

import "strings"

// PropertySource is the one capability the sampler needs from the client.
type PropertySource interface {
	GetProperty(name string) (any, bool)
}

// SessionMeta carries the caller-side labels that ride along in every
// snapshot; the engine knows nothing about them.
type SessionMeta struct {
	StationName string
	PlayMode    string
	ChannelURL  string
	Source      string
}

// Sample issues the per-tick battery of property queries and assembles a
// complete snapshot. Any individual miss leaves that field at its
// zero/unknown value; the returned bool reports whether the engine
// answered anything at all this tick.
func Sample(src PropertySource, meta SessionMeta) (PlaybackState, bool) {
	st := PlaybackState{
		StationName: meta.StationName,
		PlayMode:    meta.PlayMode,
		ChannelURL:  meta.ChannelURL,
		Source:      meta.Source,
	}
	responded := false

	if v, ok := asInt(src.GetProperty("volume")); ok {
		st.Volume = v
		responded = true
	}
	if v, ok := asBool(src.GetProperty("mute")); ok {
		st.Mute = v
		responded = true
	}
	if v, ok := asBool(src.GetProperty("pause")); ok {
		st.Pause = v
		responded = true
	}

	// Radio streams usually carry the track name in ICY metadata; the
	// engine's generic media-title is the fallback.
	if v, ok := asString(src.GetProperty("metadata/icy-title")); ok && strings.TrimSpace(v) != "" {
		st.MediaTitle = strings.TrimSpace(v)
		responded = true
	} else if v, ok := asString(src.GetProperty("media-title")); ok {
		st.MediaTitle = strings.TrimSpace(v)
		responded = true
	}

	if v, ok := asFloat(src.GetProperty("time-pos")); ok {
		if v > 0 {
			st.Elapsed = v
		}
		responded = true
	}
	if v, ok := asFloat(src.GetProperty("duration")); ok {
		if v > 0 {
			st.Duration = v
			st.HasDuration = true
		}
		responded = true
	}

	if params, ok := src.GetProperty("audio-params"); ok {
		if m, ok := params.(map[string]any); ok {
			if fmtName, ok := asString(m["format"], true); ok && fmtName != "" {
				st.AudioCodec = strings.ToUpper(fmtName)
			}
			if sr, ok := asInt(m["samplerate"], true); ok {
				st.SampleRateHz = sr
			}
			responded = true
		}
	}
	if v, ok := asInt(src.GetProperty("audio-bitrate")); ok {
		st.BitrateKbps = KbpsFromBits(v)
		responded = true
	}
	return st, responded
}

// KbpsFromBits converts the engine's bits-per-second figure to kbps,
// rounding to nearest. Non-positive input stays unknown (zero), never a
// literal 0 kbps reading.
func KbpsFromBits(bps int) int {
	if bps <= 0 {
		return 0
	}
	return (bps + 500) / 1000
}

func asInt(v any, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func asFloat(v any, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asBool(v any, ok bool) (bool, bool) {
	if !ok {
		return false, false
	}
	b, isBool := v.(bool)
	return b, isBool
}

func asString(v any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	s, isStr := v.(string)
	return s, isStr
}
