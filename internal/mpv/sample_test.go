package mpv

import "testing"

// mapSource serves properties from a fixed table; absent keys are misses.
type mapSource map[string]any

func (m mapSource) GetProperty(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func TestSample_FullBattery(t *testing.T) {
	src := mapSource{
		"volume":             float64(45),
		"mute":               false,
		"pause":              true,
		"metadata/icy-title": " Artist - Song ",
		"media-title":        "stream",
		"time-pos":           float64(12.7),
		"duration":           float64(180.2),
		"audio-params": map[string]any{
			"format":     "fltp",
			"samplerate": float64(44100),
		},
		"audio-bitrate": float64(128000),
	}
	st, responded := Sample(src, SessionMeta{
		StationName: "Radio Uno",
		PlayMode:    "Normal",
		ChannelURL:  "http://radio.example/stream",
		Source:      "favorites",
	})
	if !responded {
		t.Fatalf("responded = false, want true")
	}
	if st.Volume != 45 {
		t.Fatalf("Volume = %d, want 45", st.Volume)
	}
	if !st.Pause || st.Mute {
		t.Fatalf("Pause/Mute = %v/%v, want true/false", st.Pause, st.Mute)
	}
	if st.MediaTitle != "Artist - Song" {
		t.Fatalf("MediaTitle = %q, want ICY title preferred and trimmed", st.MediaTitle)
	}
	if st.Elapsed != 12.7 {
		t.Fatalf("Elapsed = %v, want 12.7", st.Elapsed)
	}
	if !st.HasDuration || st.Duration != 180.2 {
		t.Fatalf("Duration = %v (has=%v), want 180.2", st.Duration, st.HasDuration)
	}
	if st.AudioCodec != "FLTP" {
		t.Fatalf("AudioCodec = %q, want FLTP", st.AudioCodec)
	}
	if st.SampleRateHz != 44100 {
		t.Fatalf("SampleRateHz = %d, want 44100", st.SampleRateHz)
	}
	if st.BitrateKbps != 128 {
		t.Fatalf("BitrateKbps = %d, want 128", st.BitrateKbps)
	}
	if st.StationName != "Radio Uno" || st.ChannelURL != "http://radio.example/stream" {
		t.Fatalf("meta labels not carried: %+v", st)
	}
}

func TestSample_BlankICYFallsBackToMediaTitle(t *testing.T) {
	src := mapSource{
		"metadata/icy-title": "   ",
		"media-title":        "Some Stream",
	}
	st, _ := Sample(src, SessionMeta{})
	if st.MediaTitle != "Some Stream" {
		t.Fatalf("MediaTitle = %q, want media-title fallback", st.MediaTitle)
	}
}

func TestSample_AllMissesYieldsZeroSnapshot(t *testing.T) {
	st, responded := Sample(mapSource{}, SessionMeta{StationName: "X"})
	if responded {
		t.Fatalf("responded = true with no answers")
	}
	if st.Volume != 0 || st.MediaTitle != "" || st.HasDuration || st.BitrateKbps != 0 {
		t.Fatalf("snapshot not zero under total data loss: %+v", st)
	}
	if st.StationName != "X" {
		t.Fatalf("StationName = %q, caller labels must survive misses", st.StationName)
	}
}

func TestSample_LiveStreamHasNoDuration(t *testing.T) {
	src := mapSource{"time-pos": float64(65), "duration": nil}
	st, _ := Sample(src, SessionMeta{})
	if st.HasDuration {
		t.Fatalf("HasDuration = true for live stream")
	}
	if st.Elapsed != 65 {
		t.Fatalf("Elapsed = %v, want 65", st.Elapsed)
	}
}

func TestKbpsFromBits(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"typical", 128000, 128},
		{"rounds_up", 127500, 128},
		{"rounds_down", 127499, 127},
		{"zero_stays_unknown", 0, 0},
		{"negative_stays_unknown", -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KbpsFromBits(tc.in); got != tc.want {
				t.Fatalf("KbpsFromBits(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
