package mpv

// PlaybackState is a point-in-time snapshot of everything the overlay shows.
// It is a value type: the sampler builds a fresh one each tick and the
// previous one is discarded.
type PlaybackState struct {
	Volume     int
	Mute       bool
	Pause      bool
	MediaTitle string

	// Elapsed is the playback position in seconds. Duration is only
	// meaningful when HasDuration is true; radio streams have none.
	Elapsed     float64
	Duration    float64
	HasDuration bool

	StationName string
	PlayMode    string
	ChannelURL  string
	Source      string

	// Best-effort audio parameters. Zero values mean unknown.
	AudioCodec   string
	BitrateKbps  int
	SampleRateHz int
}
