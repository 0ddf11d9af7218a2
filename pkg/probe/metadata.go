package probe

// SongMetadata is what a probe learned about one audio file.
// Strings are empty and numeric fields nil when the file does not carry them.
type SongMetadata struct {
	Title       string `json:"title,omitempty"        yaml:"title,omitempty"`
	Artist      string `json:"artist,omitempty"       yaml:"artist,omitempty"`
	Album       string `json:"album,omitempty"        yaml:"album,omitempty"`
	TrackNumber *int   `json:"track_number,omitempty" yaml:"track_number,omitempty"`
	DiscNumber  *int   `json:"disc_number,omitempty"  yaml:"disc_number,omitempty"`
	Genre       string `json:"genre,omitempty"        yaml:"genre,omitempty"`
	Date        string `json:"date,omitempty"         yaml:"date,omitempty"`
	Comment     string `json:"comment,omitempty"      yaml:"comment,omitempty"`
	Language    string `json:"language,omitempty"     yaml:"language,omitempty"`

	Codec         string   `json:"codec,omitempty"           yaml:"codec,omitempty"`
	Encoder       string   `json:"encoder,omitempty"         yaml:"encoder,omitempty"`
	BitsPerSample *int     `json:"bits_per_sample,omitempty" yaml:"bits_per_sample,omitempty"`
	Duration      *float64 `json:"duration,omitempty"        yaml:"duration,omitempty"` // seconds
	SampleRate    *int     `json:"sample_rate,omitempty"     yaml:"sample_rate,omitempty"`
}

// HasTags reports whether any tag-level field is set.
func (m *SongMetadata) HasTags() bool {
	return m.Title != "" || m.Artist != "" || m.Album != "" || m.Genre != "" ||
		m.Date != "" || m.Comment != "" || m.Language != "" ||
		m.TrackNumber != nil || m.DiscNumber != nil
}

// HasStream reports whether any track-level field is set.
func (m *SongMetadata) HasStream() bool {
	return m.BitsPerSample != nil || m.Duration != nil || m.SampleRate != nil
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
