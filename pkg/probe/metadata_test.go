//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package probe_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/music-scan/pkg/probe"
)

func TestSongMetadata_HasTagsAndStream(t *testing.T) {
	t.Parallel()

	track := 3
	rate := 48000

	tests := []struct {
		name       string
		meta       probe.SongMetadata
		wantTags   bool
		wantStream bool
	}{
		{"empty", probe.SongMetadata{}, false, false},
		{"codec alone", probe.SongMetadata{Codec: "mp3", Encoder: "LAME"}, false, false},
		{"title", probe.SongMetadata{Title: "Naima"}, true, false},
		{"track number", probe.SongMetadata{TrackNumber: &track}, true, false},
		{"sample rate", probe.SongMetadata{SampleRate: &rate}, false, true},
		{"both", probe.SongMetadata{Artist: "Coltrane", SampleRate: &rate}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(tt.meta.HasTags()).To(Equal(tt.wantTags))
			g.Expect(tt.meta.HasStream()).To(Equal(tt.wantStream))
		})
	}
}
