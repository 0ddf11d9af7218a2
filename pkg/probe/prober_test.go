//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package probe_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/music-scan/pkg/probe"
)

// untouchable fails every read and seek, proving the prober never used it.
type untouchable struct{}

var errTouched = errors.New("file was read")

func (untouchable) Read([]byte) (int, error)       { return 0, errTouched }
func (untouchable) Seek(int64, int) (int64, error) { return 0, errTouched }

func TestProbe_UnsupportedExtensionIsNotRead(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"cover.jpg", "README", "dir.flac/notes", "song.MP3", "song.Flac"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			meta, err := probe.New().Probe(untouchable{}, path)
			g.Expect(meta).To(BeNil())
			g.Expect(err).To(MatchError(probe.ErrUnsupportedFormat))
			g.Expect(err).NotTo(MatchError(errTouched))

			var unsupported *probe.UnsupportedFormatError
			g.Expect(errors.As(err, &unsupported)).To(BeTrue())
			g.Expect(unsupported.Path).To(Equal(path))
		})
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, ext := range probe.SupportedExtensions {
		g.Expect(probe.IsSupported("album/track." + ext)).To(BeTrue(), ext)
	}

	g.Expect(probe.IsSupported("track")).To(BeFalse())
	g.Expect(probe.IsSupported("track.")).To(BeFalse())
	g.Expect(probe.IsSupported("track.FLAC")).To(BeFalse())
	g.Expect(probe.Extension("a/b.c/track.mp3")).To(Equal("mp3"))
}

func TestProbe_WAVStreamInfo(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 44100, 44100)

	file, err := os.Open(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() { _ = file.Close() }()

	meta, err := probe.New().Probe(file, path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(meta.Codec).To(Equal("pcm_s16le"))
	g.Expect(meta.SampleRate).To(HaveValue(Equal(44100)))
	g.Expect(meta.BitsPerSample).To(HaveValue(Equal(16)))
	g.Expect(meta.Duration).To(HaveValue(BeNumerically("~", 1.0, 0.01)))
	g.Expect(meta.Title).To(BeEmpty())
	g.Expect(meta.TrackNumber).To(BeNil())
}

func TestProbe_ID3v1Fallback(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	content := append(make([]byte, 256), id3v1Block("Blue Train", "John Coltrane", "Blue Train", "1957", 1, 8)...)

	meta, err := probe.New().Probe(bytes.NewReader(content), "jazz/01.ogg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(meta.Title).To(Equal("Blue Train"))
	g.Expect(meta.Artist).To(Equal("John Coltrane"))
	g.Expect(meta.Album).To(Equal("Blue Train"))
	g.Expect(meta.Date).To(Equal("1957"))
	g.Expect(meta.Genre).To(Equal("Jazz"))
	g.Expect(meta.TrackNumber).To(HaveValue(Equal(1)))
	g.Expect(meta.DiscNumber).To(BeNil())
	g.Expect(meta.SampleRate).To(BeNil())
}

func TestProbe_GarbageIsDecodeError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	content := bytes.Repeat([]byte("not audio "), 64)

	meta, err := probe.New().Probe(bytes.NewReader(content), "broken.flac")
	g.Expect(meta).To(BeNil())
	g.Expect(err).To(MatchError(probe.ErrDecode))
	g.Expect(err).NotTo(MatchError(probe.ErrUnsupportedFormat))

	var decodeErr *probe.DecodeError
	g.Expect(errors.As(err, &decodeErr)).To(BeTrue())
	g.Expect(decodeErr.Path).To(Equal("broken.flac"))
}

func TestProbe_EmptyFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := probe.New().Probe(bytes.NewReader(nil), "empty.mp3")
	g.Expect(err).To(MatchError(probe.ErrDecode))
}

// writeWAV writes a silent mono 16-bit PCM file.
func writeWAV(t *testing.T, path string, sampleRate, samples int) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, samples),
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		t.Fatalf("write samples: %v", err)
	}

	if err := encoder.Close(); err != nil {
		t.Fatalf("finish wav: %v", err)
	}
}

// id3v1Block builds a 128-byte ID3v1.1 trailer.
func id3v1Block(title, artist, album, year string, track, genre byte) []byte {
	var block bytes.Buffer

	block.WriteString("TAG")
	block.Write(padded(title, 30))
	block.Write(padded(artist, 30))
	block.Write(padded(album, 30))
	block.Write(padded(year, 4))
	block.Write(padded("", 28))
	block.WriteByte(0)
	block.WriteByte(track)
	block.WriteByte(genre)

	return block.Bytes()
}

func padded(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)

	return out
}

var _ io.ReadSeeker = untouchable{}

// A tag block whose fields are all blank carries no metadata.
func TestProbe_BlankID3v1IsDecodeError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	content := append(make([]byte, 256), id3v1Block("", "", "", "", 0, 255)...)

	meta, err := probe.New().Probe(bytes.NewReader(content), "blank.ogg")
	g.Expect(meta).To(BeNil())
	g.Expect(err).To(MatchError(probe.ErrDecode))
}
