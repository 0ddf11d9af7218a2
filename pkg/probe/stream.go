package probe

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
)

// mp3BytesPerFrame is the size of one decoded go-mp3 sample frame: 16-bit stereo.
const mp3BytesPerFrame = 4

var errNotWAV = errors.New("not a RIFF/WAVE file")

// streamReader fills track-level fields from the start of r.
type streamReader func(r io.ReadSeeker, meta *SongMetadata) error

// streamReaders maps an extension to the decoder that reads its stream info.
// Extensions without one get tag-level fields only.
//
//nolint:gochecknoglobals // Static dispatch table
var streamReaders = map[string]streamReader{
	"flac": readFLACStream,
	"wav":  readWAVStream,
	"mp3":  readMP3Stream,
}

func readFLACStream(r io.ReadSeeker, meta *SongMetadata) error {
	// flac.New stops after STREAMINFO; Close is not called because it would close r.
	stream, err := flac.New(r)
	if err != nil {
		return fmt.Errorf("flac: %w", err)
	}

	info := stream.Info
	meta.Codec = "flac"
	meta.SampleRate = intPtr(int(info.SampleRate))
	meta.BitsPerSample = intPtr(int(info.BitsPerSample))

	if info.NSamples > 0 && info.SampleRate > 0 {
		meta.Duration = floatPtr(float64(info.NSamples) / float64(info.SampleRate))
	}

	return nil
}

func readWAVStream(r io.ReadSeeker, meta *SongMetadata) error {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		if decoder.Err() != nil {
			return fmt.Errorf("wav: %w", decoder.Err())
		}

		return fmt.Errorf("wav: %w", errNotWAV)
	}

	meta.Codec = wavCodec(decoder.WavAudioFormat, decoder.BitDepth)
	meta.SampleRate = intPtr(int(decoder.SampleRate))
	meta.BitsPerSample = intPtr(int(decoder.BitDepth))

	duration, err := decoder.Duration()
	if err == nil {
		meta.Duration = floatPtr(duration.Seconds())
	}

	return nil
}

func wavCodec(format, bitDepth uint16) string {
	switch format {
	case wavFormatPCM:
		return fmt.Sprintf("pcm_s%dle", bitDepth)
	case wavFormatFloat:
		return fmt.Sprintf("pcm_f%dle", bitDepth)
	default:
		return "wav"
	}
}

// WAVE format tags.
const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

func readMP3Stream(r io.ReadSeeker, meta *SongMetadata) error {
	// With a seekable source go-mp3 scans every frame header to compute Length.
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("mp3: %w", err)
	}

	meta.Codec = "mp3"
	meta.SampleRate = intPtr(decoder.SampleRate())

	if length := decoder.Length(); length > 0 && decoder.SampleRate() > 0 {
		frames := length / mp3BytesPerFrame
		meta.Duration = floatPtr(float64(frames) / float64(decoder.SampleRate()))
	}

	return nil
}
