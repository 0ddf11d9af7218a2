package probe

import (
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Raw frame keys carrying fields the tag.Metadata interface does not expose.
// ID3v2 uses frame IDs, Vorbis comments lowercased names, MP4 atom names.
//
//nolint:gochecknoglobals // Lookup tables
var (
	languageKeys = []string{"TLAN", "language"}
	encoderKeys  = []string{"TSSE", "TENC", "encoder", "encoded_by", "\xa9too"}
	dateKeys     = []string{"TDRC", "TYER", "date", "\xa9day"}
)

// applyTags copies the tag-level fields of m into meta.
func applyTags(m tag.Metadata, meta *SongMetadata) {
	meta.Title = strings.TrimSpace(m.Title())
	meta.Artist = strings.TrimSpace(m.Artist())
	meta.Album = strings.TrimSpace(m.Album())
	meta.Genre = strings.TrimSpace(m.Genre())
	meta.Comment = strings.TrimSpace(m.Comment())

	if track, _ := m.Track(); track > 0 {
		meta.TrackNumber = intPtr(track)
	}

	if disc, _ := m.Disc(); disc > 0 {
		meta.DiscNumber = intPtr(disc)
	}

	raw := m.Raw()

	meta.Date = rawString(raw, dateKeys)
	if meta.Date == "" && m.Year() > 0 {
		meta.Date = strconv.Itoa(m.Year())
	}

	meta.Language = rawString(raw, languageKeys)
	meta.Encoder = rawString(raw, encoderKeys)
}

// rawString returns the first non-empty string value stored under keys.
func rawString(raw map[string]interface{}, keys []string) string {
	for _, key := range keys {
		value, ok := raw[key].(string)
		if !ok {
			continue
		}

		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}

	return ""
}

// tagCodec names the codec from the tag reader's file type.
func tagCodec(m tag.Metadata) string {
	fileType := m.FileType()
	if fileType == tag.UnknownFileType {
		return ""
	}

	return strings.ToLower(string(fileType))
}
