//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
	"go.uber.org/zap/zaptest"

	"github.com/joe/music-scan/internal/report"
	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/pkg/filesystem"
)

// eventCollector collects events for verification.
type eventCollector struct {
	events []scanengine.Event
}

func (c *eventCollector) Emit(event scanengine.Event) {
	c.events = append(c.events, event)
}

func writeWAV(t *testing.T, path string) {
	t.Helper()
	g := NewWithT(t)

	file, err := os.Create(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() { _ = file.Close() }()

	encoder := wav.NewEncoder(file, 8000, 16, 1, 1)
	g.Expect(encoder.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, 8000),
		SourceBitDepth: 16,
	})).To(Succeed())
	g.Expect(encoder.Close()).To(Succeed())
}

// buildLibrary creates artist/album directories of WAV files plus cover art.
func buildLibrary(t *testing.T, artists, albums, tracks int) string {
	t.Helper()
	g := NewWithT(t)

	root := t.TempDir()

	for a := range artists {
		for b := range albums {
			dir := filepath.Join(root, "artist"+string(rune('a'+a)), "album"+string(rune('0'+b)))
			g.Expect(os.MkdirAll(dir, 0o755)).To(Succeed())

			for n := range tracks {
				writeWAV(t, filepath.Join(dir, "track"+string(rune('0'+n))+".wav"))
			}

			g.Expect(os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0o644)).To(Succeed())
		}
	}

	return root
}

// TestIntegration_FullScan_ProbesEveryTrack scans a real tree end to end.
func TestIntegration_FullScan_ProbesEveryTrack(t *testing.T) {
	g := NewWithT(t)

	root := buildLibrary(t, 3, 2, 4)
	collector := &eventCollector{}

	engine, err := scanengine.NewEngine(root, filesystem.NewLocalSource(),
		scanengine.WithEmitter(collector),
		scanengine.WithLogger(zaptest.NewLogger(t)),
	)
	g.Expect(err).ShouldNot(HaveOccurred())

	result, err := engine.Run(context.Background())
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(result.Stats.Found).To(Equal(3 * 2 * 5))
	g.Expect(result.Stats.Probed).To(Equal(3 * 2 * 4))
	g.Expect(result.Stats.Unsupported).To(Equal(3 * 2))
	g.Expect(result.Stats.ProbeFailures).To(BeZero())
	g.Expect(result.WalkErrors).To(BeEmpty())

	for _, file := range result.Files {
		if strings.HasSuffix(file.Path, ".wav") {
			g.Expect(file.Err).ShouldNot(HaveOccurred())
			g.Expect(file.Metadata.SampleRate).To(HaveValue(Equal(8000)))
			g.Expect(file.Metadata.Duration).To(HaveValue(BeNumerically("~", 1.0, 0.01)))
		}
	}

	g.Expect(collector.events[0]).To(Equal(scanengine.ScanStarted{Root: root}))
	g.Expect(collector.events[len(collector.events)-1]).To(BeAssignableToTypeOf(scanengine.ScanComplete{}))
}

// TestIntegration_UnreadableAlbum_IsReportedAndSkipped verifies the walk
// continues past a directory it may not open.
func TestIntegration_UnreadableAlbum_IsReportedAndSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	g := NewWithT(t)

	root := buildLibrary(t, 2, 1, 2)
	locked := filepath.Join(root, "artista", "album0")

	g.Expect(os.Chmod(locked, 0o000)).To(Succeed())
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	engine, err := scanengine.NewEngine(root, filesystem.NewLocalSource())
	g.Expect(err).ShouldNot(HaveOccurred())

	result, err := engine.Run(context.Background())
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(result.WalkErrors).To(HaveLen(1))
	g.Expect(result.WalkErrors[0].Path).To(Equal(locked))
	g.Expect(result.WalkErrors[0].Kind).To(Equal(filesystem.KindPermissionDenied))
	g.Expect(result.Stats.Found).To(Equal(3))

	for _, file := range result.Files {
		g.Expect(file.Path).NotTo(HavePrefix(locked))
	}

	var out bytes.Buffer
	g.Expect(report.WriteResults(&out, result, report.FormatJSON)).To(Succeed())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	g.Expect(lines).To(HaveLen(4))

	var last map[string]map[string]any
	g.Expect(json.Unmarshal([]byte(lines[3]), &last)).To(Succeed())
	g.Expect(last["walk_error"]).To(HaveKeyWithValue("kind", "permission-denied"))
}

// TestIntegration_MissingRoot_FailsConstruction verifies the root is opened up front.
func TestIntegration_MissingRoot_FailsConstruction(t *testing.T) {
	g := NewWithT(t)

	_, err := scanengine.NewEngine(filepath.Join(t.TempDir(), "nope"), filesystem.NewLocalSource())

	var walkErr *filesystem.WalkError
	g.Expect(err).To(MatchError(os.ErrNotExist))
	g.Expect(errors.As(err, &walkErr)).To(BeTrue())
	g.Expect(walkErr.Kind).To(Equal(filesystem.KindNotFound))
}
