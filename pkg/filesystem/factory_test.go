package filesystem_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/music-scan/pkg/filesystem"
)

func TestOpenSource_Local(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	source, root, closer, err := filesystem.OpenSource("/music", filesystem.ConnectOptions{})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(source).NotTo(BeNil())
	g.Expect(root).To(Equal("/music"))
	g.Expect(closer).NotTo(BeNil())
	g.Expect(closer).NotTo(Panic())
}

// TestOpenSource_CloserOnError lets callers defer the closer before checking err.
func TestOpenSource_CloserOnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  string
	}{
		{"invalid root", "sftp://nas.local/music"},
		{"empty root", ""},
		{"unreachable host", "sftp://joe@127.0.0.1:1/music"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			source, _, closer, err := filesystem.OpenSource(tt.arg, filesystem.ConnectOptions{Timeout: time.Second})
			g.Expect(err).To(HaveOccurred())
			g.Expect(source).To(BeNil())
			g.Expect(closer).NotTo(BeNil())
			g.Expect(closer).NotTo(Panic())
		})
	}
}
