package errors_test

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	pkgerrors "github.com/joe/music-scan/pkg/errors"
	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

func enrich(t *testing.T, err error, path string) pkgerrors.ActionableError {
	t.Helper()

	enriched := pkgerrors.NewEnricher().Enrich(err, path)

	var actionableErr pkgerrors.ActionableError
	if !errors.As(enriched, &actionableErr) {
		t.Fatalf("expected ActionableError, got %T", enriched)
	}

	return actionableErr
}

func TestEnricher_EnrichAlreadyActionableError(t *testing.T) {
	t.Parallel()

	original := pkgerrors.NewActionableError(
		"permission denied",
		pkgerrors.CategoryPermission,
		[]string{"existing suggestion"},
		"/original/path",
	)

	if enrich(t, original, "/new/path") != original {
		t.Error("expected same ActionableError instance when enriching ActionableError")
	}
}

func TestEnricher_SentinelsDecideCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		category pkgerrors.ErrorCategory
	}{
		{
			name:     "permission",
			err:      &fs.PathError{Op: "opendir", Path: "/music/locked", Err: fs.ErrPermission},
			category: pkgerrors.CategoryPermission,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("failed to open: %w", fs.ErrNotExist),
			category: pkgerrors.CategoryPath,
		},
		{
			name:     "not a directory",
			err:      &fs.PathError{Op: "opendir", Path: "/music/a.mp3", Err: filesystem.ErrNotDirectory},
			category: pkgerrors.CategoryPath,
		},
		{
			name:     "unsupported format",
			err:      &probe.UnsupportedFormatError{Path: "cover.jpg", Extension: "jpg"},
			category: pkgerrors.CategoryFormat,
		},
		{
			// the message mentions a permission problem, the sentinel says decode
			name:     "decode beats message",
			err:      &probe.DecodeError{Path: "a.flac", Err: errors.New("permission denied in header")},
			category: pkgerrors.CategoryDecode,
		},
		{
			name:     "truncated read",
			err:      fmt.Errorf("read block: %w", io.ErrUnexpectedEOF),
			category: pkgerrors.CategoryRead,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actionableErr := enrich(t, testCase.err, "")
			if actionableErr.Category() != testCase.category {
				t.Errorf("expected category %q, got %q", testCase.category, actionableErr.Category())
			}

			if len(actionableErr.Suggestions()) == 0 {
				t.Error("expected suggestions, got none")
			}
		})
	}
}

func TestEnricher_PathFromWalkError(t *testing.T) {
	t.Parallel()

	named := filesystem.WalkError{
		Path: "/music/locked", Op: filesystem.OpOpenDir,
		Kind: filesystem.KindPermissionDenied, Err: fs.ErrPermission,
	}
	if got := enrich(t, &named, "").AffectedPath(); got != "/music/locked" {
		t.Errorf("expected path %q, got %q", "/music/locked", got)
	}

	anonymous := filesystem.WalkError{
		Dir: "/music/flaky", Op: filesystem.OpReadDir,
		Kind: filesystem.KindOther, Err: errors.New("input/output error"),
	}

	actionableErr := enrich(t, &anonymous, "")
	if actionableErr.AffectedPath() != "/music/flaky" {
		t.Errorf("expected dir %q, got %q", "/music/flaky", actionableErr.AffectedPath())
	}

	if actionableErr.Category() != pkgerrors.CategoryRead {
		t.Errorf("expected category %q, got %q", pkgerrors.CategoryRead, actionableErr.Category())
	}
}

func TestEnricher_EnrichStandardError(t *testing.T) {
	t.Parallel()

	originalErr := errors.New("permission denied: /path/to/file.flac")
	actionableErr := enrich(t, originalErr, "/path/to/file.flac")

	if actionableErr.Category() != pkgerrors.CategoryPermission {
		t.Errorf("expected category %q, got %q", pkgerrors.CategoryPermission, actionableErr.Category())
	}

	if actionableErr.AffectedPath() != "/path/to/file.flac" {
		t.Errorf("expected path %q, got %q", "/path/to/file.flac", actionableErr.AffectedPath())
	}

	if actionableErr.OriginalError() != originalErr.Error() {
		t.Errorf("expected original error %q, got %q", originalErr.Error(), actionableErr.OriginalError())
	}
}

func TestEnricher_EnrichUnknownError(t *testing.T) {
	t.Parallel()

	actionableErr := enrich(t, errors.New("something completely unexpected"), "/some/path")

	if actionableErr.Category() != pkgerrors.CategoryUnknown {
		t.Errorf("expected category %q, got %q", pkgerrors.CategoryUnknown, actionableErr.Category())
	}

	if len(actionableErr.Suggestions()) == 0 {
		t.Error("expected suggestions for unknown error, got none")
	}
}

func TestEnricher_ExtractPathFromErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		errorMsg     string
		providedPath string
		expectedPath string
		category     pkgerrors.ErrorCategory
	}{
		{
			name:         "extract path from 'open /path: permission denied' format",
			errorMsg:     "open /home/user/song.mp3: permission denied",
			expectedPath: "/home/user/song.mp3",
			category:     pkgerrors.CategoryPermission,
		},
		{
			name:         "extract path from 'lstat /path: no such file' format",
			errorMsg:     "lstat /var/music/a.flac: no such file or directory",
			expectedPath: "/var/music/a.flac",
			category:     pkgerrors.CategoryPath,
		},
		{
			name:         "extract relative path from error message",
			errorMsg:     "opendir ./library/locked: permission denied",
			expectedPath: "./library/locked",
			category:     pkgerrors.CategoryPermission,
		},
		{
			name:         "prefer provided path over extracted path",
			errorMsg:     "open /extracted/path.mp3: permission denied",
			providedPath: "/provided/path.mp3",
			expectedPath: "/provided/path.mp3",
			category:     pkgerrors.CategoryPermission,
		},
		{
			name:         "no path extraction when no path in error",
			errorMsg:     "permission denied",
			expectedPath: "",
			category:     pkgerrors.CategoryPermission,
		},
		{
			name:         "extract Windows path",
			errorMsg:     "open C:\\Music\\song.mp3: permission denied",
			expectedPath: "C:\\Music\\song.mp3",
			category:     pkgerrors.CategoryPermission,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actionableErr := enrich(t, errors.New(testCase.errorMsg), testCase.providedPath)

			if actionableErr.AffectedPath() != testCase.expectedPath {
				t.Errorf("expected path %q, got %q", testCase.expectedPath, actionableErr.AffectedPath())
			}

			if actionableErr.Category() != testCase.category {
				t.Errorf("expected category %q, got %q", testCase.category, actionableErr.Category())
			}
		})
	}
}
