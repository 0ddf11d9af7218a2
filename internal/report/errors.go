package report

import (
	"fmt"
	"strings"

	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/pkg/errors"
	"github.com/joe/music-scan/pkg/filesystem"
)

// DisplayPath is how a walk error names its location: the path, or
// "<entry in DIR>" for a failed read of an unnamed entry.
func DisplayPath(walkErr filesystem.WalkError) string {
	if walkErr.Path != "" {
		return walkErr.Path
	}

	return fmt.Sprintf("<entry in %s>", walkErr.Dir)
}

// RenderErrors renders the walk error log in discovery order with suggestions.
// At most limit errors are shown, followed by an overflow line; limit <= 0
// shows all of them.
func RenderErrors(errs []filesystem.WalkError, limit int) string {
	if len(errs) == 0 {
		return ""
	}

	var builder strings.Builder
	enricher := errors.NewEnricher()

	fmt.Fprintf(&builder, "%s\n", TitleStyle().Render(fmt.Sprintf("Walk errors (%d)", len(errs))))

	for i := range errs {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&builder, "... and %d more error(s)\n", len(errs)-limit)
			break
		}

		walkErr := errs[i]
		enriched := enricher.Enrich(&walkErr, "")

		fmt.Fprintf(&builder, "  %s %s %s\n",
			ErrorSymbol(),
			PathErrorStyle().Render(DisplayPath(walkErr)),
			DimStyle().Render("("+walkErr.Kind.String()+")"))
		fmt.Fprintf(&builder, "    %s\n", walkErr.Error())

		writeSuggestions(&builder, enriched)
	}

	return builder.String()
}

// RenderProbeFailures renders files that could not be opened or decoded.
// Unsupported formats are left out. limit works as in RenderErrors.
func RenderProbeFailures(files []scanengine.FileResult, limit int) string {
	var failed []scanengine.FileResult

	for _, file := range files {
		if file.Err != nil && !isUnsupported(file.Err) {
			failed = append(failed, file)
		}
	}

	if len(failed) == 0 {
		return ""
	}

	var builder strings.Builder
	enricher := errors.NewEnricher()

	fmt.Fprintf(&builder, "%s\n", TitleStyle().Render(fmt.Sprintf("Unreadable files (%d)", len(failed))))

	for i, file := range failed {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&builder, "... and %d more file(s)\n", len(failed)-limit)
			break
		}

		enriched := enricher.Enrich(file.Err, file.Path)

		fmt.Fprintf(&builder, "  %s %s\n", ErrorSymbol(), PathErrorStyle().Render(file.Path))
		fmt.Fprintf(&builder, "    %s\n", file.Err.Error())

		writeSuggestions(&builder, enriched)
	}

	return builder.String()
}

func writeSuggestions(builder *strings.Builder, enriched error) {
	suggestions := errors.FormatSuggestions(enriched)
	if suggestions != "" {
		fmt.Fprintf(builder, "    %s\n", strings.ReplaceAll(suggestions, "\n", "\n    "))
	}
}
