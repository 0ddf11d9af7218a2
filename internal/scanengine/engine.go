// Package scanengine pulls paths from a directory walk, probes the audio files
// among them and reports what it finds as events and a final Result.
package scanengine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

// DefaultProgressInterval is how many found files pass between ScanProgress events.
const DefaultProgressInterval = 100

// ErrAlreadyRun is returned when Run is called a second time.
var ErrAlreadyRun = errors.New("scan already run")

// FileResult is the outcome for one found file. Exactly one of Metadata and
// Err is set when the file was probed; both are nil when probing was off.
type FileResult struct {
	Path     string
	Metadata *probe.SongMetadata
	Err      error
}

// Result is everything a scan produced.
type Result struct {
	Root       string
	Files      []FileResult
	WalkErrors []filesystem.WalkError
	Stats      Stats

	// Cancelled is set when the context ended the scan early.
	Cancelled bool
}

// supportChecker is implemented by probers that can reject a path before it is opened.
type supportChecker interface {
	Supports(path string) bool
}

// Engine runs one scan.
type Engine struct {
	root             string
	source           filesystem.Source
	scanner          filesystem.PathScanner
	prober           probe.Prober
	filter           FileFilter
	emitter          EventEmitter
	logger           *zap.Logger
	timeProvider     TimeProvider
	probeEnabled     bool
	progressInterval int
	walkOptions      []filesystem.WalkOption
	ran              bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProber replaces the default prober.
func WithProber(prober probe.Prober) Option {
	return func(e *Engine) {
		e.prober = prober
	}
}

// WithFilter sets which files are probed. Defaults to all of them.
func WithFilter(filter FileFilter) Option {
	return func(e *Engine) {
		e.filter = filter
	}
}

// WithEmitter sets the event emitter. Events are dropped without one.
func WithEmitter(emitter EventEmitter) Option {
	return func(e *Engine) {
		e.emitter = emitter
	}
}

// WithOrder sets the walk's traversal order.
func WithOrder(order filesystem.Order) Option {
	return func(e *Engine) {
		e.walkOptions = append(e.walkOptions, filesystem.WithOrder(order))
	}
}

// WithReadBatch sets how many entries each local directory read fetches.
func WithReadBatch(n int) Option {
	return func(e *Engine) {
		e.walkOptions = append(e.walkOptions, filesystem.WithReadBatch(n))
	}
}

// WithScanner supplies the path scanner instead of walking the source.
func WithScanner(scanner filesystem.PathScanner) Option {
	return func(e *Engine) {
		e.scanner = scanner
	}
}

// WithProbe turns metadata probing on or off. On by default.
func WithProbe(enabled bool) Option {
	return func(e *Engine) {
		e.probeEnabled = enabled
	}
}

// WithProgressInterval sets how many found files pass between ScanProgress events.
func WithProgressInterval(n int) Option {
	return func(e *Engine) {
		e.progressInterval = n
	}
}

// WithTimeProvider replaces the clock used for elapsed time.
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) {
		e.timeProvider = tp
	}
}

// NewEngine creates an engine that scans root on source. root is cleaned
// first, so "./lib", "lib/" and "lib" scan and filter alike.
// The root is opened here; a root that cannot be opened is returned as an
// error wrapping *filesystem.WalkError.
func NewEngine(root string, source filesystem.Source, opts ...Option) (*Engine, error) {
	// The walker joins paths in clean form; the filter must see the same root.
	root = filepath.Clean(root)

	engine := &Engine{
		root:             root,
		source:           source,
		prober:           probe.New(),
		filter:           NewGlobFilter(),
		logger:           zap.NewNop(),
		timeProvider:     &RealTimeProvider{},
		probeEnabled:     true,
		progressInterval: DefaultProgressInterval,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.scanner == nil {
		walker, err := filesystem.NewSourceWalker(source, root, engine.walkOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to open root: %w", err)
		}

		engine.scanner = walker
	}

	return engine, nil
}

// emit sends an event if an emitter is configured.
func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

// Run scans until the walk is exhausted or ctx is done, then closes the walk.
// On cancellation the partial result is returned together with ctx.Err().
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.ran {
		return nil, ErrAlreadyRun
	}
	e.ran = true

	start := e.timeProvider.Now()
	result := &Result{Root: e.root}
	reported := 0

	e.logger.Info("scan started", zap.String("root", e.root), zap.Bool("probe", e.probeEnabled))
	e.emit(ScanStarted{Root: e.root})

	var runErr error

	for {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			runErr = err

			break
		}

		path, ok := e.scanner.Next()
		reported = e.reportWalkErrors(result, reported)

		if !ok {
			break
		}

		e.handleFile(path, result)

		if e.progressInterval > 0 && result.Stats.Found%e.progressInterval == 0 {
			result.Stats.Elapsed = e.timeProvider.Now().Sub(start)
			e.emit(ScanProgress{Stats: result.Stats})
		}
	}

	if err := e.scanner.Close(); err != nil {
		e.logger.Warn("closing walk failed", zap.Error(err))
	}

	result.WalkErrors = e.scanner.Errors()
	result.Stats.WalkErrors = len(result.WalkErrors)
	result.Stats.Elapsed = e.timeProvider.Now().Sub(start)

	e.logger.Info("scan complete",
		zap.Int("found", result.Stats.Found),
		zap.Int("probed", result.Stats.Probed),
		zap.Int("probe_failures", result.Stats.ProbeFailures),
		zap.Int("walk_errors", result.Stats.WalkErrors),
		zap.Duration("elapsed", result.Stats.Elapsed),
		zap.Bool("cancelled", result.Cancelled),
	)
	e.emit(ScanComplete{Result: result})

	return result, runErr
}

// reportWalkErrors logs and emits the errors recorded since the last call.
func (e *Engine) reportWalkErrors(result *Result, reported int) int {
	if e.scanner.ErrorCount() == reported {
		return reported
	}

	errs := e.scanner.Errors()
	for _, walkErr := range errs[reported:] {
		e.logger.Warn("walk error",
			zap.String("path", walkErr.Path),
			zap.String("dir", walkErr.Dir),
			zap.String("op", walkErr.Op),
			zap.Stringer("kind", walkErr.Kind),
			zap.Error(walkErr.Err),
		)
		e.emit(WalkErrorRecorded{Err: walkErr})
	}

	result.Stats.WalkErrors = len(errs)

	return len(errs)
}

func (e *Engine) handleFile(path string, result *Result) {
	result.Stats.Found++
	e.emit(FileFound{Path: path})

	if !e.filter.ShouldInclude(relativePath(e.root, path)) {
		result.Stats.Skipped++
		e.logger.Debug("file skipped", zap.String("path", path))
		e.emit(FileSkipped{Path: path})

		return
	}

	file := FileResult{Path: path}

	if e.probeEnabled {
		file.Metadata, file.Err = e.probeFile(path)
		e.recordProbe(&file, result)
	} else {
		e.logger.Debug("file found", zap.String("path", path))
	}

	result.Files = append(result.Files, file)
}

func (e *Engine) probeFile(path string) (*probe.SongMetadata, error) {
	if checker, ok := e.prober.(supportChecker); ok && !checker.Supports(path) {
		return nil, &probe.UnsupportedFormatError{Path: path, Extension: probe.Extension(path)}
	}

	file, err := e.source.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return e.prober.Probe(file, path)
}

func (e *Engine) recordProbe(file *FileResult, result *Result) {
	switch {
	case file.Err == nil:
		result.Stats.Probed++
		e.logger.Debug("file probed", zap.String("path", file.Path), zap.String("codec", file.Metadata.Codec))
		e.emit(FileProbed{Path: file.Path, Metadata: file.Metadata})
	case errors.Is(file.Err, probe.ErrUnsupportedFormat):
		result.Stats.Unsupported++
		e.logger.Debug("unsupported format", zap.String("path", file.Path))
		e.emit(ProbeFailed{Path: file.Path, Err: file.Err})
	default:
		result.Stats.ProbeFailures++
		e.logger.Warn("probe failed", zap.String("path", file.Path), zap.Error(file.Err))
		e.emit(ProbeFailed{Path: file.Path, Err: file.Err})
	}
}
