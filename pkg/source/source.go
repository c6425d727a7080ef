package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/cel-go/cel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/folio/pkg/expr"
	"github.com/macropower/folio/pkg/log"
	"github.com/macropower/folio/pkg/paginator"
)

// DefaultReload reloads on writes and re-creation of the file.
const DefaultReload = `op.has(fs.WRITE, fs.CREATE)`

// maxLineSize bounds a single record.
const maxLineSize = 1024 * 1024

var (
	// ErrNotWatchable is returned when watching a source that is not backed by
	// a file.
	ErrNotWatchable = errors.New("source is not backed by a file")

	reloadEnv = expr.MustNewEnvironment(
		cel.Variable("op", cel.IntType),
		cel.Variable("file", cel.StringType),
	)
)

// Event is sent to subscribers after the source was reloaded.
type Event struct {
	// Err is set when the reload failed. The previous records are kept.
	Err error
	// Lines is the number of records after the reload.
	Lines int
}

// Opt configures a [Source].
type Opt func(*Source) error

// WithReload sets the CEL expression deciding which file events reload the
// source.
func WithReload(expression string) Opt {
	return func(s *Source) error {
		if expression == "" {
			s.reload = nil
			return nil
		}

		program, err := reloadEnv.Compile(expression)
		if err != nil {
			return fmt.Errorf("reload expression %q: %w", expression, err)
		}

		s.reload = program

		return nil
	}
}

// CheckReload reports whether expression is a valid reload expression.
func CheckReload(expression string) error {
	_, err := reloadEnv.Compile(expression)
	if err != nil {
		return fmt.Errorf("reload expression %q: %w", expression, err)
	}

	return nil
}

// Source holds records as lines.
type Source struct {
	tracer    trace.Tracer
	reload    cel.Program
	name      string
	path      string
	lines     []string
	listeners []chan<- Event
	mu        sync.RWMutex
}

// NewFile creates a [Source] from the lines of the file at path.
func NewFile(path string, opts ...Opt) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	s := &Source{
		tracer: otel.Tracer("source"),
		name:   path,
		path:   abs,
	}

	opts = append([]Opt{WithReload(DefaultReload)}, opts...)
	for _, opt := range opts {
		err := opt(s)
		if err != nil {
			return nil, err
		}
	}

	err = s.Reload(context.Background())
	if err != nil {
		return nil, err
	}

	return s, nil
}

// NewReader creates a [Source] from the lines read from r.
func NewReader(name string, r io.Reader) (*Source, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return &Source{
		tracer: otel.Tracer("source"),
		name:   name,
		lines:  lines,
	}, nil
}

// NewLines creates a [Source] holding lines.
func NewLines(name string, lines []string) *Source {
	return &Source{
		tracer: otel.Tracer("source"),
		name:   name,
		lines:  lines,
	}
}

// Name returns the display name of the source.
func (s *Source) Name() string {
	return s.name
}

// Len returns the number of records.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lines)
}

// Records returns the records in r. A nil range returns no records; the range
// is clamped to the available records.
func (s *Source) Records(r *paginator.Range) []string {
	if r == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(r.Start, 0)
	end := min(r.End+1, len(s.lines))

	if start >= end {
		return nil
	}

	out := make([]string, end-start)
	copy(out, s.lines[start:end])

	return out
}

// Reload re-reads the file. Sources not backed by a file are left unchanged.
func (s *Source) Reload(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "reload", trace.WithAttributes(
		attribute.String("path", s.path),
	))
	defer span.End()

	f, err := os.Open(s.path)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open %q: %w", s.name, err)
	}
	defer f.Close() //nolint:errcheck // Read-only.

	lines, err := readLines(f)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("read %q: %w", s.name, err)
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()

	log.WithContext(ctx).DebugContext(ctx, "loaded source",
		slog.String("path", s.path),
		slog.Int("lines", len(lines)),
	)

	return nil
}

// Subscribe registers ch to receive reload events.
func (s *Source) Subscribe(ch chan<- Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, ch)
}

func (s *Source) broadcast(evt Event) {
	s.mu.RLock()
	listeners := append([]chan<- Event(nil), s.listeners...)
	s.mu.RUnlock()

	for _, ch := range listeners {
		ch <- evt
	}
}

// Watch reloads the source whenever its file changes, until ctx is done.
// The parent directory is watched so that editors replacing the file are
// noticed.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	dir := filepath.Dir(s.path)

	err = watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("add %q to watcher: %w", dir, err)
	}

	log.WithContext(ctx).DebugContext(ctx, "watching source", slog.String("path", s.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			s.handleFileEvent(evt)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			s.broadcast(Event{Err: err, Lines: s.Len()})
		}
	}
}

func (s *Source) handleFileEvent(evt fsnotify.Event) {
	if filepath.Clean(evt.Name) != s.path {
		return
	}

	ctx := context.Background()
	logger := log.WithContext(ctx)

	matched, err := s.matchFileEvent(evt)
	if err != nil {
		logger.ErrorContext(ctx, "match file event",
			slog.String("event", evt.String()),
			slog.Any("error", err),
		)
		s.broadcast(Event{Err: err, Lines: s.Len()})

		return
	}

	if !matched {
		return
	}

	err = s.Reload(ctx)
	s.broadcast(Event{Err: err, Lines: s.Len()})
}

func (s *Source) matchFileEvent(evt fsnotify.Event) (bool, error) {
	if s.reload == nil {
		return true, nil
	}

	return expr.EvalBool(s.reload, map[string]any{
		"op":   int64(evt.Op),
		"file": evt.Name,
	})
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	err := scanner.Err()
	if err != nil {
		return nil, err
	}

	return lines, nil
}
