package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/folio/pkg/host"
	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/version"
)

// Controller is the paginator host driven by the server.
type Controller interface {
	Subscribe(ch chan<- host.Event)
	Snapshot() host.Snapshot
	Records(page int) ([]string, bool)
	Attempt(ctx context.Context, name string, fn func(p *paginator.Paginator) bool) host.Outcome
}

// Activity counts what happened to the paginator since the server started,
// including changes made by other clients such as the TUI.
type Activity struct {
	LastDenial  string
	PageChanges int64
	Denials     int64
	Reloads     int64
}

// Opt configures a [Server].
type Opt func(*Server)

// WithTracer sets the tracer used for tool call spans.
func WithTracer(t trace.Tracer) Opt {
	return func(s *Server) {
		s.tracer = t
	}
}

// Server implements the MCP server for folio.
type Server struct {
	ctrl     Controller
	server   *mcp.Server
	tracer   trace.Tracer
	eventCh  chan host.Event
	done     chan struct{}
	address  string
	activity Activity
	mu       sync.RWMutex
}

// NewServer creates a new MCP server. An empty address serves over stdio.
func NewServer(address string, ctrl Controller, opts ...Opt) *Server {
	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	s := &Server{
		address: address,
		ctrl:    ctrl,
		server:  mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		tracer:  otel.Tracer("mcp"),
		eventCh: make(chan host.Event, 100),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctrl.Subscribe(s.eventCh)

	s.registerTools()

	go s.processEvents()

	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_state",
		Description: "Get the current pagination state: page, page size, record count and number of pages.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, WithTracing(s.tracer, s.handleGetState))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_records",
		Description: "Get the records on a page. Defaults to the current page. Does not move the pager.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"page": newPageSchema("The 1-based page to read. Omit to read the current page."),
			},
		},
	}, WithTracing(s.tracer, s.handleGetRecords))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "request_page",
		Description: "Move the pager to a page. The request may be denied by the configured policy.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"page": newPageSchema("The 1-based page to move to."),
			},
			Required: []string{"page"},
		},
	}, WithTracing(s.tracer, s.handleRequestPage))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_rows_per_page",
		Description: "Change the number of records per page. The request may be denied by the configured policy.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"rowsPerPage": {
					Type:        "integer",
					Description: "The number of records per page, at least 1.",
				},
			},
			Required: []string{"rowsPerPage"},
		},
	}, WithTracing(s.tracer, s.handleSetRowsPerPage))
}

// processEvents records controller events until the server is closed.
func (s *Server) processEvents() {
	for {
		select {
		case <-s.done:
			return
		case evt := <-s.eventCh:
			s.mu.Lock()

			switch e := evt.(type) {
			case host.EventPageChange:
				s.activity.PageChanges++
			case host.EventDenied:
				s.activity.Denials++
				s.activity.LastDenial = e.Decision.Rule
			case host.EventRecords:
				if e.Err == nil {
					s.activity.Reloads++
				}
			}

			s.mu.Unlock()
		}
	}
}

// Activity returns a copy of the recorded activity.
func (s *Server) Activity() Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activity
}

func (s *Server) Server() *mcp.Server {
	return s.server
}

// Close stops event processing.
func (s *Server) Close() {
	close(s.done)
}

// Serve starts the MCP server and blocks until ctx is done or serving fails.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.Error("shutdown MCP server", slog.Any("err", err))
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
