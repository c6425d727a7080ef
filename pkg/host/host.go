package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/folio/pkg/log"
	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/policy"
	"github.com/macropower/folio/pkg/source"
)

// Event is sent to subscribers.
type Event any

type (
	// EventPageChange is sent when the current page changed.
	EventPageChange paginator.PageChangeEvent

	// EventDenied is sent when the policy rejected a change request.
	EventDenied struct {
		Decision policy.Decision
		Proposed paginator.ProposedState
	}

	// EventRecords is sent when the total record count changed.
	EventRecords struct {
		Err   error
		Total int
	}

	// EventVisibility is sent when the paginator's visibility changed.
	EventVisibility struct {
		Visible bool
	}
)

// Opt configures a [Controller].
type Opt func(*Controller)

// WithPolicy sets the policy used to answer change requests.
func WithPolicy(p *policy.Policy) Opt {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithSource sets the record source.
func WithSource(s *source.Source) Opt {
	return func(c *Controller) {
		c.src = s
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Opt {
	return func(c *Controller) {
		c.tracer = t
	}
}

// ContainerView is a rendered container.
type ContainerView struct {
	ID   string
	View string
}

// Snapshot is a consistent view of the paginator.
type Snapshot struct {
	Records    []string
	Containers []ContainerView
	State      paginator.State
	TotalPages int
	Visible    bool
}

// Controller serializes access to a paginator. It is safe for concurrent use.
type Controller struct {
	tracer    trace.Tracer
	p         *paginator.Paginator
	policy    *policy.Policy
	src       *source.Source
	listeners []chan<- Event
	// Denial recorded by the request in progress.
	denial *EventDenied
	// Record index of the last [Controller.Find] match.
	lastMatch int
	mu        sync.Mutex
}

// Match is the result of [Controller.Find].
type Match struct {
	// Record is the 0-based index of the matching record.
	Record int
	// Page holds the matching record.
	Page int
	// Accepted is false when moving to Page was not accepted.
	Accepted bool
}

// Outcome is the result of [Controller.Attempt].
type Outcome struct {
	// Denial is set when the policy rejected the request.
	Denial   *EventDenied
	Accepted bool
}

// New creates a [Controller] for p. The controller answers p's change
// requests, so p should not have other change request subscribers.
func New(p *paginator.Paginator, opts ...Opt) *Controller {
	c := &Controller{
		tracer:    otel.Tracer("host"),
		p:         p,
		lastMatch: -1,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Handlers run while the caller holds c.mu.
	p.OnChangeRequest(c.handleChangeRequest)
	p.OnPageChange(func(e paginator.PageChangeEvent) {
		c.broadcast(EventPageChange(e))
	})
	p.OnVisibilityChange(func(visible bool) {
		c.broadcast(EventVisibility{Visible: visible})
	})

	return c
}

func (c *Controller) handleChangeRequest(ps paginator.ProposedState) bool {
	d := c.policy.Evaluate(ps)
	if !d.Allowed {
		slog.Debug("change request denied",
			slog.String("rule", d.Rule),
			slog.Int("page", ps.Page),
			slog.Int("rows_per_page", ps.RowsPerPage),
		)
		denial := EventDenied{Decision: d, Proposed: ps}
		c.denial = &denial
		c.broadcast(denial)

		return false
	}

	c.p.ApplyProposed(ps)

	return true
}

// Subscribe registers ch to receive events. Events are dropped for
// subscribers that are not keeping up.
func (c *Controller) Subscribe(ch chan<- Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, ch)
}

// broadcast must be called with c.mu held.
func (c *Controller) broadcast(evt Event) {
	for _, ch := range c.listeners {
		select {
		case ch <- evt:
		default:
			slog.Warn("dropped event for slow subscriber", slog.String("event", fmt.Sprintf("%T", evt)))
		}
	}
}

// Do runs fn with exclusive access to the paginator, inside a span named
// name.
func (c *Controller) Do(ctx context.Context, name string, fn func(p *paginator.Paginator) bool) bool {
	return c.Attempt(ctx, name, fn).Accepted
}

// Attempt is like [Controller.Do], but also reports a policy denial that
// happened while fn ran.
func (c *Controller) Attempt(ctx context.Context, name string, fn func(p *paginator.Paginator) bool) Outcome {
	ctx, span := c.tracer.Start(ctx, name)
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.denial = nil
	before := c.p.CurrentPage()
	out := Outcome{Accepted: fn(c.p), Denial: c.denial}

	span.SetAttributes(
		attribute.Bool("accepted", out.Accepted),
		attribute.Int("page.before", before),
		attribute.Int("page.after", c.p.CurrentPage()),
	)

	if out.Denial != nil {
		span.SetAttributes(attribute.String("denied_by", out.Denial.Decision.Rule))
	}

	log.WithContext(ctx).DebugContext(ctx, "paginator request",
		slog.String("name", name),
		slog.Bool("accepted", out.Accepted),
		slog.Int("page", c.p.CurrentPage()),
	)

	return out
}

// RequestPage requests a move to page.
func (c *Controller) RequestPage(ctx context.Context, page int) bool {
	return c.Do(ctx, "request_page", func(p *paginator.Paginator) bool {
		return p.RequestPage(page)
	})
}

// RequestRowsPerPage requests a new page size.
func (c *Controller) RequestRowsPerPage(ctx context.Context, rpp int) bool {
	return c.Do(ctx, "request_rows_per_page", func(p *paginator.Paginator) bool {
		return p.RequestRowsPerPage(rpp)
	})
}

// NextPage requests the page after the current page.
func (c *Controller) NextPage(ctx context.Context) bool {
	return c.Do(ctx, "next_page", func(p *paginator.Paginator) bool {
		return p.HasNextPage() && p.RequestPage(p.NextPage())
	})
}

// PreviousPage requests the page before the current page.
func (c *Controller) PreviousPage(ctx context.Context) bool {
	return c.Do(ctx, "previous_page", func(p *paginator.Paginator) bool {
		return p.HasPreviousPage() && p.RequestPage(p.PreviousPage())
	})
}

// FirstPage requests the first page.
func (c *Controller) FirstPage(ctx context.Context) bool {
	return c.Do(ctx, "first_page", func(p *paginator.Paginator) bool {
		return p.RequestPage(1)
	})
}

// LastPage requests the last page. It has no effect while the number of
// pages is unknown or unlimited.
func (c *Controller) LastPage(ctx context.Context) bool {
	return c.Do(ctx, "last_page", func(p *paginator.Paginator) bool {
		total, ok := p.TotalPages()
		return ok && total > 0 && p.RequestPage(total)
	})
}

// SetTotalRecords updates the record count. It is not subject to the policy.
func (c *Controller) SetTotalRecords(ctx context.Context, total int) bool {
	return c.Do(ctx, "set_total_records", func(p *paginator.Paginator) bool {
		if !p.RequestTotalRecords(total, paginator.Force()) {
			return false
		}

		c.broadcast(EventRecords{Total: total})

		return true
	})
}

// Snapshot returns the current state along with the records on the current
// page and the rendered containers.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.p.State()
	total, _ := c.p.TotalPages()

	snap := Snapshot{
		State:      s,
		TotalPages: total,
		Visible:    c.p.Visible(),
	}

	if c.src != nil {
		snap.Records = c.src.Records(s.Records)
	}

	for _, ct := range c.p.Containers() {
		snap.Containers = append(snap.Containers, ContainerView{ID: ct.ID, View: ct.View()})
	}

	return snap
}

// Find moves to the page holding the next record matching pattern. Repeated
// calls continue after the previous match while it is on the current page.
func (c *Controller) Find(ctx context.Context, pattern string) (Match, bool) {
	if c.src == nil {
		return Match{}, false
	}

	var (
		m     Match
		found bool
	)

	c.Attempt(ctx, "find", func(p *paginator.Paginator) bool {
		s := p.State()
		from := s.RecordOffset
		if c.lastMatch >= from && c.lastMatch < from+s.RowsPerPage {
			from = c.lastMatch + 1
		}

		m.Record, found = c.src.Find(pattern, from)
		if !found || s.RowsPerPage <= 0 {
			found = false
			return false
		}

		c.lastMatch = m.Record
		m.Page = m.Record/s.RowsPerPage + 1
		m.Accepted = m.Page == s.Page || p.RequestPage(m.Page)

		return m.Accepted
	})

	return m, found
}

// Records returns the records on page.
func (c *Controller) Records(page int) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.src == nil || !c.p.HasPage(page) {
		return nil, false
	}

	return c.src.Records(c.p.PageRecords(page)), true
}

// Follow keeps totalRecords in sync with the source until ctx is done.
func (c *Controller) Follow(ctx context.Context) {
	if c.src == nil {
		return
	}

	events := make(chan source.Event, 16)
	c.src.Subscribe(events)

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			if evt.Err != nil {
				c.mu.Lock()
				c.broadcast(EventRecords{Err: evt.Err, Total: evt.Lines})
				c.mu.Unlock()

				continue
			}

			c.SetTotalRecords(ctx, evt.Lines)
		}
	}
}
