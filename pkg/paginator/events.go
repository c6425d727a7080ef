package paginator

import (
	"log/slog"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/event"
)

// Event names.
const (
	EventRowsPerPageChange   = AttrRowsPerPage + attr.ChangeSuffix
	EventTotalRecordsChange  = AttrTotalRecords + attr.ChangeSuffix
	EventRecordOffsetChange  = AttrRecordOffset + attr.ChangeSuffix
	EventAlwaysVisibleChange = AttrAlwaysVisible + attr.ChangeSuffix
	EventRenderedChange      = AttrRendered + attr.ChangeSuffix

	// EventChangeRequest carries a [ProposedState]. It is emitted instead of
	// applying a request when updateOnChange is false.
	EventChangeRequest = "changeRequest"
	// EventPageChange carries a [PageChangeEvent].
	EventPageChange = "pageChange"
	// EventVisibilityChange carries a [VisibilityEvent].
	EventVisibilityChange = "visibilityChange"

	// EventRender, EventBeforeDestroy and EventDestroy carry a
	// [LifecycleEvent].
	EventRender        = "render"
	EventBeforeDestroy = "beforeDestroy"
	EventDestroy       = "destroy"
)

// PageChangeEvent is the payload of [EventPageChange].
type PageChangeEvent struct {
	PreviousState State
	NewState      State
	PreviousPage  int
	NewPage       int
}

// VisibilityEvent is the payload of [EventVisibilityChange].
type VisibilityEvent struct {
	Visible bool
}

// LifecycleEvent is the payload of [EventRender], [EventBeforeDestroy] and
// [EventDestroy].
type LifecycleEvent struct {
	State State
}

// On subscribes h to the named event. The returned function unsubscribes.
func (p *Paginator) On(name string, h event.Handler) func() {
	return p.bus.On(name, h)
}

// Emit delivers a custom event to subscribers. It returns false if a
// subscriber prevented the event.
func (p *Paginator) Emit(name string, payload any) bool {
	return p.bus.Emit(name, payload)
}

// OnAttributeChange subscribes fn to changes of the named attribute.
func (p *Paginator) OnAttributeChange(name string, fn func(attr.Change)) func() {
	return p.bus.On(name+attr.ChangeSuffix, func(e *event.Event) {
		if c, ok := e.Payload.(attr.Change); ok {
			fn(c)
		}
	})
}

// OnChangeRequest subscribes fn to change requests. Returning false from fn
// prevents the event.
func (p *Paginator) OnChangeRequest(fn func(ProposedState) bool) func() {
	return p.bus.On(EventChangeRequest, func(e *event.Event) {
		if ps, ok := e.Payload.(ProposedState); ok && !fn(ps) {
			e.PreventDefault()
		}
	})
}

// OnPageChange subscribes fn to page changes.
func (p *Paginator) OnPageChange(fn func(PageChangeEvent)) func() {
	return p.bus.On(EventPageChange, func(e *event.Event) {
		if pc, ok := e.Payload.(PageChangeEvent); ok {
			fn(pc)
		}
	})
}

// OnVisibilityChange subscribes fn to visibility changes.
func (p *Paginator) OnVisibilityChange(fn func(bool)) func() {
	return p.bus.On(EventVisibilityChange, func(e *event.Event) {
		if v, ok := e.Payload.(VisibilityEvent); ok {
			fn(v.Visible)
		}
	})
}

// OnLifecycle subscribes fn to one of [EventRender], [EventBeforeDestroy] or
// [EventDestroy].
func (p *Paginator) OnLifecycle(name string, fn func(State)) func() {
	return p.bus.On(name, func(e *event.Event) {
		if le, ok := e.Payload.(LifecycleEvent); ok {
			fn(le.State)
		}
	})
}

func (p *Paginator) initEvents() {
	p.OnAttributeChange(AttrRowsPerPage, p.handleStateChange)
	p.OnAttributeChange(AttrRecordOffset, p.handleStateChange)
	p.OnAttributeChange(AttrTotalRecords, p.handleTotalRecordsChange)
	p.OnAttributeChange(AttrAlwaysVisible, func(attr.Change) {
		p.updateVisibility()
	})
}

// handleStateChange detects page changes caused by a rowsPerPage or
// recordOffset change by comparing against the state computed with the
// previous value.
func (p *Paginator) handleStateChange(c attr.Change) {
	prev, ok := c.PreviousValue.(int)
	if !ok {
		return
	}

	var before State

	switch c.Name {
	case AttrRowsPerPage:
		before = ComputeState(prev, p.TotalRecords(), p.StartIndex())
	case AttrRecordOffset:
		before = ComputeState(p.RowsPerPage(), p.TotalRecords(), prev)
	default:
		return
	}

	p.pageMoved(before, p.State())
}

// handleTotalRecordsChange keeps recordOffset in range when totalRecords
// shrinks below it, then detects page changes and recomputes visibility.
func (p *Paginator) handleTotalRecordsChange(c attr.Change) {
	prev, ok := c.PreviousValue.(int)
	if !ok {
		return
	}

	defer p.updateVisibility()

	total := p.TotalRecords()
	rpp := p.RowsPerPage()
	offset := p.StartIndex()

	if total != Unlimited && rpp > 0 && offset >= total {
		// Record the state as it was, then snap the offset to the last page of
		// the new total.
		before := ComputeState(rpp, prev, offset)
		snapped := ComputeState(rpp, total, offset).RecordOffset

		p.store.Set(AttrRecordOffset, snapped, attr.Silent())

		p.logger.Debug("snapped record offset",
			slog.Int("previous_offset", offset),
			slog.Int("record_offset", snapped),
			slog.Int("total_records", total),
		)

		p.pageMoved(before, p.State())

		return
	}

	p.pageMoved(ComputeState(rpp, prev, offset), p.State())
}

// pageMoved emits [EventPageChange] when the page differs between prev and
// next. During a batch the change is latched instead.
func (p *Paginator) pageMoved(prev, next State) {
	if prev.Page == next.Page {
		return
	}

	if p.batch {
		p.pageChanged = true
		return
	}

	p.firePageChange(prev, next)
}

func (p *Paginator) firePageChange(prev, next State) {
	p.logger.Debug("page changed",
		slog.Int("previous_page", prev.Page),
		slog.Int("page", next.Page),
	)

	p.bus.Emit(EventPageChange, PageChangeEvent{
		PreviousPage:  prev.Page,
		NewPage:       next.Page,
		PreviousState: prev,
		NewState:      next,
	})
}

// updateVisibility pushes the computed visibility to the containers and
// notifies subscribers when it changed.
func (p *Paginator) updateVisibility() {
	visible := p.Visible()

	for _, c := range p.containers {
		c.visible = visible
	}

	if visible == p.visible {
		return
	}

	p.visible = visible
	p.bus.Emit(EventVisibilityChange, VisibilityEvent{Visible: visible})
}
