package paginator

import (
	"fmt"
	"log/slog"

	"github.com/macropower/folio/pkg/attr"
)

// Render renders the template into every container and emits [EventRender].
// Calling Render again has no effect. Nothing happens when alwaysVisible is
// false and the records fit on one page.
func (p *Paginator) Render() {
	if p.Rendered() {
		return
	}

	total := p.TotalRecords()
	if !p.AlwaysVisible() && total != Unlimited && total <= p.RowsPerPage() {
		p.logger.Debug("render suppressed",
			slog.Int("id", p.ID()),
			slog.Int("total_records", total),
		)

		return
	}

	if len(p.containers) == 0 {
		return
	}

	for i, c := range p.containers {
		c.render(fmt.Sprintf("%s%d-%d", IDBase, p.ID(), i))
	}

	p.updateVisibility()

	p.store.Set(AttrRendered, true, attr.Force())

	p.bus.Emit(EventRender, LifecycleEvent{State: p.State()})
}

// Destroy tears down the rendered components, emitting [EventBeforeDestroy]
// and [EventDestroy]. It has no effect when the paginator is not rendered.
func (p *Paginator) Destroy() {
	if !p.Rendered() {
		return
	}

	le := LifecycleEvent{State: p.State()}

	p.bus.Emit(EventBeforeDestroy, le)
	p.bus.Emit(EventDestroy, le)

	for _, c := range p.containers {
		c.reset()
	}

	p.store.Set(AttrRendered, false, attr.Force())
}
