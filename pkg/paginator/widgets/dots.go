package widgets

import (
	bpaginator "github.com/charmbracelet/bubbles/paginator"
	"github.com/muesli/reflow/ansi"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/paginator"
)

const (
	// AttrPageDotsMaxWidth is the widest dot indicator [PageDots] renders
	// before falling back to "current/total".
	AttrPageDotsMaxWidth = "pageDotsMaxWidth"

	// DefaultPageDotsMaxWidth is the default value of [AttrPageDotsMaxWidth].
	DefaultPageDotsMaxWidth = 40
)

// PageDotsFactory creates [PageDots].
type PageDotsFactory struct {
	styles *Styles
}

// Initialize implements [paginator.ComponentFactory].
func (f *PageDotsFactory) Initialize(p *paginator.Paginator) {
	p.Define(AttrPageDotsMaxWidth, attr.Definition{
		Value:     DefaultPageDotsMaxWidth,
		Validator: attr.IntAtLeast(0),
	})
}

// Render implements [paginator.ComponentFactory].
func (f *PageDotsFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	model := bpaginator.New()
	model.Type = bpaginator.Dots
	model.ActiveDot = f.styles.Current.Render(f.styles.ActiveDot)
	model.InactiveDot = f.styles.Disabled.Render(f.styles.InactiveDot)
	model.KeyMap = bpaginator.KeyMap{}

	d := &PageDots{p: p, id: id, model: model}
	d.watch(p, d.render, AttrPageDotsMaxWidth+attr.ChangeSuffix)

	return d
}

// PageDots renders one dot per page, highlighting the current page. It is
// empty when there is at most one page or the number of pages is unlimited.
type PageDots struct {
	binding

	p     *paginator.Paginator
	id    string
	model bpaginator.Model
}

func (d *PageDots) render() string {
	total, ok := d.p.TotalPages()
	if !ok || total <= 1 {
		return ""
	}

	d.model.PerPage = d.p.RowsPerPage()
	d.model.TotalPages = total
	d.model.Page = max(0, d.p.CurrentPage()-1)

	view := d.model.View()

	if ansi.PrintableRuneWidth(view) > d.p.Int(AttrPageDotsMaxWidth) {
		m := d.model
		m.Type = bpaginator.Arabic
		view = m.View()
	}

	return view
}
