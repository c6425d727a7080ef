package widgets

import (
	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/paginator"
)

// LinkKind selects the target of a link component.
type LinkKind int

// Link kinds.
const (
	FirstPage LinkKind = iota
	PreviousPage
	NextPage
	LastPage
)

// Label attributes of the link components.
const (
	AttrFirstPageLinkLabel    = "firstPageLinkLabel"
	AttrPreviousPageLinkLabel = "previousPageLinkLabel"
	AttrNextPageLinkLabel     = "nextPageLinkLabel"
	AttrLastPageLinkLabel     = "lastPageLinkLabel"
)

func (k LinkKind) labelAttr() string {
	switch k {
	case PreviousPage:
		return AttrPreviousPageLinkLabel
	case NextPage:
		return AttrNextPageLinkLabel
	case LastPage:
		return AttrLastPageLinkLabel
	default:
		return AttrFirstPageLinkLabel
	}
}

func (k LinkKind) defaultLabel() string {
	switch k {
	case PreviousPage:
		return "‹ prev"
	case NextPage:
		return "next ›"
	case LastPage:
		return "last »"
	default:
		return "« first"
	}
}

// LinkFactory creates first, previous, next and last page links.
type LinkFactory struct {
	styles *Styles
	Kind   LinkKind
}

// Initialize implements [paginator.ComponentFactory].
func (f *LinkFactory) Initialize(p *paginator.Paginator) {
	p.Define(f.Kind.labelAttr(), attr.Definition{
		Value:     f.Kind.defaultLabel(),
		Validator: attr.IsString,
	})
}

// Render implements [paginator.ComponentFactory].
func (f *LinkFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	l := &Link{p: p, id: id, kind: f.Kind, styles: f.styles}
	l.watch(p, l.render, f.Kind.labelAttr()+attr.ChangeSuffix)

	return l
}

// Link moves to the first, previous, next or last page.
type Link struct {
	binding

	p      *paginator.Paginator
	styles *Styles
	id     string
	kind   LinkKind
}

// ID returns the component id.
func (l *Link) ID() string {
	return l.id
}

// Target returns the page the link points at, or 0 when it has none.
func (l *Link) Target() int {
	p := l.p

	switch l.kind {
	case PreviousPage:
		if p.HasPreviousPage() {
			return p.PreviousPage()
		}
	case NextPage:
		return p.NextPage()
	case LastPage:
		total, ok := p.TotalPages()
		if ok && total > 0 && total != p.CurrentPage() {
			return total
		}
	default:
		if p.CurrentPage() > 1 {
			return 1
		}
	}

	return 0
}

// Enabled implements [Activator].
func (l *Link) Enabled() bool {
	return l.Target() > 0
}

// Activate implements [Activator].
func (l *Link) Activate() bool {
	target := l.Target()
	if target == 0 {
		return false
	}

	return l.p.RequestPage(target)
}

func (l *Link) render() string {
	if l.kind == LastPage {
		// There is no last page to link to.
		if total, _ := l.p.TotalPages(); total == paginator.Unlimited {
			return ""
		}
	}

	label := l.p.String(l.kind.labelAttr())
	if !l.Enabled() {
		return l.styles.Disabled.Render(label)
	}

	return l.styles.Link.Render(label)
}
