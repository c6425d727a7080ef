package widgets

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/folio/pkg/event"
	"github.com/macropower/folio/pkg/paginator"
)

// Component names.
const (
	NameFirstPageLink       = "FirstPageLink"
	NamePreviousPageLink    = "PreviousPageLink"
	NameNextPageLink        = "NextPageLink"
	NameLastPageLink        = "LastPageLink"
	NamePageLinks           = "PageLinks"
	NameRowsPerPageDropdown = "RowsPerPageDropdown"
	NameCurrentPageReport   = "CurrentPageReport"
	NameJumpToPageDropdown  = "JumpToPageDropdown"
	NamePageDots            = "PageDots"
)

// Activator is implemented by link components.
type Activator interface {
	// Activate requests the link's target. It returns false when the link is
	// disabled or the request was not accepted.
	Activate() bool
	// Enabled reports whether the link currently has a target.
	Enabled() bool
}

// Option is a single choice offered by a [Selector].
type Option struct {
	Label string
	Value int
}

// Selector is implemented by components offering a choice of values.
type Selector interface {
	// Options returns the available choices.
	Options() []Option
	// Selected returns the value of the current choice.
	Selected() int
	// Select requests the given value.
	Select(value int) bool
}

// Styles configures how components render.
type Styles struct {
	Link     lipgloss.Style
	Current  lipgloss.Style
	Disabled lipgloss.Style
	Report   lipgloss.Style

	ActiveDot   string
	InactiveDot string
}

// DefaultStyles returns unstyled [Styles].
func DefaultStyles() Styles {
	return Styles{
		Link:        lipgloss.NewStyle(),
		Current:     lipgloss.NewStyle().Bold(true),
		Disabled:    lipgloss.NewStyle().Faint(true),
		Report:      lipgloss.NewStyle(),
		ActiveDot:   "•",
		InactiveDot: "◦",
	}
}

// RegisterOpt configures [RegisterDefaults].
type RegisterOpt func(*Styles)

// WithStyles sets the styles used by the registered components.
func WithStyles(s Styles) RegisterOpt {
	return func(dst *Styles) {
		*dst = s
	}
}

// RegisterDefaults registers every standard component with reg.
func RegisterDefaults(reg *paginator.Registry, opts ...RegisterOpt) {
	s := DefaultStyles()
	for _, opt := range opts {
		opt(&s)
	}

	styles := &s

	reg.Register(NameFirstPageLink, &LinkFactory{Kind: FirstPage, styles: styles})
	reg.Register(NamePreviousPageLink, &LinkFactory{Kind: PreviousPage, styles: styles})
	reg.Register(NameNextPageLink, &LinkFactory{Kind: NextPage, styles: styles})
	reg.Register(NameLastPageLink, &LinkFactory{Kind: LastPage, styles: styles})
	reg.Register(NamePageLinks, &PageLinksFactory{styles: styles})
	reg.Register(NameRowsPerPageDropdown, &RowsPerPageDropdownFactory{styles: styles})
	reg.Register(NameCurrentPageReport, &CurrentPageReportFactory{styles: styles})
	reg.Register(NameJumpToPageDropdown, &JumpToPageDropdownFactory{styles: styles})
	reg.Register(NamePageDots, &PageDotsFactory{styles: styles})
}

// stateEvents change the derived state of a paginator.
var stateEvents = []string{
	paginator.EventRowsPerPageChange,
	paginator.EventTotalRecordsChange,
	paginator.EventRecordOffsetChange,
}

// binding caches a component view and refreshes it on paginator events.
type binding struct {
	offs []func()
	view string
}

func (b *binding) watch(p *paginator.Paginator, update func() string, names ...string) {
	refresh := func(*event.Event) {
		b.view = update()
	}

	for _, name := range slices.Concat(stateEvents, names) {
		b.offs = append(b.offs, p.On(name, refresh))
	}

	b.view = update()
}

// View implements [paginator.Component].
func (b *binding) View() string {
	return b.view
}

// Destroy implements [paginator.Destroyer].
func (b *binding) Destroy() {
	for _, off := range b.offs {
		off()
	}

	b.offs = nil
}
