package paginator

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/event"
)

// Attribute names.
const (
	AttrRowsPerPage    = "rowsPerPage"
	AttrTotalRecords   = "totalRecords"
	AttrRecordOffset   = "recordOffset"
	AttrInitialPage    = "initialPage"
	AttrAlwaysVisible  = "alwaysVisible"
	AttrUpdateOnChange = "updateOnChange"
	AttrTemplate       = "template"
	AttrContainerClass = "containerClass"
	AttrID             = "id"
	AttrRendered       = "rendered"

	// AttrRowsPerPageOptions is defined by the rows per page dropdown. The
	// smallest positive option takes part in the visibility calculation.
	AttrRowsPerPageOptions = "rowsPerPageOptions"
)

const (
	// TemplateDefault renders the page navigation links.
	TemplateDefault = "{FirstPageLink} {PreviousPageLink} {PageLinks} {NextPageLink} {LastPageLink}"
	// TemplateRowsPerPage renders the page navigation links followed by the
	// rows per page dropdown.
	TemplateRowsPerPage = TemplateDefault + " {RowsPerPageDropdown}"

	// DefaultContainerClass is the default value of the containerClass
	// attribute.
	DefaultContainerClass = "folio-pg-container"

	// IDBase prefixes the identifiers handed to component render hooks.
	IDBase = "folio-pg"
)

// nextID assigns process-wide unique paginator ids.
var nextID atomic.Int64

// Config holds the construction options of a [Paginator].
type Config struct {
	// Attributes sets any registered attribute by name, including attributes
	// defined by registered components. Read-only attributes are ignored.
	Attributes map[string]any
	// Containers identifies the render targets, one container is rendered per
	// entry.
	Containers   []string
	RowsPerPage  int
	TotalRecords int
}

// Option configures a [Paginator].
type Option func(*Paginator)

// WithRegistry sets the component registry. [DefaultRegistry] is used when
// no registry is given.
func WithRegistry(r *Registry) Option {
	return func(p *Paginator) {
		p.registry = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Paginator) {
		p.logger = l
	}
}

// Paginator manages pagination state. See the package documentation for the
// change protocol.
type Paginator struct {
	bus        *event.Bus
	store      *attr.Store
	registry   *Registry
	logger     *slog.Logger
	containers []*Container

	// Batch bookkeeping for [Paginator.SetState].
	batch       bool
	pageChanged bool

	// Last visibility pushed to the containers.
	visible bool
}

// New creates a new [Paginator].
func New(cfg Config, opts ...Option) *Paginator {
	p := &Paginator{
		bus:      event.NewBus(),
		registry: DefaultRegistry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.store = attr.NewStore(p.bus)

	p.initConfig()
	p.initComponents()
	p.initEvents()

	p.store.Set(AttrRowsPerPage, cfg.RowsPerPage, attr.Silent())
	p.store.Set(AttrTotalRecords, cfg.TotalRecords, attr.Silent())
	p.setAttributes(cfg.Attributes)

	for _, id := range cfg.Containers {
		p.containers = append(p.containers, newContainer(p, id))
	}

	p.applyInitialPage()

	p.visible = p.Visible()
	for _, c := range p.containers {
		c.visible = p.visible
	}

	p.logger.Debug("created paginator",
		slog.Int("id", p.ID()),
		slog.Int("rows_per_page", p.RowsPerPage()),
		slog.Int("total_records", p.TotalRecords()),
		slog.Int("record_offset", p.StartIndex()),
	)

	return p
}

func (p *Paginator) initConfig() {
	p.store.Define(AttrRowsPerPage, attr.Definition{
		Value:     0,
		Validator: attr.IntAtLeast(0),
	})
	p.store.Define(AttrTotalRecords, attr.Definition{
		Value:     0,
		Validator: attr.IntAtLeast(Unlimited),
	})
	p.store.Define(AttrRecordOffset, attr.Definition{
		Value:     0,
		Validator: p.validRecordOffset,
	})
	p.store.Define(AttrInitialPage, attr.Definition{
		Value:     1,
		Validator: attr.IntAtLeast(1),
	})
	p.store.Define(AttrTemplate, attr.Definition{
		Value:     TemplateDefault,
		Validator: attr.IsString,
	})
	p.store.Define(AttrContainerClass, attr.Definition{
		Value:     DefaultContainerClass,
		Validator: attr.IsString,
	})
	p.store.Define(AttrAlwaysVisible, attr.Definition{
		Value:     true,
		Validator: attr.IsBool,
	})
	p.store.Define(AttrUpdateOnChange, attr.Definition{
		Value:     false,
		Validator: attr.IsBool,
	})
	p.store.Define(AttrID, attr.Definition{
		Value:    int(nextID.Add(1) - 1),
		ReadOnly: true,
	})
	p.store.Define(AttrRendered, attr.Definition{
		Value:    false,
		ReadOnly: true,
	})
}

func (p *Paginator) validRecordOffset(v any) bool {
	offset, ok := v.(int)
	if !ok || offset < 0 {
		return false
	}

	total := p.TotalRecords()

	return total == Unlimited || total > offset || (total == 0 && offset == 0)
}

func (p *Paginator) initComponents() {
	for _, name := range p.registry.Names() {
		f, ok := p.registry.Get(name)
		if ok {
			f.Initialize(p)
		}
	}
}

// setAttributes applies construction attributes silently. The base numbers
// are applied first so that recordOffset validates against the configured
// totalRecords.
func (p *Paginator) setAttributes(attrs map[string]any) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		return attributeRank(a) - attributeRank(b)
	})

	for _, name := range names {
		if !p.store.Set(name, attrs[name], attr.Silent()) {
			p.logger.Debug("ignored attribute",
				slog.String("name", name),
				slog.Any("value", attrs[name]),
			)
		}
	}
}

func attributeRank(name string) int {
	switch name {
	case AttrRowsPerPage:
		return 0
	case AttrTotalRecords:
		return 1
	case AttrRecordOffset:
		return 3
	}

	return 2
}

func (p *Paginator) applyInitialPage() {
	initialPage := p.Int(AttrInitialPage)
	rpp := p.RowsPerPage()

	if initialPage <= 1 || rpp <= 0 {
		return
	}

	offset := (initialPage - 1) * rpp

	total := p.TotalRecords()
	if total == Unlimited || offset < total {
		p.store.Set(AttrRecordOffset, offset, attr.Silent())
	}
}

// Define registers an attribute on the paginator. Components use it from
// their [ComponentFactory.Initialize] hook.
func (p *Paginator) Define(name string, def attr.Definition) {
	p.store.Define(name, def)
}

// Get returns the value of an attribute.
func (p *Paginator) Get(name string) any {
	return p.store.Get(name)
}

// Set validates and stores an attribute value, emitting "<name>Change" when
// the value changed. It returns false when the value was rejected.
func (p *Paginator) Set(name string, value any) bool {
	ok := p.store.Set(name, value)
	if !ok {
		p.logger.Debug("rejected attribute value",
			slog.String("name", name),
			slog.Any("value", value),
		)
	}

	return ok
}

// SetSilently is like [Paginator.Set] but does not emit a change event.
func (p *Paginator) SetSilently(name string, value any) bool {
	return p.store.Set(name, value, attr.Silent())
}

// Int returns the value of an int attribute.
func (p *Paginator) Int(name string) int {
	return attr.Get[int](p.store, name)
}

// Bool returns the value of a bool attribute.
func (p *Paginator) Bool(name string) bool {
	return attr.Get[bool](p.store, name)
}

// String returns the value of a string attribute.
func (p *Paginator) String(name string) string {
	return attr.Get[string](p.store, name)
}

// ID returns the unique id of the paginator.
func (p *Paginator) ID() int {
	return p.Int(AttrID)
}

// Rendered reports whether [Paginator.Render] has completed.
func (p *Paginator) Rendered() bool {
	return p.Bool(AttrRendered)
}

// RowsPerPage returns the rowsPerPage attribute.
func (p *Paginator) RowsPerPage() int {
	return p.Int(AttrRowsPerPage)
}

// TotalRecords returns the totalRecords attribute.
func (p *Paginator) TotalRecords() int {
	return p.Int(AttrTotalRecords)
}

// StartIndex returns the recordOffset attribute as stored.
func (p *Paginator) StartIndex() int {
	return p.Int(AttrRecordOffset)
}

// AlwaysVisible returns the alwaysVisible attribute.
func (p *Paginator) AlwaysVisible() bool {
	return p.Bool(AttrAlwaysVisible)
}

// UpdateOnChange returns the updateOnChange attribute.
func (p *Paginator) UpdateOnChange() bool {
	return p.Bool(AttrUpdateOnChange)
}

// State returns the current derived state.
func (p *Paginator) State() State {
	return ComputeState(p.RowsPerPage(), p.TotalRecords(), p.StartIndex())
}

// ProposeState returns the state that would result from applying o.
func (p *Paginator) ProposeState(o Overrides) ProposedState {
	return ComputeProposedState(p.State(), o)
}

// CurrentPage returns the current 1-based page, or 0 when rowsPerPage or
// totalRecords is 0.
func (p *Paginator) CurrentPage() int {
	return p.State().Page
}

// TotalPages returns the number of pages, or [Unlimited]. The second result is
// false while rowsPerPage is not set.
func (p *Paginator) TotalPages() (int, bool) {
	return TotalPages(p.RowsPerPage(), p.TotalRecords())
}

// HasPage reports whether page exists.
func (p *Paginator) HasPage(page int) bool {
	if page < 1 {
		return false
	}

	total, ok := p.TotalPages()
	if !ok {
		return false
	}

	return total == Unlimited || total >= page
}

// HasNextPage reports whether there is a page after the current page.
func (p *Paginator) HasNextPage() bool {
	current := p.CurrentPage()
	if current == 0 {
		return false
	}

	total, ok := p.TotalPages()

	return ok && (total == Unlimited || current < total)
}

// HasPreviousPage reports whether there is a page before the current page.
func (p *Paginator) HasPreviousPage() bool {
	return p.CurrentPage() > 1
}

// NextPage returns the page after the current page, or 0 if there is none.
func (p *Paginator) NextPage() int {
	if !p.HasNextPage() {
		return 0
	}

	return p.CurrentPage() + 1
}

// PreviousPage returns the page before the current page, or 1 if there is
// none.
func (p *Paginator) PreviousPage() int {
	if !p.HasPreviousPage() {
		return 1
	}

	return p.CurrentPage() - 1
}

// PageRecords returns the range of records on page, or nil if the page has no
// records.
func (p *Paginator) PageRecords(page int) *Range {
	return PageRecords(page, p.RowsPerPage(), p.TotalRecords())
}

// Containers returns the paginator's containers.
func (p *Paginator) Containers() []*Container {
	return slices.Clone(p.containers)
}

// Container returns the container with the given id.
func (p *Paginator) Container(id string) (*Container, bool) {
	for _, c := range p.containers {
		if c.ID == id {
			return c, true
		}
	}

	return nil, false
}

// Visible reports whether the controls should be shown. Controls are hidden
// when alwaysVisible is false and the records fit on a single page of the
// smallest configured page size.
func (p *Paginator) Visible() bool {
	if p.AlwaysVisible() {
		return true
	}

	total := p.TotalRecords()
	if total == Unlimited {
		return true
	}

	rpp := p.RowsPerPage()
	for _, opt := range attr.Get[[]int](p.store, AttrRowsPerPageOptions) {
		if opt > 0 {
			rpp = min(rpp, opt)
		}
	}

	return total > rpp
}
