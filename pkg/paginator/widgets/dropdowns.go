package widgets

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/paginator"
)

const (
	// AllRows is the rowsPerPageOptions entry that selects every record.
	AllRows = 0

	// AllRowsLabel labels the [AllRows] option.
	AllRowsLabel = "all"
)

// RowsPerPageDropdownFactory creates [RowsPerPageDropdown].
type RowsPerPageDropdownFactory struct {
	styles *Styles
}

// Initialize implements [paginator.ComponentFactory].
func (f *RowsPerPageDropdownFactory) Initialize(p *paginator.Paginator) {
	p.Define(paginator.AttrRowsPerPageOptions, attr.Definition{
		Value: []int{},
		Validator: func(v any) bool {
			opts, ok := v.([]int)
			return ok && !slices.ContainsFunc(opts, func(o int) bool {
				return o < 0
			})
		},
		Setter: func(v any) any {
			return slices.Clone(v.([]int))
		},
	})
}

// Render implements [paginator.ComponentFactory].
func (f *RowsPerPageDropdownFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	d := &RowsPerPageDropdown{p: p, id: id, styles: f.styles}
	d.watch(p, d.render, paginator.AttrRowsPerPageOptions+attr.ChangeSuffix)

	return d
}

// RowsPerPageDropdown offers the configured page sizes.
type RowsPerPageDropdown struct {
	binding

	p      *paginator.Paginator
	styles *Styles
	id     string
}

// Options implements [Selector]. The [AllRows] option takes the value of
// totalRecords and is omitted while the record count is unlimited.
func (d *RowsPerPageDropdown) Options() []Option {
	total := d.p.TotalRecords()

	var opts []Option

	values, _ := d.p.Get(paginator.AttrRowsPerPageOptions).([]int) //nolint:errcheck // Empty on mismatch.
	for _, v := range values {
		if v == AllRows {
			if total == paginator.Unlimited {
				continue
			}

			opts = append(opts, Option{Label: AllRowsLabel, Value: total})

			continue
		}

		opts = append(opts, Option{Label: strconv.Itoa(v), Value: v})
	}

	return opts
}

// Selected implements [Selector].
func (d *RowsPerPageDropdown) Selected() int {
	return d.p.RowsPerPage()
}

// Select implements [Selector].
func (d *RowsPerPageDropdown) Select(rpp int) bool {
	return d.p.RequestRowsPerPage(rpp)
}

func (d *RowsPerPageDropdown) render() string {
	opts := d.Options()
	if len(opts) == 0 {
		return ""
	}

	selected := d.Selected()
	matched := false

	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		if !matched && o.Value == selected {
			matched = true

			parts = append(parts, d.styles.Current.Render(o.Label))

			continue
		}

		parts = append(parts, d.styles.Link.Render(o.Label))
	}

	return strings.Join(parts, " ")
}

// JumpToPageDropdownFactory creates [JumpToPageDropdown].
type JumpToPageDropdownFactory struct {
	styles *Styles
}

// Initialize implements [paginator.ComponentFactory].
func (f *JumpToPageDropdownFactory) Initialize(*paginator.Paginator) {}

// Render implements [paginator.ComponentFactory].
func (f *JumpToPageDropdownFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	d := &JumpToPageDropdown{p: p, id: id, styles: f.styles}
	d.watch(p, d.render)

	return d
}

// JumpToPageDropdown offers every page. It is empty while the number of pages
// is unknown or unlimited.
type JumpToPageDropdown struct {
	binding

	p      *paginator.Paginator
	styles *Styles
	id     string
}

// Options implements [Selector].
func (d *JumpToPageDropdown) Options() []Option {
	total, ok := d.p.TotalPages()
	if !ok || total <= 0 {
		return nil
	}

	opts := make([]Option, 0, total)
	for page := 1; page <= total; page++ {
		opts = append(opts, Option{Label: strconv.Itoa(page), Value: page})
	}

	return opts
}

// Selected implements [Selector].
func (d *JumpToPageDropdown) Selected() int {
	return d.p.CurrentPage()
}

// Select implements [Selector].
func (d *JumpToPageDropdown) Select(page int) bool {
	return d.p.RequestPage(page)
}

func (d *JumpToPageDropdown) render() string {
	total, ok := d.p.TotalPages()
	if !ok || total <= 0 {
		return ""
	}

	return d.styles.Current.Render(fmt.Sprintf("[%d/%d ▾]", d.p.CurrentPage(), total))
}
