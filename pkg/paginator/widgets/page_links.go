package widgets

import (
	"math"
	"strconv"
	"strings"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/paginator"
)

const (
	// AttrPageLinks sets the number of page links to show. [paginator.Unlimited]
	// shows a link for every page.
	AttrPageLinks = "pageLinks"

	// DefaultPageLinks is the default value of [AttrPageLinks].
	DefaultPageLinks = 10
)

// CalculateRange returns the first and last page of a window of links pages
// centred on current. An empty window is returned as (0, -1).
func CalculateRange(current, totalPages, links int) (int, int) {
	if current <= 0 || links == 0 || totalPages == 0 ||
		(totalPages == paginator.Unlimited && links == paginator.Unlimited) {
		return 0, -1
	}

	if totalPages != paginator.Unlimited {
		if links == paginator.Unlimited {
			links = totalPages
		} else {
			links = min(links, totalPages)
		}
	}

	start := max(1, int(math.Ceil(float64(current)-float64(links)/2)))

	var end int
	if totalPages == paginator.Unlimited {
		end = start + links - 1
	} else {
		end = min(totalPages, start+links-1)
	}

	delta := links - (end - start + 1)
	start = max(1, start-delta)

	return start, end
}

// PageLinksFactory creates [PageLinks].
type PageLinksFactory struct {
	styles *Styles
}

// Initialize implements [paginator.ComponentFactory].
func (f *PageLinksFactory) Initialize(p *paginator.Paginator) {
	p.Define(AttrPageLinks, attr.Definition{
		Value:     DefaultPageLinks,
		Validator: attr.IntAtLeast(paginator.Unlimited),
	})
}

// Render implements [paginator.ComponentFactory].
func (f *PageLinksFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	pl := &PageLinks{p: p, id: id, styles: f.styles}
	pl.watch(p, pl.render, AttrPageLinks+attr.ChangeSuffix)

	return pl
}

// PageLinks shows numbered links for a window of pages around the current
// page.
type PageLinks struct {
	binding

	p      *paginator.Paginator
	styles *Styles
	id     string
}

// Range returns the first and last page shown.
func (pl *PageLinks) Range() (int, int) {
	total, ok := pl.p.TotalPages()
	if !ok {
		return 0, -1
	}

	return CalculateRange(pl.p.CurrentPage(), total, pl.p.Int(AttrPageLinks))
}

// Options implements [Selector].
func (pl *PageLinks) Options() []Option {
	start, end := pl.Range()

	opts := make([]Option, 0, max(0, end-start+1))
	for page := start; page <= end; page++ {
		opts = append(opts, Option{Label: strconv.Itoa(page), Value: page})
	}

	return opts
}

// Selected implements [Selector].
func (pl *PageLinks) Selected() int {
	return pl.p.CurrentPage()
}

// Select implements [Selector].
func (pl *PageLinks) Select(page int) bool {
	return pl.p.RequestPage(page)
}

func (pl *PageLinks) render() string {
	current := pl.p.CurrentPage()

	var parts []string
	for _, o := range pl.Options() {
		if o.Value == current {
			parts = append(parts, pl.styles.Current.Render(o.Label))
			continue
		}

		parts = append(parts, pl.styles.Link.Render(o.Label))
	}

	return strings.Join(parts, " ")
}
