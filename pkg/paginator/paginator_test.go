package paginator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/event"
	"github.com/macropower/folio/pkg/paginator"
)

type label struct {
	p    *paginator.Paginator
	id   string
	done bool
}

func (l *label) View() string {
	return fmt.Sprintf("[%s p%d]", l.id, l.p.CurrentPage())
}

func (l *label) Destroy() {
	l.done = true
}

type labelFactory struct {
	rendered    []*label
	initialized int
}

func (f *labelFactory) Initialize(p *paginator.Paginator) {
	f.initialized++
	p.Define("labelPrefix", attr.Definition{Value: "", Validator: attr.IsString})
}

func (f *labelFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	l := &label{p: p, id: id}
	f.rendered = append(f.rendered, l)

	return l
}

type recorder struct {
	pageChanges []paginator.PageChangeEvent
	requests    []paginator.ProposedState
	events      []string
}

func record(p *paginator.Paginator) *recorder {
	r := &recorder{}
	p.OnPageChange(func(e paginator.PageChangeEvent) {
		r.pageChanges = append(r.pageChanges, e)
	})

	for _, name := range []string{
		paginator.EventRender,
		paginator.EventBeforeDestroy,
		paginator.EventDestroy,
		paginator.EventVisibilityChange,
	} {
		p.On(name, func(e *event.Event) {
			r.events = append(r.events, e.Name)
		})
	}

	return r
}

func newPaginator(t *testing.T, rpp, total int, attrs map[string]any) *paginator.Paginator {
	t.Helper()

	return paginator.New(paginator.Config{
		RowsPerPage:  rpp,
		TotalRecords: total,
		Attributes:   attrs,
	}, paginator.WithRegistry(paginator.NewRegistry()))
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrRecordOffset:   35,
		paginator.AttrAlwaysVisible:  false,
		paginator.AttrContainerClass: "pages",
		paginator.AttrID:             999,
		"unknown":                    true,
	})

	assert.Equal(t, 10, p.RowsPerPage())
	assert.Equal(t, 100, p.TotalRecords())
	assert.Equal(t, 35, p.StartIndex())
	assert.Equal(t, 4, p.CurrentPage())
	assert.False(t, p.AlwaysVisible())
	assert.False(t, p.UpdateOnChange())
	assert.False(t, p.Rendered())
	assert.Equal(t, "pages", p.String(paginator.AttrContainerClass))
	assert.Equal(t, paginator.TemplateDefault, p.String(paginator.AttrTemplate))
	assert.NotEqual(t, 999, p.ID())
	assert.Nil(t, p.Get("unknown"))

	q := newPaginator(t, 10, 100, nil)
	assert.NotEqual(t, p.ID(), q.ID())
}

func TestInitialPage(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		initialPage int
		total       int
		wantOffset  int
	}{
		"in range":     {initialPage: 3, total: 100, wantOffset: 20},
		"out of range": {initialPage: 20, total: 100, wantOffset: 0},
		"unlimited":    {initialPage: 20, total: paginator.Unlimited, wantOffset: 190},
		"first page":   {initialPage: 1, total: 100, wantOffset: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := newPaginator(t, 10, tc.total, map[string]any{
				paginator.AttrInitialPage: tc.initialPage,
			})
			assert.Equal(t, tc.wantOffset, p.StartIndex())
		})
	}
}

func TestSetValidation(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 25, nil)

	assert.False(t, p.Set(paginator.AttrRowsPerPage, -1))
	assert.False(t, p.Set(paginator.AttrRowsPerPage, "10"))
	assert.False(t, p.Set(paginator.AttrTotalRecords, -2))
	assert.False(t, p.Set(paginator.AttrRecordOffset, 25))
	assert.False(t, p.Set(paginator.AttrRecordOffset, -1))
	assert.False(t, p.Set(paginator.AttrInitialPage, 0))
	assert.False(t, p.Set(paginator.AttrID, 42))
	assert.False(t, p.Set(paginator.AttrRendered, true))
	assert.False(t, p.Set(paginator.AttrAlwaysVisible, "yes"))

	assert.True(t, p.Set(paginator.AttrRecordOffset, 24))
	assert.Equal(t, 3, p.CurrentPage())

	require.True(t, p.Set(paginator.AttrTotalRecords, paginator.Unlimited))
	assert.True(t, p.Set(paginator.AttrRecordOffset, 5000))
}

func TestRecordOffsetOnEmptySet(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 0, nil)

	assert.True(t, p.Set(paginator.AttrRecordOffset, 0))
	assert.False(t, p.Set(paginator.AttrRecordOffset, 1))
	assert.Equal(t, 0, p.CurrentPage())
	assert.Nil(t, p.State().Records)
}

func TestQueries(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 25, nil)

	pages, ok := p.TotalPages()
	require.True(t, ok)
	assert.Equal(t, 3, pages)
	assert.True(t, p.HasPage(3))
	assert.False(t, p.HasPage(4))
	assert.False(t, p.HasPage(0))
	assert.True(t, p.HasNextPage())
	assert.False(t, p.HasPreviousPage())
	assert.Equal(t, 2, p.NextPage())
	assert.Equal(t, 1, p.PreviousPage())
	assert.Equal(t, &paginator.Range{Start: 20, End: 24}, p.PageRecords(3))

	require.True(t, p.RequestPage(3, paginator.Force()))
	assert.False(t, p.HasNextPage())
	assert.Equal(t, 0, p.NextPage())
	assert.Equal(t, 2, p.PreviousPage())

	unknown := newPaginator(t, 0, 25, nil)
	_, ok = unknown.TotalPages()
	assert.False(t, ok)
	assert.False(t, unknown.HasPage(1))
	assert.False(t, unknown.HasNextPage())

	unlimited := newPaginator(t, 10, paginator.Unlimited, nil)
	assert.True(t, unlimited.HasPage(1_000_000))
	assert.True(t, unlimited.HasNextPage())
}

func TestRequestPageUpdateOnChange(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrUpdateOnChange: true,
	})
	r := record(p)

	require.True(t, p.RequestPage(4))
	assert.Equal(t, 4, p.CurrentPage())
	assert.Equal(t, 30, p.StartIndex())
	require.Len(t, r.pageChanges, 1)
	assert.Equal(t, 1, r.pageChanges[0].PreviousPage)
	assert.Equal(t, 4, r.pageChanges[0].NewPage)
	assert.Equal(t, 30, r.pageChanges[0].NewState.RecordOffset)

	// Requesting the current page again is a no-op.
	assert.False(t, p.RequestPage(4))
	assert.Len(t, r.pageChanges, 1)

	// Out of range pages are ignored.
	assert.False(t, p.RequestPage(11))
	assert.False(t, p.RequestPage(0))
	assert.Equal(t, 4, p.CurrentPage())
}

func TestRequestPageChangeRequest(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, nil)
	r := record(p)

	p.OnChangeRequest(func(ps paginator.ProposedState) bool {
		r.requests = append(r.requests, ps)
		return true
	})

	require.True(t, p.RequestPage(5))

	// Nothing is applied without a host.
	assert.Equal(t, 1, p.CurrentPage())
	assert.Empty(t, r.pageChanges)
	require.Len(t, r.requests, 1)
	assert.Equal(t, 5, r.requests[0].Page)
	assert.Equal(t, 40, r.requests[0].RecordOffset)
	assert.Equal(t, 1, r.requests[0].Before.Page)
}

func TestRequestRoundTrip(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 95, nil)
	r := record(p)

	p.OnChangeRequest(func(ps paginator.ProposedState) bool {
		p.ApplyProposed(ps)
		return true
	})

	for page := 1; page <= 10; page++ {
		p.RequestPage(page)
		assert.Equal(t, page, p.CurrentPage())
	}

	assert.Len(t, r.pageChanges, 9)

	require.True(t, p.RequestRowsPerPage(20))
	assert.Equal(t, 20, p.RowsPerPage())
	assert.Equal(t, 80, p.StartIndex())
	assert.Equal(t, 5, p.CurrentPage())

	require.True(t, p.RequestTotalRecords(30))
	assert.Equal(t, 30, p.TotalRecords())
	assert.Equal(t, 20, p.StartIndex())
	assert.Equal(t, 2, p.CurrentPage())
}

func TestRequestPrevented(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, nil)

	p.OnChangeRequest(func(paginator.ProposedState) bool {
		return false
	})

	assert.False(t, p.RequestPage(2))
	assert.False(t, p.RequestOffset(50))
	assert.Equal(t, 1, p.CurrentPage())

	// Forced requests bypass the change request.
	assert.True(t, p.RequestPage(2, paginator.Force()))
	assert.Equal(t, 2, p.CurrentPage())
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrUpdateOnChange: true,
	})

	assert.False(t, p.RequestRowsPerPage(0))
	assert.False(t, p.RequestRowsPerPage(10))
	assert.False(t, p.RequestTotalRecords(-2))
	assert.False(t, p.RequestTotalRecords(100))
	assert.False(t, p.RequestOffset(-1))
	assert.False(t, p.RequestOffset(0))
	assert.False(t, p.RequestOffset(100))

	assert.True(t, p.RequestOffset(55))
	assert.Equal(t, 55, p.StartIndex())
	assert.Equal(t, 50, p.State().RecordOffset)
	assert.True(t, p.RequestTotalRecords(paginator.Unlimited))
}

func TestShrinkTotalRecords(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrRecordOffset:   50,
		paginator.AttrUpdateOnChange: true,
	})
	r := record(p)

	require.Equal(t, 6, p.CurrentPage())
	require.True(t, p.RequestTotalRecords(5))

	assert.Equal(t, 0, p.StartIndex())
	assert.Equal(t, 1, p.CurrentPage())
	require.Len(t, r.pageChanges, 1)
	assert.Equal(t, 6, r.pageChanges[0].PreviousPage)
	assert.Equal(t, 1, r.pageChanges[0].NewPage)
}

func TestShrinkTotalRecordsSamePage(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrRecordOffset:   50,
		paginator.AttrUpdateOnChange: true,
	})
	r := record(p)

	require.True(t, p.RequestTotalRecords(55))
	assert.Equal(t, 50, p.StartIndex())
	assert.Equal(t, 6, p.CurrentPage())
	assert.Empty(t, r.pageChanges)
}

func TestRowsPerPageChange(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, map[string]any{
		paginator.AttrRecordOffset: 50,
	})
	r := record(p)

	require.True(t, p.Set(paginator.AttrRowsPerPage, 25))
	assert.Equal(t, 3, p.CurrentPage())
	require.Len(t, r.pageChanges, 1)
	assert.Equal(t, 6, r.pageChanges[0].PreviousPage)
	assert.Equal(t, 3, r.pageChanges[0].NewPage)
}

func TestSetState(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 50, nil)
	r := record(p)

	var attrChanges []string
	for _, name := range []string{
		paginator.AttrRowsPerPage,
		paginator.AttrTotalRecords,
		paginator.AttrRecordOffset,
	} {
		p.OnAttributeChange(name, func(c attr.Change) {
			attrChanges = append(attrChanges, c.Name)
		})
	}

	p.SetState(paginator.Overrides{
		RowsPerPage:  paginator.Int(20),
		TotalRecords: paginator.Int(100),
		Page:         paginator.Int(3),
	})

	assert.Equal(t, 40, p.StartIndex())
	assert.Equal(t, 3, p.CurrentPage())
	assert.Equal(t, []string{
		paginator.AttrRowsPerPage,
		paginator.AttrTotalRecords,
		paginator.AttrRecordOffset,
	}, attrChanges)
	require.Len(t, r.pageChanges, 1)
	assert.Equal(t, 1, r.pageChanges[0].PreviousPage)
	assert.Equal(t, 3, r.pageChanges[0].NewPage)
}

func TestSetStateNoPageMove(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 50, map[string]any{
		paginator.AttrRecordOffset: 20,
	})
	r := record(p)

	// The page moves away and back within the batch.
	p.SetState(paginator.Overrides{
		RowsPerPage:  paginator.Int(5),
		RecordOffset: paginator.Int(10),
	})

	assert.Equal(t, 3, p.CurrentPage())
	assert.Empty(t, r.pageChanges)

	p.SetState(paginator.Overrides{TotalRecords: paginator.Int(200)})
	assert.Empty(t, r.pageChanges)
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	p := paginator.New(paginator.Config{
		RowsPerPage:  10,
		TotalRecords: 5,
		Containers:   []string{"top"},
		Attributes: map[string]any{
			paginator.AttrAlwaysVisible: false,
		},
	}, paginator.WithRegistry(paginator.NewRegistry()))
	r := record(p)

	assert.False(t, p.Visible())

	// Records fit on one page, so rendering is suppressed.
	p.Render()
	assert.False(t, p.Rendered())
	assert.Empty(t, r.events)

	var seen []bool
	p.OnVisibilityChange(func(v bool) {
		seen = append(seen, v)
	})

	require.True(t, p.Set(paginator.AttrTotalRecords, 50))
	assert.True(t, p.Visible())
	assert.Equal(t, []bool{true}, seen)

	p.Render()
	assert.True(t, p.Rendered())

	require.True(t, p.Set(paginator.AttrTotalRecords, 8))
	assert.False(t, p.Visible())
	assert.Equal(t, []bool{true, false}, seen)

	c, ok := p.Container("top")
	require.True(t, ok)
	assert.False(t, c.Visible())
	assert.Empty(t, c.View())

	require.True(t, p.Set(paginator.AttrAlwaysVisible, true))
	assert.True(t, c.Visible())
	assert.Equal(t, []bool{true, false, true}, seen)
}

func TestRenderDestroy(t *testing.T) {
	t.Parallel()

	reg := paginator.NewRegistry()
	f := &labelFactory{}
	reg.Register("Label", f)

	p := paginator.New(paginator.Config{
		RowsPerPage:  10,
		TotalRecords: 100,
		Containers:   []string{"top", "bottom"},
		Attributes: map[string]any{
			paginator.AttrTemplate: "<{Label}|{Missing}>",
			"labelPrefix":          "x",
		},
	}, paginator.WithRegistry(reg))
	r := record(p)

	assert.Equal(t, 1, f.initialized)
	assert.Equal(t, "x", p.Get("labelPrefix"))

	var renderState paginator.State
	p.OnLifecycle(paginator.EventRender, func(s paginator.State) {
		renderState = s
	})

	p.Render()
	p.Render()

	require.True(t, p.Rendered())
	assert.Equal(t, []string{paginator.EventRender}, r.events)
	assert.Equal(t, p.State(), renderState)
	require.Len(t, f.rendered, 2)

	top, ok := p.Container("top")
	require.True(t, ok)
	assert.Equal(t, paginator.DefaultContainerClass, top.Class)
	assert.Equal(t, fmt.Sprintf("<[folio-pg%d-0-Label p1]|>", p.ID()), top.View())

	bottom, ok := p.Container("bottom")
	require.True(t, ok)

	_, ok = bottom.Component("Label")
	assert.True(t, ok)
	_, ok = bottom.Component("Missing")
	assert.False(t, ok)

	require.True(t, p.RequestPage(2, paginator.Force()))
	assert.Contains(t, bottom.View(), "p2")

	p.Destroy()
	assert.False(t, p.Rendered())
	assert.Equal(t, []string{
		paginator.EventRender,
		paginator.EventBeforeDestroy,
		paginator.EventDestroy,
	}, r.events)

	for _, l := range f.rendered {
		assert.True(t, l.done)
	}

	p.Destroy()
	assert.Len(t, r.events, 3)

	assert.Empty(t, top.View())
}

func TestRenderWithoutContainers(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, 10, 100, nil)
	p.Render()
	assert.False(t, p.Rendered())
}
