package paginator

import (
	"log/slog"
)

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	force bool
}

// Force applies a request directly, even when updateOnChange is false.
func Force() RequestOption {
	return func(o *requestOptions) {
		o.force = true
	}
}

// RequestPage requests a move to page. It returns false when the page does not
// exist, is already current, or the change request was prevented.
func (p *Paginator) RequestPage(page int, opts ...RequestOption) bool {
	if !p.HasPage(page) || page == p.CurrentPage() {
		return false
	}

	return p.request(Overrides{Page: Int(page)}, opts, func() bool {
		return p.Set(AttrRecordOffset, (page-1)*p.RowsPerPage())
	})
}

// RequestRowsPerPage requests a new page size.
func (p *Paginator) RequestRowsPerPage(rpp int, opts ...RequestOption) bool {
	if rpp <= 0 || rpp == p.RowsPerPage() {
		return false
	}

	return p.request(Overrides{RowsPerPage: Int(rpp)}, opts, func() bool {
		return p.Set(AttrRowsPerPage, rpp)
	})
}

// RequestTotalRecords requests a new record count. [Unlimited] is accepted.
func (p *Paginator) RequestTotalRecords(total int, opts ...RequestOption) bool {
	if total < Unlimited || total == p.TotalRecords() {
		return false
	}

	return p.request(Overrides{TotalRecords: Int(total)}, opts, func() bool {
		return p.Set(AttrTotalRecords, total)
	})
}

// RequestOffset requests a new record offset.
func (p *Paginator) RequestOffset(offset int, opts ...RequestOption) bool {
	if offset < 0 || offset == p.StartIndex() {
		return false
	}

	return p.request(Overrides{RecordOffset: Int(offset)}, opts, func() bool {
		return p.Set(AttrRecordOffset, offset)
	})
}

// request applies a change directly, or announces it through
// [EventChangeRequest] and leaves applying it to the subscribers.
func (p *Paginator) request(o Overrides, opts []RequestOption, apply func() bool) bool {
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}

	if ro.force || p.UpdateOnChange() {
		return apply()
	}

	ps := p.ProposeState(o)

	p.logger.Debug("change requested",
		slog.Int("page", ps.Page),
		slog.Int("record_offset", ps.RecordOffset),
		slog.Int("rows_per_page", ps.RowsPerPage),
		slog.Int("total_records", ps.TotalRecords),
	)

	return p.bus.Emit(EventChangeRequest, ps)
}
