package paginator

import (
	"log/slog"
)

// SetState applies several state changes as one. Attribute change events are
// emitted as usual, but at most one [EventPageChange] is emitted, comparing
// the state before and after the whole batch.
//
// A page without a recordOffset is converted using the new rowsPerPage when
// one is given. Values are applied in the order rowsPerPage, totalRecords,
// recordOffset. Invalid values are skipped.
func (p *Paginator) SetState(o Overrides) {
	if o.Page != nil && o.RecordOffset == nil {
		rpp := p.RowsPerPage()
		if o.RowsPerPage != nil {
			rpp = *o.RowsPerPage
		}

		o.RecordOffset = Int((*o.Page - 1) * rpp)
	}

	before := p.State()

	p.batch = true
	p.pageChanged = false

	if o.RowsPerPage != nil {
		p.Set(AttrRowsPerPage, *o.RowsPerPage)
	}

	if o.TotalRecords != nil {
		p.Set(AttrTotalRecords, *o.TotalRecords)
	}

	if o.RecordOffset != nil {
		p.Set(AttrRecordOffset, *o.RecordOffset)
	}

	p.batch = false

	after := p.State()

	p.logger.Debug("applied state",
		slog.Int("page", after.Page),
		slog.Int("record_offset", after.RecordOffset),
		slog.Int("rows_per_page", after.RowsPerPage),
		slog.Int("total_records", after.TotalRecords),
	)

	if p.pageChanged && before.Page != after.Page {
		p.pageChanged = false
		p.firePageChange(before, after)
	}

	p.pageChanged = false
}

// ApplyProposed applies a [ProposedState] received from [EventChangeRequest].
func (p *Paginator) ApplyProposed(ps ProposedState) {
	p.SetState(Overrides{
		RowsPerPage:  Int(ps.RowsPerPage),
		TotalRecords: Int(ps.TotalRecords),
		RecordOffset: Int(ps.RecordOffset),
	})
}
