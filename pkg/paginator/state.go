package paginator

// Unlimited is the totalRecords value used when the record count is unknown
// or unbounded.
const Unlimited = -1

// Range is an inclusive range of record indexes.
type Range struct {
	Start int
	End   int
}

// Len returns the number of records in the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// State is the derived pagination state for a set of base numbers.
type State struct {
	// Records is the range of records on the page, or nil when the page has
	// no records.
	Records *Range

	RowsPerPage  int
	TotalRecords int
	// RecordOffset is the normalized offset of the first record on the page.
	RecordOffset int
	// Page is the 1-based page number, or 0 when it is undefined.
	Page int
}

// ProposedState is a [State] computed against hypothetical overrides. Before
// holds the state the overrides were applied to.
type ProposedState struct {
	State

	Before State
}

// Overrides are candidate values for [ComputeProposedState] and
// [Paginator.SetState]. Nil fields are left unchanged.
type Overrides struct {
	Page         *int
	RecordOffset *int
	RowsPerPage  *int
	TotalRecords *int
}

// Int returns a pointer to v, for building [Overrides].
func Int(v int) *int {
	return &v
}

// NormalizeOffset snaps offset down to the start of its page and clamps it
// into [0, total) when total is finite.
func NormalizeOffset(offset, total, rowsPerPage int) int {
	if offset <= 0 || total == 0 {
		return 0
	}

	if rowsPerPage <= 0 {
		return offset
	}

	if total == Unlimited || total > offset {
		return offset - offset%rowsPerPage
	}

	// Snap to the start of the last full or partial page.
	last := total % rowsPerPage
	if last == 0 {
		last = rowsPerPage
	}

	return total - last
}

// ComputeState derives the pagination state for the given base numbers.
func ComputeState(rowsPerPage, totalRecords, recordOffset int) State {
	s := State{
		RowsPerPage:  rowsPerPage,
		TotalRecords: totalRecords,
		RecordOffset: NormalizeOffset(recordOffset, totalRecords, rowsPerPage),
	}

	if rowsPerPage <= 0 || totalRecords == 0 {
		return s
	}

	s.Page = s.RecordOffset/rowsPerPage + 1
	s.Records = offsetRecords(s.RecordOffset, rowsPerPage, totalRecords)

	return s
}

// ComputeProposedState applies o to current. Page takes precedence over
// RecordOffset when both are set.
func ComputeProposedState(current State, o Overrides) ProposedState {
	rpp := current.RowsPerPage
	if o.RowsPerPage != nil && *o.RowsPerPage > 0 {
		rpp = *o.RowsPerPage
	}

	total := current.TotalRecords
	if o.TotalRecords != nil {
		total = max(*o.TotalRecords, Unlimited)
	}

	ps := ProposedState{Before: current}

	if total == 0 {
		ps.RowsPerPage = rpp

		return ps
	}

	offset := current.RecordOffset

	switch {
	case o.Page != nil:
		offset = (*o.Page - 1) * rpp
	case o.RecordOffset != nil:
		offset = *o.RecordOffset
	}

	ps.State = ComputeState(rpp, total, offset)

	return ps
}

// TotalPages returns the number of pages, or [Unlimited]. The second result is
// false when the number of pages is unknown because rowsPerPage is not set.
func TotalPages(rowsPerPage, totalRecords int) (int, bool) {
	if rowsPerPage <= 0 {
		return 0, false
	}

	if totalRecords == Unlimited {
		return Unlimited, true
	}

	return (totalRecords + rowsPerPage - 1) / rowsPerPage, true
}

// PageRecords returns the range of records on page, or nil if the page has no
// records.
func PageRecords(page, rowsPerPage, totalRecords int) *Range {
	if page <= 0 || rowsPerPage <= 0 {
		return nil
	}

	return offsetRecords((page-1)*rowsPerPage, rowsPerPage, totalRecords)
}

func offsetRecords(start, rowsPerPage, totalRecords int) *Range {
	end := start + rowsPerPage - 1

	if totalRecords != Unlimited {
		if start >= totalRecords {
			return nil
		}

		end = min(end, totalRecords-1)
	}

	return &Range{Start: start, End: end}
}
