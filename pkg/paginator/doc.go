// Package paginator computes and manages pagination state for a set of
// records displayed in pages.
//
// A [Paginator] owns an [attr.Store] holding three base numbers (rows per
// page, total records and record offset) plus presentation attributes, and an
// [event.Bus] used to keep observers synchronized. Everything else (current
// page, total pages, record ranges) is derived on demand by the pure functions
// in state.go.
//
// Mutations are requested through [Paginator.RequestPage],
// [Paginator.RequestRowsPerPage], [Paginator.RequestTotalRecords] and
// [Paginator.RequestOffset]. When the updateOnChange attribute is set (or the
// request is made with [Force]) the attribute is changed directly. Otherwise a
// cancelable [EventChangeRequest] carrying a [ProposedState] is emitted and a
// host controller decides whether to apply it, typically with
// [Paginator.SetState].
//
// Attribute changes that move the current page are consolidated into a single
// [EventPageChange].
//
// Sub-widgets are registered in a [Registry] and rendered into each container
// by replacing "{Name}" placeholders in the template attribute.
//
// A Paginator is not safe for concurrent use.
package paginator
