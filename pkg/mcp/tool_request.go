package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/folio/pkg/host"
	"github.com/macropower/folio/pkg/paginator"
)

// RequestPageParams defines parameters for the request_page tool.
type RequestPageParams struct {
	Page int `json:"page"`
}

// SetRowsPerPageParams defines parameters for the set_rows_per_page tool.
type SetRowsPerPageParams struct {
	RowsPerPage int `json:"rowsPerPage"`
}

// ChangeResult reports the outcome of a change request.
type ChangeResult struct {
	DeniedBy string      `json:"deniedBy,omitempty"`
	Message  string      `json:"message"`
	State    StateResult `json:"state"`
	Accepted bool        `json:"accepted"`
}

func (s *Server) handleRequestPage(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[RequestPageParams],
) (*mcp.CallToolResultFor[ChangeResult], error) {
	page := params.Arguments.Page

	var (
		exists  bool
		current bool
	)

	out := s.ctrl.Attempt(ctx, "request_page", func(p *paginator.Paginator) bool {
		exists = p.HasPage(page)
		current = page == p.CurrentPage()

		return p.RequestPage(page)
	})

	var msg string

	switch {
	case out.Accepted:
		msg = fmt.Sprintf("Moved to page %d.", page)
	case current:
		out.Accepted = true
		msg = fmt.Sprintf("Already on page %d.", page)
	case !exists:
		msg = fmt.Sprintf("INVALID INPUT ERROR: Page %d does not exist. Use 'get_state' to find the available pages.", page)
	}

	return s.changeResult(out, msg), nil
}

func (s *Server) handleSetRowsPerPage(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[SetRowsPerPageParams],
) (*mcp.CallToolResultFor[ChangeResult], error) {
	rpp := params.Arguments.RowsPerPage

	var current bool

	out := s.ctrl.Attempt(ctx, "set_rows_per_page", func(p *paginator.Paginator) bool {
		current = rpp == p.RowsPerPage()

		return p.RequestRowsPerPage(rpp)
	})

	var msg string

	switch {
	case out.Accepted:
		msg = fmt.Sprintf("Showing %d records per page.", rpp)
	case current:
		out.Accepted = true
		msg = fmt.Sprintf("Already showing %d records per page.", rpp)
	case rpp <= 0:
		msg = fmt.Sprintf("INVALID INPUT ERROR: rowsPerPage must be at least 1, got %d.", rpp)
	}

	return s.changeResult(out, msg), nil
}

// changeResult builds the result of a change request. msg is used unless the
// request was denied by the policy.
func (s *Server) changeResult(out host.Outcome, msg string) *mcp.CallToolResultFor[ChangeResult] {
	result := ChangeResult{
		Accepted: out.Accepted,
		Message:  msg,
		State:    s.state(s.ctrl.Snapshot()),
	}

	if out.Denial != nil {
		d := out.Denial.Decision
		result.DeniedBy = d.Rule
		result.Message = fmt.Sprintf("Denied by policy rule %q.", d.Rule)

		if d.Err != nil {
			result.Message = fmt.Sprintf("Denied, policy rule %q failed: %v.", d.Rule, d.Err)
		}
	}

	if result.Message == "" {
		result.Message = "The request was not accepted."
	}

	return &mcp.CallToolResultFor[ChangeResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: result.Message},
		},
		StructuredContent: result,
	}
}
