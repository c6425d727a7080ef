package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/folio/pkg/host"
	"github.com/macropower/folio/pkg/paginator"
)

// GetStateParams defines parameters for the get_state tool.
type GetStateParams struct{}

// StateResult describes the pagination state.
type StateResult struct {
	LastDenial      string `json:"lastDenial,omitempty"`
	Message         string `json:"message"`
	Page            int    `json:"page"`
	TotalPages      int    `json:"totalPages"`
	RowsPerPage     int    `json:"rowsPerPage"`
	TotalRecords    int    `json:"totalRecords"`
	RecordOffset    int    `json:"recordOffset"`
	PageChanges     int64  `json:"pageChanges"`
	Denials         int64  `json:"denials"`
	Unlimited       bool   `json:"unlimited"`
	Visible         bool   `json:"visible"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
}

func (s *Server) handleGetState(
	_ context.Context,
	_ *mcp.ServerSession,
	_ *mcp.CallToolParamsFor[GetStateParams],
) (*mcp.CallToolResultFor[StateResult], error) {
	result := s.state(s.ctrl.Snapshot())

	return &mcp.CallToolResultFor[StateResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: result.Message},
		},
		StructuredContent: result,
	}, nil
}

func (s *Server) state(snap host.Snapshot) StateResult {
	st := snap.State
	unlimited := st.TotalRecords == paginator.Unlimited
	activity := s.Activity()

	result := StateResult{
		Page:            st.Page,
		TotalPages:      max(0, snap.TotalPages),
		RowsPerPage:     st.RowsPerPage,
		TotalRecords:    max(0, st.TotalRecords),
		RecordOffset:    st.RecordOffset,
		Unlimited:       unlimited,
		Visible:         snap.Visible,
		HasNextPage:     st.Page > 0 && (unlimited || st.Page < snap.TotalPages),
		HasPreviousPage: st.Page > 1,
		PageChanges:     activity.PageChanges,
		Denials:         activity.Denials,
		LastDenial:      activity.LastDenial,
	}

	switch {
	case st.Page == 0:
		result.Message = "No page is shown, there are no records."
	case unlimited:
		result.Message = fmt.Sprintf("Page %d of an unlimited number of pages, %d records per page.",
			st.Page, st.RowsPerPage)
	default:
		result.Message = fmt.Sprintf("Page %d of %d, %d records per page, %d records in total.",
			st.Page, snap.TotalPages, st.RowsPerPage, st.TotalRecords)
	}

	return result
}
