package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetRecordsParams defines parameters for the get_records tool.
type GetRecordsParams struct {
	Page int `json:"page,omitempty"`
}

// RecordsResult contains the records on a page.
type RecordsResult struct {
	Message     string   `json:"message"`
	Records     []string `json:"records"`
	Page        int      `json:"page"`
	FirstRecord int      `json:"firstRecord,omitempty"`
	Found       bool     `json:"found"`
}

func (s *Server) handleGetRecords(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[GetRecordsParams],
) (*mcp.CallToolResultFor[RecordsResult], error) {
	page := params.Arguments.Page
	if page == 0 {
		page = s.ctrl.Snapshot().State.Page
	}

	result := RecordsResult{
		Page:    page,
		Records: []string{},
	}

	records, ok := s.ctrl.Records(page)
	if !ok {
		result.Message = fmt.Sprintf("INVALID INPUT ERROR: Page %d does not exist. Use 'get_state' to find the available pages.", page)

		return createRecordsResult(result), nil
	}

	result.Found = true
	for _, r := range records {
		result.Records = append(result.Records, truncateString(r, maxRecordLen))
	}

	if len(records) > 0 {
		rpp := s.ctrl.Snapshot().State.RowsPerPage
		result.FirstRecord = (page-1)*rpp + 1
	}

	result.Message = fmt.Sprintf("Found %d records on page %d.", len(records), page)

	return createRecordsResult(result), nil
}

func createRecordsResult(result RecordsResult) *mcp.CallToolResultFor[RecordsResult] {
	return &mcp.CallToolResultFor[RecordsResult]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: result.Message},
		},
		StructuredContent: result,
	}
}
