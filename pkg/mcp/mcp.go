// Package mcp exposes a paginator to agents over the Model Context Protocol.
package mcp

import "github.com/modelcontextprotocol/go-sdk/jsonschema"

const (
	name         = "folio"
	instructions = `MCP Server 'folio' pages through the records of a text source, one page at a time.

When to use these tools:
- Reading a large file or command output in bounded chunks
- Moving the user's pager to a specific page or page size

REQUIRED workflow:
1. Use 'get_state' first to learn the current page, the page size and the number of pages
2. Use 'get_records' to read the records of a page
3. Use 'request_page' or 'set_rows_per_page' to move the pager. These requests may be denied by the configured policy, the result names the rule that denied it

IMPORTANT: Pages are numbered from 1. Only pages between 1 and 'totalPages' exist, unless 'unlimited' is true.
`

	// maxRecordLen bounds the length of a single record in tool results.
	maxRecordLen = 2000
)

func newPageSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
	}
}

// truncateString truncates a string to maxLen bytes with a marker if needed.
func truncateString(str string, maxLen int) string {
	if len(str) > maxLen {
		return str[:maxLen] + " [RECORD TRUNCATED]"
	}

	return str
}
