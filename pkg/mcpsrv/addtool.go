package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2ts/internal/mcp/tools"
)

// AddTool registers a tool with the server, validating that the output type's
// zero value passes the SDK's JSON schema check. If it does not, AddTool
// panics with a message naming the field to fix.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
