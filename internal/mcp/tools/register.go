package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: json2ts_generate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "json2ts_generate",
		Description: "Infer TypeScript type declarations from a sample JSON or YAML document. Returns {declarations: [{name, kind, text}], text, collisions, type_count, cached, result_uri}. Every nested object becomes its own named type (key + Data); array elements are merged so fields missing or null in some elements become optional. Use select (JQ) to type only part of a document.",
	}, ToolGenerate(d))

	// Tool 2: json2ts_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "json2ts_schema",
		Description: "Infer a JSON Schema (Draft 2020-12) from a sample JSON or YAML document. Same inference as json2ts_generate; each inferred type becomes an entry under $defs and the document refers to the root type.",
	}, ToolSchema(d))
}
