package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2ts/internal/generate"
	"github.com/usestring/json2ts/pkg/tstype"
)

// GenerateInput is the input for json2ts_generate and json2ts_schema.
type GenerateInput struct {
	JSON        string `json:"json" jsonschema:"The sample document (JSON or YAML text) to infer types from"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Input format: json, yaml or a MIME type (default: detected from content)"`
	Select      string `json:"select,omitempty" jsonschema:"JQ expression selecting the part of the document to type, e.g. .data.items (default: whole document)"`
	RootName    string `json:"root_name,omitempty" jsonschema:"Name of the top-level type (default: Root)"`
	Naming      string `json:"naming,omitempty" jsonschema:"Nested type naming: flat (key + Data, may collide) or path (ancestor keys folded in). Default: flat"`
	Export      bool   `json:"export,omitempty" jsonschema:"Prefix declarations with export"`
	QuoteKeys   bool   `json:"quote_keys,omitempty" jsonschema:"Quote field names that are not valid TypeScript identifiers"`
}

// GenerateOutput is the output of json2ts_generate.
type GenerateOutput struct {
	Declarations []tstype.Declaration `json:"declarations,omitzero"`
	Text         string               `json:"text"`
	Collisions   []tstype.Collision   `json:"collisions,omitzero"`
	TypeCount    int                  `json:"type_count"`
	Cached       bool                 `json:"cached"`
	ResultURI    string               `json:"result_uri,omitempty"`
	Hint         string               `json:"hint,omitempty"`
}

// SchemaOutput is the output of json2ts_schema.
type SchemaOutput struct {
	Schema     any                `json:"schema,omitempty"`
	Collisions []tstype.Collision `json:"collisions,omitzero"`
	TypeCount  int                `json:"type_count"`
	Cached     bool               `json:"cached"`
	ResultURI  string             `json:"result_uri,omitempty"`
}

// request turns tool input into an engine request, applying configured defaults.
func (d *Deps) request(input GenerateInput, format string) (generate.Request, error) {
	if input.JSON == "" {
		return generate.Request{}, ErrInvalidInput("json is required")
	}

	req := generate.Request{
		Data:        []byte(input.JSON),
		ContentType: input.ContentType,
		Select:      input.Select,
		RootName:    input.RootName,
		Naming:      input.Naming,
		Format:      format,
		Export:      input.Export,
		QuoteKeys:   input.QuoteKeys,
	}
	if d.Config != nil {
		if req.RootName == "" {
			req.RootName = d.Config.RootName
		}
		if req.Naming == "" {
			req.Naming = d.Config.Naming
		}
		req.Export = req.Export || d.Config.Export
		req.QuoteKeys = req.QuoteKeys || d.Config.QuoteKeys
	}
	return req, nil
}

// ToolGenerate infers TypeScript declarations from a sample document.
func ToolGenerate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, GenerateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, GenerateOutput, error) {
		genReq, err := d.request(input, generate.FormatTypeScript)
		if err != nil {
			return nil, GenerateOutput{}, err
		}

		res, key, cached, err := run(ctx, d, genReq)
		if err != nil {
			return nil, GenerateOutput{}, err
		}

		output := GenerateOutput{
			Declarations: res.Declarations,
			Text:         res.Text,
			Collisions:   res.Collisions,
			TypeCount:    res.TypeCount,
			Cached:       cached,
			ResultURI:    ResultURIPrefix + key,
		}
		if len(res.Collisions) > 0 {
			output.Hint = fmt.Sprintf("%d type name(s) were reused for different shapes and the last one won. Call again with naming=\"path\" to keep them apart.", len(res.Collisions))
		}
		return nil, output, nil
	}
}

// ToolSchema infers a JSON Schema with one $defs entry per inferred type.
func ToolSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, SchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, SchemaOutput, error) {
		genReq, err := d.request(input, generate.FormatJSONSchema)
		if err != nil {
			return nil, SchemaOutput{}, err
		}

		res, key, cached, err := run(ctx, d, genReq)
		if err != nil {
			return nil, SchemaOutput{}, err
		}

		return nil, SchemaOutput{
			Schema:     res.Schema,
			Collisions: res.Collisions,
			TypeCount:  res.TypeCount,
			Cached:     cached,
			ResultURI:  ResultURIPrefix + key,
		}, nil
	}
}
