package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2ts/internal/mcp/tools"
)

// Resource URI scheme: json2ts://
// Supported URIs:
//   json2ts://result/{key}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResultURIPrefix + "{key}",
		Name:        "Generation Result",
		Description: "A previously generated result (declarations, text or schema, collisions), addressed by the result_uri returned from json2ts_generate or json2ts_schema. Only recent results are kept.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceResult)
}

func (s *Server) handleResourceResult(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	key, err := parseResultURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	res, ok := s.deps.Cached(key)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, res)
}

// parseResultURI extracts the cache key from a json2ts://result/ URI.
func parseResultURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "json2ts://") {
		return "", tools.ErrInvalidInput("invalid URI scheme: expected json2ts://")
	}
	key, ok := strings.CutPrefix(uri, tools.ResultURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput(fmt.Sprintf("unknown resource: %s", uri))
	}
	if key == "" || strings.Contains(key, "/") {
		return "", tools.ErrInvalidInput("result URI requires a single key")
	}
	return key, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
