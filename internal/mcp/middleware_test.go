package mcp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware_ToolCall(t *testing.T) {
	logs := captureLogs(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return &sdkmcp.CallToolResult{IsError: true}, nil
	})

	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "json2ts_generate"}}
	_, err := handler(context.Background(), "tools/call", req)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "method=tools/call")
	assert.Contains(t, out, "tool=json2ts_generate")
	assert.Contains(t, out, "tool_error=true")
}

func TestLoggingMiddleware_Error(t *testing.T) {
	logs := captureLogs(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, errors.New("boom")
	})

	_, err := handler(context.Background(), "resources/read", nil)
	require.Error(t, err)
	assert.Contains(t, logs.String(), "method call failed")
	assert.Contains(t, logs.String(), "error=boom")
}
