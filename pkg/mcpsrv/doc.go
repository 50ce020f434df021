// Package mcpsrv provides an extensible MCP server for json2ts.
//
// This package exposes a high-level API for creating and running an MCP server
// with the builtin json2ts tools and result resource. Users can extend the
// server with custom tools and prompts using functional options.
//
// # Basic Usage
//
// Create a server with configuration taken from the environment:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly. Tools that need the
// generation engine use WithDepsTool:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_types", Description: "Count inferred types"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            res, err := d.Engine.Generate(ctx, generate.Request{Data: []byte(in.JSON)})
//	            if err != nil {
//	                return nil, MyOutput{}, err
//	            }
//	            return nil, MyOutput{Count: res.TypeCount}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Configure logging and other options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/json2ts.log"),
//	)
package mcpsrv
