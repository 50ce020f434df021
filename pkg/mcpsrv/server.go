package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2ts/internal/cache"
	"github.com/usestring/json2ts/internal/config"
	"github.com/usestring/json2ts/internal/generate"
	"github.com/usestring/json2ts/internal/logging"
	"github.com/usestring/json2ts/internal/mcp"
	"github.com/usestring/json2ts/internal/mcp/tools"
)

// DefaultVersion is announced when WithVersion is not given.
const DefaultVersion = "dev"

// Deps contains the dependencies available to custom tools.
type Deps struct {
	Engine *generate.Engine
	Config *config.Config
}

// Server is the json2ts MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin json2ts tools.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config:  config.Load(),
		version: DefaultVersion,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	srv, deps, err := build(cfg)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	return &Server{
		internal:   srv,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// build creates the engine, the result cache and the internal server.
func build(cfg *serverConfig) (*mcp.Server, *Deps, error) {
	resultCache, err := cache.NewResultCache[*generate.Result](cfg.config.ResultCacheMaxItems)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	engine := generate.NewEngine(generate.Options{MaxInputBytes: cfg.config.MaxInputBytes})

	toolDeps := &tools.Deps{
		Engine: engine,
		Cache:  resultCache,
		Config: cfg.config,
	}
	deps := &Deps{
		Engine: engine,
		Config: cfg.config,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, cfg.version, internalOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}
	return internal, deps, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, mainly for in-process transports.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
