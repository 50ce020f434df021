// Package generate wires decoding, selection, inference and rendering into a
// single request/response engine shared by the CLI and the MCP server.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/json2ts/internal/query"
	"github.com/usestring/json2ts/pkg/contenttype"
	"github.com/usestring/json2ts/pkg/jsonschema"
	"github.com/usestring/json2ts/pkg/tstype"
	"github.com/usestring/json2ts/pkg/value"
)

// Output formats.
const (
	FormatTypeScript = "ts"
	FormatJSONSchema = "jsonschema"
)

var utf8BOM = []byte("\ufeff")

// Request describes one generation.
type Request struct {
	Data        []byte
	ContentType string // MIME type or short name; empty to detect
	Filename    string // used for detection when ContentType is empty
	Select      string // jq expression picking the subtree to type
	RootName    string
	Naming      string // flat or path
	Format      string // ts (default) or jsonschema
	Export      bool
	QuoteKeys   bool
}

// Result is the outcome of a generation.
type Result struct {
	Source       string               `json:"source,omitempty"`
	Declarations []tstype.Declaration `json:"declarations"`
	Text         string               `json:"text,omitempty"`
	Schema       any                  `json:"schema,omitempty"`
	Collisions   []tstype.Collision   `json:"collisions,omitempty"`
	TypeCount    int                  `json:"type_count"`
}

// Options configures an Engine.
type Options struct {
	// MaxInputBytes rejects larger documents. Zero means no limit.
	MaxInputBytes int
	// MaxSelectResults caps how many values a selection may yield. Zero means no cap.
	MaxSelectResults int
}

// Engine runs generation requests. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	opts  Options
	query *query.Engine
}

// NewEngine creates a generation engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:  opts,
		query: &query.Engine{MaxResults: opts.MaxSelectResults},
	}
}

// Generate decodes req.Data, applies the selection and renders the inferred
// types in the requested format.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	naming, err := tstype.ParseNaming(req.Naming)
	if err != nil {
		return nil, ErrInvalidInput("invalid naming", err)
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatTypeScript
	}
	if format != FormatTypeScript && format != FormatJSONSchema {
		return nil, ErrInvalidInput(fmt.Sprintf("format must be %q or %q", FormatTypeScript, FormatJSONSchema), nil)
	}
	rootName := strings.TrimSpace(req.RootName)
	if rootName == "" {
		rootName = tstype.DefaultRootName
	}

	root, err := e.decode(req)
	if err != nil {
		return nil, err
	}

	if req.Select != "" {
		root, err = e.query.Select(root, req.Select)
		if err != nil {
			return nil, errSelect(req.Select, err)
		}
	}

	reg := tstype.Generate(root, tstype.Options{RootName: rootName, Naming: naming})
	emitter := tstype.NewEmitter(tstype.EmitOptions{Export: req.Export, QuoteKeys: req.QuoteKeys})

	res := &Result{
		Source:       req.Filename,
		Declarations: emitter.RenderAll(reg),
		Collisions:   reg.Collisions(),
		TypeCount:    reg.Len(),
	}
	switch format {
	case FormatJSONSchema:
		res.Schema = jsonschema.FromRegistry(reg, rootName, nil)
	default:
		res.Text = emitter.Text(reg)
	}

	slog.Debug("generation finished",
		slog.String("source", req.Filename),
		slog.String("format", format),
		slog.Int("types", res.TypeCount),
		slog.Int("collisions", len(res.Collisions)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// decode turns the raw request bytes into a value tree.
func (e *Engine) decode(req Request) (value.Value, error) {
	if e.opts.MaxInputBytes > 0 && len(req.Data) > e.opts.MaxInputBytes {
		return nil, ErrInvalidInput(fmt.Sprintf("input is %d bytes, limit is %d", len(req.Data), e.opts.MaxInputBytes), nil)
	}
	data := bytes.TrimPrefix(req.Data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrInvalidInput("input is empty", nil)
	}

	switch category := contenttype.Resolve(req.ContentType, req.Filename, data); category {
	case contenttype.JSON:
		v, err := value.ParseJSON(data)
		if err != nil {
			return nil, ErrInvalidInput("invalid JSON", err)
		}
		return v, nil
	case contenttype.YAML:
		v, err := value.ParseYAML(data)
		if err != nil {
			return nil, ErrInvalidInput("invalid YAML", err)
		}
		return v, nil
	default:
		ct := req.ContentType
		if ct == "" {
			ct = string(category)
		}
		return nil, errUnsupported(fmt.Sprintf("unsupported content type: %s", ct))
	}
}

// GenerateFiles reads and generates every path concurrently, each with its own
// registry. base supplies all request fields except Data and Filename. Results
// are returned in the order of paths; the first failure cancels the rest.
func (e *Engine) GenerateFiles(ctx context.Context, paths []string, base Request, workers int) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			req := base
			req.Data = data
			req.Filename = path
			res, err := e.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
