package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/json2ts/internal/config"
	"github.com/usestring/json2ts/internal/generate"
	"github.com/usestring/json2ts/internal/logging"
	"github.com/usestring/json2ts/pkg/mcpsrv"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `Usage:
  json2ts [flags] [file...]   infer TypeScript types from JSON or YAML files (stdin when no file is given)
  json2ts mcp                 serve the json2ts tools over MCP stdio

Flags:
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		if err := serve(ctx, cfg); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "json2ts:", err)
		}
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	server, err := mcpsrv.NewServer(mcpsrv.WithConfig(cfg), mcpsrv.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	slog.Info("starting json2ts MCP server on stdio", slog.String("version", version))
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// run executes the generate command. Flags override the environment configuration.
func run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("json2ts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	rootName := fs.String("root", cfg.RootName, "name of the top-level type")
	naming := fs.String("naming", cfg.Naming, "nested type naming: flat or path")
	format := fs.String("format", generate.FormatTypeScript, "output format: ts or jsonschema")
	selectExpr := fs.String("select", "", "jq expression selecting the part of the document to type")
	contentType := fs.String("type", "", "input format: json, yaml or a MIME type (default: detect)")
	export := fs.Bool("export", cfg.Export, "prefix declarations with export")
	quoteKeys := fs.Bool("quote-keys", cfg.QuoteKeys, "quote field names that are not valid identifiers")
	workers := fs.Int("workers", cfg.Workers, "files processed concurrently")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}

	cleanup, err := logging.Setup(logging.Config{
		Level:      *logLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	engine := generate.NewEngine(generate.Options{MaxInputBytes: cfg.MaxInputBytes})
	base := generate.Request{
		ContentType: *contentType,
		Select:      *selectExpr,
		RootName:    *rootName,
		Naming:      *naming,
		Format:      *format,
		Export:      *export,
		QuoteKeys:   *quoteKeys,
	}

	var results []*generate.Result
	if fs.NArg() == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		base.Data = data
		res, err := engine.Generate(ctx, base)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		results, err = engine.GenerateFiles(ctx, fs.Args(), base, *workers)
		if err != nil {
			return err
		}
	}

	for _, res := range results {
		for _, c := range res.Collisions {
			slog.Warn("type name reused for a different shape",
				slog.String("source", res.Source),
				slog.String("name", c.Name),
				slog.Any("paths", c.Paths),
			)
		}
	}

	return write(stdout, results)
}

// write prints results in input order. Several TypeScript results are headed
// by a comment naming their source file; several schemas are printed as one
// object keyed by source file.
func write(w io.Writer, results []*generate.Result) error {
	if len(results) > 0 && results[0].Schema != nil {
		return writeSchemas(w, results)
	}

	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "// %s\n", res.Source); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, res.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeSchemas(w io.Writer, results []*generate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0].Schema)
	}

	bySource := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(results)))
	for _, res := range results {
		bySource.Set(res.Source, res.Schema)
	}
	return enc.Encode(bySource)
}
