// Package tools contains MCP tool implementations for json2ts.
package tools

import (
	"context"
	"strconv"

	"github.com/usestring/json2ts/internal/cache"
	"github.com/usestring/json2ts/internal/generate"
)

// MIME type constant.
const MimeJSON = "application/json"

// ResultURIPrefix prefixes the resource URI of a cached result.
const ResultURIPrefix = "json2ts://result/"

// requestKey derives the cache key for a request. Every field that changes
// the output takes part in it.
func requestKey(req generate.Request) string {
	return cache.Key(
		string(req.Data),
		req.ContentType,
		req.Select,
		req.RootName,
		req.Naming,
		req.Format,
		strconv.FormatBool(req.Export),
		strconv.FormatBool(req.QuoteKeys),
	)
}

// run generates req, serving repeated requests from the cache.
func run(ctx context.Context, d *Deps, req generate.Request) (*generate.Result, string, bool, error) {
	key := requestKey(req)
	if res, ok := d.Cached(key); ok {
		return res, key, true, nil
	}

	res, err := d.Engine.Generate(ctx, req)
	if err != nil {
		return nil, "", false, WrapGenerateError(err)
	}
	d.store(key, res)
	return res, key, false, nil
}
