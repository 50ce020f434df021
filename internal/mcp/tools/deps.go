package tools

import (
	"github.com/usestring/json2ts/internal/cache"
	"github.com/usestring/json2ts/internal/config"
	"github.com/usestring/json2ts/internal/generate"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Engine *generate.Engine
	Cache  *cache.ResultCache[*generate.Result]
	Config *config.Config
}

// Cached returns a previously generated result by its key.
func (d *Deps) Cached(key string) (*generate.Result, bool) {
	if d.Cache == nil {
		return nil, false
	}
	return d.Cache.Get(key)
}

func (d *Deps) store(key string, res *generate.Result) {
	if d.Cache != nil {
		d.Cache.Put(key, res)
	}
}
