package mcp

import (
	"strings"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/jsxtract/internal/extract"
)

const defaultResultCacheSize = 1024

// resultCache memoizes extractions by their inputs. Assistants tend to
// re-run jsx_extract on the same fragment while iterating on a destination.
type resultCache struct {
	cache otter.Cache[string, *extract.Extraction]
}

func newResultCache(capacity int) (*resultCache, error) {
	cache, err := otter.MustBuilder[string, *extract.Extraction](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &resultCache{cache: cache}, nil
}

func resultKey(fragment, destination string, opts extract.UnitOptions) string {
	return strings.Join([]string{fragment, destination, string(opts.Style), opts.Indent}, "\x00")
}

// Get and Set treat a nil cache as always empty.
func (c *resultCache) Get(key string) (*extract.Extraction, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *resultCache) Set(key string, ext *extract.Extraction) {
	if c == nil {
		return
	}
	c.cache.Set(key, ext)
}

func (c *resultCache) Close() {
	c.cache.Close()
}
