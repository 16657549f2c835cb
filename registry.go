package serializer

import (
	"reflect"
	"sync"
)

// cacheKey combines type and codec for pipeline cache lookup.
type cacheKey struct {
	typ         reflect.Type
	contentType string
}

var (
	pipelines   = make(map[cacheKey]any)
	pipelinesMu sync.RWMutex
)

// Use returns a cached pipeline or builds a new one, keyed by type and
// codec content type. Options are only applied when the pipeline is
// built; later calls with different options for the same key return the
// original instance. This serves the register-once, reuse-many pattern:
// configure converters at startup and call Use everywhere else.
func Use[T any](opts ...Option) *Pipeline[T] {
	cfg := newConfig(opts)
	typ := reflect.TypeFor[T]()
	key := cacheKey{typ: typ, contentType: cfg.codec.ContentType()}

	// Fast path: read-lock cache check
	pipelinesMu.RLock()
	if cached, ok := pipelines[key]; ok {
		pipelinesMu.RUnlock()
		return cached.(*Pipeline[T])
	}
	pipelinesMu.RUnlock()

	// Slow path: build and cache with write-lock
	pipelinesMu.Lock()
	defer pipelinesMu.Unlock()

	// Double-check pattern
	if cached, ok := pipelines[key]; ok {
		return cached.(*Pipeline[T])
	}

	pipeline := newPipeline[T](cfg)
	pipelines[key] = pipeline
	return pipeline
}

// Reset clears the pipeline cache.
// This is primarily useful for test isolation.
func Reset() {
	pipelinesMu.Lock()
	defer pipelinesMu.Unlock()
	pipelines = make(map[cacheKey]any)
}
