package serializer

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry holds the converters a codec consults before structural
// encoding. A Registry is constructed once and shared by reference across
// pipelines that need the same converter set.
//
// Register is guarded by a lock and is technically safe to call while
// other goroutines encode, but the supported discipline is to register
// everything during single-threaded startup.
type Registry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]Converter
}

// NewRegistry returns a Registry seeded with the given converters.
func NewRegistry(converters ...Converter) *Registry {
	r := &Registry{
		converters: make(map[reflect.Type]Converter, len(converters)),
	}
	for _, c := range converters {
		r.Register(c)
	}
	return r
}

// Register adds a converter, replacing any previous converter for the
// same type.
func (r *Registry) Register(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[c.Type()] = c
}

// Lookup returns the converter registered for t, if any.
func (r *Registry) Lookup(t reflect.Type) (Converter, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.converters[t]
	return c, ok
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}

// converter adapts a pair of typed functions to the Converter interface.
type converter[T any] struct {
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

// NewConverter builds a Converter for T from an encode and a decode
// function. The encode function must return a valid JSON fragment.
//
//	pointConv := serializer.NewConverter(
//	    func(p Point) ([]byte, error) {
//	        return []byte(fmt.Sprintf("%q", p.String())), nil
//	    },
//	    func(data []byte) (Point, error) {
//	        var s string
//	        if err := json.Unmarshal(data, &s); err != nil {
//	            return Point{}, err
//	        }
//	        return ParsePoint(s)
//	    },
//	)
func NewConverter[T any](encode func(T) ([]byte, error), decode func([]byte) (T, error)) Converter {
	return &converter[T]{encode: encode, decode: decode}
}

func (c *converter[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *converter[T]) Encode(v any) ([]byte, error) {
	tv, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("converter for %s received %T", c.Type(), v)
	}
	return c.encode(tv)
}

func (c *converter[T]) Decode(data []byte) (any, error) {
	tv, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	return tv, nil
}
