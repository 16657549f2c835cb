package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var (
	jsonMarshalerType   = reflect.TypeFor[json.Marshaler]()
	jsonUnmarshalerType = reflect.TypeFor[json.Unmarshaler]()
)

// jsonCodec implements Codec for the portable text format: indented JSON
// with lower-camel-case object keys and permissive character escaping.
// Converters registered for a type take precedence over structural
// encoding on both directions.
type jsonCodec struct {
	converters *Registry
}

// JSON returns the default JSON codec backed by the given converter
// registry. A nil registry means structural encoding only.
func JSON(converters *Registry) Codec {
	return &jsonCodec{converters: converters}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as indented lower-camel-case JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	tree, err := c.encodeValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}

	// Encoder appends a newline after the document.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeValue lowers a value into a tree of JSON-encodable nodes,
// consulting the converter registry first at every level. Cyclic values
// are a caller error and recurse without bound.
func (c *jsonCodec) encodeValue(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	t := rv.Type()

	if conv, ok := c.converters.Lookup(t); ok {
		frag, err := conv.Encode(rv.Interface())
		if err != nil {
			return nil, fmt.Errorf("converter for %s: %w", t, err)
		}
		if !json.Valid(frag) {
			return nil, fmt.Errorf("converter for %s produced invalid JSON", t)
		}
		return json.RawMessage(frag), nil
	}

	// Types with their own JSON representation (time.Time, json.RawMessage,
	// user Marshalers) pass through untouched.
	if t.Implements(jsonMarshalerType) {
		return rv.Interface(), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return c.encodeValue(rv.Elem())

	case reflect.Struct:
		meta := scanType(t)
		obj := make(map[string]any, len(meta.Fields))
		for _, f := range meta.Fields {
			key, include := fieldKey(f)
			if !include {
				continue
			}
			node, err := c.encodeValue(rv.FieldByIndex(f.Index))
			if err != nil {
				return nil, err
			}
			obj[key] = node
		}
		return obj, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot encode map with %s keys", t.Key())
		}
		if rv.IsNil() {
			return nil, nil
		}
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			node, err := c.encodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Key().String()] = node
		}
		return obj, nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// Byte slices follow the JSON convention: base64 string.
			return rv.Bytes(), nil
		}
		if rv.IsNil() {
			return nil, nil
		}
		return c.encodeSequence(rv)

	case reflect.Array:
		return c.encodeSequence(rv)

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return rv.Interface(), nil

	default:
		return nil, fmt.Errorf("cannot encode value of type %s", t)
	}
}

func (c *jsonCodec) encodeSequence(rv reflect.Value) (any, error) {
	arr := make([]any, rv.Len())
	for i := range arr {
		node, err := c.encodeValue(rv.Index(i))
		if err != nil {
			return nil, err
		}
		arr[i] = node
	}
	return arr, nil
}

// Unmarshal decodes JSON data into v, which must be a non-nil pointer.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer, got %T", v)
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON document")
	}
	return c.decodeValue(data, rv.Elem())
}

// decodeValue parses a JSON fragment into rv, which is always addressable.
func (c *jsonCodec) decodeValue(data []byte, rv reflect.Value) error {
	t := rv.Type()

	if conv, ok := c.converters.Lookup(t); ok {
		got, err := conv.Decode(data)
		if err != nil {
			return fmt.Errorf("converter for %s: %w", t, err)
		}
		gv := reflect.ValueOf(got)
		if !gv.IsValid() {
			rv.SetZero()
			return nil
		}
		if !gv.Type().AssignableTo(t) {
			return fmt.Errorf("converter for %s returned %T", t, got)
		}
		rv.Set(gv)
		return nil
	}

	if reflect.PointerTo(t).Implements(jsonUnmarshalerType) || t.Implements(jsonUnmarshalerType) {
		return json.Unmarshal(data, rv.Addr().Interface())
	}

	switch t.Kind() {
	case reflect.Pointer:
		if isNull(data) {
			rv.SetZero()
			return nil
		}
		elem := reflect.New(t.Elem())
		if err := c.decodeValue(data, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil

	case reflect.Struct:
		if isNull(data) {
			return fmt.Errorf("%w: expected %s", ErrNullValue, t)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("expected object for %s: %w", t, err)
		}
		meta := scanType(t)
		for _, f := range meta.Fields {
			key, include := fieldKey(f)
			if !include {
				continue
			}
			frag, ok := lookupKey(raw, key)
			if !ok {
				continue
			}
			if err := c.decodeValue(frag, rv.FieldByIndex(f.Index)); err != nil {
				return fmt.Errorf("field %s.%s: %w", t.Name(), f.Name, err)
			}
		}
		return nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("cannot decode map with %s keys", t.Key())
		}
		if isNull(data) {
			rv.SetZero()
			return nil
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("expected object for %s: %w", t, err)
		}
		m := reflect.MakeMapWithSize(t, len(raw))
		for key, frag := range raw {
			elem := reflect.New(t.Elem()).Elem()
			if err := c.decodeValue(frag, elem); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
		}
		rv.Set(m)
		return nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// Base64 string per the JSON convention.
			return json.Unmarshal(data, rv.Addr().Interface())
		}
		if isNull(data) {
			rv.SetZero()
			return nil
		}
		raw, err := rawSequence(data, t)
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(t, len(raw), len(raw))
		for i, frag := range raw {
			if err := c.decodeValue(frag, s.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		rv.Set(s)
		return nil

	case reflect.Array:
		raw, err := rawSequence(data, t)
		if err != nil {
			return err
		}
		if len(raw) > t.Len() {
			return fmt.Errorf("array %s cannot hold %d elements", t, len(raw))
		}
		for i, frag := range raw {
			if err := c.decodeValue(frag, rv.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil

	case reflect.Interface:
		return json.Unmarshal(data, rv.Addr().Interface())

	default:
		if isNull(data) {
			return fmt.Errorf("%w: expected %s", ErrNullValue, t)
		}
		return json.Unmarshal(data, rv.Addr().Interface())
	}
}

func rawSequence(data []byte, t reflect.Type) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("expected array for %s: %w", t, err)
	}
	return raw, nil
}

// lookupKey finds a fragment by exact key, falling back to a
// case-insensitive match the way encoding/json does.
func lookupKey(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if frag, ok := raw[key]; ok {
		return frag, true
	}
	for k, frag := range raw {
		if strings.EqualFold(k, key) {
			return frag, true
		}
	}
	return nil, false
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
