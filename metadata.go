package serializer

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the json tag with sentinel so scanned metadata carries it.
	sentinel.Tag("json")
}

// metaCache holds struct metadata keyed by reflect.Type. Metadata is
// immutable once built.
var metaCache sync.Map // reflect.Type -> *sentinel.Metadata

// scanType returns metadata for a struct type, preferring what sentinel
// has already scanned and building it from reflection otherwise.
func scanType(rt reflect.Type) *sentinel.Metadata {
	if cached, ok := metaCache.Load(rt); ok {
		return cached.(*sentinel.Metadata)
	}

	if spec, ok := sentinel.Lookup(rt.String()); ok {
		metaCache.Store(rt, &spec)
		return &spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{"json": sf.Tag.Get("json")},
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	metaCache.Store(rt, &spec)
	return &spec
}

// fieldKey resolves the JSON object key for a field: an explicit json tag
// name wins, `json:"-"` omits the field, and everything else derives a
// lower-camel-case key from the field name.
func fieldKey(f sentinel.FieldMetadata) (string, bool) {
	tag := f.Tags["json"]
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name != "" {
		return name, true
	}
	return lowerCamel(f.Name), true
}

// lowerCamel converts an exported Go field name to lower-camel-case,
// keeping acronym boundaries intact: ID -> id, HTMLBody -> htmlBody,
// IntField -> intField.
func lowerCamel(name string) string {
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	if upper == 0 {
		return name
	}
	// Keep the last upper of a run when it starts the next word.
	if upper < len(runes) && upper > 1 {
		upper--
	}
	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
