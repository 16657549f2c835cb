package serializer

import (
	"reflect"
	"testing"
)

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IntField", "intField"},
		{"ID", "id"},
		{"HTMLBody", "htmlBody"},
		{"URL", "url"},
		{"MaxHP", "maxHP"},
		{"X", "x"},
		{"Name", "name"},
		{"already", "already"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := lowerCamel(tt.in); got != tt.want {
				t.Errorf("lowerCamel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanType(t *testing.T) {
	type scanned struct {
		Visible  int
		hidden   string //nolint:unused // exercises the exported-only rule
		Renamed  string `json:"other"`
		Excluded string `json:"-"`
	}

	meta := scanType(reflect.TypeFor[scanned]())
	if len(meta.Fields) != 3 {
		t.Fatalf("got %d fields, want 3 exported", len(meta.Fields))
	}

	keys := make(map[string]bool)
	for _, f := range meta.Fields {
		key, include := fieldKey(f)
		if include {
			keys[key] = true
		}
	}
	if !keys["visible"] || !keys["other"] {
		t.Errorf("unexpected keys %v", keys)
	}
	if keys["excluded"] || keys["-"] {
		t.Errorf("excluded field leaked into %v", keys)
	}
}

func TestScanType_Cached(t *testing.T) {
	type once struct{ A int }

	m1 := scanType(reflect.TypeFor[once]())
	m2 := scanType(reflect.TypeFor[once]())
	if m1 != m2 {
		t.Error("scanType should return cached metadata")
	}
}
