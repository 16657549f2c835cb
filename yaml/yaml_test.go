package yaml

import (
	"reflect"
	"strings"
	"testing"
)

type testValue struct {
	Name  string
	Count int
	Tags  []string
}

func TestContentType(t *testing.T) {
	c := New()
	if got := c.ContentType(); got != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", got, "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	orig := testValue{Name: "alpha", Count: 3, Tags: []string{"a", "b"}}
	data, err := c.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "name: alpha") {
		t.Errorf("unexpected YAML output: %s", data)
	}

	var got testValue
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, orig)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var got testValue
	if err := c.Unmarshal([]byte("name: [unclosed"), &got); err == nil {
		t.Error("expected error for invalid YAML data")
	}
}
