package testing

import (
	"testing"
)

func TestNewGameState(t *testing.T) {
	s := NewGameState()

	if s.Level == 0 || len(s.Inventory) == 0 || len(s.Flags) == 0 {
		t.Error("NewGameState() should populate every field group")
	}
	if s.Notes == nil {
		t.Error("NewGameState() should populate the pointer field")
	}
}

func TestGridConverter_RoundTrip(t *testing.T) {
	conv := GridConverter()

	frag, err := conv.Encode(Grid{Rows: 4, Cols: 6})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(frag) != `"4x6"` {
		t.Errorf("Encode() = %s", frag)
	}

	got, err := conv.Decode(frag)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got != (Grid{Rows: 4, Cols: 6}) {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestGridConverter_Malformed(t *testing.T) {
	conv := GridConverter()

	if _, err := conv.Decode([]byte(`"not a grid"`)); err == nil {
		t.Error("expected error for malformed grid text")
	}
	if _, err := conv.Decode([]byte(`{}`)); err == nil {
		t.Error("expected error for non-string fragment")
	}
}
