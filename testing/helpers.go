// Package testing provides test utilities for serializer.
package testing

import (
	"encoding/json"
	"fmt"
	"strings"

	serializer "github.com/Bismuth083/ObjectSerializer"
)

// TestSecret returns a secret used across tests.
func TestSecret() string {
	return "correct horse battery staple"
}

// Hero is a nested test type.
type Hero struct {
	Name string
	HP   int
}

// GameState is a test type exercising primitives, sequences, mappings,
// and nested composites.
type GameState struct {
	Level     int
	Score     int64
	Ratio     float64
	Hardcore  bool
	Inventory []string
	Flags     map[string]bool
	Hero      Hero
	Notes     *string
}

// NewGameState returns a populated GameState.
func NewGameState() GameState {
	notes := "second playthrough"
	return GameState{
		Level:     7,
		Score:     125_000,
		Ratio:     0.75,
		Hardcore:  true,
		Inventory: []string{"sword", "potion", "map"},
		Flags:     map[string]bool{"metBlacksmith": true, "openedVault": false},
		Hero:      Hero{Name: "Åse", HP: 44},
		Notes:     &notes,
	}
}

// Grid is a test type with a custom textual representation, used to
// verify converter precedence over structural encoding.
type Grid struct {
	Rows int
	Cols int
}

// GridConverter encodes a Grid as the string "RxC" instead of an object.
func GridConverter() serializer.Converter {
	return serializer.NewConverter(
		func(g Grid) ([]byte, error) {
			return json.Marshal(fmt.Sprintf("%dx%d", g.Rows, g.Cols))
		},
		func(data []byte) (Grid, error) {
			var s string
			if err := json.Unmarshal(data, &s); err != nil {
				return Grid{}, err
			}
			var g Grid
			if _, err := fmt.Sscanf(strings.TrimSpace(s), "%dx%d", &g.Rows, &g.Cols); err != nil {
				return Grid{}, fmt.Errorf("malformed grid %q: %w", s, err)
			}
			return g, nil
		},
	)
}
