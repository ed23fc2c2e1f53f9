// Package parse converts host argument strings into typed values.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karlo195/StardewMods/internal/game"
	"github.com/karlo195/StardewMods/internal/util"
)

// UintFromFloat parses a string that may be an integer ("32") or float
// ("32.00") into uint64. The host scripting layer has no integer type, so
// numbers may arrive serialized as floats.
func UintFromFloat(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != float64(uint64(f)) {
		return 0, fmt.Errorf("UintFromFloat: %q is not a valid uint64", s)
	}
	return uint64(f), nil
}

// IntFromFloat parses a string that may be an integer or float into int64.
func IntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("IntFromFloat: %q is not a valid int64", s)
	}
	return int64(f), nil
}

// Tile parses an "x,y" coordinate pair, tolerating quotes, brackets, and
// whitespace. Accepts the "(x,y)" form that game.Tile prints.
func Tile(s string) (game.Tile, error) {
	s = strings.Trim(util.TrimQuotes(s), " ()[]")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.Tile{}, fmt.Errorf("tile %q: want \"x,y\"", s)
	}

	x, err := IntFromFloat(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.Tile{}, fmt.Errorf("tile %q: %w", s, err)
	}
	y, err := IntFromFloat(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.Tile{}, fmt.Errorf("tile %q: %w", s, err)
	}

	return game.Tile{X: int(x), Y: int(y)}, nil
}

// StringArray parses a stringified array of quoted strings,
// e.g. ["scythe","axe"]. An empty array yields nil.
func StringArray(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("string array %q: want [...]", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}

	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, util.FixEscapeQuotes(util.TrimQuotes(strings.TrimSpace(p))))
	}
	return out, nil
}
