package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
)

// Unit is a CSS length unit.
type Unit string

const (
	Px  Unit = "px"
	Rem Unit = "rem"
	Vw  Unit = "vw"
)

// ErrUnknownUnit is returned for a length with a unit other than px, rem
// or vw.
var ErrUnknownUnit = errors.New("unknown length unit")

// Length is a CSS-style length such as 30px, 2rem or 16vw.
type Length struct {
	Value float64
	Unit  Unit
}

// Metrics is what a length is resolved against.
type Metrics struct {
	RootFontPx float64 // size of 1rem in pixels
	ViewportPx float64 // width of the viewport in pixels, for vw
}

// ParseLength parses a length. A bare number is taken as pixels.
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Length{}, fmt.Errorf("empty length")
	}

	// The unit is the trailing run of letters, so exponents like 1e2px parse.
	i := strings.LastIndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) + 1
	num, unit := s, Px
	if i < len(s) {
		num, unit = strings.TrimSpace(s[:i]), Unit(s[i:])
	}

	switch unit {
	case Px, Rem, Vw:
	default:
		return Length{}, fmt.Errorf("%w %q in %q", ErrUnknownUnit, unit, s)
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return Length{}, fmt.Errorf("invalid length %q: must be a finite non-negative number", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// MustLength is ParseLength for constants; it panics on error.
func MustLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}

// String formats the length the way it is written in config files.
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}

// Pixels resolves the length to pixels.
func (l Length) Pixels(m Metrics) float64 {
	switch l.Unit {
	case Rem:
		return l.Value * m.RootFontPx
	case Vw:
		return l.Value * m.ViewportPx / 100
	}
	return l.Value
}

// Resolve converts the length to layout units of unitPx pixels each,
// rounded to the nearest unit.
func (l Length) Resolve(m Metrics, unitPx float64) int {
	if unitPx <= 0 {
		unitPx = 1
	}
	return int(math.Round(l.Pixels(m) / unitPx))
}

// MarshalYAML implements yaml.Marshaler.
func (l Length) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (l *Length) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseLength(value.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
