// Package gps turns the "GPS Position" line printed by exiftool into a
// Coordinate.
//
// The expected line looks like
//
//	GPS Position: 37 deg 46' 29.64" N, 122 deg 24' 52.93" W
package gps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	positionLabel = "GPS Position"

	axisLatitude  = "latitude"
	axisLongitude = "longitude"
)

var (
	// ErrNoGPSData is returned when no line starts with "GPS Position".
	ErrNoGPSData = errors.New("no GPS data found")
	// ErrUnexpectedFormat is returned when the GPS line does not have the
	// expected shape.
	ErrUnexpectedFormat = errors.New("unexpected GPS format")
)

// FormatError reports an axis that did not split into exactly five tokens.
type FormatError struct {
	Axis   string
	Tokens []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected %s format: %q", e.Axis, e.Tokens)
}

func (e *FormatError) Unwrap() error {
	return ErrUnexpectedFormat
}

// CorruptMetadataError reports a numeric token that failed to parse after
// the line already matched the expected layout.
type CorruptMetadataError struct {
	Axis  string
	Field string
	Value string
	Err   error
}

func (e *CorruptMetadataError) Error() string {
	return fmt.Sprintf("failed to parse %s %s %q: %v", e.Axis, e.Field, e.Value, e.Err)
}

func (e *CorruptMetadataError) Unwrap() error {
	return e.Err
}

// Parse finds the first "GPS Position" line in text and converts it to a
// Coordinate. The raw tokens of each axis are written to diag before they
// are converted; diag may be nil.
//
// A latitude whose hemisphere is "S" and a longitude whose hemisphere is
// "W" are negated. Any other letter leaves the value positive.
func Parse(text string, diag io.Writer) (Coordinate, error) {
	if diag == nil {
		diag = io.Discard
	}

	line, ok := findPositionLine(text)
	if !ok {
		return Coordinate{}, ErrNoGPSData
	}

	_, data, ok := strings.Cut(line, ": ")
	if !ok {
		return Coordinate{}, ErrUnexpectedFormat
	}
	parts := strings.Split(data, ", ")
	if len(parts) != 2 {
		return Coordinate{}, ErrUnexpectedFormat
	}

	lat, err := parseAxis(axisLatitude, parts[0], "S", diag)
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := parseAxis(axisLongitude, parts[1], "W", diag)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// findPositionLine scans text once and returns the first line carrying the
// GPS Position label.
func findPositionLine(text string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, positionLabel) {
			return line, true
		}
	}
	return "", false
}

// splitAxis splits one axis description into its five tokens:
// degrees, the "deg" marker, minutes, seconds and hemisphere.
func splitAxis(axis, part string) (Sexagesimal, error) {
	tokens := strings.Fields(part)
	if len(tokens) != 5 {
		return Sexagesimal{}, &FormatError{Axis: axis, Tokens: tokens}
	}
	return Sexagesimal{
		Degrees:    tokens[0],
		Minutes:    strings.TrimSpace(strings.TrimRight(tokens[2], "'")),
		Seconds:    strings.TrimSpace(strings.TrimRight(tokens[3], `"`)),
		Hemisphere: tokens[4],
	}, nil
}

func parseAxis(axis, part, negative string, diag io.Writer) (float64, error) {
	s, err := splitAxis(axis, part)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(diag, "%s: %s degrees, %s minutes, %s seconds, direction: %s\n",
		axisTitle(axis), s.Degrees, s.Minutes, s.Seconds, s.Hemisphere)

	v, err := s.Decimal(axis)
	if err != nil {
		return 0, err
	}
	if s.Hemisphere == negative {
		v = -v
	}
	return v, nil
}

func parseField(axis, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &CorruptMetadataError{Axis: axis, Field: field, Value: value, Err: err}
	}
	return v, nil
}

func axisTitle(axis string) string {
	if axis == "" {
		return axis
	}
	return strings.ToUpper(axis[:1]) + axis[1:]
}
