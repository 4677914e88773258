// Package parser converts raw sensor lines and live-feed lines to
// structured samples and vice-versa.
//
// Sensor wire format (device -> host): one ASCII float per line, degrees
// Celsius:
//
//	23.5
//
// Live-feed CSV wire format (host -> dashboard clients):
//
//	ELAPSED_MS,TEMPERATURE,CHANGE
//
// CHANGE is the empty field on the first sample of a session.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyLine marks a blank sensor line. Blank lines are common while the
// board boots and are not worth a warning.
var ErrEmptyLine = errors.New("empty line")

// Temperature parses one raw sensor line as a Celsius reading.
// Returns error on malformed or non-finite input.
func Temperature(line string) (float64, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, ErrEmptyLine
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a temperature: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite temperature: %q", s)
	}
	return v, nil
}
