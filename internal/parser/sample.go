package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"TempMon/internal/model"
)

// EncodeSample converts a Sample into a live-feed CSV line.
// Example: 12040,23.50,0.0210 — the change field is empty on the first sample.
func EncodeSample(s model.Sample) string {
	change := ""
	if s.Change != nil {
		change = strconv.FormatFloat(*s.Change, 'f', 4, 64)
	}
	return fmt.Sprintf("%d,%.2f,%s", s.ElapsedMS, s.Temperature, change)
}

// DecodeSample parses a live-feed CSV line back into a Sample.
func DecodeSample(line string) (model.Sample, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return model.Sample{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	ms, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return model.Sample{}, errors.New("invalid elapsed_ms")
	}
	temp, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Sample{}, errors.New("invalid temperature")
	}

	s := model.Sample{ElapsedMS: ms, Temperature: temp}
	if fields[2] != "" {
		change, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return model.Sample{}, errors.New("invalid change")
		}
		s.Change = &change
	}
	return s, nil
}
