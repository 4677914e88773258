// Package model defines shared data structures for TempMon.
package model

// Sample is one accepted thermocouple reading.
type Sample struct {
	ElapsedMS   int64    `json:"elapsed_ms"`
	Temperature float64  `json:"temperature"`
	Change      *float64 `json:"change,omitempty"` // degrees C per second; nil on the first sample of a session
}

// SessionInfo summarizes a finished recording session for the dashboard.
type SessionInfo struct {
	ID        string  `json:"id"`
	File      string  `json:"file"`
	StartedAt string  `json:"started_at"`
	EndedAt   string  `json:"ended_at"`
	Samples   int     `json:"samples"`
	MinTemp   float64 `json:"min_temp"`
	MaxTemp   float64 `json:"max_temp"`
}
