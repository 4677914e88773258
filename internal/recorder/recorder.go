// Package recorder owns the output CSV file and the chart window for one
// recording session at a time.
package recorder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"TempMon/internal/model"
)

// State is the lifecycle state of the recorder.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

// Usage errors: operations called out of order.
var (
	ErrAlreadyRecording = errors.New("recorder: session already started")
	ErrNotRecording     = errors.New("recorder: no active session")
)

// header is the first row of every measurement file.
var header = []string{"Time (ms)", "Temperature", "Change"}

// Recorder writes accepted samples to a CSV file and keeps the last-N
// samples for the chart. It is safe for the reader-goroutine/UI split:
// all methods take an internal lock.
type Recorder struct {
	mu       sync.Mutex
	state    State
	path     string
	file     *os.File
	w        *csv.Writer
	start    time.Time
	prevTemp float64
	prevAt   time.Time
	count    int
	minTemp  float64
	maxTemp  float64
	window   *Window
}

// New creates an idle Recorder whose chart window holds windowSize samples.
func New(windowSize int) *Recorder {
	return &Recorder{window: NewWindow(windowSize)}
}

// Start opens path for writing, writes the CSV header and resets the
// elapsed-time origin to now. Starting while recording is a usage error.
func (r *Recorder) Start(path string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRecording {
		return ErrAlreadyRecording
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	r.state = StateRecording
	r.path = path
	r.file = f
	r.w = w
	r.start = now
	r.prevAt = time.Time{}
	r.count = 0
	r.minTemp = 0
	r.maxTemp = 0
	r.window.Reset()
	return nil
}

// Record appends one row for the reading taken at the given time, flushes
// it, and pushes the sample into the chart window. The change column is the
// finite difference against the previous sample in degrees per second; it
// stays empty on the first row and whenever the time delta is not positive.
func (r *Recorder) Record(temp float64, at time.Time) (model.Sample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return model.Sample{}, ErrNotRecording
	}

	elapsed := at.Sub(r.start).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	s := model.Sample{ElapsedMS: elapsed, Temperature: temp}
	if !r.prevAt.IsZero() {
		if dt := at.Sub(r.prevAt).Seconds(); dt > 0 {
			change := (temp - r.prevTemp) / dt
			s.Change = &change
		}
	}

	row := []string{
		strconv.FormatInt(s.ElapsedMS, 10),
		strconv.FormatFloat(s.Temperature, 'f', -1, 64),
		"",
	}
	if s.Change != nil {
		row[2] = strconv.FormatFloat(*s.Change, 'f', -1, 64)
	}
	if err := r.w.Write(row); err != nil {
		return model.Sample{}, fmt.Errorf("write row: %w", err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return model.Sample{}, fmt.Errorf("flush row: %w", err)
	}

	if r.count == 0 || temp < r.minTemp {
		r.minTemp = temp
	}
	if r.count == 0 || temp > r.maxTemp {
		r.maxTemp = temp
	}
	r.count++
	r.prevTemp = temp
	r.prevAt = at
	r.window.Push(s)
	return s, nil
}

// Stop flushes and closes the output file and returns its path.
// Stopping before Start is a usage error and performs no file I/O.
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return "", ErrNotRecording
	}
	r.state = StateStopped

	r.w.Flush()
	werr := r.w.Error()
	cerr := r.file.Close()
	r.file = nil
	r.w = nil
	if werr != nil {
		return r.path, fmt.Errorf("flush %s: %w", r.path, werr)
	}
	if cerr != nil {
		return r.path, fmt.Errorf("close %s: %w", r.path, cerr)
	}
	return r.path, nil
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Count returns the number of samples recorded in the current session.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// MinMax returns the lowest and highest temperature seen in the session.
func (r *Recorder) MinMax() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minTemp, r.maxTemp
}

// Snapshot returns a copy of the chart window in arrival order.
func (r *Recorder) Snapshot() []model.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.window.Samples()
}
