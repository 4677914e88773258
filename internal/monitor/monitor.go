// Package monitor contains the acquisition runtime: it wires the serial
// device to the session recorder and fans accepted samples out to the UI
// and the live dashboard.
package monitor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"TempMon/internal/device"
	"TempMon/internal/model"
	"TempMon/internal/parser"
	"TempMon/internal/recorder"
	"TempMon/internal/util"
)

// EventKind discriminates events on the monitor's event channel.
type EventKind int

const (
	// EventSample carries one accepted, recorded sample.
	EventSample EventKind = iota
	// EventWarning carries a non-fatal problem (e.g. a malformed line).
	EventWarning
	// EventError carries a session-terminating failure.
	EventError
	// EventStopped reports that the session ended; File holds the output path.
	EventStopped
)

// Event is the single handoff type between the read goroutine and the UI.
type Event struct {
	Kind   EventKind
	Sample model.Sample
	Err    error
	File   string
}

// SessionStore persists finished session summaries.
type SessionStore interface {
	SaveSession(model.SessionInfo) error
}

// LiveSink receives every accepted sample, e.g. the dashboard hub.
type LiveSink interface {
	Publish(model.Sample)
}

// ErrSessionActive is returned when Start is called while recording.
var ErrSessionActive = errors.New("monitor: session already running")

// Monitor manages recording sessions over a single sensor device.
// One background goroutine reads the port; everything else reacts to the
// event channel.
type Monitor struct {
	cfg    model.Config
	rec    *recorder.Recorder
	store  SessionStore
	sink   LiveSink
	events chan Event

	mu        sync.Mutex
	dev       device.Device
	stop      chan struct{}
	done      chan struct{}
	running   bool
	startedAt time.Time
	sessionID string

	// Indirections for tests; default to the real serial stack.
	openDevice func(dev string, baud int) (device.Device, error)
	findPort   func() (string, error)
}

// New creates a Monitor. store and sink may be nil.
func New(cfg model.Config, store SessionStore, sink LiveSink) *Monitor {
	return &Monitor{
		cfg:    cfg,
		rec:    recorder.New(cfg.Chart.Window),
		store:  store,
		sink:   sink,
		events: make(chan Event, 256),
		openDevice: func(dev string, baud int) (device.Device, error) {
			return device.NewSerialDevice(dev, baud)
		},
		findPort: device.FindSensorPort,
	}
}

// Events returns the channel the UI consumes.
func (m *Monitor) Events() <-chan Event { return m.events }

// Recording reports whether a session is active.
func (m *Monitor) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Snapshot returns the current chart window.
func (m *Monitor) Snapshot() []model.Sample { return m.rec.Snapshot() }

// Folder returns the measurements folder.
func (m *Monitor) Folder() string { return m.cfg.Files.Folder }

// StartSession detects and opens the sensor port, creates a timestamped
// measurement file and starts the background read loop. Returns the output
// file path.
func (m *Monitor) StartSession() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return "", ErrSessionActive
	}

	port := m.cfg.Serial.Device
	if port == "" {
		p, err := m.findPort()
		if err != nil {
			return "", err
		}
		port = p
	}

	dev, err := m.openDevice(port, m.cfg.Serial.Baud)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", port, err)
	}

	if err := os.MkdirAll(m.cfg.Files.Folder, 0o755); err != nil {
		_ = dev.Close()
		return "", fmt.Errorf("create measurements folder: %w", err)
	}

	now := time.Now()
	id := now.Format("20060102_150405")
	path := filepath.Join(m.cfg.Files.Folder, "measurement_"+id+".csv")
	if err := m.rec.Start(path, now); err != nil {
		_ = dev.Close()
		return "", err
	}

	m.dev = dev
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.running = true
	m.startedAt = now
	m.sessionID = id

	util.Info("[monitor] recording on %s -> %s", port, path)
	go m.loop(dev, m.stop, m.done)
	return path, nil
}

// StopSession ends the active session: it unblocks the reader by closing
// the port, waits for the loop to exit, then flushes and closes the file.
// Stopping with no active session is a usage error.
func (m *Monitor) StopSession() (string, error) {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return "", recorder.ErrNotRecording
	}
	m.running = false
	dev, stop, done := m.dev, m.stop, m.done
	m.dev = nil
	m.mu.Unlock()

	close(stop)
	_ = dev.Close()
	<-done

	path, err := m.rec.Stop()
	m.saveSession(path)
	m.emit(Event{Kind: EventStopped, File: path})
	util.Info("[monitor] session stopped, wrote %s", path)
	return path, err
}

// loop is the single background read loop for one session.
func (m *Monitor) loop(dev device.Device, stop chan struct{}, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		line, err := dev.ReadLine(0)
		if err != nil {
			select {
			case <-stop:
				return
			default:
			}
			m.fail(fmt.Errorf("serial link lost: %w", err))
			return
		}

		temp, perr := parser.Temperature(line)
		if perr != nil {
			if errors.Is(perr, parser.ErrEmptyLine) {
				continue
			}
			util.Warn("[monitor] skipping line: %v", perr)
			m.emit(Event{Kind: EventWarning, Err: perr})
			continue
		}

		s, rerr := m.rec.Record(temp, time.Now())
		if rerr != nil {
			select {
			case <-stop:
				return
			default:
			}
			m.fail(fmt.Errorf("write sample: %w", rerr))
			return
		}

		if m.sink != nil {
			m.sink.Publish(s)
		}
		m.emit(Event{Kind: EventSample, Sample: s})
	}
}

// fail ends the session from inside the read loop after a terminal error
// (port unplugged, disk full). The file is flushed and closed so nothing
// already accepted is lost.
func (m *Monitor) fail(cause error) {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	dev := m.dev
	m.dev = nil
	m.mu.Unlock()

	if dev != nil {
		_ = dev.Close()
	}
	path, _ := m.rec.Stop()
	m.saveSession(path)
	util.Error("[monitor] session aborted: %v", cause)
	m.emit(Event{Kind: EventError, Err: cause})
	m.emit(Event{Kind: EventStopped, File: path, Err: cause})
}

// saveSession persists the finished session summary, if a store is wired.
func (m *Monitor) saveSession(path string) {
	if m.store == nil {
		return
	}
	minTemp, maxTemp := m.rec.MinMax()
	info := model.SessionInfo{
		ID:        m.sessionID,
		File:      path,
		StartedAt: m.startedAt.Format(time.RFC3339),
		EndedAt:   time.Now().Format(time.RFC3339),
		Samples:   m.rec.Count(),
		MinTemp:   minTemp,
		MaxTemp:   maxTemp,
	}
	if err := m.store.SaveSession(info); err != nil {
		util.Error("[monitor] save session: %v", err)
	}
}

// emit delivers an event without ever blocking the read loop.
func (m *Monitor) emit(e Event) {
	select {
	case m.events <- e:
	default:
		util.Warn("[monitor] event queue full, drop")
	}
}
