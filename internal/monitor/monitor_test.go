package monitor

import (
	"encoding/csv"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TempMon/internal/device"
	"TempMon/internal/model"
	"TempMon/internal/recorder"
)

// fakeDevice replays a scripted set of lines, then either blocks until
// closed (like an idle port) or fails (like an unplugged one).
type fakeDevice struct {
	mu        sync.Mutex
	lines     []string
	failAfter bool
	closed    chan struct{}
	once      sync.Once
}

func newFakeDevice(lines ...string) *fakeDevice {
	return &fakeDevice{lines: lines, closed: make(chan struct{})}
}

func (d *fakeDevice) ReadLine(timeout time.Duration) (string, error) {
	d.mu.Lock()
	if len(d.lines) > 0 {
		line := d.lines[0]
		d.lines = d.lines[1:]
		d.mu.Unlock()
		return line, nil
	}
	d.mu.Unlock()

	if d.failAfter {
		return "", errors.New("device unplugged")
	}
	<-d.closed
	return "", errors.New("port closed")
}

func (d *fakeDevice) WriteLine(string) error { return nil }

func (d *fakeDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

// memStore collects saved session summaries.
type memStore struct {
	mu    sync.Mutex
	infos []model.SessionInfo
}

func (s *memStore) SaveSession(info model.SessionInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, info)
	return nil
}

func (s *memStore) saved() []model.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SessionInfo(nil), s.infos...)
}

func newTestMonitor(t *testing.T, dev device.Device, store SessionStore) *Monitor {
	t.Helper()
	var cfg model.Config
	cfg.Files.Folder = t.TempDir()
	cfg.ApplyDefaults()

	m := New(cfg, store, nil)
	m.openDevice = func(string, int) (device.Device, error) { return dev, nil }
	m.findPort = func() (string, error) { return "/dev/ttyFAKE", nil }
	return m
}

// drain reads events until pred says enough, or fails the test.
func drain(t *testing.T, ch <-chan Event, pred func([]Event) bool) []Event {
	t.Helper()
	var got []Event
	deadline := time.After(2 * time.Second)
	for !pred(got) {
		select {
		case e := <-ch:
			got = append(got, e)
		case <-deadline:
			t.Fatalf("timed out waiting for events, got %d so far", len(got))
		}
	}
	return got
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestMonitorRecordsValidLinesAndSkipsGarbage(t *testing.T) {
	dev := newFakeDevice("23.5\n", "abc\n", "\n", "24.0\n")
	store := &memStore{}
	m := newTestMonitor(t, dev, store)

	path, err := m.StartSession()
	require.NoError(t, err)
	assert.True(t, m.Recording())

	events := drain(t, m.Events(), func(got []Event) bool {
		return countKind(got, EventSample) == 2 && countKind(got, EventWarning) == 1
	})
	assert.Equal(t, 1, countKind(events, EventWarning), "one warning for the garbage line")

	gotPath, err := m.StopSession()
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.False(t, m.Recording())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per accepted sample")
	assert.Equal(t, "23.5", rows[1][1])
	assert.Equal(t, "", rows[1][2])
	assert.Equal(t, "24", rows[2][1])
	assert.NotEqual(t, "", rows[2][2])

	infos := store.saved()
	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].Samples)
	assert.Equal(t, 23.5, infos[0].MinTemp)
	assert.Equal(t, 24.0, infos[0].MaxTemp)
	assert.Equal(t, path, infos[0].File)
}

func TestMonitorStopBeforeStartIsUsageError(t *testing.T) {
	m := newTestMonitor(t, newFakeDevice(), &memStore{})
	_, err := m.StopSession()
	assert.ErrorIs(t, err, recorder.ErrNotRecording)
}

func TestMonitorDoubleStartIsRejected(t *testing.T) {
	m := newTestMonitor(t, newFakeDevice("20.0\n"), &memStore{})
	_, err := m.StartSession()
	require.NoError(t, err)
	defer func() { _, _ = m.StopSession() }()

	_, err = m.StartSession()
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestMonitorPortNotFound(t *testing.T) {
	m := newTestMonitor(t, newFakeDevice(), &memStore{})
	m.findPort = func() (string, error) { return "", device.ErrPortNotFound }

	_, err := m.StartSession()
	assert.ErrorIs(t, err, device.ErrPortNotFound)
	assert.False(t, m.Recording())
}

func TestMonitorPortLossEndsSession(t *testing.T) {
	dev := newFakeDevice("21.0\n")
	dev.failAfter = true
	store := &memStore{}
	m := newTestMonitor(t, dev, store)

	path, err := m.StartSession()
	require.NoError(t, err)

	events := drain(t, m.Events(), func(got []Event) bool {
		return countKind(got, EventStopped) == 1
	})
	assert.Equal(t, 1, countKind(events, EventError))
	assert.False(t, m.Recording())

	// The one accepted sample survived the abort.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.Len(t, store.saved(), 1)
	assert.Equal(t, 1, store.saved()[0].Samples)

	// Stopping again is a usage error, not a crash.
	_, err = m.StopSession()
	assert.ErrorIs(t, err, recorder.ErrNotRecording)
}

func TestMonitorPublishesToSink(t *testing.T) {
	dev := newFakeDevice("20.0\n", "20.5\n")
	var mu sync.Mutex
	var published []model.Sample

	var cfg model.Config
	cfg.Files.Folder = t.TempDir()
	cfg.ApplyDefaults()
	m := New(cfg, nil, sinkFunc(func(s model.Sample) {
		mu.Lock()
		published = append(published, s)
		mu.Unlock()
	}))
	m.openDevice = func(string, int) (device.Device, error) { return dev, nil }
	m.findPort = func() (string, error) { return "/dev/ttyFAKE", nil }

	_, err := m.StartSession()
	require.NoError(t, err)
	drain(t, m.Events(), func(got []Event) bool { return countKind(got, EventSample) == 2 })
	_, err = m.StopSession()
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, published, 2)
	assert.Equal(t, 20.0, published[0].Temperature)
}

type sinkFunc func(model.Sample)

func (f sinkFunc) Publish(s model.Sample) { f(s) }
