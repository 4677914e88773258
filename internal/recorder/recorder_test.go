package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRecorderWritesRowsWithChangeColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurement.csv")
	rec := New(100)
	base := time.Now()
	require.NoError(t, rec.Start(path, base))

	s1, err := rec.Record(20.0, base.Add(1*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), s1.ElapsedMS)
	assert.Nil(t, s1.Change, "first sample has no change")

	s2, err := rec.Record(21.0, base.Add(3*time.Second))
	require.NoError(t, err)
	require.NotNil(t, s2.Change)
	assert.InDelta(t, 0.5, *s2.Change, 1e-9) // (21-20)/2s

	s3, err := rec.Record(20.0, base.Add(4*time.Second))
	require.NoError(t, err)
	require.NotNil(t, s3.Change)
	assert.InDelta(t, -1.0, *s3.Change, 1e-9)

	got, err := rec.Stop()
	require.NoError(t, err)
	assert.Equal(t, path, got)

	rows := readRows(t, path)
	require.Len(t, rows, 4) // header + one row per accepted sample
	assert.Equal(t, []string{"Time (ms)", "Temperature", "Change"}, rows[0])
	assert.Equal(t, "1000", rows[1][0])
	assert.Equal(t, "", rows[1][2], "change column blank on first row")

	change, err := strconv.ParseFloat(rows[2][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, change, 1e-9)
}

func TestRecorderRowCountMatchesAcceptedSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurement.csv")
	rec := New(100)
	base := time.Now()
	require.NoError(t, rec.Start(path, base))

	for i := 0; i < 150; i++ {
		_, err := rec.Record(20.0+float64(i)*0.01, base.Add(time.Duration(i)*100*time.Millisecond))
		require.NoError(t, err)
	}
	assert.Equal(t, 150, rec.Count())

	_, err := rec.Stop()
	require.NoError(t, err)

	rows := readRows(t, path)
	assert.Len(t, rows, 151)

	// The chart window keeps only the most recent 100 samples.
	snap := rec.Snapshot()
	require.Len(t, snap, 100)
	assert.Equal(t, int64(5000), snap[0].ElapsedMS) // sample 51 at 100ms spacing
}

func TestRecorderElapsedIsMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurement.csv")
	rec := New(10)
	base := time.Now()
	require.NoError(t, rec.Start(path, base))

	var prev int64 = -1
	for _, offset := range []time.Duration{0, 50 * time.Millisecond, 50 * time.Millisecond, time.Second} {
		s, err := rec.Record(20, base.Add(offset))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.ElapsedMS, prev)
		prev = s.ElapsedMS
	}

	// A reading stamped before the session origin clamps to zero rather
	// than producing a negative elapsed time.
	rec2 := New(10)
	path2 := filepath.Join(t.TempDir(), "m2.csv")
	require.NoError(t, rec2.Start(path2, base))
	s, err := rec2.Record(20, base.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.ElapsedMS)
}

func TestRecorderUsageErrors(t *testing.T) {
	rec := New(10)

	_, err := rec.Record(20, time.Now())
	assert.ErrorIs(t, err, ErrNotRecording)

	_, err = rec.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)

	path := filepath.Join(t.TempDir(), "measurement.csv")
	require.NoError(t, rec.Start(path, time.Now()))
	assert.ErrorIs(t, rec.Start(path, time.Now()), ErrAlreadyRecording)

	_, err = rec.Stop()
	require.NoError(t, err)
	_, err = rec.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestRecorderRestartsAfterStop(t *testing.T) {
	dir := t.TempDir()
	rec := New(10)
	base := time.Now()

	require.NoError(t, rec.Start(filepath.Join(dir, "a.csv"), base))
	_, err := rec.Record(20, base.Add(time.Second))
	require.NoError(t, err)
	_, err = rec.Stop()
	require.NoError(t, err)

	require.NoError(t, rec.Start(filepath.Join(dir, "b.csv"), base.Add(time.Minute)))
	s, err := rec.Record(25, base.Add(time.Minute+time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), s.ElapsedMS, "elapsed origin reset")
	assert.Nil(t, s.Change, "derivative state reset across sessions")
	assert.Equal(t, 1, rec.Count())
}

func TestRecorderTracksMinMax(t *testing.T) {
	rec := New(10)
	base := time.Now()
	require.NoError(t, rec.Start(filepath.Join(t.TempDir(), "m.csv"), base))

	for i, temp := range []float64{21.0, 19.5, 24.25, 22.0} {
		_, err := rec.Record(temp, base.Add(time.Duration(i+1)*time.Second))
		require.NoError(t, err)
	}

	minT, maxT := rec.MinMax()
	assert.Equal(t, 19.5, minT)
	assert.Equal(t, 24.25, maxT)
}
