package midiprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeMidiFile(t *testing.T) string {
	t.Helper()
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(60))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 62, 100))
	tr.Add(480, midi.NoteOff(0, 62))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))

	path := filepath.Join(t.TempDir(), "scale.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = s.WriteTo(f)
	require.NoError(t, err)
	return path
}

func TestLoadFile(t *testing.T) {
	tl, err := LoadFile(writeMidiFile(t), DefaultSettings())
	require.NoError(t, err)

	require.Len(t, tl.Notes, 2)
	assert.Equal(t, Tempo(1000000), tl.Tempo)
	assert.InDelta(t, 1.0, tl.Notes[1].StartSeconds, 1e-9)
	assert.InDelta(t, tl.Notes[0].InitialX+tl.Notes[0].Length, tl.Notes[1].InitialX, 1e-9)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.mid"), DefaultSettings())
	assert.Error(t, err)
}

func TestLoadEvents(t *testing.T) {
	n, err := LoadEvents(writeMidiFile(t))
	require.NoError(t, err)

	assert.Equal(t, 480, n.TicksPerBeat)
	assert.Equal(t, 4, n.EventCount())

	merged := n.Merge()
	require.Len(t, merged, 4)
	assert.Equal(t, NoteOn, merged[0].Kind)
	assert.Equal(t, int64(960), merged[3].Tick)
}
