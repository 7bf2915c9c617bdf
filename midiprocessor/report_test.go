package midiprocessor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxvideo/midiparser"
)

func TestWriteReport(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{tempo(0, 500000), on(0, 60, 100), off(1920, 60), on(0, 90, 100), off(240, 90)},
	))

	var b strings.Builder
	require.NoError(t, tl.WriteReport(&b))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Tempo: 120 BPM", lines[0])
	assert.Equal(t, "Seconds per beat: 0.5", lines[1])
	assert.Equal(t, "Note 60 A4: start = beat 0 (0.000s), duration = 4 beats, length = 240 pixels", lines[2])
	assert.Equal(t, "Note 90 Note 90: start = beat 4 (2.000s), duration = 0.5 beats, length = 30 pixels (no fingering)", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "Notes: 2, dropped: 0"))
}

func TestWriteEvents(t *testing.T) {
	n, err := Normalize(parsedMidi(96,
		[]midiparser.RawEvent{on(100, 60, 90), off(100, 60)},
		[]midiparser.RawEvent{on(50, 62, 80), off(50, 62)},
	))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, n.WriteEvents(&b))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "      50  track 1  on   62 B4       velocity 80", lines[0])
	assert.Equal(t, "     100  track 0  on   60 A4       velocity 90", lines[1])
	assert.Equal(t, "     100  track 1  off  62 B4       velocity 0", lines[2])
	assert.Equal(t, "Events: 4", lines[4])
}
