package midiprocessor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxvideo/midiparser"
)

func buildTimeline(t *testing.T, s Settings, p midiparser.ParsedMidi) Timeline {
	t.Helper()
	n, err := Normalize(p)
	require.NoError(t, err)
	tl, err := BuildTimeline(n, s)
	require.NoError(t, err)
	return tl
}

func TestNonOverlappingPairsRoundTrip(t *testing.T) {
	// five notes, each 1.5 beats long with half a beat rest in between
	var events []midiparser.RawEvent
	for i := 0; i < 5; i++ {
		var rest uint32 = 240
		if i == 0 {
			rest = 0
		}
		events = append(events, on(rest, uint8(55+i), 100), off(720, uint8(55+i)))
	}

	s := DefaultSettings()
	tl := buildTimeline(t, s, parsedMidi(480, events))

	require.Len(t, tl.Notes, 5)
	assert.Zero(t, tl.Dropped)
	for i, n := range tl.Notes {
		assert.Equal(t, 55+i, n.Pitch)
		assert.InDelta(t, 1.5, n.DurationBeats, 1e-9)
		assert.InDelta(t, 1.5*s.PixelsPerBeat, n.Length, 1e-9)
		assert.Equal(t, int64(i*960), n.StartTick)
		if i > 0 {
			assert.Less(t, tl.Notes[i-1].StartTick, n.StartTick)
		}
	}
}

func TestSingleNoteEndToEndValues(t *testing.T) {
	s := DefaultSettings()
	tl := buildTimeline(t, s, parsedMidi(480,
		[]midiparser.RawEvent{tempo(0, 500000), on(960, 60, 100), off(1920, 60)},
	))

	require.Len(t, tl.Notes, 1)
	n := tl.Notes[0]
	assert.InDelta(t, 240.0, n.Length, 1e-9)
	assert.InDelta(t, 4.0, n.DurationBeats, 1e-9)
	assert.InDelta(t, 1.0, n.StartSeconds, 1e-9)
	assert.InDelta(t, s.SpawnBaseX+120, n.InitialX, 1e-9)

	// two beats of scrolling at 60px/beat and 2px/tick is 60 ticks, one second at 60fps
	assert.Equal(t, 60, tl.TotalFrames)
	assert.InDelta(t, 1.0, tl.TotalDuration, 1e-9)
}

func TestTempoOnlyChangesRealTime(t *testing.T) {
	s := DefaultSettings()
	events := []midiparser.RawEvent{on(200, 60, 100), off(100, 60)}

	slow := buildTimeline(t, s, parsedMidi(100, append([]midiparser.RawEvent{tempo(0, 1000000)}, events...)))
	fast := buildTimeline(t, s, parsedMidi(100, append([]midiparser.RawEvent{tempo(0, 250000)}, events...)))

	require.Len(t, slow.Notes, 1)
	require.Len(t, fast.Notes, 1)
	assert.InDelta(t, 2.0, slow.Notes[0].StartSeconds, 1e-9)
	assert.InDelta(t, 0.5, fast.Notes[0].StartSeconds, 1e-9)
	assert.Equal(t, Tempo(1000000), slow.Tempo)
	assert.Equal(t, Tempo(1000000), slow.SourceTempo)

	// pixel space depends on beats and scale only
	assert.InDelta(t, 60.0, slow.Notes[0].Length, 1e-9)
	assert.Equal(t, fast.Notes[0].Length, slow.Notes[0].Length)
	assert.Equal(t, fast.Notes[0].InitialX, slow.Notes[0].InitialX)
	assert.Equal(t, fast.TotalDuration, slow.TotalDuration)
	assert.InDelta(t, s.SpawnBaseX+120, slow.Notes[0].InitialX, 1e-9)
}

func TestScaleAppliesToOffsetAndLength(t *testing.T) {
	s := DefaultSettings()
	s.PixelsPerBeat = 120
	tl := buildTimeline(t, s, parsedMidi(480,
		[]midiparser.RawEvent{on(0, 60, 100), off(480, 60), on(0, 62, 100), off(960, 62)},
	))

	require.Len(t, tl.Notes, 2)
	first, second := tl.Notes[0], tl.Notes[1]
	assert.InDelta(t, 120.0, first.Length, 1e-9)
	assert.InDelta(t, 240.0, second.Length, 1e-9)
	assert.InDelta(t, first.InitialX+first.Length, second.InitialX, 1e-9, "back-to-back notes touch")
}

func TestUnterminatedNoteIsDropped(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{on(0, 60, 100), off(480, 60), on(0, 62, 100), on(480, 64, 100), off(480, 64)},
	))

	assert.Equal(t, 1, tl.Dropped)
	require.Len(t, tl.Notes, 2)
	for _, n := range tl.Notes {
		assert.NotEqual(t, 62, n.Pitch)
	}
}

func TestNoteOffInAnotherTrackDoesNotClose(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{on(0, 60, 100)},
		[]midiparser.RawEvent{off(480, 60)},
	))
	assert.Empty(t, tl.Notes)
	assert.Equal(t, 1, tl.Dropped)
	assert.Zero(t, tl.TotalDuration)
}

func TestOverlappingSamePitchPairsInOrder(t *testing.T) {
	// on@0, on@480, off@960, off@1440
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{on(0, 60, 100), on(480, 60, 90), off(480, 60), off(480, 60)},
	))

	require.Len(t, tl.Notes, 2)
	first, second := tl.Notes[0], tl.Notes[1]

	assert.Equal(t, int64(0), first.StartTick)
	assert.Equal(t, int64(960), first.EndTick)
	assert.Equal(t, 100, first.Velocity)

	assert.Equal(t, int64(480), second.StartTick)
	assert.Equal(t, int64(1440), second.EndTick, "second note-on must not be closed by the first note-off")
	assert.Equal(t, 90, second.Velocity)
}

func TestStrayNoteOffIgnored(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{off(0, 60), on(0, 60, 100), off(480, 60)},
	))
	require.Len(t, tl.Notes, 1)
	assert.InDelta(t, 60.0, tl.Notes[0].Length, 1e-9)
}

func TestStableOrderForEqualStarts(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480,
		[]midiparser.RawEvent{on(480, 62, 1), on(0, 60, 1), off(480, 62), off(0, 60)},
		[]midiparser.RawEvent{on(0, 70, 1), off(240, 70), on(240, 72, 1), off(480, 72)},
	))

	var pitches []int
	for _, n := range tl.Notes {
		pitches = append(pitches, n.Pitch)
	}
	// track 1's pitch 70 starts at 0; then tick 480: track 0 (62, 60) before track 1 (72)
	assert.Equal(t, []int{70, 62, 60, 72}, pitches)
}

func TestFlatDurationVariant(t *testing.T) {
	s := DefaultSettings()
	s.TempoAware = false
	tl := buildTimeline(t, s, parsedMidi(480,
		[]midiparser.RawEvent{tempo(0, 1000000), on(480, 60, 100), off(1920, 60)},
	))

	require.Len(t, tl.Notes, 1)
	assert.Equal(t, DefaultTempo, tl.Tempo)
	assert.Equal(t, Tempo(1000000), tl.SourceTempo, "the soundtrack still plays at the file tempo")
	assert.InDelta(t, s.FlatNoteLength, tl.Notes[0].Length, 1e-9)
	assert.InDelta(t, 0.5, tl.Notes[0].StartSeconds, 1e-9)
	assert.InDelta(t, 4.0, tl.Notes[0].DurationBeats, 1e-9)
}

func TestBuildTimelineValidation(t *testing.T) {
	_, err := BuildTimeline(Normalized{TicksPerBeat: 0}, DefaultSettings())
	assert.True(t, errors.Is(err, ErrMalformedMidi))

	s := DefaultSettings()
	s.ScrollSpeed = 0
	_, err = BuildTimeline(Normalized{TicksPerBeat: 480, Tempo: DefaultTempo}, s)
	assert.Error(t, err)
}

func TestEmptyTimeline(t *testing.T) {
	tl := buildTimeline(t, DefaultSettings(), parsedMidi(480, []midiparser.RawEvent{other(0)}))
	assert.Empty(t, tl.Notes)
	assert.Zero(t, tl.TotalDuration)
	assert.Zero(t, tl.TotalFrames)
}

func TestPrepareMidiPropagatesMalformed(t *testing.T) {
	_, err := PrepareMidi(midiparser.ParsedMidi{}, DefaultSettings())
	assert.True(t, errors.Is(err, ErrMalformedMidi))
}
