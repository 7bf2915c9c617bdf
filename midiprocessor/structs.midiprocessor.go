package midiprocessor

import "fmt"

// DefaultTempo is 120 BPM in microseconds per quarter note.
const DefaultTempo Tempo = 500000

type Tempo uint32

func (t Tempo) SecondsPerBeat() float64 {
	return float64(t) / 1000000
}

func (t Tempo) BPM() float64 {
	if t == 0 {
		return 0
	}
	return 60000000 / float64(t)
}

type EventKind uint8

const (
	NoteOn EventKind = iota + 1
	NoteOff
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "on"
	case NoteOff:
		return "off"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

type NormalizedEvent struct {
	Track    int
	Seq      int // position within the track's note events
	Channel  uint8
	Pitch    int
	Kind     EventKind
	Tick     int64
	Velocity int
}

type Normalized struct {
	TicksPerBeat int
	Tempo        Tempo
	// Tracks[i] holds track i's note events in non-decreasing tick order.
	Tracks [][]NormalizedEvent
	// IgnoredTempos counts set-tempo events after the honored one.
	IgnoredTempos int
}

type ScheduledNote struct {
	Pitch         int
	Velocity      int
	Track         int
	StartTick     int64
	EndTick       int64
	DurationBeats float64
	StartSeconds  float64
	// Length is the visual length in pixels.
	Length   float64
	InitialX float64

	seq int
}

func (n ScheduledNote) StartBeats(ticksPerBeat int) float64 {
	return float64(n.StartTick) / float64(ticksPerBeat)
}

type Timeline struct {
	Notes        []ScheduledNote
	TicksPerBeat int
	Tempo        Tempo
	// SourceTempo is the file's own tempo, which a synthesized soundtrack
	// plays at even when Tempo falls back to the default.
	SourceTempo Tempo
	// TotalDuration is the scroll time in seconds until the last note's start
	// has travelled from its InitialX to the spawn base.
	TotalDuration float64
	TotalFrames   int
	// Dropped counts note-ons that never received a matching note-off.
	Dropped int
}
