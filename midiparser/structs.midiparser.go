package midiparser

type MessageKind uint8

const (
	KindOther MessageKind = iota
	KindNoteOn
	KindNoteOff
	KindTempo
)

func (k MessageKind) String() string {
	switch k {
	case KindNoteOn:
		return "note_on"
	case KindNoteOff:
		return "note_off"
	case KindTempo:
		return "set_tempo"
	}
	return "other"
}

// RawEvent is one decoded track message with its delta time in ticks.
// A note-on with velocity 0 keeps KindNoteOn; interpreting it is left to the
// caller.
type RawEvent struct {
	Delta         uint32      `json:"delta"`
	Kind          MessageKind `json:"kind"`
	Channel       uint8       `json:"channel"`
	Pitch         uint8       `json:"pitch"`
	Velocity      uint8       `json:"velocity"`
	MicrosPerBeat uint32      `json:"micros_per_beat,omitempty"`
}

type Track struct {
	Name   string     `json:"name"`
	Events []RawEvent `json:"events"`
}

type ParsedMidi struct {
	Format       uint16  `json:"format"`
	TicksPerBeat uint16  `json:"ticks_per_beat"`
	Tracks       []Track `json:"tracks"`
}
