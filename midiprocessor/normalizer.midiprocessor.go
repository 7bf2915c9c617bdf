package midiprocessor

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"saxvideo/midiparser"
)

var ErrMalformedMidi = errors.New("malformed midi")

// Normalize turns decoded tracks into absolute-tick note events. Only the
// first set-tempo of the first track is honored for the whole piece.
func Normalize(parsed midiparser.ParsedMidi) (Normalized, error) {
	if len(parsed.Tracks) == 0 {
		return Normalized{}, errors.Wrap(ErrMalformedMidi, "no tracks")
	}
	if parsed.TicksPerBeat == 0 {
		return Normalized{}, errors.Wrap(ErrMalformedMidi, "zero ticks per beat")
	}

	var n = Normalized{
		TicksPerBeat: int(parsed.TicksPerBeat),
		Tempo:        DefaultTempo,
		Tracks:       make([][]NormalizedEvent, len(parsed.Tracks)),
	}
	var tempoFound bool

	for trackIndex, track := range parsed.Tracks {
		var absoluteTick int64
		var events = []NormalizedEvent{}

		for _, msg := range track.Events {
			absoluteTick += int64(msg.Delta)

			var kind EventKind
			switch {
			case msg.Kind == midiparser.KindNoteOn && msg.Velocity > 0:
				kind = NoteOn
			case msg.Kind == midiparser.KindNoteOff, msg.Kind == midiparser.KindNoteOn:
				kind = NoteOff
			case msg.Kind == midiparser.KindTempo:
				if trackIndex == 0 && !tempoFound && msg.MicrosPerBeat > 0 {
					n.Tempo = Tempo(msg.MicrosPerBeat)
					tempoFound = true
				} else {
					n.IgnoredTempos++
				}
				continue
			default:
				continue
			}

			events = append(events, NormalizedEvent{
				Track:    trackIndex,
				Seq:      len(events),
				Channel:  msg.Channel,
				Pitch:    int(msg.Pitch),
				Kind:     kind,
				Tick:     absoluteTick,
				Velocity: int(msg.Velocity),
			})
		}
		n.Tracks[trackIndex] = events
	}

	if n.IgnoredTempos > 0 {
		logrus.WithFields(logrus.Fields{
			"honored_bpm": n.Tempo.BPM(),
			"ignored":     n.IgnoredTempos,
		}).Info("tempo changes after the first are ignored")
	}

	return n, nil
}

// Merge returns all note events re-sorted by absolute tick. Equal ticks keep
// track order, then in-track order.
func (n Normalized) Merge() []NormalizedEvent {
	var merged []NormalizedEvent
	for _, track := range n.Tracks {
		merged = append(merged, track...)
	}
	slices.SortStableFunc(merged, func(a, b NormalizedEvent) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return merged
}

func (n Normalized) EventCount() int {
	var count int
	for _, track := range n.Tracks {
		count += len(track)
	}
	return count
}
