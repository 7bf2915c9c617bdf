package midiprocessor

import (
	"cmp"
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Settings struct {
	PixelsPerBeat float64
	// ScrollSpeed is in pixels per tick.
	ScrollSpeed float64
	FPS         int
	// SpawnBaseX anchors InitialX to the right of the visible area.
	SpawnBaseX float64
	// TempoAware sizes notes by their real duration. When false the file's
	// tempo is ignored and every note is FlatNoteLength pixels long.
	TempoAware     bool
	FlatNoteLength float64
}

func DefaultSettings() Settings {
	return Settings{
		PixelsPerBeat:  60,
		ScrollSpeed:    2,
		FPS:            60,
		SpawnBaseX:     1600 + 200,
		TempoAware:     true,
		FlatNoteLength: 60,
	}
}

func (s Settings) Validate() error {
	if s.PixelsPerBeat <= 0 {
		return errors.Errorf("pixels per beat must be positive, got %v", s.PixelsPerBeat)
	}
	if s.ScrollSpeed <= 0 {
		return errors.Errorf("scroll speed must be positive, got %v", s.ScrollSpeed)
	}
	if s.FPS <= 0 {
		return errors.Errorf("fps must be positive, got %d", s.FPS)
	}
	if !s.TempoAware && s.FlatNoteLength <= 0 {
		return errors.Errorf("flat note length must be positive, got %v", s.FlatNoteLength)
	}
	return nil
}

// BuildTimeline pairs note-ons with note-offs and places the resulting notes
// in pixel space. Each note-off closes the earliest still-open note-on of the
// same pitch on the same track; note-ons left open at the end of their track
// are dropped.
func BuildTimeline(n Normalized, s Settings) (Timeline, error) {
	if n.TicksPerBeat <= 0 {
		return Timeline{}, errors.Wrap(ErrMalformedMidi, "zero ticks per beat")
	}
	if err := s.Validate(); err != nil {
		return Timeline{}, err
	}

	var source = n.Tempo
	if source == 0 {
		source = DefaultTempo
	}
	var tempo = source
	if !s.TempoAware {
		tempo = DefaultTempo
	}

	var tl = Timeline{
		Notes:        []ScheduledNote{},
		TicksPerBeat: n.TicksPerBeat,
		Tempo:        tempo,
		SourceTempo:  source,
	}
	var tpb = float64(n.TicksPerBeat)

	for trackIndex, events := range n.Tracks {
		var open = map[int][]NormalizedEvent{}

		for _, ev := range events {
			var key = ev.Pitch
			switch ev.Kind {
			case NoteOn:
				open[key] = append(open[key], ev)
			case NoteOff:
				queue := open[key]
				if len(queue) == 0 {
					logrus.WithFields(logrus.Fields{
						"track": trackIndex,
						"pitch": ev.Pitch,
						"tick":  ev.Tick,
					}).Debug("note off without a matching note on")
					continue
				}
				on := queue[0]
				open[key] = queue[1:]
				tl.Notes = append(tl.Notes, scheduleNote(on, ev.Tick, tpb, tempo, s))
			}
		}

		for _, queue := range open {
			for _, on := range queue {
				tl.Dropped++
				logrus.WithFields(logrus.Fields{
					"track": trackIndex,
					"pitch": on.Pitch,
					"tick":  on.Tick,
				}).Warn("dropping note on without a matching note off")
			}
		}
	}

	slices.SortStableFunc(tl.Notes, func(a, b ScheduledNote) int {
		if c := cmp.Compare(a.StartTick, b.StartTick); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Track, b.Track); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	if len(tl.Notes) > 0 {
		var maxStart int64
		for _, note := range tl.Notes {
			maxStart = max(maxStart, note.StartTick)
		}
		var scrollTicks = float64(maxStart) / tpb * s.PixelsPerBeat / s.ScrollSpeed
		tl.TotalFrames = int(math.Ceil(scrollTicks))
		tl.TotalDuration = scrollTicks / float64(s.FPS)
	}

	return tl, nil
}

func scheduleNote(on NormalizedEvent, endTick int64, tpb float64, tempo Tempo, s Settings) ScheduledNote {
	var startBeats = float64(on.Tick) / tpb
	var durationBeats = float64(endTick-on.Tick) / tpb

	var length = durationBeats * s.PixelsPerBeat
	if !s.TempoAware {
		length = s.FlatNoteLength
	}

	return ScheduledNote{
		Pitch:         on.Pitch,
		Velocity:      on.Velocity,
		Track:         on.Track,
		StartTick:     on.Tick,
		EndTick:       endTick,
		DurationBeats: durationBeats,
		StartSeconds:  startBeats * tempo.SecondsPerBeat(),
		Length:        length,
		InitialX:      s.SpawnBaseX + startBeats*s.PixelsPerBeat,
		seq:           on.Seq,
	}
}
