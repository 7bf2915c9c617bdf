package midiparser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrUnsupportedTimeFormat is returned for SMPTE-timed files, which carry no
// ticks-per-beat resolution.
var ErrUnsupportedTimeFormat = errors.New("unsupported midi time format")

func ParseFile(path string) (ParsedMidi, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return ParsedMidi{}, errors.Wrap(err, "reading midi file")
	}
	parsed, err := Parse(bytes.NewReader(dat))
	if err != nil {
		return ParsedMidi{}, errors.Wrapf(err, "parsing %s", path)
	}
	return parsed, nil
}

// Parse decodes a standard MIDI file into its post-decode event shape.
func Parse(r io.Reader) (parsed ParsedMidi, e error) {
	// smf can panic on truncated input
	defer func() {
		if rec := recover(); rec != nil {
			parsed = ParsedMidi{}
			e = errors.Errorf("decoder panic: %v", rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return ParsedMidi{}, errors.Wrap(err, "decoding smf")
	}
	return FromSMF(s)
}

func FromSMF(s *smf.SMF) (ParsedMidi, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return ParsedMidi{}, errors.Wrapf(ErrUnsupportedTimeFormat, "%v", s.TimeFormat)
	}

	var parsed = ParsedMidi{
		Format:       s.Format(),
		TicksPerBeat: ticks.Resolution(),
		Tracks:       make([]Track, 0, len(s.Tracks)),
	}

	for trackIndex, track := range s.Tracks {
		var t = Track{Events: make([]RawEvent, 0, len(track))}
		for _, ev := range track {
			t.Events = append(t.Events, decodeEvent(ev, &t))
		}
		logrus.WithFields(logrus.Fields{
			"track":  trackIndex,
			"name":   t.Name,
			"events": len(t.Events),
		}).Debug("decoded track")
		parsed.Tracks = append(parsed.Tracks, t)
	}

	return parsed, nil
}

func decodeEvent(ev smf.Event, t *Track) RawEvent {
	var raw = RawEvent{Delta: ev.Delta, Kind: KindOther}
	var channel, key, velocity uint8
	var bpm float64
	var name string

	switch {
	case ev.Message.GetNoteOn(&channel, &key, &velocity):
		raw.Kind = KindNoteOn
	case ev.Message.GetNoteOff(&channel, &key, &velocity):
		raw.Kind = KindNoteOff
	case ev.Message.GetMetaTempo(&bpm):
		if bpm > 0 {
			raw.Kind = KindTempo
			raw.MicrosPerBeat = uint32(math.Round(60000000 / bpm))
		}
		return raw
	case ev.Message.GetMetaTrackName(&name):
		if t.Name == "" {
			t.Name = name
		}
		return raw
	default:
		return raw
	}

	raw.Channel = channel
	raw.Pitch = key
	raw.Velocity = velocity
	return raw
}

func (p ParsedMidi) String() string {
	var events int
	for _, t := range p.Tracks {
		events += len(t.Events)
	}
	return fmt.Sprintf("format %d, %d ticks/beat, %d tracks, %d events", p.Format, p.TicksPerBeat, len(p.Tracks), events)
}
