package midiprocessor

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"saxvideo/midiparser"
)

func PrepareMidi(parsed midiparser.ParsedMidi, s Settings) (Timeline, error) {
	normalized, err := Normalize(parsed)
	if err != nil {
		return Timeline{}, err
	}

	tl, err := BuildTimeline(normalized, s)
	if err != nil {
		return Timeline{}, err
	}

	logrus.WithFields(logrus.Fields{
		"bpm":              tl.Tempo.BPM(),
		"seconds_per_beat": tl.Tempo.SecondsPerBeat(),
		"ticks_per_beat":   tl.TicksPerBeat,
		"events":           normalized.EventCount(),
		"notes":            len(tl.Notes),
		"dropped":          tl.Dropped,
		"duration":         tl.TotalDuration,
	}).Info("timeline built")

	return tl, nil
}

// LoadFile reads, normalizes and schedules a MIDI file.
func LoadFile(path string, s Settings) (Timeline, error) {
	parsed, err := midiparser.ParseFile(path)
	if err != nil {
		return Timeline{}, err
	}
	logrus.WithField("file", path).Debugf("parsed %s", parsed)

	tl, err := PrepareMidi(parsed, s)
	if err != nil {
		return Timeline{}, errors.Wrapf(err, "preparing %s", path)
	}
	return tl, nil
}

// LoadEvents reads and normalizes a MIDI file without scheduling it.
func LoadEvents(path string) (Normalized, error) {
	parsed, err := midiparser.ParseFile(path)
	if err != nil {
		return Normalized{}, err
	}
	n, err := Normalize(parsed)
	if err != nil {
		return Normalized{}, errors.Wrapf(err, "normalizing %s", path)
	}
	return n, nil
}
