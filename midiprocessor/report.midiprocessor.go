package midiprocessor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"saxvideo/fingering"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteReport prints the tempo followed by one line per scheduled note.
func (tl Timeline) WriteReport(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Tempo: %s BPM\n", formatFloat(tl.Tempo.BPM()))
	fmt.Fprintf(&b, "Seconds per beat: %s\n", formatFloat(tl.Tempo.SecondsPerBeat()))

	for _, n := range tl.Notes {
		var suffix = ""
		if !fingering.InRange(n.Pitch) {
			suffix = " (no fingering)"
		}
		fmt.Fprintf(&b, "Note %d %s: start = beat %s (%.3fs), duration = %s beats, length = %s pixels%s\n",
			n.Pitch, fingering.NoteName(n.Pitch), formatFloat(n.StartBeats(tl.TicksPerBeat)), n.StartSeconds,
			formatFloat(n.DurationBeats), formatFloat(n.Length), suffix)
	}

	fmt.Fprintf(&b, "Notes: %d, dropped: %d, duration: %.3fs, frames: %d\n",
		len(tl.Notes), tl.Dropped, tl.TotalDuration, tl.TotalFrames)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteEvents prints every note event of n in playback order.
func (n Normalized) WriteEvents(w io.Writer) error {
	var b strings.Builder
	for _, ev := range n.Merge() {
		fmt.Fprintf(&b, "%8d  track %d  %-3s %3d %-8s velocity %d\n",
			ev.Tick, ev.Track, ev.Kind, ev.Pitch, fingering.NoteName(ev.Pitch), ev.Velocity)
	}
	fmt.Fprintf(&b, "Events: %d\n", n.EventCount())

	_, err := io.WriteString(w, b.String())
	return err
}
