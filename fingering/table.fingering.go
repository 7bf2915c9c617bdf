package fingering

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	LowestPitch  = 49
	HighestPitch = 80
)

var fingerings = map[int]KeySet{
	// low register
	49: NewKeySet(L1, L2, L3, R1, R2, R3, LowBb),
	50: NewKeySet(L1, L2, L3, R1, R2, R3, LowB, CSide),
	51: NewKeySet(L1, L2, L3, R1, R2, R3, LowC),
	52: NewKeySet(L1, L2, L3, R1, R2, R3, LowC, CSide),
	53: NewKeySet(L1, L2, L3, R1, R2, R3),
	54: NewKeySet(L1, L2, L3, R1, R2, R3, LowEb),
	55: NewKeySet(L1, L2, L3, R1, R2),
	56: NewKeySet(L1, L2, L3, R1),
	57: NewKeySet(L1, L2, L3, R2),
	58: NewKeySet(L1, L2, L3),
	59: NewKeySet(L1, L2, L3, GSharp),
	60: NewKeySet(L1, L2),
	61: NewKeySet(L1, Bis),
	62: NewKeySet(L1),
	63: NewKeySet(L2),
	64: NewKeySet(),

	// middle and high register, octave key
	65: NewKeySet(Oct, L1, L2, L3, R1, R2, R3),
	66: NewKeySet(Oct, L1, L2, L3, R1, R2, R3, LowEb),
	67: NewKeySet(Oct, L1, L2, L3, R1, R2),
	68: NewKeySet(Oct, L1, L2, L3, R1),
	69: NewKeySet(Oct, L1, L2, L3, R2),
	70: NewKeySet(Oct, L1, L2, L3),
	71: NewKeySet(Oct, L1, L2, L3, GSharp),
	72: NewKeySet(Oct, L1, L2),
	73: NewKeySet(Oct, L1, Bis),
	74: NewKeySet(Oct, L1),
	75: NewKeySet(Oct, L2),
	76: NewKeySet(Oct),
	77: NewKeySet(Oct, DPalm),
	78: NewKeySet(Oct, DPalm, EbPalm),
	79: NewKeySet(Oct, DPalm, EbPalm, ESide),
	80: NewKeySet(Oct, DPalm, EbPalm, FPalm, ESide),
}

// Names are pitch-class labels as shown on the chart. They are not the
// transposed written names; 78 is spelled "Eb6" while its neighbours use sharps.
var noteNames = map[int]string{
	49: "A#3", 50: "B3", 51: "C4", 52: "C#4", 53: "D4", 54: "D#4", 55: "E4", 56: "F4",
	57: "F#4", 58: "G4", 59: "G#4", 60: "A4", 61: "A#4", 62: "B4", 63: "C5", 64: "C#5",
	65: "D5", 66: "D#5", 67: "E5", 68: "F5", 69: "F#5", 70: "G5", 71: "G#5", 72: "A5",
	73: "A#5", 74: "B5", 75: "C6", 76: "C#6", 77: "D6", 78: "Eb6", 79: "E6", 80: "F6",
}

// Pressed returns the keys held down for pitch. Unknown pitches press nothing.
func Pressed(pitch int) KeySet {
	return fingerings[pitch]
}

// Fingering returns the keys for pitch in declaration order.
func Fingering(pitch int) []KeyID {
	return Pressed(pitch).Keys()
}

func NoteName(pitch int) string {
	if name, ok := noteNames[pitch]; ok {
		return name
	}
	return fmt.Sprintf("Note %d", pitch)
}

// InRange reports whether pitch has an entry in the fingering table.
func InRange(pitch int) bool {
	_, ok := fingerings[pitch]
	return ok
}

// Validate checks the static tables against each other.
func Validate() error {
	for pitch := LowestPitch; pitch <= HighestPitch; pitch++ {
		set, ok := fingerings[pitch]
		if !ok {
			return errors.Errorf("pitch %d has no fingering", pitch)
		}
		if _, ok := noteNames[pitch]; !ok {
			return errors.Errorf("pitch %d has no name", pitch)
		}
		for _, k := range set.Keys() {
			if Layout(k).ID != k {
				return errors.Errorf("pitch %d uses key %s missing from the layout", pitch, k)
			}
		}
	}
	if len(fingerings) != HighestPitch-LowestPitch+1 {
		return errors.Errorf("fingering table has %d entries outside %d-%d", len(fingerings)-(HighestPitch-LowestPitch+1), LowestPitch, HighestPitch)
	}
	return nil
}
