package fingering

import "fmt"

// LaneOffset is added to a key's chart y position to get its lane centre.
const LaneOffset float64 = 40

type Point struct {
	X float64
	Y float64
}

type Key struct {
	ID       KeyID
	Label    string
	Position Point
	Radius   float64
	LaneY    float64
}

var keyLayout [keyCount]Key

func init() {
	var base = [keyCount]struct {
		label  string
		x, y   float64
		radius float64
	}{
		Oct: {"Oct", 60, 20, 5},

		EbPalm: {"Eb", 90, 40, 5},
		DPalm:  {"D", 80, 60, 5},
		FPalm:  {"F", 70, 80, 5},

		FrontF: {"Front F", 60, 100, 5},
		L1:     {"L1", 60, 130, 10},
		Bis:    {"Bis", 60, 160, 5},
		L2:     {"L2", 60, 190, 10},
		L3:     {"L3", 60, 250, 10},

		GSharp:    {"G#", 80, 280, 5},
		LowCSharp: {"_C#", 70, 300, 5},
		LowB:      {"_B", 90, 320, 5},
		LowBb:     {"_Bb", 80, 340, 5},

		ESide:  {"E", 20, 380, 5},
		CSide:  {"C", 20, 400, 5},
		BbSide: {"Bb", 20, 420, 5},

		R1:         {"R1", 60, 470, 10},
		R2:         {"R2", 60, 510, 10},
		FSharpSide: {"F#", 20, 560, 5},
		R3:         {"R3", 60, 590, 10},

		LowEb: {"_Eb", 20, 620, 5},
		LowC:  {"_C", 20, 640, 5},
	}

	for i, b := range base {
		keyLayout[i] = Key{
			ID:       KeyID(i),
			Label:    b.label,
			Position: Point{X: b.x, Y: b.y},
			Radius:   b.radius,
			LaneY:    b.y + LaneOffset,
		}
	}
}

// Layout returns the display entry for k. It panics for an undefined key.
func Layout(k KeyID) Key {
	if !k.Valid() {
		panic(fmt.Sprintf("fingering: undefined key %d", int(k)))
	}
	return keyLayout[k]
}

// LaneFor returns the vertical centre of k's lane in the scrolling view.
func LaneFor(k KeyID) float64 {
	return Layout(k).LaneY
}
