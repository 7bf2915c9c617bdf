package fingering

import (
	"fmt"
	"math/bits"
)

type KeyID int

// Declaration order is the rendering order.
const (
	Oct KeyID = iota
	EbPalm
	DPalm
	FPalm
	FrontF
	L1
	Bis
	L2
	L3
	GSharp
	LowCSharp
	LowB
	LowBb
	ESide
	CSide
	BbSide
	R1
	R2
	FSharpSide
	R3
	LowEb
	LowC

	keyCount
)

var keyNames = [keyCount]string{
	Oct:        "Oct",
	EbPalm:     "Eb_palm",
	DPalm:      "D_palm",
	FPalm:      "F_palm",
	FrontF:     "Front_f",
	L1:         "L1",
	Bis:        "Bis",
	L2:         "L2",
	L3:         "L3",
	GSharp:     "G#",
	LowCSharp:  "Low_C#",
	LowB:       "Low_B",
	LowBb:      "Low_Bb",
	ESide:      "E_side",
	CSide:      "C_side",
	BbSide:     "Bb_side",
	R1:         "R1",
	R2:         "R2",
	FSharpSide: "F#_side",
	R3:         "R3",
	LowEb:      "Low_Eb",
	LowC:       "Low_C",
}

func (k KeyID) Valid() bool {
	return k >= 0 && k < keyCount
}

func (k KeyID) String() string {
	if !k.Valid() {
		return fmt.Sprintf("KeyID(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey looks a key up by its symbolic name ("L1", "Low_Eb", ...).
func ParseKey(name string) (KeyID, bool) {
	for i, n := range keyNames {
		if n == name {
			return KeyID(i), true
		}
	}
	return 0, false
}

// Keys returns every key in declaration order.
func Keys() []KeyID {
	var all = make([]KeyID, 0, keyCount)
	for k := KeyID(0); k < keyCount; k++ {
		all = append(all, k)
	}
	return all
}

// KeySet is an immutable set of keys. Iteration is always in declaration order.
type KeySet uint32

func NewKeySet(keys ...KeyID) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k KeyID) KeySet {
	if !k.Valid() {
		panic(fmt.Sprintf("fingering: undefined key %d", int(k)))
	}
	return s | 1<<uint(k)
}

func (s KeySet) Has(k KeyID) bool {
	return k.Valid() && s&(1<<uint(k)) != 0
}

func (s KeySet) Len() int {
	return bits.OnesCount32(uint32(s))
}

func (s KeySet) Empty() bool {
	return s == 0
}

func (s KeySet) Keys() []KeyID {
	var keys = make([]KeyID, 0, s.Len())
	for k := KeyID(0); k < keyCount; k++ {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s KeySet) Strings() []string {
	var names = make([]string, 0, s.Len())
	for _, k := range s.Keys() {
		names = append(names, k.String())
	}
	return names
}
