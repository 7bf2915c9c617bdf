package scheduler

import (
	"fmt"

	"github.com/pkg/errors"

	"saxvideo/midiprocessor"
)

var ErrNotIdle = errors.New("scheduler already started")

type State int

const (
	Idle State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type RetirePolicy int

const (
	// RetireOffscreen keeps a note until its trailing edge leaves the view.
	RetireOffscreen RetirePolicy = iota
	// RetireAtPlayline drops a note as soon as its leading edge is struck.
	RetireAtPlayline
)

func (p RetirePolicy) String() string {
	if p == RetireAtPlayline {
		return "playline"
	}
	return "offscreen"
}

func ParseRetirePolicy(s string) (RetirePolicy, error) {
	switch s {
	case "", "offscreen":
		return RetireOffscreen, nil
	case "playline":
		return RetireAtPlayline, nil
	}
	return RetireOffscreen, errors.Errorf("unknown retire policy %q", s)
}

type ActiveNote struct {
	midiprocessor.ScheduledNote
	X float64
	// Seq orders activations; a higher value was activated later.
	Seq int
}

func (n ActiveNote) TrailingX() float64 {
	return n.X + n.Length
}

type Config struct {
	FPS         int
	ScrollSpeed float64
	SpawnX      float64
	PlaylineX   float64
	LeftEdge    float64
	Policy      RetirePolicy
	// SafetyMargin is added to the timeline's estimated duration, in seconds.
	SafetyMargin float64
}

func DefaultConfig() Config {
	return Config{
		FPS:          60,
		ScrollSpeed:  2,
		SpawnX:       1600,
		PlaylineX:    400,
		LeftEdge:     0,
		Policy:       RetireOffscreen,
		SafetyMargin: 30,
	}
}
