package scheduler

import (
	"math"

	"github.com/sirupsen/logrus"

	"saxvideo/midiprocessor"
)

// Scheduler advances a virtual clock over a timeline. It is not safe for
// concurrent use; one loop owns it and calls Tick once per frame.
type Scheduler struct {
	cfg      Config
	notes    []midiprocessor.ScheduledNote
	deadline float64

	state   State
	next    int
	active  []ActiveNote
	clock   float64
	frame   int
	seq     int
	current ActiveNote
	has     bool
	timeout bool
}

func New(tl midiprocessor.Timeline, cfg Config) *Scheduler {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	if cfg.ScrollSpeed <= 0 {
		cfg.ScrollSpeed = DefaultConfig().ScrollSpeed
	}
	return &Scheduler{
		cfg:      cfg,
		notes:    tl.Notes,
		deadline: estimateDuration(tl, cfg) + cfg.SafetyMargin,
	}
}

// estimateDuration is the clock time at which the last trailing edge clears
// the left edge, or the timeline's own estimate when that is later. Notes
// with a non-finite extent are left out.
func estimateDuration(tl midiprocessor.Timeline, cfg Config) float64 {
	var frames float64
	for _, n := range tl.Notes {
		f := (n.InitialX + n.Length - cfg.LeftEdge) / cfg.ScrollSpeed
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		frames = max(frames, f)
	}
	return max(tl.TotalDuration, frames/float64(cfg.FPS))
}

// position is where n sits after frame scroll steps.
func (s *Scheduler) position(n midiprocessor.ScheduledNote, frame int) float64 {
	return n.InitialX - float64(frame)*s.cfg.ScrollSpeed
}

func (s *Scheduler) Start() error {
	if s.state != Idle {
		return ErrNotIdle
	}
	s.state = Running
	s.clock = 0
	s.frame = 0
	s.next = 0
	s.active = s.active[:0]
	return nil
}

// Tick runs one frame: advance the clock, scroll every note, promote the
// ones that reached the spawn edge, retire finished ones, then resolve the
// current note. A note's position is always InitialX minus the distance
// scrolled so far, so start offsets and lengths stay on one pixel scale.
func (s *Scheduler) Tick() State {
	if s.state != Running {
		return s.state
	}

	s.frame++
	s.clock = float64(s.frame) / float64(s.cfg.FPS)

	for s.next < len(s.notes) && s.position(s.notes[s.next], s.frame) <= s.cfg.SpawnX {
		s.seq++
		s.active = append(s.active, ActiveNote{
			ScheduledNote: s.notes[s.next],
			Seq:           s.seq,
		})
		s.next++
	}

	var kept = s.active[:0]
	var candidate ActiveNote
	var found bool

	for _, n := range s.active {
		n.X = s.position(n.ScheduledNote, s.frame)

		if s.crossesPlayline(n) && (!found || n.Seq > candidate.Seq) {
			candidate = n
			found = true
		}
		if !s.retired(n) {
			kept = append(kept, n)
		}
	}
	s.active = kept

	if found {
		s.current = candidate
		s.has = true
	}

	if s.next >= len(s.notes) && len(s.active) == 0 {
		s.state = Finished
	} else if s.clock > s.deadline {
		s.timeout = true
		s.state = Finished
		logrus.WithFields(logrus.Fields{
			"clock":   s.clock,
			"pending": len(s.notes) - s.next,
			"active":  len(s.active),
		}).Warn("playback stopped by safety timeout")
	}

	return s.state
}

// crossesPlayline reports whether n's span touched the playline during this
// tick's movement. Under RetireAtPlayline any note at or past the playline is
// being retired on this very tick, so it is the one struck.
func (s *Scheduler) crossesPlayline(n ActiveNote) bool {
	if n.X > s.cfg.PlaylineX {
		return false
	}
	if s.cfg.Policy == RetireAtPlayline {
		return true
	}
	return n.TrailingX()+s.cfg.ScrollSpeed >= s.cfg.PlaylineX
}

func (s *Scheduler) retired(n ActiveNote) bool {
	if s.cfg.Policy == RetireAtPlayline {
		return n.X <= s.cfg.PlaylineX
	}
	return n.TrailingX() < s.cfg.LeftEdge
}

func (s *Scheduler) State() State {
	return s.state
}

// Clock is the virtual time in seconds.
func (s *Scheduler) Clock() float64 {
	return s.clock
}

func (s *Scheduler) Frame() int {
	return s.frame
}

// Active returns a snapshot of the on-screen notes in activation order.
func (s *Scheduler) Active() []ActiveNote {
	var snapshot = make([]ActiveNote, len(s.active))
	copy(snapshot, s.active)
	return snapshot
}

// Current returns the note driving the fingering chart. It stays set after
// the note leaves the playline and is only empty before the first note
// arrives.
func (s *Scheduler) Current() (ActiveNote, bool) {
	return s.current, s.has
}

func (s *Scheduler) Pending() int {
	return len(s.notes) - s.next
}

// TimedOut reports whether the run ended on the safety deadline rather than
// by draining every note.
func (s *Scheduler) TimedOut() bool {
	return s.timeout
}

func (s *Scheduler) Config() Config {
	return s.cfg
}
