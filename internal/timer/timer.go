// Package timer times a study session against the target length of its phase.
package timer

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Phase is a stage of a study session
type Phase string

const (
	PhaseDiscovery   Phase = "discovery"
	PhaseDrilling    Phase = "drilling"
	PhaseIntegration Phase = "integration"
)

// Phases lists the phases in session order
var Phases = []Phase{PhaseDiscovery, PhaseDrilling, PhaseIntegration}

var targets = map[Phase]time.Duration{
	PhaseDiscovery:   15 * time.Minute,
	PhaseDrilling:    25 * time.Minute,
	PhaseIntegration: 10 * time.Minute,
}

// ParsePhase returns the phase named s
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if _, ok := targets[p]; !ok {
		return "", fmt.Errorf("unknown phase %q (want discovery, drilling or integration)", s)
	}
	return p, nil
}

// Target is the planned length of the phase
func (p Phase) Target() time.Duration {
	return targets[p]
}

// Stopwatch counts up from Start. Time accumulated before a Stop is kept until Reset.
// It is safe for concurrent use.
type Stopwatch struct {
	mu      sync.Mutex
	phase   Phase
	now     func() time.Time
	started time.Time
	running bool
	banked  time.Duration
}

// NewStopwatch creates a stopped stopwatch for phase
func NewStopwatch(phase Phase) *Stopwatch {
	return &Stopwatch{phase: phase, now: time.Now}
}

// Phase returns the phase being timed
func (s *Stopwatch) Phase() Phase {
	return s.phase
}

// Start resumes counting; it does nothing if already running
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.started = s.now()
	s.running = true
}

// Stop pauses counting and returns the whole minutes to record for the session
func (s *Stopwatch) Stop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.banked += s.now().Sub(s.started)
		s.running = false
	}
	return minutes(s.banked)
}

// Reset stops the stopwatch and clears elapsed time
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.banked = 0
}

// SetPhase switches phase, which resets the stopwatch
func (s *Stopwatch) SetPhase(p Phase) {
	s.Reset()
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// Running reports whether the stopwatch is counting
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed is the time counted so far
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *Stopwatch) elapsed() time.Duration {
	if s.running {
		return s.banked + s.now().Sub(s.started)
	}
	return s.banked
}

// Remaining is the time left before the phase target, never below zero
func (s *Stopwatch) Remaining() time.Duration {
	left := s.phase.Target() - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// Overrun is how far past the phase target the stopwatch has counted
func (s *Stopwatch) Overrun() time.Duration {
	over := s.Elapsed() - s.phase.Target()
	if over < 0 {
		return 0
	}
	return over
}

// Progress is elapsed over target, capped at 1
func (s *Stopwatch) Progress() float64 {
	target := s.phase.Target()
	if target <= 0 {
		return 0
	}
	return math.Min(1, float64(s.Elapsed())/float64(target))
}

// CapturedMinutes is the elapsed time rounded to whole minutes
func (s *Stopwatch) CapturedMinutes() int {
	return minutes(s.Elapsed())
}

// Status renders the stopwatch as a single display line
func (s *Stopwatch) Status() string {
	elapsed := s.Elapsed()
	if over := s.Overrun(); over > 0 {
		return fmt.Sprintf("%s %s  +%s over target", s.phase, Clock(elapsed), Clock(over))
	}
	return fmt.Sprintf("%s %s  -%s remaining", s.phase, Clock(elapsed), Clock(s.Remaining()))
}

// Clock formats d as MM:SS, truncating to the second
func Clock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func minutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
