package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStopwatch(p Phase) (*Stopwatch, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}
	sw := NewStopwatch(p)
	sw.now = clock.now
	return sw, clock
}

func TestPhaseTargets(t *testing.T) {
	tests := []struct {
		phase Phase
		want  time.Duration
	}{
		{PhaseDiscovery, 15 * time.Minute},
		{PhaseDrilling, 25 * time.Minute},
		{PhaseIntegration, 10 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			if got := tt.phase.Target(); got != tt.want {
				t.Errorf("Target() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePhase(t *testing.T) {
	if p, err := ParsePhase("drilling"); err != nil || p != PhaseDrilling {
		t.Errorf("ParsePhase(drilling) = %q, %v", p, err)
	}
	if _, err := ParsePhase("review"); err == nil {
		t.Error("ParsePhase(review) should fail")
	}
}

func TestStopwatchWithinTarget(t *testing.T) {
	sw, clock := newTestStopwatch(PhaseIntegration)
	sw.Start()
	clock.advance(4*time.Minute + 20*time.Second)

	if got := sw.Elapsed(); got != 4*time.Minute+20*time.Second {
		t.Errorf("Elapsed() = %v", got)
	}
	if got := sw.Remaining(); got != 5*time.Minute+40*time.Second {
		t.Errorf("Remaining() = %v", got)
	}
	if got := sw.Overrun(); got != 0 {
		t.Errorf("Overrun() = %v, want 0", got)
	}
	if got := sw.Status(); got != "integration 04:20  -05:40 remaining" {
		t.Errorf("Status() = %q", got)
	}
}

func TestStopwatchOverrun(t *testing.T) {
	sw, clock := newTestStopwatch(PhaseIntegration)
	sw.Start()
	clock.advance(12 * time.Minute)

	if got := sw.Remaining(); got != 0 {
		t.Errorf("Remaining() = %v, want 0", got)
	}
	if got := sw.Overrun(); got != 2*time.Minute {
		t.Errorf("Overrun() = %v, want 2m", got)
	}
	if got := sw.Progress(); got != 1 {
		t.Errorf("Progress() = %v, want 1", got)
	}
}

func TestStopwatchStopCapturesRoundedMinutes(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"under half a minute", 29 * time.Second, 0},
		{"half a minute rounds up", 30 * time.Second, 1},
		{"twelve and a bit", 12*time.Minute + 29*time.Second, 12},
		{"twelve and a half", 12*time.Minute + 30*time.Second, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, clock := newTestStopwatch(PhaseDrilling)
			sw.Start()
			clock.advance(tt.elapsed)
			if got := sw.Stop(); got != tt.want {
				t.Errorf("Stop() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStopwatchPauseResumeReset(t *testing.T) {
	sw, clock := newTestStopwatch(PhaseDiscovery)
	sw.Start()
	clock.advance(3 * time.Minute)
	sw.Stop()
	clock.advance(10 * time.Minute)
	if sw.Running() {
		t.Error("Running() after Stop() = true")
	}
	sw.Start()
	clock.advance(2 * time.Minute)

	if got := sw.Elapsed(); got != 5*time.Minute {
		t.Errorf("Elapsed() = %v, want 5m", got)
	}

	sw.SetPhase(PhaseDrilling)
	if sw.Running() || sw.Elapsed() != 0 {
		t.Errorf("SetPhase() should reset, got running=%v elapsed=%v", sw.Running(), sw.Elapsed())
	}
	if sw.Phase() != PhaseDrilling {
		t.Errorf("Phase() = %q", sw.Phase())
	}
}

func TestClock(t *testing.T) {
	if got := Clock(61*time.Second + 900*time.Millisecond); got != "01:01" {
		t.Errorf("Clock() = %q", got)
	}
	if got := Clock(-90 * time.Second); got != "01:30" {
		t.Errorf("Clock() = %q", got)
	}
}
