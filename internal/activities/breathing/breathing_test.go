package breathing

import (
	"testing"
	"time"
)

func TestPhaseAt(t *testing.T) {
	tests := []struct {
		elapsed       time.Duration
		wantPhase     Phase
		wantRemaining time.Duration
	}{
		{0, Inhale, 6 * time.Second},
		{5 * time.Second, Inhale, time.Second},
		{6 * time.Second, Hold, 7 * time.Second},
		{12 * time.Second, Hold, time.Second},
		{13 * time.Second, Exhale, 8 * time.Second},
		{20500 * time.Millisecond, Exhale, 500 * time.Millisecond},
		{21 * time.Second, Inhale, 6 * time.Second},
		{48 * time.Second, Hold, time.Second},
		{-time.Second, Inhale, 6 * time.Second},
	}

	for _, tt := range tests {
		phase, remaining := PhaseAt(tt.elapsed)
		if phase != tt.wantPhase || remaining != tt.wantRemaining {
			t.Errorf("PhaseAt(%v) = (%s, %v), want (%s, %v)", tt.elapsed, phase, remaining, tt.wantPhase, tt.wantRemaining)
		}
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{20 * time.Second, 0},
		{21 * time.Second, 1},
		{63 * time.Second, 3},
		{6 * time.Minute, 17},
		{-time.Minute, 0},
	}

	for _, tt := range tests {
		if got := Cycles(tt.elapsed); got != tt.want {
			t.Errorf("Cycles(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestSession(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s := Start(func() time.Time { return now })

	now = now.Add(9 * time.Second)
	phase, _ := s.Current()
	if phase != Hold {
		t.Errorf("Current() = %s, want hold", phase)
	}
	if p := s.Progress(); p < 0.42 || p > 0.43 {
		t.Errorf("Progress() = %v, want 3/7", p)
	}

	now = now.Add(33*time.Second + 400*time.Millisecond)
	duration, cycles := s.Finish()
	if duration != 42 || cycles != 2 {
		t.Errorf("Finish() = (%d, %d), want (42, 2)", duration, cycles)
	}
}

func TestInstruction(t *testing.T) {
	for _, p := range []Phase{Inhale, Hold, Exhale} {
		if p.Instruction() == "" {
			t.Errorf("%s has no instruction", p)
		}
	}
}
