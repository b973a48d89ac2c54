// Package breathing implements the 6-7-8 guided breathing rhythm.
package breathing

import (
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
)

type Phase string

const (
	Inhale Phase = "inhale"
	Hold   Phase = "hold"
	Exhale Phase = "exhale"
)

// CycleDuration is one full inhale, hold, exhale sequence.
const CycleDuration = constants.BreathInhale + constants.BreathHold + constants.BreathExhale

// Instruction returns the prompt shown while the phase runs.
func (p Phase) Instruction() string {
	switch p {
	case Inhale:
		return "Breathe in slowly through your nose"
	case Hold:
		return "Hold your breath gently"
	case Exhale:
		return "Exhale slowly through your mouth"
	}
	return ""
}

// Length returns how long the phase lasts.
func (p Phase) Length() time.Duration {
	switch p {
	case Inhale:
		return constants.BreathInhale
	case Hold:
		return constants.BreathHold
	case Exhale:
		return constants.BreathExhale
	}
	return 0
}

// PhaseAt returns the phase running after elapsed and the time left in it.
func PhaseAt(elapsed time.Duration) (Phase, time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	offset := elapsed % CycleDuration
	for _, p := range []Phase{Inhale, Hold, Exhale} {
		if offset < p.Length() {
			return p, p.Length() - offset
		}
		offset -= p.Length()
	}
	return Inhale, constants.BreathInhale
}

// Cycles counts the cycles fully completed within elapsed.
func Cycles(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / CycleDuration)
}

// Session times a guided exercise from Start to Finish.
type Session struct {
	start time.Time
	now   func() time.Time
}

func Start(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{start: now(), now: now}
}

func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// Current reports the running phase and its remaining time.
func (s *Session) Current() (Phase, time.Duration) {
	return PhaseAt(s.Elapsed())
}

// Progress returns how far through the current phase the session is, in [0,1].
func (s *Session) Progress() float64 {
	p, remaining := s.Current()
	return 1 - float64(remaining)/float64(p.Length())
}

// Finish returns the whole-second duration and completed cycles to record.
func (s *Session) Finish() (duration, cycles int) {
	elapsed := s.Elapsed()
	return int(elapsed / time.Second), Cycles(elapsed)
}
