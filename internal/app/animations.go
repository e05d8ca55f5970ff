package app

import (
	"math"
	"time"
)

// BounceDuration is the length of the dock bounce played on minimize.
const BounceDuration = 600 * time.Millisecond

// bounceHops is how many times the glyph jumps during one bounce.
const bounceHops = 2

// Bounce animates a dock item after its window was minimized.
type Bounce struct {
	ID       string
	Start    time.Time
	Duration time.Duration
	Complete bool
}

// Offset returns how many rows the glyph is lifted at now.
func (b *Bounce) Offset(now time.Time) int {
	if b.Complete || b.Duration <= 0 {
		return 0
	}
	progress := float64(now.Sub(b.Start)) / float64(b.Duration)
	if progress < 0 || progress >= 1 {
		return 0
	}
	if math.Sin(progress*bounceHops*math.Pi) > 0.3 {
		return 1
	}
	return 0
}

// Update marks the animation complete once its time is up.
func (b *Bounce) Update(now time.Time) bool {
	if now.Sub(b.Start) >= b.Duration {
		b.Complete = true
	}
	return b.Complete
}

// startBounce restarts the bounce for dock item id.
func (m *OS) startBounce(id string) {
	for _, b := range m.Bounces {
		if b.ID == id {
			b.Start, b.Complete = m.now(), false
			return
		}
	}
	m.Bounces = append(m.Bounces, &Bounce{ID: id, Start: m.now(), Duration: BounceDuration})
}

// HasActiveAnimations returns true if there are any active animations
func (m *OS) HasActiveAnimations() bool {
	return len(m.Bounces) > 0
}

// UpdateAnimations advances every animation and drops finished ones.
func (m *OS) UpdateAnimations() {
	now := m.now()
	kept := m.Bounces[:0]
	for _, b := range m.Bounces {
		if !b.Update(now) {
			kept = append(kept, b)
		}
	}
	m.Bounces = kept
}

// bounceOffset returns the current lift of dock item id.
func (m *OS) bounceOffset(id string) int {
	now := m.now()
	for _, b := range m.Bounces {
		if b.ID == id {
			return b.Offset(now)
		}
	}
	return 0
}
