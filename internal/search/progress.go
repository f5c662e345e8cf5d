package search

import (
	"math/rand"
	"time"
)

// TickInterval is how often the progress simulation advances while a
// request is in flight.
const TickInterval = 500 * time.Millisecond

const (
	inFlightCap = 95 // percent never exceeds this until the request resolves
	maxStep     = 20
	msgStride   = 20 // message i+1 takes over once percent > (i+1)*20
)

// StatusMessages are the phrases cycled through while a search runs.
var StatusMessages = []string{
	"Connecting to market hubs...",
	"Pulling sell orders...",
	"Pulling buy orders...",
	"Crunching profit margins...",
	"Ranking opportunities...",
}

// Progress simulates feedback for a request of unknown duration. It is
// advanced by the owner of the active search on every tick and finished
// exactly once when the request resolves; it holds no timer of its own.
type Progress struct {
	percent int
	msgIdx  int
	done    bool
}

// Advance moves the simulation forward by step percent (clamped to
// 0..20), capped at 95 while in flight. The status message index follows
// the percent and never regresses. No-op once finished.
func (p *Progress) Advance(step int) {
	if p.done {
		return
	}
	if step < 0 {
		step = 0
	}
	if step > maxStep {
		step = maxStep
	}
	p.percent += step
	if p.percent > inFlightCap {
		p.percent = inFlightCap
	}
	for p.msgIdx < len(StatusMessages)-1 && p.percent > (p.msgIdx+1)*msgStride {
		p.msgIdx++
	}
}

// Finish forces the display to 100. Idempotent.
func (p *Progress) Finish() {
	if p.done {
		return
	}
	p.done = true
	p.percent = 100
}

// Percent returns the displayed percent (0..95 in flight, 100 when done).
func (p *Progress) Percent() int { return p.percent }

// Message returns the current status phrase.
func (p *Progress) Message() string { return StatusMessages[p.msgIdx] }

// Done reports whether Finish has been called.
func (p *Progress) Done() bool { return p.done }

// RandomStep returns a uniform step in [0, 20] for one simulation tick.
func RandomStep() int {
	return rand.Intn(maxStep + 1)
}
