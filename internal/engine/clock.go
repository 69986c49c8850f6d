package engine

import (
	"sync/atomic"
	"time"
)

// MaxStep caps the elapsed time of a single tick, in seconds. Longer gaps
// (a suspended terminal, a debugger pause) are simulated as one MaxStep tick.
const MaxStep = 0.25

// Clock converts wall-clock tick timestamps into elapsed seconds.
type Clock struct {
	last    time.Time
	started bool
}

// Reset forgets the previous timestamp so the next tick reports zero.
func (c *Clock) Reset() {
	c.started = false
	c.last = time.Time{}
}

// Tick returns the seconds elapsed since the previous Tick. The first tick
// after Reset returns 0. Backwards time is treated as no time passing.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > MaxStep {
		return MaxStep
	}
	return dt
}

// Token is handed out when the host arms the next tick and must be presented
// when that tick fires. Only the most recently armed token of the current
// run of the issuing scheduler is accepted.
type Token struct {
	owner uint64
	run   uint64
	seq   uint64
}

// schedulerIDs numbers schedulers so a token never matches another loop's.
var schedulerIDs atomic.Uint64

// Scheduler gates tick delivery. The host asks for a token after each tick
// (Arm), schedules a callback carrying it, and passes it back to Accept.
// Stop and Start invalidate every outstanding token, so a callback queued
// before a stop or restart can never run.
//
// Scheduler is not safe for concurrent use; it lives on the host's event
// goroutine.
type Scheduler struct {
	owner   uint64
	clock   Clock
	run     uint64
	seq     uint64
	running bool
}

// Start begins a new run. The first accepted tick reports zero elapsed time.
func (s *Scheduler) Start() {
	if s.owner == 0 {
		s.owner = schedulerIDs.Add(1)
	}
	s.run++
	s.seq = 0
	s.running = true
	s.clock.Reset()
}

// Stop ends the current run. Calling Stop more than once has no further
// effect.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.run++
}

// Running reports whether ticks are being delivered.
func (s *Scheduler) Running() bool {
	return s.running
}

// Arm returns the token for the next tick, or false if stopped.
func (s *Scheduler) Arm() (Token, bool) {
	if !s.running {
		return Token{}, false
	}
	s.seq++
	return Token{owner: s.owner, run: s.run, seq: s.seq}, true
}

// Accept validates a token and returns the elapsed seconds for its tick.
func (s *Scheduler) Accept(tok Token, now time.Time) (float64, bool) {
	if !s.running || tok.owner != s.owner || tok.run != s.run || tok.seq != s.seq {
		return 0, false
	}
	s.seq++ // a token fires once
	return s.clock.Tick(now), true
}
