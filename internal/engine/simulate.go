package engine

import (
	"github.com/vovakirdan/arcade-loop/internal/core"
)

// Pilot chooses the input for a tick of a headless run.
type Pilot func(tick uint64, s *Session) core.InputState

// SimResult summarises a headless run.
type SimResult struct {
	Ticks    uint64
	Seconds  float64
	Phase    Phase
	Score    int
	Failures int
}

// Simulate runs up to maxTicks fixed steps of dt seconds, starting the
// session if it is Ready. It returns when the session leaves Running or the
// tick budget is spent. Failed ticks are counted, not fatal.
func Simulate(l *Loop, maxTicks int, dt float64, pilot Pilot) (SimResult, error) {
	if l.Phase() == PhaseReady {
		if err := l.Start(); err != nil {
			return SimResult{}, err
		}
	}

	var res SimResult
	for i := 0; i < maxTicks && l.session.Running(); i++ {
		var in core.InputState
		if pilot != nil {
			in = pilot(l.ticks+1, l.session)
		}
		rep := l.Advance(dt, in)
		res.Seconds += dt
		if rep.Err != nil {
			res.Failures++
		}
	}
	res.Ticks = l.ticks
	res.Phase = l.Phase()
	res.Score = l.session.Score()
	return res, nil
}
