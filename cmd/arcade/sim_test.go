package main

import (
	"testing"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/platform/tui"
)

func TestAutopilotDeterministic(t *testing.T) {
	a, b := autopilot(9, 5), autopilot(9, 5)
	for tick := uint64(1); tick <= 100; tick++ {
		ia, ib := a(tick, nil), b(tick, nil)
		if ia != ib {
			t.Fatalf("tick %d: inputs differ: %+v vs %+v", tick, ia, ib)
		}
		if !ia.Held(core.ActionFire) {
			t.Fatalf("tick %d: fire not held", tick)
		}
	}
}

func TestAutopilotHoldsDirection(t *testing.T) {
	p := autopilot(3, 10)
	first := p(1, nil)
	for tick := uint64(2); tick <= 10; tick++ {
		if got := p(tick, nil); got != first {
			t.Fatalf("tick %d: input = %+v, expected %+v until tick 11", tick, got, first)
		}
	}
}

func TestSimEveryGame(t *testing.T) {
	for _, id := range []string{"breakout", "maze", "platformer", "runner", "shooter", "snake"} {
		t.Run(id, func(t *testing.T) {
			run := func() engine.SimResult {
				loop, err := tui.NewLoop(id, tui.Options{Seed: 11})
				if err != nil {
					t.Fatalf("NewLoop() error = %v", err)
				}
				res, err := engine.Simulate(loop, 600, 1.0/60, autopilot(11, 20))
				if err != nil {
					t.Fatalf("Simulate() error = %v", err)
				}
				return res
			}
			a, b := run(), run()
			if a != b {
				t.Errorf("runs differ: %+v vs %+v", a, b)
			}
			if a.Failures != 0 {
				t.Errorf("failures = %d, expected 0", a.Failures)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    config.DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", config.DifficultyEasy, false},
		{"fixed", config.DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := parseDifficulty(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("parseDifficulty(%q) = %q, %v, expected %q (error %v)", tc.in, got, err, tc.want, tc.wantErr)
		}
	}
}
