package platformer

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// Block variants, used for drawing.
const (
	blockGround = iota
	blockBrick
	blockQuestion
)

// Block is one solid tile.
type Block struct {
	Col, Row int
	Variant  int
}

// Level is a parsed level map. One tile is one world unit.
type Level struct {
	Cols, Rows int
	Blocks     []Block
	Walkers    []core.Vec // top-left tile of each walker
	Flag       []core.Vec // flag pole tiles
	Start      core.Vec
}

// ParseLevel builds a Level from ASCII rows.
// Characters:
//
//	'#' = ground
//	'B' = brick
//	'?' = question block
//	'E' = walker
//	'P' = player start (exactly one)
//	'F' = flag pole
func ParseLevel(lines []string) (*Level, error) {
	if len(lines) == 0 {
		return nil, errors.New("platformer: empty level")
	}
	l := &Level{Rows: len(lines)}
	starts := 0
	for row, line := range lines {
		l.Cols = max(l.Cols, len(line))
		for col := 0; col < len(line); col++ {
			at := core.Vec{X: float64(col), Y: float64(row)}
			switch line[col] {
			case '#':
				l.Blocks = append(l.Blocks, Block{Col: col, Row: row, Variant: blockGround})
			case 'B':
				l.Blocks = append(l.Blocks, Block{Col: col, Row: row, Variant: blockBrick})
			case '?':
				l.Blocks = append(l.Blocks, Block{Col: col, Row: row, Variant: blockQuestion})
			case 'E':
				l.Walkers = append(l.Walkers, at)
			case 'P':
				l.Start = at
				starts++
			case 'F':
				l.Flag = append(l.Flag, at)
			}
		}
	}

	if starts != 1 {
		return nil, fmt.Errorf("platformer: level has %d player starts, expected 1", starts)
	}
	if len(l.Flag) == 0 {
		return nil, errors.New("platformer: level has no flag")
	}
	return l, nil
}

// Bounds returns the level extent in world units.
func (l *Level) Bounds() core.Box {
	return core.NewBox(0, 0, float64(l.Cols), float64(l.Rows))
}
