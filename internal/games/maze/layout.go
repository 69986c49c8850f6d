package maze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/engine"
)

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// Layout is a parsed maze.
type Layout struct {
	Grid   *engine.Grid
	Walls  []Cell
	Pellet []Cell
	Power  []Cell
	Player Cell
	Ghosts []Cell
}

// ParseLayout creates a Layout from an ASCII map.
// Characters:
//
//	'#' = wall
//	'.' = pellet
//	'o' = power pellet
//	'P' = player start (exactly one)
//	'G' = ghost start
//	anything else = open floor
//
// Short rows are padded with open floor.
func ParseLayout(lines []string) (*Layout, error) {
	if len(lines) == 0 {
		return nil, errors.New("maze: empty layout")
	}
	cols := 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}

	l := &Layout{Grid: engine.NewGrid(cols, len(lines))}
	players := 0
	for row, line := range lines {
		for col := 0; col < len(line); col++ {
			c := Cell{Col: col, Row: row}
			switch line[col] {
			case '#':
				l.Grid.SetWall(col, row, true)
				l.Walls = append(l.Walls, c)
			case '.':
				l.Pellet = append(l.Pellet, c)
			case 'o', 'O':
				l.Power = append(l.Power, c)
			case 'P':
				l.Player = c
				players++
			case 'G':
				l.Ghosts = append(l.Ghosts, c)
			}
		}
	}

	if players != 1 {
		return nil, fmt.Errorf("maze: layout has %d player starts, expected 1", players)
	}
	if len(l.Pellet)+len(l.Power) == 0 {
		return nil, errors.New("maze: layout has no pellets")
	}
	return l, nil
}
