package engine

import (
	"cmp"
	"strings"

	"gogame/internal/domain/game"
)

const (
	MinBoardSize = 2
	MaxBoardSize = 25
)

type Cell int8

const (
	Empty Cell = iota
	BlackStone
	WhiteStone
)

func CellOf(c game.Color) Cell {
	switch c {
	case game.Black:
		return BlackStone
	case game.White:
		return WhiteStone
	}
	return Empty
}

func (c Cell) Color() (game.Color, bool) {
	switch c {
	case BlackStone:
		return game.Black, true
	case WhiteStone:
		return game.White, true
	}
	return 0, false
}

// Board is a size×size grid. Boards are values: every mutating helper
// returns a fresh copy and leaves the receiver untouched.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) Board {
	return Board{size: size, cells: make([]Cell, size*size)}
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// At returns Empty for coordinates outside the board.
func (b Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y*b.size+x]
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

func (b Board) With(x, y int, c Cell) Board {
	res := b.Clone()
	res.cells[y*b.size+x] = c
	return res
}

func (b Board) Equal(o Board) bool {
	if b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) Count(c Cell) int {
	res := 0
	for _, cell := range b.cells {
		if cell == c {
			res++
		}
	}
	return res
}

func (b Board) adjacent(p game.Intersection) []game.Intersection {
	res := make([]game.Intersection, 0, 4)
	if p.X > 0 {
		res = append(res, game.Intersection{X: p.X - 1, Y: p.Y})
	}
	if p.Y > 0 {
		res = append(res, game.Intersection{X: p.X, Y: p.Y - 1})
	}
	if p.X < b.size-1 {
		res = append(res, game.Intersection{X: p.X + 1, Y: p.Y})
	}
	if p.Y < b.size-1 {
		res = append(res, game.Intersection{X: p.X, Y: p.Y + 1})
	}
	return res
}

// String renders rows top to bottom: '.' empty, 'X' black, 'O' white.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size * (b.size + 1))
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			switch b.At(x, y) {
			case BlackStone:
				sb.WriteByte('X')
			case WhiteStone:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func compareIntersections(a, b game.Intersection) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
