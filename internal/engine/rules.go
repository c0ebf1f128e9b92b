package engine

import (
	"fmt"
	"slices"

	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
)

// GroupOf returns the stones connected to (x, y) with the same color, sorted
// row by row. It is empty for an empty or out of range intersection.
func GroupOf(b Board, x, y int) []game.Intersection {
	color := b.At(x, y)
	if !b.InBounds(x, y) || color == Empty {
		return nil
	}

	visited := make([]bool, b.size*b.size)
	stack := []game.Intersection{{X: x, Y: y}}
	visited[y*b.size+x] = true
	var group []game.Intersection

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, p)

		for _, n := range b.adjacent(p) {
			idx := n.Y*b.size + n.X
			if visited[idx] || b.cells[idx] != color {
				continue
			}
			visited[idx] = true
			stack = append(stack, n)
		}
	}

	slices.SortFunc(group, compareIntersections)
	return group
}

// Liberties returns the distinct empty intersections adjacent to group.
func Liberties(b Board, group []game.Intersection) []game.Intersection {
	seen := make(map[game.Intersection]struct{})
	var res []game.Intersection
	for _, p := range group {
		for _, n := range b.adjacent(p) {
			if b.At(n.X, n.Y) != Empty {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			res = append(res, n)
		}
	}
	slices.SortFunc(res, compareIntersections)
	return res
}

// ApplyStone places a stone of color at (x, y), removes every opposing
// neighbor group left without liberties and rejects the move if the placed
// group ends up without liberties while capturing nothing.
func ApplyStone(b Board, color game.Color, x, y int) (Board, error) {
	if !b.InBounds(x, y) {
		return b, fmt.Errorf("%w: (%d, %d)", errs.ErrOutOfBounds, x, y)
	}
	if b.At(x, y) != Empty {
		return b, fmt.Errorf("%w: (%d, %d)", errs.ErrOccupied, x, y)
	}

	res := b.With(x, y, CellOf(color))
	opponent := CellOf(color.Opposite())
	captured := false

	for _, n := range res.adjacent(game.Intersection{X: x, Y: y}) {
		if res.At(n.X, n.Y) != opponent {
			continue
		}
		group := GroupOf(res, n.X, n.Y)
		if len(Liberties(res, group)) > 0 {
			continue
		}
		for _, stone := range group {
			res.cells[stone.Y*res.size+stone.X] = Empty
		}
		captured = true
	}

	if !captured && len(Liberties(res, GroupOf(res, x, y))) == 0 {
		return b, fmt.Errorf("%w: (%d, %d)", errs.ErrSuicide, x, y)
	}

	return res, nil
}
