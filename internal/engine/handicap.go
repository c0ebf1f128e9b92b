package engine

import (
	"fmt"

	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
)

// HandicapStones returns the star points black starts with. Handicap 0 and 1
// place nothing; 2 to 9 stones are supported on 9x9 (up to 5), 13x13 and 19x19.
func HandicapStones(size, handicap int) ([]game.Intersection, error) {
	if handicap <= 1 {
		if handicap < 0 {
			return nil, fmt.Errorf("%w: %d", errs.ErrBadHandicap, handicap)
		}
		return nil, nil
	}

	limit := 0
	switch size {
	case 9:
		limit = 5
	case 13, 19:
		limit = 9
	}
	if handicap > limit {
		return nil, fmt.Errorf("%w: %d stones on %dx%d", errs.ErrBadHandicap, handicap, size, size)
	}

	d := 2
	if size >= 13 {
		d = 3
	}
	lo, hi, mid := d, size-1-d, size/2

	corners := []game.Intersection{{X: hi, Y: lo}, {X: lo, Y: hi}, {X: hi, Y: hi}, {X: lo, Y: lo}}
	center := game.Intersection{X: mid, Y: mid}
	sides := []game.Intersection{{X: lo, Y: mid}, {X: hi, Y: mid}, {X: mid, Y: lo}, {X: mid, Y: hi}}

	switch handicap {
	case 2, 3, 4:
		return corners[:handicap], nil
	case 5:
		return append(corners, center), nil
	case 6:
		return append(corners, sides[:2]...), nil
	case 7:
		return append(append(corners, sides[:2]...), center), nil
	case 8:
		return append(corners, sides...), nil
	}
	return append(append(corners, sides...), center), nil
}

// FirstToMove is white once black has received handicap stones.
func FirstToMove(handicap int) game.Color {
	if handicap >= 2 {
		return game.White
	}
	return game.Black
}
