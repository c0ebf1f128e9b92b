package engine

import "gogame/internal/domain/game"

type Scores struct {
	Black int `json:"blackScore"`
	White int `json:"whiteScore"`
}

// Score counts area: stones on the board after removing deads, plus every
// empty region bordered by a single color. Regions touching both colors, or
// no stone at all, are neutral.
func Score(b Board, deads []game.Intersection) Scores {
	board := b.Clone()
	for _, d := range deads {
		if board.InBounds(d.X, d.Y) {
			board.cells[d.Y*board.size+d.X] = Empty
		}
	}

	var res Scores
	visited := make([]bool, len(board.cells))

	for idx, cell := range board.cells {
		switch cell {
		case BlackStone:
			res.Black++
			continue
		case WhiteStone:
			res.White++
			continue
		}
		if visited[idx] {
			continue
		}

		size, borders := emptyRegion(board, idx, visited)
		switch borders {
		case BlackStone:
			res.Black += size
		case WhiteStone:
			res.White += size
		}
	}

	return res
}

// emptyRegion flood fills the empty region containing start. borders is the
// single bordering color, or Empty when the region is neutral.
func emptyRegion(b Board, start int, visited []bool) (size int, borders Cell) {
	seenBlack, seenWhite := false, false
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		p := game.Intersection{X: idx % b.size, Y: idx / b.size}
		for _, n := range b.adjacent(p) {
			nIdx := n.Y*b.size + n.X
			switch b.cells[nIdx] {
			case BlackStone:
				seenBlack = true
			case WhiteStone:
				seenWhite = true
			default:
				if !visited[nIdx] {
					visited[nIdx] = true
					stack = append(stack, nIdx)
				}
			}
		}
	}

	switch {
	case seenBlack && !seenWhite:
		return size, BlackStone
	case seenWhite && !seenBlack:
		return size, WhiteStone
	}
	return size, Empty
}
