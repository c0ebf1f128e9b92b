package engine

import (
	"fmt"

	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
)

// Engine is a single game session: a move tree plus the position at the
// current node. Boards are never stored on nodes; the position is always
// obtained by replaying the path from the root.
type Engine struct {
	size     int
	handicap int
	initial  Board

	tree    *Tree
	current *Node
	board   Board
	toMove  game.Color
}

func New(size, handicap int) (*Engine, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", errs.ErrBadBoardSize, size)
	}
	stones, err := HandicapStones(size, handicap)
	if err != nil {
		return nil, err
	}

	initial := NewBoard(size)
	for _, s := range stones {
		initial.cells[s.Y*size+s.X] = BlackStone
	}

	e := &Engine{size: size, handicap: handicap, initial: initial}
	e.ReplaceTree(NewTree())
	return e, nil
}

// Restore builds an engine from a serialized tree and positions it at the
// latest move number.
func Restore(size, handicap int, moves string) (*Engine, error) {
	e, err := New(size, handicap)
	if err != nil {
		return nil, err
	}
	tree, err := Deserialize(moves)
	if err != nil {
		return nil, err
	}
	e.ReplaceTree(tree)
	if err = e.BackToMove(tree.MaxN()); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) ReplaceTree(tree *Tree) {
	e.tree = tree
	e.current = tree.Root()
	e.board = e.initial.Clone()
	e.toMove = FirstToMove(e.handicap)
}

func (e *Engine) BackToMove(n int) error {
	node, err := e.tree.FindNode(n)
	if err != nil {
		return err
	}

	board := e.initial.Clone()
	toMove := FirstToMove(e.handicap)
	for i, move := range e.tree.PathToRoot(node) {
		if stone, ok := move.(game.Stone); ok {
			board, err = ApplyStone(board, stone.Color, stone.X, stone.Y)
			if err != nil {
				return fmt.Errorf("%w: replaying move at depth %d: %v", errs.ErrMalformedTree, i+1, err)
			}
		}
		toMove = move.Player().Opposite()
	}

	e.current = node
	e.board = board
	e.toMove = toMove
	return nil
}

// CheckMove reports why the player to move can't play at (x, y), or nil.
func (e *Engine) CheckMove(x, y int) error {
	if e.Finished() {
		return errs.ErrGameFinished
	}
	_, err := ApplyStone(e.board, e.toMove, x, y)
	return err
}

func (e *Engine) IsLegal(x, y int) bool {
	return e.CheckMove(x, y) == nil
}

// Play validates move against the current position, appends it under the
// current node and advances to it. Nothing is persisted.
func (e *Engine) Play(move game.Move) (*Node, error) {
	if e.Finished() {
		return nil, errs.ErrGameFinished
	}
	if move.Player() != e.toMove {
		return nil, fmt.Errorf("%w: %s to move", errs.ErrNotYourTurn, e.toMove)
	}

	board := e.board
	switch mv := move.(type) {
	case game.Stone:
		var err error
		board, err = ApplyStone(e.board, mv.Color, mv.X, mv.Y)
		if err != nil {
			return nil, err
		}
	case game.Pass, game.Resign:
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrBadMove, move)
	}

	node := e.tree.CreateChild(e.current, move)
	e.current = node
	e.board = board
	e.toMove = move.Player().Opposite()
	return node, nil
}

// Undo removes move n with everything played after it and moves back to its
// parent. Callers are responsible for having agreed on the undo beforehand.
func (e *Engine) Undo(n int) error {
	node, err := e.tree.FindNode(n)
	if err != nil {
		return err
	}
	parent := node.Parent
	if err = e.tree.Prune(node); err != nil {
		return err
	}
	return e.BackToMove(parent.N)
}

// Finished is true when the current node is a resignation. Games finished
// by agreement on dead stones are tracked by the caller.
func (e *Engine) Finished() bool {
	_, ok := e.current.Move.(game.Resign)
	return ok
}

func (e *Engine) CurrentColor() game.Color { return e.toMove }
func (e *Engine) CurrentNode() *Node       { return e.current }
func (e *Engine) MaxMoveNumber() int       { return e.tree.MaxN() }
func (e *Engine) Tree() *Tree              { return e.tree }
func (e *Engine) Board() Board             { return e.board.Clone() }
func (e *Engine) Size() int                { return e.size }

func (e *Engine) Scores(deads []game.Intersection) Scores {
	return Score(e.board, deads)
}
