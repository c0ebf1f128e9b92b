package game

import (
	"fmt"

	errs "gogame/internal/errors"
)

type Color int8

const (
	Black Color = iota + 1
	White
)

func (c Color) Opposite() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}

func (c Color) MarshalText() ([]byte, error) {
	if c != Black && c != White {
		return nil, fmt.Errorf("unknown color %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "B", "b":
		return Black, nil
	case "white", "W", "w":
		return White, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Intersection is a board coordinate, 0 <= X, Y < size.
type Intersection struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Move is the closed set of things a player can do on their turn:
// Stone, Pass or Resign. Consumers switch over the concrete types.
type Move interface {
	Player() Color
	isMove()
}

type Stone struct {
	Color Color
	X, Y  int
}

type Pass struct {
	Color Color
}

type Resign struct {
	Color Color
}

func (s Stone) Player() Color  { return s.Color }
func (p Pass) Player() Color   { return p.Color }
func (r Resign) Player() Color { return r.Color }

func (Stone) isMove()  {}
func (Pass) isMove()   {}
func (Resign) isMove() {}

type MoveKind string

const (
	KindStone  MoveKind = "stone"
	KindPass   MoveKind = "pass"
	KindResign MoveKind = "resign"
)

// @name MoveData
type MoveData struct {
	Kind  MoveKind `json:"kind,omitempty"`
	Color *Color   `json:"color,omitempty"`
	X     *int     `json:"x,omitempty"`
	Y     *int     `json:"y,omitempty"`
}

func EncodeMove(m Move) MoveData {
	color := m.Player()
	switch mv := m.(type) {
	case Stone:
		x, y := mv.X, mv.Y
		return MoveData{Kind: KindStone, Color: &color, X: &x, Y: &y}
	case Pass:
		return MoveData{Kind: KindPass, Color: &color}
	case Resign:
		return MoveData{Kind: KindResign, Color: &color}
	}
	panic(fmt.Sprintf("unknown move type %T", m))
}

// DecodeMove builds a Move from its wire form. A missing color is filled
// with fallback, which lets clients omit it for the player to move.
func DecodeMove(data MoveData, fallback Color) (Move, error) {
	color := fallback
	if data.Color != nil {
		color = *data.Color
	}
	if color != Black && color != White {
		return nil, fmt.Errorf("%w: move has no color", errs.ErrBadMove)
	}

	switch data.Kind {
	case KindStone:
		if data.X == nil || data.Y == nil {
			return nil, fmt.Errorf("%w: stone without coordinates", errs.ErrBadMove)
		}
		return Stone{Color: color, X: *data.X, Y: *data.Y}, nil
	case KindPass:
		return Pass{Color: color}, nil
	case KindResign:
		return Resign{Color: color}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", errs.ErrBadMove, data.Kind)
}

// @name PlayRequest
type PlayRequest struct {
	Move          MoveData `json:"move"`
	PreviousMoveN int      `json:"previousMoveN"`
}

// @name UndoRequest
type UndoRequest struct {
	Requester  Color `json:"requester"`
	MoveNumber int   `json:"moveNumber"`
}

// @name MarkDeadRequest
type MarkDeadRequest struct {
	Deads   []Intersection `json:"deads"`
	AreDead *bool          `json:"areDead,omitempty"`
}

// @name AskUndoRequest
type AskUndoRequest struct {
	MoveNumber int `json:"moveNumber,omitempty"`
}

// @name FocusRequest
type FocusRequest struct {
	CurrentMoveNumber int `json:"currentMoveNumber"`
}
