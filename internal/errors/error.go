package errors

import "errors"

var (
	ErrSessionNotFound = errors.New("session was not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrInternal        = errors.New("internal error")
	ErrCacheMiss       = errors.New("cache miss")
	ErrBadRequest      = errors.New("bad request")

	ErrOccupied      = errors.New("intersection is occupied")
	ErrSuicide       = errors.New("suicide is not allowed")
	ErrOutOfBounds   = errors.New("intersection is outside the board")
	ErrBadMove       = errors.New("malformed move")
	ErrOutOfSync     = errors.New("client is out of sync")
	ErrMoveNotFound  = errors.New("move not found")
	ErrNotYourTurn   = errors.New("playing out of turn")
	ErrGameFinished  = errors.New("game is finished")
	ErrMalformedTree = errors.New("malformed move tree")
	ErrUnplayedMove  = errors.New("can't request undo for unplayed move")
	ErrRootMove      = errors.New("root move can't be removed")
	ErrNotAPlayer    = errors.New("you are not a player in this game")
	ErrNotReviewer   = errors.New("you are not the reviewer")
	ErrBadBoardSize  = errors.New("unsupported board size")
	ErrBadHandicap   = errors.New("unsupported handicap")
)
