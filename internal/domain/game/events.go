package game

import "gogame/internal/statuses"

type EventKind string

const (
	EventStateChanged     EventKind = "stateChanged"
	EventUndoRequest      EventKind = "undoRequest"
	EventUndo             EventKind = "undo"
	EventDeadsChange      EventKind = "deads.change"
	EventAgreementChange  EventKind = "okFor.change"
	EventFinished         EventKind = "finished"
	EventFocusChanged     EventKind = "focus"
	EventGamesListChanged EventKind = "games.change"
	EventGameCreated      EventKind = "created"
	EventReviewsChange    EventKind = "reviews.change"
)

// GamesTopic carries list-level notifications (created/finished/stale).
const GamesTopic = "games"

func GameTopic(gameID string) string     { return "game." + gameID }
func ReviewTopic(reviewID string) string { return "review." + reviewID }

// Event is a notification produced by the game protocol. The caller owns
// its delivery; Payload is one of the *Payload types below or nil.
type Event struct {
	Topic   string    `json:"topic"`
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload,omitempty"`
}

// @name MovePlayedPayload
type MovePlayedPayload struct {
	N        int      `json:"n"`
	ParentN  int      `json:"parentN"`
	MoveData MoveData `json:"moveData"`
}

// @name UndoRequestPayload
type UndoRequestPayload struct {
	Requester  Color `json:"requester"`
	MoveNumber int   `json:"moveNumber"`
}

// @name UndonePayload
type UndonePayload struct {
	UndoneMoveNumber int `json:"undoneMoveNumber"`
}

// @name DeadStonesPayload
type DeadStonesPayload struct {
	DeadStones []Intersection `json:"deadStones"`
}

// @name AgreementPayload
type AgreementPayload struct {
	AgreesFor string `json:"agreesFor"`
}

// @name FinishedPayload
type FinishedPayload struct {
	Result         statuses.Result `json:"result"`
	ResultExpanded string          `json:"resultExpanded"`
	DeadStones     []Intersection  `json:"deadStones"`
}

// @name FocusPayload
type FocusPayload struct {
	CurrentMoveNumber int `json:"currentMoveNumber"`
}

// @name GameCreatedPayload
type GameCreatedPayload struct {
	GameID string `json:"gameId"`
}
