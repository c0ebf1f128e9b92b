package game

import (
	"time"

	"gogame/internal/statuses"
)

type Game struct {
	ID                string          `json:"id" bson:"_id"`
	Name              string          `json:"name" bson:"name"`
	BlackPlayerID     string          `json:"black_player_id" bson:"black_player_id"`
	BlackPlayerName   string          `json:"black_player_name" bson:"black_player_name"`
	WhitePlayerID     string          `json:"white_player_id" bson:"white_player_id"`
	WhitePlayerName   string          `json:"white_player_name" bson:"white_player_name"`
	Size              int             `json:"size" bson:"size"`
	Handicap          int             `json:"handicap" bson:"handicap"`
	Status            statuses.Status `json:"status" bson:"status"`
	Result            statuses.Result `json:"result,omitempty" bson:"result,omitempty"`
	ResultExpanded    string          `json:"result_expanded,omitempty" bson:"result_expanded,omitempty"`
	Moves             string          `json:"-" bson:"moves"`
	CurrentMoveNumber int             `json:"current_move_number" bson:"current_move_number"`
	Deads             []Intersection  `json:"deads,omitempty" bson:"deads,omitempty"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" bson:"updated_at"`
}

// ColorOf returns the color userID plays in g, or false for spectators.
func (g Game) ColorOf(userID string) (Color, bool) {
	switch userID {
	case "":
		return 0, false
	case g.BlackPlayerID:
		return Black, true
	case g.WhitePlayerID:
		return White, true
	}
	return 0, false
}

type Review struct {
	ID                string    `json:"id" bson:"_id"`
	GameID            string    `json:"game_id" bson:"game_id"`
	GameName          string    `json:"game_name" bson:"game_name"`
	BlackPlayerName   string    `json:"black_player_name" bson:"black_player_name"`
	WhitePlayerName   string    `json:"white_player_name" bson:"white_player_name"`
	ReviewerID        string    `json:"reviewer_id" bson:"reviewer_id"`
	ReviewerName      string    `json:"reviewer_name" bson:"reviewer_name"`
	Size              int       `json:"size" bson:"size"`
	Handicap          int       `json:"handicap" bson:"handicap"`
	Moves             string    `json:"-" bson:"moves"`
	CurrentMoveNumber int       `json:"current_move_number" bson:"current_move_number"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// @name CreateGameRequest
type CreateGameRequest struct {
	Name            string `json:"name"`
	Size            int    `json:"size"`
	Handicap        int    `json:"handicap"`
	BlackPlayerID   string `json:"black_player_id"`
	BlackPlayerName string `json:"black_player_name"`
	WhitePlayerID   string `json:"white_player_id"`
	WhitePlayerName string `json:"white_player_name"`
}

// @name GameState
type GameState struct {
	Moves             string          `json:"moves"`
	CurrentMoveNumber int             `json:"currentMoveNumber"`
	Status            statuses.Status `json:"status,omitempty"`
	Result            statuses.Result `json:"result,omitempty"`
	ResultExpanded    string          `json:"resultExpanded,omitempty"`
	DeadStones        []Intersection  `json:"deadStones,omitempty"`
	AgreesFor         string          `json:"agreesFor,omitempty"`
	UndoRequest       *UndoRequest    `json:"undoRequest,omitempty"`
}

// @name CurrentGames
type CurrentGames struct {
	CurrentGames []Game `json:"currentGames"`
	StaleGames   []Game `json:"staleGames"`
}

// @name PastGames
type PastGames struct {
	PastGames []Game `json:"pastGames"`
	NoMore    bool   `json:"noMore"`
}

// @name GameReviews
type GameReviews struct {
	ActiveReviews   []Review `json:"activeReviews"`
	InactiveReviews []Review `json:"inactiveReviews"`
}

// Outcome is what gets written on a game when it finishes.
type Outcome struct {
	Result         statuses.Result
	ResultExpanded string
	Deads          []Intersection
}
