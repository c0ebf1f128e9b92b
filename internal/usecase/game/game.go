package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	"gogame/internal/domain/game"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

type GameStore interface {
	CreateGame(ctx context.Context, play game.Game) error
	GetGameById(ctx context.Context, gameID string) (game.Game, error)
	UpdateGameMoves(ctx context.Context, gameID string, moves string, currentMoveNumber int) error
	// FinishGame writes outcome only while the game status is one of from;
	// it reports whether the game was updated.
	FinishGame(ctx context.Context, gameID string, outcome game.Outcome, from ...statuses.Status) (bool, error)
	SwitchGameStatus(ctx context.Context, gameID string, from, to statuses.Status) (bool, error)
	GetGamesByStatus(ctx context.Context, status statuses.Status) ([]game.Game, error)
	GetPastGames(ctx context.Context, before time.Time, limit int) ([]game.Game, error)

	CreateReview(ctx context.Context, review game.Review) error
	GetReviewById(ctx context.Context, reviewID string) (game.Review, error)
	UpdateReviewMoves(ctx context.Context, reviewID string, moves string, currentMoveNumber int) error
	UpdateReviewFocus(ctx context.Context, reviewID string, currentMoveNumber int) error
	GetReviewsByGameId(ctx context.Context, gameID string) ([]game.Review, error)

	SaveSGFToRedis(ctx context.Context, key string, sgfText string) error
	LoadSGFFromRedis(ctx context.Context, key string) (string, error)
	DeleteSGFFromRedis(ctx context.Context, key string) error
}

// Publisher delivers events to observers. It is only called after the state
// the events describe has been persisted.
type Publisher interface {
	Publish(ctx context.Context, events ...game.Event) error
}

type GameUseCase struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	store     GameStore
	publisher Publisher
	sessions  *registry
	now       func() time.Time

	staleMu     sync.Mutex
	staleTimers map[string]*time.Timer
}

func NewGameUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store GameStore, publisher Publisher) *GameUseCase {
	return &GameUseCase{
		cfg:         cfg,
		log:         log,
		store:       store,
		publisher:   publisher,
		sessions:    newRegistry(),
		now:         time.Now,
		staleTimers: make(map[string]*time.Timer),
	}
}

// CreateGame starts a game between two players once a challenge is accepted.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, error) {
	if req.BlackPlayerID == "" || req.WhitePlayerID == "" || req.BlackPlayerID == req.WhitePlayerID {
		return game.Game{}, fmt.Errorf("%w: two distinct players are required", errs.ErrBadRequest)
	}
	eng, err := engine.New(req.Size, req.Handicap)
	if err != nil {
		return game.Game{}, err
	}

	now := g.now()
	play := game.Game{
		ID:              uuid.NewString(),
		Name:            req.Name,
		BlackPlayerID:   req.BlackPlayerID,
		BlackPlayerName: req.BlackPlayerName,
		WhitePlayerID:   req.WhitePlayerID,
		WhitePlayerName: req.WhitePlayerName,
		Size:            req.Size,
		Handicap:        req.Handicap,
		Status:          statuses.StatusOngoing,
		Moves:           eng.Tree().Serialize(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = g.store.CreateGame(ctx, play); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	g.log.Infof("game %s created: %s vs %s on %dx%d", play.ID, play.BlackPlayerName, play.WhitePlayerName, play.Size, play.Size)

	g.publish(ctx,
		game.Event{Topic: game.GameTopic(play.ID), Kind: game.EventGameCreated, Payload: game.GameCreatedPayload{GameID: play.ID}},
		game.Event{Topic: game.GamesTopic, Kind: game.EventGamesListChanged},
	)
	return play, nil
}

// GetGameState returns the whole serialized tree along with the pending
// coordination state, for clients that lost track of the game.
func (g *GameUseCase) GetGameState(ctx context.Context, gameID string) (game.GameState, error) {
	play, err := g.store.GetGameById(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}

	state := game.GameState{
		Moves:             play.Moves,
		CurrentMoveNumber: play.CurrentMoveNumber,
		Status:            play.Status,
		Result:            play.Result,
		ResultExpanded:    play.ResultExpanded,
		DeadStones:        play.Deads,
		AgreesFor:         agreesForLabel(0),
	}
	if play.Status == statuses.StatusFinished {
		return state, nil
	}

	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)
	state.DeadStones = c.deadStones()
	state.AgreesFor = agreesForLabel(c.agreesFor)
	if c.undo != nil {
		pending := *c.undo
		state.UndoRequest = &pending
	}
	return state, nil
}

func (g *GameUseCase) ListCurrentGames(ctx context.Context) (game.CurrentGames, error) {
	current, err := g.store.GetGamesByStatus(ctx, statuses.StatusOngoing)
	if err != nil {
		return game.CurrentGames{}, err
	}
	stale, err := g.store.GetGamesByStatus(ctx, statuses.StatusStale)
	if err != nil {
		return game.CurrentGames{}, err
	}
	return game.CurrentGames{CurrentGames: current, StaleGames: stale}, nil
}

// ListPastGames pages finished games created before the given time, newest first.
func (g *GameUseCase) ListPastGames(ctx context.Context, before time.Time) (game.PastGames, error) {
	if before.IsZero() {
		before = g.now()
	}
	limit := g.cfg.PageLimitGames
	if limit <= 0 {
		limit = 20
	}

	past, err := g.store.GetPastGames(ctx, before, limit)
	if err != nil {
		return game.PastGames{}, err
	}
	return game.PastGames{PastGames: past, NoMore: len(past) != limit}, nil
}

func (g *GameUseCase) loadLiveGame(ctx context.Context, gameID, userID string) (game.Game, game.Color, error) {
	play, err := g.store.GetGameById(ctx, gameID)
	if err != nil {
		return game.Game{}, 0, err
	}
	color, ok := play.ColorOf(userID)
	if !ok {
		return game.Game{}, 0, errs.ErrNotAPlayer
	}
	if play.Status == statuses.StatusFinished {
		return game.Game{}, 0, errs.ErrGameFinished
	}
	return play, color, nil
}

// finish persists outcome and drops the game's coordination state. c must
// be the locked coordination of play.
func (g *GameUseCase) finish(ctx context.Context, play game.Game, c *coordination, outcome game.Outcome, from ...statuses.Status) ([]game.Event, error) {
	ok, err := g.store.FinishGame(ctx, play.ID, outcome, from...)
	if err != nil {
		return nil, fmt.Errorf("finish game %s: %w", play.ID, err)
	}
	if !ok {
		return nil, errs.ErrGameFinished
	}

	c.reset()
	g.stopStaleCleanup(play.ID)
	g.invalidateSGF(ctx, play.ID)
	g.log.Infof("game %s finished: %s (%s)", play.ID, outcome.Result, outcome.ResultExpanded)

	deads := outcome.Deads
	if deads == nil {
		deads = []game.Intersection{}
	}
	return []game.Event{
		{Topic: game.GameTopic(play.ID), Kind: game.EventFinished, Payload: game.FinishedPayload{
			Result:         outcome.Result,
			ResultExpanded: outcome.ResultExpanded,
			DeadStones:     deads,
		}},
		{Topic: game.GamesTopic, Kind: game.EventGamesListChanged},
	}, nil
}

func (g *GameUseCase) publish(ctx context.Context, events ...game.Event) {
	if len(events) == 0 {
		return
	}
	if err := g.publisher.Publish(ctx, events...); err != nil {
		g.log.Errorf("failed to publish %d events to %s: %v", len(events), events[0].Topic, err)
	}
}

func sgfKey(gameID string) string {
	return "sgf:" + gameID
}

func (g *GameUseCase) invalidateSGF(ctx context.Context, gameID string) {
	if err := g.store.DeleteSGFFromRedis(ctx, sgfKey(gameID)); err != nil {
		g.log.Warnf("failed to invalidate sgf of game %s: %v", gameID, err)
	}
}
