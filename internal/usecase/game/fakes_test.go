package game

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

type memoryStore struct {
	mu      sync.Mutex
	games   map[string]game.Game
	reviews map[string]game.Review
	sgf     map[string]string
	writes  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		games:   make(map[string]game.Game),
		reviews: make(map[string]game.Review),
		sgf:     make(map[string]string),
	}
}

func (m *memoryStore) CreateGame(_ context.Context, play game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[play.ID] = play
	return nil
}

func (m *memoryStore) GetGameById(_ context.Context, gameID string) (game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	play, ok := m.games[gameID]
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	return play, nil
}

func (m *memoryStore) UpdateGameMoves(_ context.Context, gameID string, moves string, currentMoveNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	play, ok := m.games[gameID]
	if !ok {
		return errs.ErrGameNotFound
	}
	play.Moves = moves
	play.CurrentMoveNumber = currentMoveNumber
	m.games[gameID] = play
	m.writes++
	return nil
}

func (m *memoryStore) FinishGame(_ context.Context, gameID string, outcome game.Outcome, from ...statuses.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	play, ok := m.games[gameID]
	if !ok || !slices.Contains(from, play.Status) {
		return false, nil
	}
	play.Status = statuses.StatusFinished
	play.Result = outcome.Result
	play.ResultExpanded = outcome.ResultExpanded
	play.Deads = outcome.Deads
	m.games[gameID] = play
	return true, nil
}

func (m *memoryStore) SwitchGameStatus(_ context.Context, gameID string, from, to statuses.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	play, ok := m.games[gameID]
	if !ok || play.Status != from {
		return false, nil
	}
	play.Status = to
	m.games[gameID] = play
	return true, nil
}

func (m *memoryStore) GetGamesByStatus(_ context.Context, status statuses.Status) ([]game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []game.Game
	for _, play := range m.games {
		if play.Status == status {
			res = append(res, play)
		}
	}
	return res, nil
}

func (m *memoryStore) GetPastGames(_ context.Context, before time.Time, limit int) ([]game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []game.Game
	for _, play := range m.games {
		if play.Status == statuses.StatusFinished && play.CreatedAt.Before(before) {
			res = append(res, play)
		}
	}
	slices.SortFunc(res, func(a, b game.Game) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *memoryStore) CreateReview(_ context.Context, review game.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *memoryStore) GetReviewById(_ context.Context, reviewID string) (game.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[reviewID]
	if !ok {
		return game.Review{}, errs.ErrReviewNotFound
	}
	return review, nil
}

func (m *memoryStore) UpdateReviewMoves(_ context.Context, reviewID string, moves string, currentMoveNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review := m.reviews[reviewID]
	review.Moves = moves
	review.CurrentMoveNumber = currentMoveNumber
	m.reviews[reviewID] = review
	return nil
}

func (m *memoryStore) UpdateReviewFocus(_ context.Context, reviewID string, currentMoveNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review := m.reviews[reviewID]
	review.CurrentMoveNumber = currentMoveNumber
	m.reviews[reviewID] = review
	return nil
}

func (m *memoryStore) GetReviewsByGameId(_ context.Context, gameID string) ([]game.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []game.Review
	for _, r := range m.reviews {
		if r.GameID == gameID {
			res = append(res, r)
		}
	}
	slices.SortFunc(res, func(a, b game.Review) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return res, nil
}

func (m *memoryStore) SaveSGFToRedis(_ context.Context, key string, sgfText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sgf[key] = sgfText
	return nil
}

func (m *memoryStore) LoadSGFFromRedis(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sgf[key]
	if !ok {
		return "", errs.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) DeleteSGFFromRedis(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sgf, key)
	return nil
}

func (m *memoryStore) mustGame(t *testing.T, gameID string) game.Game {
	t.Helper()
	play, err := m.GetGameById(context.Background(), gameID)
	require.NoError(t, err)
	return play
}

// recordingPublisher checks that every published event describes state the
// store already holds.
type recordingPublisher struct {
	mu     sync.Mutex
	events []game.Event
	check  func(game.Event)
}

func (p *recordingPublisher) Publish(_ context.Context, events ...game.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		if p.check != nil {
			p.check(e)
		}
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) kinds() []game.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]game.EventKind, 0, len(p.events))
	for _, e := range p.events {
		res = append(res, e.Kind)
	}
	return res
}

const (
	blackID = "alice"
	whiteID = "bob"
)

type fixture struct {
	uc        *GameUseCase
	store     *memoryStore
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	cfg := bootstrap.Config{
		PageLimitGames:        2,
		StaleGameCleanupDelay: time.Hour,
		StaleGameGracePeriod:  time.Second,
	}
	uc := NewGameUseCase(cfg, zap.NewNop().Sugar(), store, publisher)
	t.Cleanup(uc.Close)
	return &fixture{uc: uc, store: store, publisher: publisher}
}

func (f *fixture) newGame(t *testing.T, size int) game.Game {
	t.Helper()
	play, err := f.uc.CreateGame(context.Background(), game.CreateGameRequest{
		Name:            "test",
		Size:            size,
		BlackPlayerID:   blackID,
		BlackPlayerName: "Alice",
		WhitePlayerID:   whiteID,
		WhitePlayerName: "Bob",
	})
	require.NoError(t, err)
	return play
}

func stoneData(x, y int) game.MoveData {
	return game.MoveData{Kind: game.KindStone, X: &x, Y: &y}
}

// playStones alternates black and white starting from black.
func (f *fixture) playStones(t *testing.T, gameID string, coords ...int) {
	t.Helper()
	for i := 0; i+1 < len(coords); i += 2 {
		play := f.store.mustGame(t, gameID)
		user := blackID
		if (i/2)%2 == 1 {
			user = whiteID
		}
		_, err := f.uc.PlayMove(context.Background(), gameID, user, game.PlayRequest{
			Move:          stoneData(coords[i], coords[i+1]),
			PreviousMoveN: play.CurrentMoveNumber,
		})
		require.NoError(t, err, "move %d", i/2+1)
	}
}
