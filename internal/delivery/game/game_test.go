package game

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	"gogame/internal/domain/game"
	"gogame/internal/domain/user"
	errs "gogame/internal/errors"
	"gogame/internal/httpresponse"
)

// stubService panics on every method a test does not override.
type stubService struct {
	GameService

	created   game.CreateGameRequest
	played    game.PlayRequest
	playedBy  string
	playErr   error
	undoMove  int
	before    time.Time
	sgfRecord string
	reviews   func(isOpen func(string) bool) game.GameReviews
}

func (s *stubService) CreateGame(_ context.Context, req game.CreateGameRequest) (game.Game, error) {
	s.created = req
	return game.Game{ID: "g1", Name: req.Name, Size: req.Size}, nil
}

func (s *stubService) PlayMove(_ context.Context, gameID, userID string, req game.PlayRequest) ([]game.Event, error) {
	s.played, s.playedBy = req, userID
	return nil, s.playErr
}

func (s *stubService) AskForUndo(_ context.Context, gameID, userID string, moveNumber int) ([]game.Event, error) {
	s.undoMove = moveNumber
	return nil, nil
}

func (s *stubService) ListPastGames(_ context.Context, before time.Time) (game.PastGames, error) {
	s.before = before
	return game.PastGames{NoMore: true}, nil
}

func (s *stubService) GetSGF(_ context.Context, gameID string) (string, error) {
	if gameID != "g1" {
		return "", errs.ErrGameNotFound
	}
	return s.sgfRecord, nil
}

func (s *stubService) ListReviews(_ context.Context, gameID string, isOpen func(string) bool) (game.GameReviews, error) {
	return s.reviews(isOpen), nil
}

type stubAuth struct{}

func (stubAuth) GetUserID(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie("sessionID")
	if err != nil {
		httpresponse.WriteError(w, errs.ErrSessionNotFound)
		return ""
	}
	return c.Value
}

func (stubAuth) LookupUser(w http.ResponseWriter, r *http.Request, userID string) (user.User, bool) {
	names := map[string]string{"alice": "Alice", "bob": "Bob"}
	name, ok := names[userID]
	if !ok {
		httpresponse.WriteError(w, errs.ErrUserNotFound)
		return user.User{}, false
	}
	return user.User{ID: userID, Username: name}, true
}

type stubRealtime struct {
	open map[string]bool
}

func (s stubRealtime) ServeWS(w http.ResponseWriter, r *http.Request, topic string) {
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func (s stubRealtime) IsOpen(topic string) bool { return s.open[topic] }

func newRouter(svc *stubService, rt stubRealtime) http.Handler {
	h := NewGameHandler(bootstrap.Config{}, zap.NewNop().Sugar(), svc, stubAuth{}, rt)
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if userID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionID", Value: userID})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlePlayMove(t *testing.T) {
	svc := &stubService{}
	h := newRouter(svc, stubRealtime{})

	rec := do(t, h, http.MethodPost, "/games/g1/moves", "alice",
		`{"move":{"kind":"stone","x":2,"y":3},"previousMoveN":4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", svc.playedBy)
	assert.Equal(t, 4, svc.played.PreviousMoveN)
	assert.Equal(t, game.KindStone, svc.played.Move.Kind)
}

func TestHandlePlayMoveErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   string
		err    error
		status int
	}{
		{name: "no session", body: `{}`, status: http.StatusUnauthorized},
		{name: "malformed json", userID: "alice", body: `{"move":`, status: http.StatusBadRequest},
		{name: "unknown field", userID: "alice", body: `{"mvoe":{}}`, status: http.StatusBadRequest},
		{name: "out of turn", userID: "alice", body: `{}`, err: errs.ErrNotYourTurn, status: http.StatusForbidden},
		{name: "internal", userID: "alice", body: `{}`, err: errs.ErrInternal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(&stubService{playErr: tt.err}, stubRealtime{})
			rec := do(t, h, http.MethodPost, "/games/g1/moves", tt.userID, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleNewGame(t *testing.T) {
	svc := &stubService{}
	h := newRouter(svc, stubRealtime{})
	body := `{"name":"friendly","size":9,"black_player_id":"alice","white_player_id":"bob"}`

	rec := do(t, h, http.MethodPost, "/games", "bob", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Alice", svc.created.BlackPlayerName)
	assert.Equal(t, "Bob", svc.created.WhitePlayerName)

	var resp struct {
		Body game.Game
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "g1", resp.Body.ID)

	rec = do(t, h, http.MethodPost, "/games", "carol", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/games", "alice",
		`{"name":"x","size":9,"black_player_id":"alice","white_player_id":"nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAskUndoWithoutBody(t *testing.T) {
	svc := &stubService{undoMove: -1}
	h := newRouter(svc, stubRealtime{})

	rec := do(t, h, http.MethodPost, "/games/g1/undo", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.undoMove)

	rec = do(t, h, http.MethodPost, "/games/g1/undo", "alice", `{"moveNumber":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.undoMove)
}

func TestHandlePastGames(t *testing.T) {
	svc := &stubService{}
	h := newRouter(svc, stubRealtime{})

	rec := do(t, h, http.MethodGet, "/games/past?before=2024-03-01T10:00:00Z", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), svc.before.UTC())

	rec = do(t, h, http.MethodGet, "/games/past?before=yesterday", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSGF(t *testing.T) {
	svc := &stubService{sgfRecord: "(;FF[4]GM[1]SZ[9])"}
	h := newRouter(svc, stubRealtime{})

	rec := do(t, h, http.MethodGet, "/games/g1/sgf", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "(;FF[4]GM[1]SZ[9])", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/x-go-sgf")

	rec = do(t, h, http.MethodGet, "/games/g2/sgf", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListReviewsUsesOpenTopics(t *testing.T) {
	svc := &stubService{reviews: func(isOpen func(string) bool) game.GameReviews {
		var out game.GameReviews
		for _, id := range []string{"r1", "r2"} {
			if isOpen(id) {
				out.ActiveReviews = append(out.ActiveReviews, game.Review{ID: id})
			} else {
				out.InactiveReviews = append(out.InactiveReviews, game.Review{ID: id})
			}
		}
		return out
	}}
	h := newRouter(svc, stubRealtime{open: map[string]bool{game.ReviewTopic("r2"): true}})

	rec := do(t, h, http.MethodGet, "/games/g1/reviews", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Body game.GameReviews
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Body.ActiveReviews, 1)
	assert.Equal(t, "r2", resp.Body.ActiveReviews[0].ID)
	require.Len(t, resp.Body.InactiveReviews, 1)
	assert.Equal(t, "r1", resp.Body.InactiveReviews[0].ID)
}
