package game

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	"gogame/internal/domain/game"
	"gogame/internal/domain/user"
	errs "gogame/internal/errors"
	"gogame/internal/httpresponse"
	"gogame/internal/utils"
)

// GameService is the game protocol as the HTTP layer sees it.
type GameService interface {
	CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, error)
	GetGameState(ctx context.Context, gameID string) (game.GameState, error)
	ListCurrentGames(ctx context.Context) (game.CurrentGames, error)
	ListPastGames(ctx context.Context, before time.Time) (game.PastGames, error)
	GetSGF(ctx context.Context, gameID string) (string, error)

	PlayMove(ctx context.Context, gameID, userID string, req game.PlayRequest) ([]game.Event, error)
	AskForUndo(ctx context.Context, gameID, userID string, moveNumber int) ([]game.Event, error)
	MarkDead(ctx context.Context, gameID, userID string, req game.MarkDeadRequest) ([]game.Event, error)
	AgreeOnDeads(ctx context.Context, gameID, userID string) ([]game.Event, error)

	CreateReview(ctx context.Context, gameID, reviewerID, reviewerName string) (game.Review, error)
	GetReviewState(ctx context.Context, reviewID string) (game.GameState, error)
	ListReviews(ctx context.Context, gameID string, isOpen func(reviewID string) bool) (game.GameReviews, error)
	PlayReviewMove(ctx context.Context, reviewID, userID string, req game.PlayRequest) ([]game.Event, error)
	ChangeReviewFocus(ctx context.Context, reviewID, userID string, moveNumber int) ([]game.Event, error)
}

// UserIdentifier resolves the caller of a request. Both methods write the
// error response themselves when they fail.
type UserIdentifier interface {
	GetUserID(w http.ResponseWriter, r *http.Request) string
	LookupUser(w http.ResponseWriter, r *http.Request, userID string) (user.User, bool)
}

// Realtime serves the websocket side of the topics.
type Realtime interface {
	ServeWS(w http.ResponseWriter, r *http.Request, topic string)
	IsOpen(topic string) bool
}

type GameHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	gameUC   GameService
	auth     UserIdentifier
	realtime Realtime
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC GameService, auth UserIdentifier, realtime Realtime) *GameHandler {
	return &GameHandler{
		cfg:      cfg,
		log:      log,
		gameUC:   gameUC,
		auth:     auth,
		realtime: realtime,
	}
}

// Routes mounts the game and review endpoints on r.
func (g *GameHandler) Routes(r chi.Router) {
	r.Get("/ws/games", g.HandleGamesWS)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Get("/", g.HandleCurrentGames)
		r.Get("/past", g.HandlePastGames)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", g.HandleGameState)
			r.Get("/sgf", g.HandleSGF)
			r.Get("/ws", g.HandleGameWS)
			r.Post("/moves", g.HandlePlayMove)
			r.Post("/undo", g.HandleAskUndo)
			r.Post("/deads", g.HandleMarkDead)
			r.Post("/agree", g.HandleAgree)
			r.Post("/reviews", g.HandleNewReview)
			r.Get("/reviews", g.HandleListReviews)
		})
	})

	r.Route("/reviews/{reviewID}", func(r chi.Router) {
		r.Get("/", g.HandleReviewState)
		r.Get("/ws", g.HandleReviewWS)
		r.Post("/moves", g.HandlePlayReviewMove)
		r.Post("/focus", g.HandleReviewFocus)
	})
}

// HandleNewGame godoc
// @Summary Создание игры
// @Description Создаёт игру после принятия вызова. Вызывающий должен быть одним из игроков.
// @Tags game
// @Accept json
// @Produce json
// @Param game body game.CreateGameRequest true "Параметры игры"
// @Success 201 {object} game.Game
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /games [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}

	var req game.CreateGameRequest
	if !g.decode(w, r, &req) {
		return
	}
	if userID != req.BlackPlayerID && userID != req.WhitePlayerID {
		httpresponse.WriteError(w, errs.ErrNotAPlayer)
		return
	}

	black, ok := g.auth.LookupUser(w, r, req.BlackPlayerID)
	if !ok {
		return
	}
	white, ok := g.auth.LookupUser(w, r, req.WhitePlayerID)
	if !ok {
		return
	}
	req.BlackPlayerName = black.Username
	req.WhitePlayerName = white.Username

	play, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.fail(w, "HandleNewGame", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, play)
}

// HandleCurrentGames godoc
// @Summary Текущие игры
// @Tags game
// @Produce json
// @Success 200 {object} game.CurrentGames
// @Router /games [get]
func (g *GameHandler) HandleCurrentGames(w http.ResponseWriter, r *http.Request) {
	games, err := g.gameUC.ListCurrentGames(r.Context())
	if err != nil {
		g.fail(w, "HandleCurrentGames", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, games)
}

// HandlePastGames godoc
// @Summary Завершённые игры
// @Description Страница завершённых игр, созданных раньше before (RFC 3339), от новых к старым
// @Tags game
// @Produce json
// @Param before query string false "Граница страницы"
// @Success 200 {object} game.PastGames
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /games/past [get]
func (g *GameHandler) HandlePastGames(w http.ResponseWriter, r *http.Request) {
	var before time.Time
	if v := r.URL.Query().Get("before"); v != "" {
		var err error
		if before, err = time.Parse(time.RFC3339Nano, v); err != nil {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "before must be an RFC 3339 timestamp"})
			return
		}
	}

	games, err := g.gameUC.ListPastGames(r.Context(), before)
	if err != nil {
		g.fail(w, "HandlePastGames", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, games)
}

// HandleGameState godoc
// @Summary Состояние игры
// @Description Полное дерево ходов и состояние согласования, для клиентов потерявших синхронизацию
// @Tags game
// @Produce json
// @Param gameID path string true "ID игры"
// @Success 200 {object} game.GameState
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{gameID} [get]
func (g *GameHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGameState(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.fail(w, "HandleGameState", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleSGF godoc
// @Summary Экспорт SGF
// @Tags game
// @Produce plain
// @Param gameID path string true "ID игры"
// @Success 200 {string} string "SGF"
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/sgf [get]
func (g *GameHandler) HandleSGF(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	record, err := g.gameUC.GetSGF(r.Context(), gameID)
	if err != nil {
		g.fail(w, "HandleSGF", err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+gameID+`.sgf"`)
	_, _ = w.Write([]byte(record))
}

// HandlePlayMove godoc
// @Summary Ход в игре
// @Description Ход должен опираться на последний ход игры (previousMoveN)
// @Tags game
// @Accept json
// @Produce json
// @Param gameID path string true "ID игры"
// @Param move body game.PlayRequest true "Ход"
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 403 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/moves [post]
func (g *GameHandler) HandlePlayMove(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	var req game.PlayRequest
	if !g.decode(w, r, &req) {
		return
	}
	_, err := g.gameUC.PlayMove(r.Context(), chi.URLParam(r, "gameID"), userID, req)
	g.respond(w, "HandlePlayMove", err)
}

// HandleAskUndo godoc
// @Summary Запрос отмены хода
// @Description Встречный запрос другого игрока подтверждает отмену
// @Tags game
// @Accept json
// @Produce json
// @Param gameID path string true "ID игры"
// @Param undo body game.AskUndoRequest false "Номер отменяемого хода, по умолчанию последний ход вызывающего"
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/undo [post]
func (g *GameHandler) HandleAskUndo(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	var req game.AskUndoRequest
	if !g.decodeOptional(w, r, &req) {
		return
	}
	_, err := g.gameUC.AskForUndo(r.Context(), chi.URLParam(r, "gameID"), userID, req.MoveNumber)
	g.respond(w, "HandleAskUndo", err)
}

// HandleMarkDead godoc
// @Summary Отметка мёртвых камней
// @Tags game
// @Accept json
// @Produce json
// @Param gameID path string true "ID игры"
// @Param deads body game.MarkDeadRequest true "Пункты и необязательный флаг areDead"
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/deads [post]
func (g *GameHandler) HandleMarkDead(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	var req game.MarkDeadRequest
	if !g.decode(w, r, &req) {
		return
	}
	_, err := g.gameUC.MarkDead(r.Context(), chi.URLParam(r, "gameID"), userID, req)
	g.respond(w, "HandleMarkDead", err)
}

// HandleAgree godoc
// @Summary Согласие с мёртвыми камнями
// @Description Когда согласны оба игрока, игра подсчитывается и завершается
// @Tags game
// @Produce json
// @Param gameID path string true "ID игры"
// @Success 200 {string} string "OK"
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 403 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/agree [post]
func (g *GameHandler) HandleAgree(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	_, err := g.gameUC.AgreeOnDeads(r.Context(), chi.URLParam(r, "gameID"), userID)
	g.respond(w, "HandleAgree", err)
}

// HandleNewReview godoc
// @Summary Создание разбора
// @Tags review
// @Produce json
// @Param gameID path string true "ID игры"
// @Success 201 {object} game.Review
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/reviews [post]
func (g *GameHandler) HandleNewReview(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	reviewer, ok := g.auth.LookupUser(w, r, userID)
	if !ok {
		return
	}
	review, err := g.gameUC.CreateReview(r.Context(), chi.URLParam(r, "gameID"), userID, reviewer.Username)
	if err != nil {
		g.fail(w, "HandleNewReview", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, review)
}

// HandleListReviews godoc
// @Summary Разборы игры
// @Description Разборы, открытые сейчас хотя бы одним клиентом, и остальные
// @Tags review
// @Produce json
// @Param gameID path string true "ID игры"
// @Success 200 {object} game.GameReviews
// @Router /games/{gameID}/reviews [get]
func (g *GameHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := g.gameUC.ListReviews(r.Context(), chi.URLParam(r, "gameID"), func(reviewID string) bool {
		return g.realtime.IsOpen(game.ReviewTopic(reviewID))
	})
	if err != nil {
		g.fail(w, "HandleListReviews", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, reviews)
}

// HandleReviewState godoc
// @Summary Состояние разбора
// @Tags review
// @Produce json
// @Param reviewID path string true "ID разбора"
// @Success 200 {object} game.GameState
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /reviews/{reviewID} [get]
func (g *GameHandler) HandleReviewState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetReviewState(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		g.fail(w, "HandleReviewState", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandlePlayReviewMove godoc
// @Summary Ход в разборе
// @Description Разбор может ветвиться от любого существующего хода
// @Tags review
// @Accept json
// @Produce json
// @Param reviewID path string true "ID разбора"
// @Param move body game.PlayRequest true "Ход"
// @Success 200 {string} string "OK"
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 403 {object} httpresponse.ErrorResponse
// @Router /reviews/{reviewID}/moves [post]
func (g *GameHandler) HandlePlayReviewMove(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	var req game.PlayRequest
	if !g.decode(w, r, &req) {
		return
	}
	_, err := g.gameUC.PlayReviewMove(r.Context(), chi.URLParam(r, "reviewID"), userID, req)
	g.respond(w, "HandlePlayReviewMove", err)
}

// HandleReviewFocus godoc
// @Summary Смена текущего хода разбора
// @Tags review
// @Accept json
// @Produce json
// @Param reviewID path string true "ID разбора"
// @Param focus body game.FocusRequest true "Номер хода"
// @Success 200 {string} string "OK"
// @Failure 401 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /reviews/{reviewID}/focus [post]
func (g *GameHandler) HandleReviewFocus(w http.ResponseWriter, r *http.Request) {
	userID := g.auth.GetUserID(w, r)
	if userID == "" {
		return
	}
	var req game.FocusRequest
	if !g.decode(w, r, &req) {
		return
	}
	_, err := g.gameUC.ChangeReviewFocus(r.Context(), chi.URLParam(r, "reviewID"), userID, req.CurrentMoveNumber)
	g.respond(w, "HandleReviewFocus", err)
}

func (g *GameHandler) HandleGamesWS(w http.ResponseWriter, r *http.Request) {
	g.realtime.ServeWS(w, r, game.GamesTopic)
}

func (g *GameHandler) HandleGameWS(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, err := g.gameUC.GetGameState(r.Context(), gameID); err != nil {
		g.fail(w, "HandleGameWS", err)
		return
	}
	g.realtime.ServeWS(w, r, game.GameTopic(gameID))
}

func (g *GameHandler) HandleReviewWS(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	if _, err := g.gameUC.GetReviewState(r.Context(), reviewID); err != nil {
		g.fail(w, "HandleReviewWS", err)
		return
	}
	g.realtime.ServeWS(w, r, game.ReviewTopic(reviewID))
}

func (g *GameHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSONRequest(r, dst); err != nil {
		g.log.Debugf("malformed request to %s: %v", r.URL.Path, err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return false
	}
	return true
}

// decodeOptional is decode for endpoints whose body may be omitted.
func (g *GameHandler) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.ContentLength == 0 {
		return true
	}
	return g.decode(w, r, dst)
}

func (g *GameHandler) respond(w http.ResponseWriter, op string, err error) {
	if err != nil {
		g.fail(w, op, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (g *GameHandler) fail(w http.ResponseWriter, op string, err error) {
	status := httpresponse.StatusFromError(err)
	if status == http.StatusInternalServerError {
		g.log.Errorf("%s: %v", op, err)
	} else {
		g.log.Infof("%s: %v", op, err)
	}
	httpresponse.WriteError(w, err)
}
