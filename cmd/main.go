package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "gogame/docs"
	"gogame/internal/adapters"
	"gogame/internal/bootstrap"
	authDelivery "gogame/internal/delivery/auth"
	gameDelivery "gogame/internal/delivery/game"
	"gogame/internal/delivery/realtime"
	ownMiddleware "gogame/internal/middleware"
	repo "gogame/internal/repository"
	authUC "gogame/internal/usecase/auth"
	gameUC "gogame/internal/usecase/game"
)

type mainDeliveryHandler struct {
	auth *authDelivery.AuthHandler
	game *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

// @title Go game server API
// @version 1.0
// @BasePath /
func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	databaseAdapters, err := initDatabaseAdapters(ctx, logger, cfg)
	if err != nil {
		logger.Errorw("Failed to initialize database adapters", zap.Error(err))
		return
	}
	defer databaseAdapters.close(logger)

	gameRepo := repo.NewGameRepository(*cfg, logger, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	if err := gameRepo.EnsureIndexes(ctx); err != nil {
		logger.Errorw("Failed to create indexes", zap.Error(err))
		return
	}
	publisher := repo.NewRedisEventPublisher(logger, databaseAdapters.redisAdapter.GetClient())
	games := gameUC.NewGameUseCase(*cfg, logger, gameRepo, publisher)
	defer games.Close()

	presence := gameDelivery.NewPresence(logger, games)
	hub := realtime.NewHub(logger, presence)
	presence.Bind(hub.IsOpen)
	defer hub.Close()
	go hub.Listen(ctx, databaseAdapters.redisAdapter.GetClient())

	if err := games.ResumeStaleGames(ctx); err != nil {
		logger.Warnw("Failed to resume stale games", zap.Error(err))
	}

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters, games, hub)
	handlers.Router(r, cfg.IsLocalCors)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Server stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("Graceful shutdown failed", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS(ownMiddleware.LocalOrigins))
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Delete("/logout", h.auth.Logout)
	r.Get("/me", h.auth.Me)
	h.game.Routes(r)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, err
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

func (d *dataBaseAdapters) close(log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.mongoAdapter.Close(ctx); err != nil {
		log.Warnw("Failed to close mongo", zap.Error(err))
	}
	if err := d.redisAdapter.Close(ctx); err != nil {
		log.Warnw("Failed to close redis", zap.Error(err))
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
	games *gameUC.GameUseCase,
	hub *realtime.Hub,
) *mainDeliveryHandler {
	userStorage := repo.NewMongoUserStorage(log, databaseAdapters.mongoAdapter.Database)
	sessionStorage := repo.NewSessionRedisStorage(databaseAdapters.redisAdapter.GetClient())
	authDeliveryHandler := authDelivery.NewAuthHandler(cfg, authUC.NewUserUsecaseHandler(userStorage, sessionStorage), log)

	gameDeliveryHandler := gameDelivery.NewGameHandler(cfg, log, games, authDeliveryHandler, hub)

	return &mainDeliveryHandler{
		auth: authDeliveryHandler,
		game: gameDeliveryHandler,
	}
}
