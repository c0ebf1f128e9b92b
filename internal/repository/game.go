package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

const (
	gamesCollection   = "games"
	reviewsCollection = "reviews"
	queryTimeout      = 5 * time.Second
)

// GameRepository keeps games and reviews in Mongo and the exported SGF
// records in Redis.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
	now   func() time.Time
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
		now:   time.Now,
	}
}

// EnsureIndexes creates the indexes used by the listings.
func (g *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := g.mongo.Collection(gamesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("games index: %w", err)
	}
	_, err = g.mongo.Collection(reviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "game_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("reviews index: %w", err)
	}
	return nil
}

func (g *GameRepository) CreateGame(ctx context.Context, play game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, play); err != nil {
		g.log.Errorf("failed to insert game %s: %v", play.ID, err)
		return err
	}
	return nil
}

func (g *GameRepository) GetGameById(ctx context.Context, gameID string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var play game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"_id": gameID}).Decode(&play)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, errs.ErrGameNotFound
	}
	if err != nil {
		g.log.Errorf("failed to load game %s: %v", gameID, err)
		return game.Game{}, err
	}
	return play, nil
}

func (g *GameRepository) UpdateGameMoves(ctx context.Context, gameID string, moves string, currentMoveNumber int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"moves":               moves,
		"current_move_number": currentMoveNumber,
		"updated_at":          g.now(),
	}}
	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, bson.M{"_id": gameID}, update)
	if err != nil {
		g.log.Errorf("failed to update moves of game %s: %v", gameID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrGameNotFound
	}
	return nil
}

func (g *GameRepository) FinishGame(ctx context.Context, gameID string, outcome game.Outcome, from ...statuses.Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": gameID, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{
		"status":          statuses.StatusFinished,
		"result":          outcome.Result,
		"result_expanded": outcome.ResultExpanded,
		"deads":           outcome.Deads,
		"updated_at":      g.now(),
	}}
	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to finish game %s: %v", gameID, err)
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (g *GameRepository) SwitchGameStatus(ctx context.Context, gameID string, from, to statuses.Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": gameID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": g.now()}}
	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to switch game %s from %s to %s: %v", gameID, from, to, err)
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (g *GameRepository) GetGamesByStatus(ctx context.Context, status statuses.Status) ([]game.Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return g.findGames(ctx, bson.M{"status": status}, opts)
}

func (g *GameRepository) GetPastGames(ctx context.Context, before time.Time, limit int) ([]game.Game, error) {
	filter := bson.M{
		"status":     statuses.StatusFinished,
		"created_at": bson.M{"$lt": before},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return g.findGames(ctx, filter, opts)
}

func (g *GameRepository) findGames(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := g.mongo.Collection(gamesCollection).Find(ctx, filter, opts)
	if err != nil {
		g.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []game.Game{}
	for cursor.Next(ctx) {
		var play game.Game
		if err = cursor.Decode(&play); err != nil {
			g.log.Error(err)
			return nil, err
		}
		result = append(result, play)
	}
	return result, cursor.Err()
}

func (g *GameRepository) CreateReview(ctx context.Context, review game.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := g.mongo.Collection(reviewsCollection).InsertOne(ctx, review); err != nil {
		g.log.Errorf("failed to insert review %s: %v", review.ID, err)
		return err
	}
	return nil
}

func (g *GameRepository) GetReviewById(ctx context.Context, reviewID string) (game.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var review game.Review
	err := g.mongo.Collection(reviewsCollection).FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Review{}, errs.ErrReviewNotFound
	}
	if err != nil {
		g.log.Errorf("failed to load review %s: %v", reviewID, err)
		return game.Review{}, err
	}
	return review, nil
}

func (g *GameRepository) UpdateReviewMoves(ctx context.Context, reviewID string, moves string, currentMoveNumber int) error {
	return g.updateReview(ctx, reviewID, bson.M{
		"moves":               moves,
		"current_move_number": currentMoveNumber,
	})
}

func (g *GameRepository) UpdateReviewFocus(ctx context.Context, reviewID string, currentMoveNumber int) error {
	return g.updateReview(ctx, reviewID, bson.M{"current_move_number": currentMoveNumber})
}

func (g *GameRepository) updateReview(ctx context.Context, reviewID string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := g.mongo.Collection(reviewsCollection).UpdateOne(ctx, bson.M{"_id": reviewID}, bson.M{"$set": set})
	if err != nil {
		g.log.Errorf("failed to update review %s: %v", reviewID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrReviewNotFound
	}
	return nil
}

func (g *GameRepository) GetReviewsByGameId(ctx context.Context, gameID string) ([]game.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := g.mongo.Collection(reviewsCollection).Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		g.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []game.Review{}
	if err = cursor.All(ctx, &result); err != nil {
		g.log.Error(err)
		return nil, err
	}
	return result, nil
}

func (g *GameRepository) SaveSGFToRedis(ctx context.Context, key string, sgfText string) error {
	return g.redis.Set(ctx, key, sgfText, 0).Err()
}

func (g *GameRepository) LoadSGFFromRedis(ctx context.Context, key string) (string, error) {
	v, err := g.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrCacheMiss
	}
	return v, err
}

func (g *GameRepository) DeleteSGFFromRedis(ctx context.Context, key string) error {
	return g.redis.Del(ctx, key).Err()
}
