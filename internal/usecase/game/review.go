package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gogame/internal/domain/game"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
)

// CreateReview copies the current tree of a game into a new review owned
// by reviewerID. The review evolves independently from the game afterwards.
func (g *GameUseCase) CreateReview(ctx context.Context, gameID, reviewerID, reviewerName string) (game.Review, error) {
	play, err := g.store.GetGameById(ctx, gameID)
	if err != nil {
		return game.Review{}, err
	}

	review := game.Review{
		ID:                uuid.NewString(),
		GameID:            play.ID,
		GameName:          play.Name,
		BlackPlayerName:   play.BlackPlayerName,
		WhitePlayerName:   play.WhitePlayerName,
		ReviewerID:        reviewerID,
		ReviewerName:      reviewerName,
		Size:              play.Size,
		Handicap:          play.Handicap,
		Moves:             play.Moves,
		CurrentMoveNumber: play.CurrentMoveNumber,
		CreatedAt:         g.now(),
	}
	if err = g.store.CreateReview(ctx, review); err != nil {
		return game.Review{}, fmt.Errorf("create review of game %s: %w", gameID, err)
	}
	g.log.Infof("review %s of game %s created by %s", review.ID, gameID, reviewerID)
	return review, nil
}

func (g *GameUseCase) GetReviewState(ctx context.Context, reviewID string) (game.GameState, error) {
	review, err := g.store.GetReviewById(ctx, reviewID)
	if err != nil {
		return game.GameState{}, err
	}
	return game.GameState{Moves: review.Moves, CurrentMoveNumber: review.CurrentMoveNumber}, nil
}

// ChangeReviewFocus moves the reviewer's pointer so that everybody watching
// the review sees the same position.
func (g *GameUseCase) ChangeReviewFocus(ctx context.Context, reviewID, userID string, moveNumber int) ([]game.Event, error) {
	key := game.ReviewTopic(reviewID)
	c := g.sessions.lock(key)
	defer g.sessions.release(key, c)

	review, err := g.store.GetReviewById(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != userID {
		return nil, errs.ErrNotReviewer
	}
	tree, err := engine.Deserialize(review.Moves)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, err)
	}
	if _, err = tree.FindNode(moveNumber); err != nil {
		return nil, err
	}

	if err = g.store.UpdateReviewFocus(ctx, reviewID, moveNumber); err != nil {
		return nil, fmt.Errorf("save focus of review %s: %w", reviewID, err)
	}

	events := []game.Event{{
		Topic:   key,
		Kind:    game.EventFocusChanged,
		Payload: game.FocusPayload{CurrentMoveNumber: moveNumber},
	}}
	g.publish(ctx, events...)
	return events, nil
}

// ListReviews splits the reviews of a game between the ones somebody is
// currently looking at and the others.
func (g *GameUseCase) ListReviews(ctx context.Context, gameID string, isOpen func(reviewID string) bool) (game.GameReviews, error) {
	reviews, err := g.store.GetReviewsByGameId(ctx, gameID)
	if err != nil {
		return game.GameReviews{}, err
	}

	res := game.GameReviews{ActiveReviews: []game.Review{}, InactiveReviews: []game.Review{}}
	for _, r := range reviews {
		if isOpen != nil && isOpen(r.ID) {
			res.ActiveReviews = append(res.ActiveReviews, r)
		} else {
			res.InactiveReviews = append(res.InactiveReviews, r)
		}
	}
	return res, nil
}

// PublishReviewsChange tells everybody watching the reviewed game which of
// its reviews are open now. It is called when a review page opens or closes.
func (g *GameUseCase) PublishReviewsChange(ctx context.Context, reviewID string, isOpen func(reviewID string) bool) ([]game.Event, error) {
	review, err := g.store.GetReviewById(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	reviews, err := g.ListReviews(ctx, review.GameID, isOpen)
	if err != nil {
		return nil, fmt.Errorf("list reviews of game %s: %w", review.GameID, err)
	}

	events := []game.Event{{
		Topic:   game.GameTopic(review.GameID),
		Kind:    game.EventReviewsChange,
		Payload: reviews,
	}}
	g.publish(ctx, events...)
	return events, nil
}
