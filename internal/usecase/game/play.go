package game

import (
	"context"
	"fmt"

	"gogame/internal/domain/game"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

// PlayMove applies a move submitted by a player of a live game. The
// submission must be based on the latest move of the game.
func (g *GameUseCase) PlayMove(ctx context.Context, gameID, userID string, req game.PlayRequest) ([]game.Event, error) {
	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)

	play, color, err := g.loadLiveGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	eng, err := engine.Restore(play.Size, play.Handicap, play.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}

	if req.PreviousMoveN != eng.MaxMoveNumber() {
		g.log.Infof("game %s: rejected move based on %d, latest is %d", gameID, req.PreviousMoveN, eng.MaxMoveNumber())
		return nil, errs.ErrOutOfSync
	}
	if err = eng.BackToMove(req.PreviousMoveN); err != nil {
		return nil, err
	}
	if eng.CurrentColor() != color {
		return nil, fmt.Errorf("%w: %s to move", errs.ErrNotYourTurn, eng.CurrentColor())
	}

	move, err := game.DecodeMove(req.Move, color)
	if err != nil {
		return nil, err
	}
	if move.Player() != color {
		return nil, errs.ErrNotYourTurn
	}

	node, err := eng.Play(move)
	if err != nil {
		return nil, err
	}
	if err = g.store.UpdateGameMoves(ctx, gameID, eng.Tree().Serialize(), node.N); err != nil {
		return nil, fmt.Errorf("save move of game %s: %w", gameID, err)
	}
	g.invalidateSGF(ctx, gameID)

	events := []game.Event{playedEvent(game.GameTopic(gameID), node)}

	if resign, ok := move.(game.Resign); ok {
		outcome := game.Outcome{
			Result:         statuses.ResultBlackWin,
			ResultExpanded: fmt.Sprintf("White resigned on move %d", node.Depth),
		}
		if resign.Color == game.Black {
			outcome.Result = statuses.ResultWhiteWin
			outcome.ResultExpanded = fmt.Sprintf("Black resigned on move %d", node.Depth)
		}
		finished, err := g.finish(ctx, play, c, outcome, statuses.StatusOngoing, statuses.StatusStale)
		if err != nil {
			return nil, err
		}
		events = append(events, finished...)
	}

	g.publish(ctx, events...)
	return events, nil
}

// PlayReviewMove applies a move in a review. Reviewers may branch from any
// existing move, so the submission only has to reference a known number.
func (g *GameUseCase) PlayReviewMove(ctx context.Context, reviewID, userID string, req game.PlayRequest) ([]game.Event, error) {
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
	eng, err := engine.Restore(review.Size, review.Handicap, review.Moves)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, err)
	}

	if req.PreviousMoveN > eng.MaxMoveNumber() {
		return nil, errs.ErrOutOfSync
	}
	if err = eng.BackToMove(req.PreviousMoveN); err != nil {
		return nil, err
	}

	move, err := game.DecodeMove(req.Move, eng.CurrentColor())
	if err != nil {
		return nil, err
	}
	node, err := eng.Play(move)
	if err != nil {
		return nil, err
	}
	if err = g.store.UpdateReviewMoves(ctx, reviewID, eng.Tree().Serialize(), node.N); err != nil {
		return nil, fmt.Errorf("save move of review %s: %w", reviewID, err)
	}

	events := []game.Event{playedEvent(key, node)}
	g.publish(ctx, events...)
	return events, nil
}

func playedEvent(topic string, node *engine.Node) game.Event {
	return game.Event{
		Topic: topic,
		Kind:  game.EventStateChanged,
		Payload: game.MovePlayedPayload{
			N:        node.N,
			ParentN:  node.ParentN(),
			MoveData: game.EncodeMove(node.Move),
		},
	}
}
