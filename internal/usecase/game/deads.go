package game

import (
	"context"
	"fmt"
	"maps"

	"github.com/hashicorp/go-multierror"

	"gogame/internal/domain/game"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

// MarkDead updates the shared dead stone set of a game. Without AreDead each
// listed intersection is toggled; with it they are all set to that value.
// A net change of the set withdraws a pending agreement.
func (g *GameUseCase) MarkDead(ctx context.Context, gameID, userID string, req game.MarkDeadRequest) ([]game.Event, error) {
	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)

	play, _, err := g.loadLiveGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if err = validateIntersections(play.Size, req.Deads); err != nil {
		return nil, err
	}

	before := maps.Clone(c.deads)
	for _, p := range req.Deads {
		_, isDead := c.deads[p]
		wantDead := !isDead
		if req.AreDead != nil {
			wantDead = *req.AreDead
		}
		if wantDead {
			c.deads[p] = struct{}{}
		} else {
			delete(c.deads, p)
		}
	}
	// toggling a point twice in one batch is no change
	changed := !maps.Equal(before, c.deads)

	var events []game.Event
	if changed && c.agreesFor != 0 {
		g.log.Infof("game %s: dead stones changed, %s agreement withdrawn", gameID, c.agreesFor)
		c.agreesFor = 0
		events = append(events, game.Event{
			Topic:   game.GameTopic(gameID),
			Kind:    game.EventAgreementChange,
			Payload: game.AgreementPayload{AgreesFor: agreesForLabel(0)},
		})
	}
	events = append(events, game.Event{
		Topic:   game.GameTopic(gameID),
		Kind:    game.EventDeadsChange,
		Payload: game.DeadStonesPayload{DeadStones: c.deadStones()},
	})

	g.publish(ctx, events...)
	return events, nil
}

// AgreeOnDeads records that the caller accepts the current dead stones. Once
// both colors agree the game is scored and finished.
func (g *GameUseCase) AgreeOnDeads(ctx context.Context, gameID, userID string) ([]game.Event, error) {
	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)

	play, color, err := g.loadLiveGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}

	if c.agreesFor == 0 || c.agreesFor == color {
		c.agreesFor = color
		events := []game.Event{{
			Topic:   game.GameTopic(gameID),
			Kind:    game.EventAgreementChange,
			Payload: game.AgreementPayload{AgreesFor: agreesForLabel(color)},
		}}
		g.publish(ctx, events...)
		return events, nil
	}

	eng, err := engine.Restore(play.Size, play.Handicap, play.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}
	deads := c.deadStones()
	outcome := scoreOutcome(eng.Scores(deads))
	outcome.Deads = deads

	events, err := g.finish(ctx, play, c, outcome, statuses.StatusOngoing, statuses.StatusStale)
	if err != nil {
		return nil, err
	}
	g.publish(ctx, events...)
	return events, nil
}

func scoreOutcome(scores engine.Scores) game.Outcome {
	switch {
	case scores.Black > scores.White:
		return game.Outcome{Result: statuses.ResultBlackWin, ResultExpanded: fmt.Sprintf("B+%d", scores.Black-scores.White)}
	case scores.White > scores.Black:
		return game.Outcome{Result: statuses.ResultWhiteWin, ResultExpanded: fmt.Sprintf("W+%d", scores.White-scores.Black)}
	}
	return game.Outcome{Result: statuses.ResultDraw, ResultExpanded: "Draw - same score"}
}

func validateIntersections(size int, points []game.Intersection) error {
	var result *multierror.Error
	for _, p := range points {
		if p.X < 0 || p.Y < 0 || p.X >= size || p.Y >= size {
			result = multierror.Append(result, fmt.Errorf("%w: (%d, %d)", errs.ErrOutOfBounds, p.X, p.Y))
		}
	}
	return result.ErrorOrNil()
}
