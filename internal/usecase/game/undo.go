package game

import (
	"context"
	"fmt"

	"gogame/internal/domain/game"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
)

// AskForUndo runs the two step undo handshake. A request from the color
// opposite to the pending proposal, made while the proposed move is at most
// one move behind the latest, is consent and removes the proposed move. Any
// other request replaces the pending proposal.
//
// moveNumber names the move to take back; zero means the requester's latest
// move.
func (g *GameUseCase) AskForUndo(ctx context.Context, gameID, userID string, moveNumber int) ([]game.Event, error) {
	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)

	play, requester, err := g.loadLiveGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	eng, err := engine.Restore(play.Size, play.Handicap, play.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}

	if pending := c.undo; pending != nil && pending.Requester != requester && eng.MaxMoveNumber()-pending.MoveNumber <= 1 {
		if err = eng.Undo(pending.MoveNumber); err != nil {
			return nil, err
		}
		if err = g.store.UpdateGameMoves(ctx, gameID, eng.Tree().Serialize(), eng.CurrentNode().N); err != nil {
			return nil, fmt.Errorf("save undo of game %s: %w", gameID, err)
		}
		c.undo = nil
		g.invalidateSGF(ctx, gameID)
		g.log.Infof("game %s: %s agreed to undo move %d", gameID, requester, pending.MoveNumber)

		events := []game.Event{{
			Topic:   game.GameTopic(gameID),
			Kind:    game.EventUndo,
			Payload: game.UndonePayload{UndoneMoveNumber: pending.MoveNumber},
		}}
		g.publish(ctx, events...)
		return events, nil
	}

	target := moveNumber
	if target == 0 {
		target = latestMoveOf(eng.CurrentNode(), requester)
	}
	if target <= 0 {
		return nil, errs.ErrUnplayedMove
	}
	if _, err = eng.Tree().FindNode(target); err != nil {
		return nil, err
	}

	c.undo = &game.UndoRequest{Requester: requester, MoveNumber: target}
	events := []game.Event{{
		Topic:   game.GameTopic(gameID),
		Kind:    game.EventUndoRequest,
		Payload: game.UndoRequestPayload{Requester: requester, MoveNumber: target},
	}}
	g.publish(ctx, events...)
	return events, nil
}

// latestMoveOf is the number of the last move played by color at or before
// node, or 0 if there is none within the last two moves.
func latestMoveOf(node *engine.Node, color game.Color) int {
	if node.Move != nil && node.Move.Player() == color {
		return node.N
	}
	if node.Parent != nil && node.Parent.Move != nil {
		return node.Parent.N
	}
	return 0
}
