package game

import (
	"context"
	"time"

	"gogame/internal/domain/game"
	"gogame/internal/statuses"
)

// MarkStale is called when nobody is connected to a game anymore. The game
// is finished as a draw unless someone comes back before the cleanup delay.
func (g *GameUseCase) MarkStale(ctx context.Context, gameID string) error {
	ok, err := g.store.SwitchGameStatus(ctx, gameID, statuses.StatusOngoing, statuses.StatusStale)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	g.log.Infof("game %s is stale", gameID)
	g.scheduleStaleCleanup(gameID, g.cfg.StaleGameCleanupDelay)
	g.publish(ctx, game.Event{Topic: game.GamesTopic, Kind: game.EventGamesListChanged})
	return nil
}

// Unstale puts a stale game back in play and cancels its cleanup.
func (g *GameUseCase) Unstale(ctx context.Context, gameID string) error {
	ok, err := g.store.SwitchGameStatus(ctx, gameID, statuses.StatusStale, statuses.StatusOngoing)
	if err != nil {
		return err
	}
	g.stopStaleCleanup(gameID)
	if ok {
		g.log.Infof("game %s is back", gameID)
		g.publish(ctx, game.Event{Topic: game.GamesTopic, Kind: game.EventGamesListChanged})
	}
	return nil
}

// ResumeStaleGames reschedules the cleanup of games left stale by a previous
// run, keeping at least the grace period so players can reconnect.
func (g *GameUseCase) ResumeStaleGames(ctx context.Context) error {
	stale, err := g.store.GetGamesByStatus(ctx, statuses.StatusStale)
	if err != nil {
		return err
	}
	now := g.now()
	for _, play := range stale {
		delay := max(g.cfg.StaleGameGracePeriod, g.cfg.StaleGameCleanupDelay-now.Sub(play.UpdatedAt))
		g.scheduleStaleCleanup(play.ID, delay)
	}
	g.log.Infof("rescheduled cleanup of %d stale games", len(stale))
	return nil
}

func (g *GameUseCase) scheduleStaleCleanup(gameID string, delay time.Duration) {
	g.staleMu.Lock()
	defer g.staleMu.Unlock()

	if t, ok := g.staleTimers[gameID]; ok {
		t.Stop()
	}
	g.staleTimers[gameID] = time.AfterFunc(delay, func() {
		g.finishStale(gameID)
	})
}

func (g *GameUseCase) stopStaleCleanup(gameID string) {
	g.staleMu.Lock()
	defer g.staleMu.Unlock()

	if t, ok := g.staleTimers[gameID]; ok {
		t.Stop()
		delete(g.staleTimers, gameID)
	}
}

func (g *GameUseCase) finishStale(gameID string) {
	ctx := context.Background()
	c := g.sessions.lock(gameID)
	defer g.sessions.release(gameID, c)

	play := game.Game{ID: gameID}
	outcome := game.Outcome{Result: statuses.ResultDraw, ResultExpanded: "Both players left"}
	events, err := g.finish(ctx, play, c, outcome, statuses.StatusStale)
	if err != nil {
		// someone came back or the game ended in the meantime
		g.log.Debugf("stale cleanup of game %s skipped: %v", gameID, err)
		return
	}
	g.publish(ctx, events...)
}

// Close stops every pending stale cleanup.
func (g *GameUseCase) Close() {
	g.staleMu.Lock()
	defer g.staleMu.Unlock()
	for id, t := range g.staleTimers {
		t.Stop()
		delete(g.staleTimers, id)
	}
}
