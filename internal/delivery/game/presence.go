package game

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gogame/internal/domain/game"
)

// PresenceTracker reacts to games and reviews gaining or losing their audience.
type PresenceTracker interface {
	MarkStale(ctx context.Context, gameID string) error
	Unstale(ctx context.Context, gameID string) error
	PublishReviewsChange(ctx context.Context, reviewID string, isOpen func(reviewID string) bool) ([]game.Event, error)
}

// Presence turns websocket topic activity into protocol bookkeeping: a game
// nobody watches becomes stale and the first client to come back revives it;
// opening or closing a review refreshes the review lists of its game.
type Presence struct {
	log     *zap.SugaredLogger
	tracker PresenceTracker
	open    func(topic string) bool
}

func NewPresence(log *zap.SugaredLogger, tracker PresenceTracker) *Presence {
	return &Presence{
		log:     log,
		tracker: tracker,
		open:    func(string) bool { return false },
	}
}

// Bind sets where open topics are looked up. It must be called before the
// first connection is served.
func (p *Presence) Bind(open func(topic string) bool) {
	p.open = open
}

func (p *Presence) TopicOpened(topic string) {
	if gameID, ok := idFromTopic(topic, game.GameTopic("")); ok {
		if err := p.tracker.Unstale(context.Background(), gameID); err != nil {
			p.log.Warnf("unstale %s: %v", gameID, err)
		}
		return
	}
	p.reviewsChanged(topic)
}

func (p *Presence) TopicClosed(topic string) {
	if gameID, ok := idFromTopic(topic, game.GameTopic("")); ok {
		if err := p.tracker.MarkStale(context.Background(), gameID); err != nil {
			p.log.Warnf("mark %s stale: %v", gameID, err)
		}
		return
	}
	p.reviewsChanged(topic)
}

func (p *Presence) reviewsChanged(topic string) {
	reviewID, ok := idFromTopic(topic, game.ReviewTopic(""))
	if !ok {
		return
	}
	isOpen := func(id string) bool { return p.open(game.ReviewTopic(id)) }
	if _, err := p.tracker.PublishReviewsChange(context.Background(), reviewID, isOpen); err != nil {
		p.log.Warnf("reviews change of %s: %v", reviewID, err)
	}
}

func idFromTopic(topic, prefix string) (string, bool) {
	if !strings.HasPrefix(topic, prefix) || len(topic) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(topic, prefix), true
}
