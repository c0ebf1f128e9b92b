package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"gogame/internal/domain/game"
)

type trackerCalls struct {
	calls []string
}

func (c *trackerCalls) MarkStale(_ context.Context, gameID string) error {
	c.calls = append(c.calls, "stale "+gameID)
	return nil
}

func (c *trackerCalls) Unstale(_ context.Context, gameID string) error {
	c.calls = append(c.calls, "unstale "+gameID)
	return nil
}

func (c *trackerCalls) PublishReviewsChange(_ context.Context, reviewID string, isOpen func(string) bool) ([]game.Event, error) {
	state := "closed"
	if isOpen(reviewID) {
		state = "open"
	}
	c.calls = append(c.calls, "reviews "+reviewID+" "+state)
	return nil, nil
}

func TestPresenceTracksGames(t *testing.T) {
	tracker := &trackerCalls{}
	p := NewPresence(zap.NewNop().Sugar(), tracker)

	p.TopicOpened(game.GameTopic("g1"))
	p.TopicOpened(game.GamesTopic)
	p.TopicClosed(game.GameTopic("g1"))
	p.TopicClosed(game.GameTopic(""))

	assert.Equal(t, []string{"unstale g1", "stale g1"}, tracker.calls)
}

func TestPresenceRefreshesReviewLists(t *testing.T) {
	tracker := &trackerCalls{}
	p := NewPresence(zap.NewNop().Sugar(), tracker)
	open := map[string]bool{}
	p.Bind(func(topic string) bool { return open[topic] })

	open[game.ReviewTopic("r1")] = true
	p.TopicOpened(game.ReviewTopic("r1"))
	delete(open, game.ReviewTopic("r1"))
	p.TopicClosed(game.ReviewTopic("r1"))
	p.TopicClosed(game.ReviewTopic(""))

	assert.Equal(t, []string{"reviews r1 open", "reviews r1 closed"}, tracker.calls)
}
