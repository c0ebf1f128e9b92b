package game

import (
	"slices"
	"sync"

	"gogame/internal/domain/game"
)

// coordination is the transient, in-memory state of one game: the pending
// undo proposal and the dead stone marking. Every read-modify-write on it,
// and the whole "load tree, validate, persist, publish" sequence of a move,
// happens while holding mu.
type coordination struct {
	mu        sync.Mutex
	closed    bool
	undo      *game.UndoRequest
	deads     map[game.Intersection]struct{}
	agreesFor game.Color
}

func (c *coordination) idle() bool {
	return c.undo == nil && len(c.deads) == 0 && c.agreesFor == 0
}

func (c *coordination) reset() {
	c.undo = nil
	c.deads = make(map[game.Intersection]struct{})
	c.agreesFor = 0
}

func (c *coordination) deadStones() []game.Intersection {
	res := make([]game.Intersection, 0, len(c.deads))
	for p := range c.deads {
		res = append(res, p)
	}
	slices.SortFunc(res, func(a, b game.Intersection) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return res
}

func agreesForLabel(c game.Color) string {
	if c == 0 {
		return "none"
	}
	return c.String()
}

// registry hands out one coordination per game (or review) id. Entries are
// created on first use and dropped as soon as they hold nothing, which also
// covers the cleanup once a game is finished.
type registry struct {
	mu    sync.Mutex
	items map[string]*coordination
}

func newRegistry() *registry {
	return &registry{items: make(map[string]*coordination)}
}

// lock returns the locked coordination for id.
func (r *registry) lock(id string) *coordination {
	for {
		r.mu.Lock()
		c, ok := r.items[id]
		if !ok {
			c = &coordination{deads: make(map[game.Intersection]struct{})}
			r.items[id] = c
		}
		r.mu.Unlock()

		c.mu.Lock()
		if !c.closed {
			return c
		}
		// dropped while we were waiting, take the fresh one
		c.mu.Unlock()
	}
}

// release unlocks c, dropping it from the registry when it is idle.
func (r *registry) release(id string, c *coordination) {
	if c.idle() {
		c.closed = true
		r.mu.Lock()
		if r.items[id] == c {
			delete(r.items, id)
		}
		r.mu.Unlock()
	}
	c.mu.Unlock()
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
