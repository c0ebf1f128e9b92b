package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Patterns are the Redis channels the hub relays to websocket clients.
var Patterns = []string{"games", "game.*", "review.*"}

// Observer is told when a topic gets its first connection and when its last
// one goes away. Calls come from a single goroutine, in the order the changes
// happened, so a slow observer never holds up connections.
type Observer interface {
	TopicOpened(topic string)
	TopicClosed(topic string)
}

type notification struct {
	topic  string
	opened bool
}

type client struct {
	topic string
	conn  *websocket.Conn
	send  chan []byte
}

// Hub keeps the open websocket connections grouped by topic and forwards
// every message published on a topic to them.
type Hub struct {
	log      *zap.SugaredLogger
	observer Observer
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	topics map[string]map[*client]struct{}

	notifyMu  sync.Mutex
	pending   []notification
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(log *zap.SugaredLogger, observer Observer) *Hub {
	h := &Hub{
		log:      log,
		observer: observer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		topics: make(map[string]map[*client]struct{}),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go h.notifyLoop()
	return h
}

// IsOpen reports whether anybody is connected to topic.
func (h *Hub) IsOpen(topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic]) > 0
}

// Broadcast queues msg for every client of topic. Clients whose buffer is
// full miss the message and are expected to resync through the state API.
func (h *Hub) Broadcast(topic string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[topic] {
		select {
		case c.send <- msg:
		default:
			h.log.Warnf("dropping message for slow client on %s", topic)
		}
	}
}

// Listen relays the Redis channels matching Patterns until ctx is done.
func (h *Hub) Listen(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.PSubscribe(ctx, Patterns...)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.Broadcast(msg.Channel, []byte(msg.Payload))
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to topic
// until the client goes away. Messages sent by the client are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, topic string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade on %s failed: %v", topic, err)
		return
	}

	c := &client{topic: topic, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	go h.writePump(c)
	h.readPump(c)
	h.unregister(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	clients, ok := h.topics[c.topic]
	if !ok {
		clients = make(map[*client]struct{})
		h.topics[c.topic] = clients
	}
	clients[c] = struct{}{}
	if len(clients) == 1 {
		h.enqueue(notification{topic: c.topic, opened: true})
	}
	h.mu.Unlock()

	h.log.Debugf("client joined %s", c.topic)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	clients := h.topics[c.topic]
	if _, ok := clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.topics, c.topic)
		h.enqueue(notification{topic: c.topic, opened: false})
	}
	h.mu.Unlock()

	h.log.Debugf("client left %s", c.topic)
}

// enqueue is called with mu held, which fixes the order of notifications to
// the order of the topic changes.
func (h *Hub) enqueue(n notification) {
	if h.observer == nil {
		return
	}
	h.notifyMu.Lock()
	h.pending = append(h.pending, n)
	h.notifyMu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *Hub) notifyLoop() {
	for {
		select {
		case <-h.done:
			return
		case <-h.wake:
		}

		h.notifyMu.Lock()
		batch := h.pending
		h.pending = nil
		h.notifyMu.Unlock()

		for _, n := range batch {
			if n.opened {
				h.observer.TopicOpened(n.topic)
			} else {
				h.observer.TopicClosed(n.topic)
			}
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debugf("websocket on %s closed: %v", c.topic, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client and stops notifying the observer.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.topics {
		for c := range clients {
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(writeWait))
			c.conn.Close()
		}
	}
}
