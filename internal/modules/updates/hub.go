package updates

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Event is pushed to subscribers whenever a reservation changes state.
// ID lets reconnecting clients de-duplicate replayed events.
type Event struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	GroupID string `json:"group_id"`
	Status  string `json:"status"`
}

// subscriber owns all writes to its connection. Published events are
// queued on send and drained by writePump, which also emits the pings;
// publisher goroutines never touch the connection directly.
type subscriber struct {
	conn *websocket.Conn
	date string // "" subscribes to every date
	send chan Event
}

func (s *subscriber) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.Unregister(s.conn)
	}()

	for {
		select {
		case ev, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := s.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans reservation events out to websocket subscribers. A subscriber
// may watch a single date or the whole calendar.
type Hub struct {
	subscribers map[*websocket.Conn]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*websocket.Conn]*subscriber),
	}
}

// Register starts the connection's writer goroutine.
func (h *Hub) Register(conn *websocket.Conn, date string) {
	sub := &subscriber{conn: conn, date: date, send: make(chan Event, sendBuffer)}

	h.mutex.Lock()
	h.subscribers[conn] = sub
	h.mutex.Unlock()

	go sub.writePump(h)
}

// Unregister is safe to call more than once per connection; only the
// call that removes the map entry closes the send channel.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	sub, exists := h.subscribers[conn]
	if exists {
		delete(h.subscribers, conn)
	}
	h.mutex.Unlock()

	if exists {
		close(sub.send)
		_ = conn.Close()
	}
}

// Publish queues the event for every matching subscriber without
// blocking: a subscriber whose buffer is full misses the event instead
// of stalling the caller. The sends happen under the read lock, so they
// cannot interleave with an Unregister closing the channel.
func (h *Hub) Publish(date, groupID, status string) {
	ev := Event{ID: uuid.NewString(), Date: date, GroupID: groupID, Status: status}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, sub := range h.subscribers {
		if sub.date != "" && sub.date != date {
			continue
		}
		select {
		case sub.send <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, sub := range h.subscribers {
		close(sub.send)
		_ = conn.Close()
		delete(h.subscribers, conn)
	}
}
