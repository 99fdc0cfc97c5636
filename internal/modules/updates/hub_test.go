package updates

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	NewHandler(hub).RegisterRoutes(&r.RouterGroup)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/updates" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers never reached %d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHubPublish(t *testing.T) {
	hub, srv := newTestServer(t)

	all := dial(t, srv, "")
	day := dial(t, srv, "?date=2025-06-01")
	other := dial(t, srv, "?date=2025-06-02")
	waitForSubscribers(t, hub, 3)

	hub.Publish("2025-06-01", "2025-06-01_10-00", "pending")

	ev := readEvent(t, all)
	assert.Equal(t, "2025-06-01_10-00", ev.GroupID)
	assert.Equal(t, "pending", ev.Status)
	assert.NotEmpty(t, ev.ID)

	ev = readEvent(t, day)
	assert.Equal(t, "2025-06-01", ev.Date)

	// the other-date subscriber gets nothing
	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var drop Event
	assert.Error(t, other.ReadJSON(&drop))
}

func TestHubConcurrentPublish(t *testing.T) {
	hub, srv := newTestServer(t)

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	const publishers = 8
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish("2025-06-01", "2025-06-01_10-00", "pending")
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < publishers; i++ {
		ev := readEvent(t, conn)
		assert.Equal(t, "2025-06-01_10-00", ev.GroupID)
		assert.False(t, seen[ev.ID], "event %s delivered twice", ev.ID)
		seen[ev.ID] = true
	}
	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestHubUnregisterOnClose(t *testing.T) {
	hub, srv := newTestServer(t)

	conn := dial(t, srv, "")
	waitForSubscribers(t, hub, 1)

	conn.Close()

	// the read loop or the writer notices the dead connection
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() > 0 {
		hub.Publish("2025-06-01", "g", "pending")
		if time.Now().After(deadline) {
			t.Fatal("dead subscriber was never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
