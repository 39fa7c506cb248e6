package orderfeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// echo server that joins each connection to the order id in the query.
func newFeedServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orderID, err := strconv.Atoi(r.URL.Query().Get("order_id"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		Join(uint(orderID), conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		Leave(uint(orderID), conn)
	}))
}

func dialFeed(t *testing.T, server *httptest.Server, orderID uint) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") +
		"?order_id=" + strconv.Itoa(int(orderID))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	return conn
}

func waitForSubscribers(orderID uint, want int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if Subscribers(orderID) == want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestBroadcastReachesOnlySubscribedOrder(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	watcher := dialFeed(t, server, 42)
	defer watcher.Close()
	bystander := dialFeed(t, server, 43)
	defer bystander.Close()

	assert.True(t, waitForSubscribers(42, 1))
	assert.True(t, waitForSubscribers(43, 1))

	BroadcastStatus(42, "kitchen")

	watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := watcher.ReadMessage()
	assert.NoError(t, err)

	var msg StatusMessage
	assert.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "kitchen", msg.Status)

	// The other order's subscriber gets nothing.
	bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bystander.ReadMessage()
	assert.Error(t, err)
}

func TestLeaveDropsSubscriber(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	conn := dialFeed(t, server, 7)
	assert.True(t, waitForSubscribers(7, 1))

	conn.Close()
	assert.True(t, waitForSubscribers(7, 0))

	// Broadcasting to an empty group is a no-op.
	BroadcastStatus(7, "delivered")
}
