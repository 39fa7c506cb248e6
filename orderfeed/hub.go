package orderfeed

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// StatusMessage is the only frame pushed to order subscribers, both as
// the snapshot on connect and on every status change.
type StatusMessage struct {
	Status string `json:"status"`
}

// feedHub groups subscriber connections by order ID. Delivery is best
// effort: a write error skips that subscriber, nothing is replayed.
type feedHub struct {
	groups map[uint]map[*websocket.Conn]bool
	mutex  sync.Mutex
}

var hub = feedHub{
	groups: make(map[uint]map[*websocket.Conn]bool),
}

// Join adds a connection to the group for one order.
func Join(orderID uint, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	group, ok := hub.groups[orderID]
	if !ok {
		group = make(map[*websocket.Conn]bool)
		hub.groups[orderID] = group
	}
	group[conn] = true
}

// Leave removes the connection from its order group and closes it.
func Leave(orderID uint, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if group, ok := hub.groups[orderID]; ok {
		delete(group, conn)
		if len(group) == 0 {
			delete(hub.groups, orderID)
		}
	}
	conn.Close()
}

// Subscribers reports how many connections are watching an order.
func Subscribers(orderID uint) int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.groups[orderID])
}

// BroadcastStatus pushes the new status to every subscriber of the
// order. Subscribers of other orders receive nothing.
func BroadcastStatus(orderID uint, status string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	group, ok := hub.groups[orderID]
	if !ok {
		return
	}

	data, err := json.Marshal(StatusMessage{Status: status})
	if err != nil {
		log.Printf("Error marshaling status message: %v", err)
		return
	}

	for conn := range group {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending status to subscriber: %v", err)
			continue
		}
	}
}
