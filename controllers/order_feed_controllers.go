package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/orderfeed"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Close code sent when the requested order does not exist.
const closeOrderNotFound = 4404

type OrderFeedController struct {
	DB *gorm.DB
}

func NewOrderFeedController(db *gorm.DB) *OrderFeedController {
	return &OrderFeedController{DB: db}
}

// Stream is the per-order websocket endpoint. On connect the client
// gets one snapshot of the stored status, then only pushes triggered by
// status changes. Inbound frames are ignored; disconnecting simply
// leaves the group.
func (ofc *OrderFeedController) Stream(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	var order models.Order
	if err := ofc.DB.First(&order, id).Error; err != nil {
		ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(closeOrderNotFound, "order not found"))
		ws.Close()
		return
	}

	// Snapshot before joining the group, so the snapshot write can't
	// race a concurrent broadcast on the same connection.
	snapshot, _ := json.Marshal(orderfeed.StatusMessage{Status: order.Status})
	if err := ws.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		ws.Close()
		return
	}

	orderfeed.Join(order.ID, ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	orderfeed.Leave(order.ID, ws)
}
