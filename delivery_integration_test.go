package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/database"
	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/orderfeed"
	"github.com/prasetyadi/delivery-app/router"
	"github.com/prasetyadi/delivery-app/services"
	"github.com/prasetyadi/delivery-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main customer flow:
// 1. Register and log in -> token
// 2. Browse the seeded menu, fill the cart
// 3. Submit the order, cart empties
// 4. Subscribe to the order's websocket feed -> snapshot
// 5. Staff updates the status -> push arrives on the feed
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db, services.LogMailer{})

	token := registerAndLogin(t, r)

	dishID := firstDishID(t, r)
	fillCart(t, r, token, dishID)

	orderID := submitOrder(t, r, token)

	var cartCount int64
	db.Model(&models.CartItem{}).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)

	server := httptest.NewServer(r)
	defer server.Close()

	conn := subscribeToOrder(t, server, token, orderID)
	defer conn.Close()

	// Snapshot arrives first.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snapshot orderfeed.StatusMessage
	assert.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, models.StatusPending, snapshot.Status)

	staffToken := makeStaffToken(t, db)
	updateStatus(t, r, staffToken, orderID, models.StatusKitchen)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var push orderfeed.StatusMessage
	assert.NoError(t, conn.ReadJSON(&push))
	assert.Equal(t, models.StatusKitchen, push.Status)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Dish{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.Notification{},
		&models.Reward{},
		&models.UserReward{},
		&models.RedeemedReward{},
		&models.Favorite{},
		&models.PasswordReset{},
		&models.SupportRequest{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, "POST", "/register", "", map[string]interface{}{
		"username": "integrasi",
		"email":    "integrasi@example.com",
		"password": "cobacoba1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", "", map[string]interface{}{
		"email":    "integrasi@example.com",
		"password": "cobacoba1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func firstDishID(t *testing.T, r *gin.Engine) uint {
	w := doJSON(t, r, "GET", "/menu", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	dishes := resp["data"].([]interface{})
	assert.NotEmpty(t, dishes)
	return uint(dishes[0].(map[string]interface{})["id"].(float64))
}

func fillCart(t *testing.T, r *gin.Engine, token string, dishID uint) {
	w := doJSON(t, r, "POST", "/cart/items", token, map[string]interface{}{
		"dish_id":  dishID,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func submitOrder(t *testing.T, r *gin.Engine, token string) uint {
	w := doJSON(t, r, "POST", "/orders", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return uint(resp["data"].(map[string]interface{})["order_id"].(float64))
}

func makeStaffToken(t *testing.T, db *gorm.DB) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte("staffpass"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	staff := models.User{
		Username: "dapur",
		Email:    "dapur@example.com",
		Password: string(hashed),
		Role:     "staff",
	}
	assert.NoError(t, db.Create(&staff).Error)

	token, err := utils.GenerateToken(staff.ID, staff.Role)
	assert.NoError(t, err)
	return token
}

func updateStatus(t *testing.T, r *gin.Engine, token string, orderID uint, status string) {
	url := "/admin/orders/" + strconv.Itoa(int(orderID)) + "/status"
	w := doJSON(t, r, "PATCH", url, token, map[string]string{"status": status})
	assert.Equal(t, http.StatusOK, w.Code)
}

func subscribeToOrder(t *testing.T, server *httptest.Server, token string, orderID uint) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") +
		"/ws/orders/" + strconv.Itoa(int(orderID)) + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	return conn
}
