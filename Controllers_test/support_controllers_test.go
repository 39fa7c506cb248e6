package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/controllers"
	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

func setupTestDBForSupport(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:supportctl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.SupportRequest{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM support_requests")
	db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('support_requests')")
	return db
}

func setupSupportRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	supportCtrl := controllers.NewSupportController(db)
	router.Use(asUser(userID, "customer"))
	router.POST("/support", supportCtrl.SubmitRequest)
	router.GET("/support", supportCtrl.GetRequests)
	return router
}

func TestSubmitAndListSupportRequests(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupport(t)
	router := setupSupportRouter(db, 1)

	payload, _ := json.Marshal(map[string]string{
		"subject": "Cold food",
		"message": "My order arrived cold",
	})
	req, _ := http.NewRequest("POST", "/support", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Another user's ticket must not show up.
	db.Create(&models.SupportRequest{UserID: 2, Subject: "x", Message: "y", Status: "Pending"})

	req, _ = http.NewRequest("GET", "/support", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	tickets := resp["data"].([]interface{})
	assert.Len(t, tickets, 1)
	ticket := tickets[0].(map[string]interface{})
	assert.Equal(t, "Cold food", ticket["subject"])
	assert.Equal(t, "Pending", ticket["status"])
}

func TestSubmitSupportRequestMissingSubject(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupport(t)
	router := setupSupportRouter(db, 1)

	payload, _ := json.Marshal(map[string]string{"message": "no subject"})
	req, _ := http.NewRequest("POST", "/support", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
