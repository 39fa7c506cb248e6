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

func setupTestDBForFavorites(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:favoritectl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Dish{}, &models.Favorite{})
	if err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM dishes")
	db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('favorites', 'dishes')")

	db.Create(&models.Dish{Name: "Sate Ayam", Price: 8.0})
	return db
}

func setupFavoriteRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	favoriteCtrl := controllers.NewFavoriteController(db)
	router.Use(asUser(userID, "customer"))
	router.GET("/favorites", favoriteCtrl.GetFavorites)
	router.POST("/favorites", favoriteCtrl.AddFavorite)
	router.DELETE("/favorites/:dish_id", favoriteCtrl.RemoveFavorite)
	return router
}

func TestAddFavoriteDuplicateSoftError(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFavorites(t)
	router := setupFavoriteRouter(db, 1)

	payload, _ := json.Marshal(map[string]interface{}{"dish_id": 1})
	req, _ := http.NewRequest("POST", "/favorites", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// The second add is a soft error and must not duplicate the pair.
	req, _ = http.NewRequest("POST", "/favorites", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
	assert.Equal(t, "Dish already in favorites", resp["message"])

	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteUnknownDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFavorites(t)
	router := setupFavoriteRouter(db, 1)

	payload, _ := json.Marshal(map[string]interface{}{"dish_id": 999})
	req, _ := http.NewRequest("POST", "/favorites", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFavorite(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFavorites(t)
	router := setupFavoriteRouter(db, 1)

	// Removing a dish that was never favorited is a soft error.
	req, _ := http.NewRequest("DELETE", "/favorites/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
	assert.Equal(t, "Dish not in favorites", resp["message"])

	// A real favorite removes cleanly.
	db.Create(&models.Favorite{UserID: 1, DishID: 1})

	req, _ = http.NewRequest("DELETE", "/favorites/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRemoveFavoriteUnknownDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFavorites(t)
	router := setupFavoriteRouter(db, 1)

	req, _ := http.NewRequest("DELETE", "/favorites/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
