package Controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
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

func setupTestDBForProfile(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:profilectl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.User{}, &models.Profile{})
	if err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('profiles', 'users')")

	db.Create(&models.User{
		Username: "budi",
		Email:    "budi@example.com",
		Password: "x",
		Role:     "customer",
	})
	return db
}

func setupProfileRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	profileCtrl := controllers.NewProfileController(db)
	router.Use(asUser(userID, "customer"))
	router.GET("/profile", profileCtrl.GetProfile)
	router.POST("/profile", profileCtrl.EditProfile)
	return router
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, writer.WriteField(k, v))
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGetProfileCreatesRowLazily(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForProfile(t)
	router := setupProfileRouter(db, 1)

	req, _ := http.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "budi", data["username"])
	assert.Equal(t, "budi@example.com", data["email"])

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEditProfileValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForProfile(t)
	router := setupProfileRouter(db, 1)

	// Missing email and a short phone both come back as field errors.
	body, contentType := multipartForm(t, map[string]string{
		"phone": "123",
	})
	req, _ := http.NewRequest("POST", "/profile", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fieldErrors := resp["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "phone")

	// Email must stay unchanged after the failed edit.
	var user models.User
	db.First(&user, 1)
	assert.Equal(t, "budi@example.com", user.Email)
}

func TestEditProfileUpdatesFields(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForProfile(t)
	router := setupProfileRouter(db, 1)

	body, contentType := multipartForm(t, map[string]string{
		"email":    "budi.baru@example.com",
		"phone":    "081234567890",
		"location": "Jakarta",
	})
	req, _ := http.NewRequest("POST", "/profile", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	db.First(&user, 1)
	assert.Equal(t, "budi.baru@example.com", user.Email)

	var profile models.Profile
	assert.NoError(t, db.Where("user_id = ?", 1).First(&profile).Error)
	assert.Equal(t, "081234567890", profile.Phone)
	assert.Equal(t, "Jakarta", profile.Location)
}
