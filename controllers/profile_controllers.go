package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

const maxPhotoSize = 5 << 20 // 5 MB

const photoDir = "public/uploads/profile_photos"

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GetProfile returns the caller's account plus profile row. The profile
// row is created lazily so older accounts always get one back.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	var profile models.Profile
	if err := pc.DB.Where(models.Profile{UserID: userID}).
		FirstOrCreate(&profile).Error; err != nil {
		utils.ErrorLogger.Printf("load profile: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile", gin.H{
		"username": user.Username,
		"email":    user.Email,
		"phone":    profile.Phone,
		"location": profile.Location,
		"photo":    profile.Photo,
	})
}

// EditProfile accepts multipart form data: email (required), phone,
// location and an optional photo upload. Validation failures come back
// as a field-keyed errors map.
func (pc *ProfileController) EditProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	location := strings.TrimSpace(c.PostForm("location"))

	fieldErrors := gin.H{}
	if email == "" {
		fieldErrors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors["email"] = "invalid email address"
	}
	if phone != "" && len(digitsOnly(phone)) < 10 {
		fieldErrors["phone"] = "phone must have at least 10 digits"
	}

	if email != "" && email != user.Email {
		var count int64
		pc.DB.Model(&models.User{}).
			Where("email = ? AND id != ?", email, userID).
			Count(&count)
		if count > 0 {
			fieldErrors["email"] = "email already in use"
		}
	}

	var photoPath *string
	file, err := c.FormFile("photo")
	if err == nil {
		if file.Size > maxPhotoSize {
			fieldErrors["photo"] = "photo must be 5MB or smaller"
		} else {
			ext := filepath.Ext(file.Filename)
			name := fmt.Sprintf("user_%d_%d%s", userID, time.Now().UnixNano(), ext)
			dst := filepath.Join(photoDir, name)
			if err := os.MkdirAll(photoDir, 0o755); err != nil {
				utils.ErrorLogger.Printf("mkdir photo dir: %v", err)
				utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
				return
			}
			if err := c.SaveUploadedFile(file, dst); err != nil {
				utils.ErrorLogger.Printf("save photo: %v", err)
				utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
				return
			}
			photoPath = &dst
		}
	}

	if len(fieldErrors) > 0 {
		utils.RespondJSON(c, http.StatusBadRequest, "Validation failed", gin.H{"errors": fieldErrors})
		return
	}

	txErr := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("email", email).Error; err != nil {
			return err
		}
		var profile models.Profile
		if err := tx.Where(models.Profile{UserID: userID}).
			FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"phone":    phone,
			"location": location,
		}
		if photoPath != nil {
			updates["photo"] = *photoPath
		}
		return tx.Model(&profile).Updates(updates).Error
	})
	if txErr != nil {
		utils.ErrorLogger.Printf("edit profile: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{
		"email":    email,
		"phone":    phone,
		"location": location,
		"photo":    photoPath,
	})
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
