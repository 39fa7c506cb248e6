package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/services"
	"github.com/prasetyadi/delivery-app/utils"
)

const otpTTL = 10 * time.Minute

type AuthController struct {
	DB     *gorm.DB
	Mailer services.Mailer
}

func NewAuthController(db *gorm.DB, mailer services.Mailer) *AuthController {
	return &AuthController{DB: db, Mailer: mailer}
}

// Register a new customer account.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	ac.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already exists"))
		return
	}
	ac.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username already exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("bcrypt error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     "customer",
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		utils.ErrorLogger.Printf("create user: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login -> return JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.ErrorLogger.Printf("generate token: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": user.Role,
	})
}

// Logout blacklists the presented token for the rest of its lifetime.
func (ac *AuthController) Logout(c *gin.Context) {
	tokenVal, exists := c.Get("token")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no token in request"))
		return
	}
	utils.BlacklistToken(tokenVal.(string))
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// RequestPasswordReset emails a 6-digit OTP valid for 10 minutes.
func (ac *AuthController) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	otp, err := utils.GenerateOTP(6)
	if err != nil {
		utils.ErrorLogger.Printf("generate otp: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		OTP:       otp,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := ac.DB.Create(&reset).Error; err != nil {
		utils.ErrorLogger.Printf("create password reset: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	if err := ac.Mailer.Send(user.Email, "Password Reset OTP", "Your OTP: "+otp); err != nil {
		utils.ErrorLogger.Printf("send otp mail: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyPasswordReset exchanges a valid OTP for a new password. The OTP
// is deleted on success so it cannot be replayed.
func (ac *AuthController) VerifyPasswordReset(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or expired OTP"))
		return
	}

	var reset models.PasswordReset
	err := ac.DB.Where("user_id = ? AND otp = ?", user.ID, req.OTP).First(&reset).Error
	if err != nil || time.Now().After(reset.ExpiresAt) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or expired OTP"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("bcrypt error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	txErr := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
	if txErr != nil {
		utils.ErrorLogger.Printf("password reset: %v", txErr)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password reset successful", nil)
}
