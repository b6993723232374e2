package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/cafe-order-bot/config"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

// UserController menangani login admin dashboard. Kredensialnya satu akun
// dari environment; tidak ada manajemen user.
type UserController struct {
	Cfg *config.Config
}

func NewUserController(cfg *config.Config) *UserController {
	return &UserController{Cfg: cfg}
}

// Login admin -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if uc.Cfg.AdminPasswordHash == "" || input.Username != uc.Cfg.AdminUsername {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.Cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(input.Username)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin login successful: %s", input.Username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}
