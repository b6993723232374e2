package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-order-bot/utils"
)

type MenuController struct {
	Menu utils.Menu
}

func NewMenuController(menu utils.Menu) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenu -> mapping kode katalog ke nama menu yang sedang dimuat
func (mc *MenuController) GetMenu(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Menu catalog", mc.Menu)
}
