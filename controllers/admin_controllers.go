package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-order-bot/store"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

// AdminController adalah permukaan baca untuk dashboard: order log aktif
// apa adanya plus ringkasan penjualan sederhana.
type AdminController struct {
	Store store.OrderStore
}

func NewAdminController(st store.OrderStore) *AdminController {
	return &AdminController{Store: st}
}

// GetAllOrders -> seluruh order log aktif, bentuknya sama dengan file JSON
func (ac *AdminController) GetAllOrders(c *gin.Context) {
	orders, err := ac.Store.Load()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", orders)
}

type itemSummary struct {
	Name    string `json:"name"`
	Qty     int    `json:"qty"`
	Revenue int    `json:"revenue"`
}

// GetSalesSummary -> ringkasan penjualan dari order log aktif
func (ac *AdminController) GetSalesSummary(c *gin.Context) {
	orders, err := ac.Store.Load()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var summary struct {
		GrossSales        int           `json:"gross_sales"`
		Transactions      int           `json:"transactions"`
		AvgPerTransaction float64       `json:"avg_per_transaction"`
		ItemCount         int           `json:"item_count"`
		Items             []itemSummary `json:"items"`
	}

	perItem := map[string]*itemSummary{}
	for _, cart := range orders {
		summary.Transactions++
		summary.GrossSales += cart.Total
		for _, item := range cart.Order {
			summary.ItemCount += item.Qty
			agg, ok := perItem[item.Name]
			if !ok {
				agg = &itemSummary{Name: item.Name}
				perItem[item.Name] = agg
			}
			agg.Qty += item.Qty
			agg.Revenue += item.Subtotal
		}
	}
	if summary.Transactions > 0 {
		summary.AvgPerTransaction = float64(summary.GrossSales) / float64(summary.Transactions)
	}

	summary.Items = make([]itemSummary, 0, len(perItem))
	for _, agg := range perItem {
		summary.Items = append(summary.Items, *agg)
	}
	// Item terlaris duluan
	sort.Slice(summary.Items, func(i, j int) bool {
		if summary.Items[i].Revenue != summary.Items[j].Revenue {
			return summary.Items[i].Revenue > summary.Items[j].Revenue
		}
		return summary.Items[i].Name < summary.Items[j].Name
	})

	utils.RespondJSON(c, http.StatusOK, "Sales summary", summary)
}
