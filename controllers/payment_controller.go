package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/services"
	"github.com/tableside/tableside/utils"
)

// PaymentController forwards a cart to the hosted checkout page. Nothing
// in this process captures money; the caller is redirected to the
// provider and never comes back through here.
type PaymentController struct {
	Checkout *services.CheckoutService
	Resolver ItemResolver
}

func NewPaymentController(checkout *services.CheckoutService, resolver ItemResolver) *PaymentController {
	return &PaymentController{Checkout: checkout, Resolver: resolver}
}

// CreateCheckout -> resolve the submitted lines against the catalog and
// return the provider redirect URL
func (pc *PaymentController) CreateCheckout(c *gin.Context) {
	var req struct {
		Items []struct {
			ItemID   string            `json:"item_id" binding:"required"`
			Quantity int               `json:"quantity"`
			Options  map[string]string `json:"options"`
		} `json:"items" binding:"required"`
		Customer models.CustomerInfo `json:"customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, reqItem := range req.Items {
		item, err := pc.Resolver.ItemByID(reqItem.ItemID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
				return
			}
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		options, err := resolveOptions(item, reqItem.Options)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}

		quantity := reqItem.Quantity
		if quantity < 1 {
			quantity = 1
		}

		line := models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
			Options:  options,
		}
		line.Subtotal = line.UnitPrice() * float64(line.Quantity)
		lines = append(lines, line)
	}

	redirectURL, err := pc.Checkout.CreateCheckout(lines, req.Customer)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusBadGateway, errors.New("checkout provider unavailable"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout session created", gin.H{
		"redirect_url": redirectURL,
	})
}
