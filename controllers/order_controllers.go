package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/services"
	"github.com/tableside/tableside/utils"
)

// ItemResolver looks catalog items up by identifier. Both the relational
// menu directory and the store-backed catalog satisfy it.
type ItemResolver interface {
	ItemByID(id string) (models.MenuItem, error)
}

type OrderController struct {
	Orders   *services.OrderService
	Resolver ItemResolver
}

func NewOrderController(orders *services.OrderService, resolver ItemResolver) *OrderController {
	return &OrderController{Orders: orders, Resolver: resolver}
}

// resolveOptions maps group->choice names onto the item's option groups,
// attaching the price delta of every chosen option.
func resolveOptions(item models.MenuItem, chosen map[string]string) (map[string]models.ChosenOption, error) {
	options := map[string]models.ChosenOption{}
	groups := item.GetOptionGroups()

	for groupName, choiceName := range chosen {
		var group *models.OptionGroup
		for i := range groups {
			if groups[i].Name == groupName {
				group = &groups[i]
				break
			}
		}
		if group == nil {
			return nil, fmt.Errorf("unknown option group %q", groupName)
		}

		found := false
		for _, choice := range group.Choices {
			if choice.Name == choiceName {
				options[groupName] = models.ChosenOption{Name: choice.Name, Price: choice.Price}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown choice %q for option group %q", choiceName, groupName)
		}
	}
	return options, nil
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoActiveOrder):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidIndex), errors.Is(err, services.ErrUnpriced),
		errors.Is(err, services.ErrInvalidRate):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// AddItem -> add a menu item to the table's active order, creating the
// order on first add
func (oc *OrderController) AddItem(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		ItemID   string            `json:"item_id" binding:"required"`
		Quantity int               `json:"quantity"`
		Options  map[string]string `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Resolver.ItemByID(req.ItemID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !item.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is not available"))
		return
	}

	options, err := resolveOptions(item, req.Options)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.AddItemToOrder(tableID, item, options, req.Quantity); err != nil {
		respondOrderError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to order", oc.Orders.OrderByTable(tableID))
}

// GetOrder -> the table's active order
func (oc *OrderController) GetOrder(c *gin.Context) {
	order := oc.Orders.OrderByTable(c.Param("table_id"))
	if order == nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrNoActiveOrder)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active order", order)
}

// RemoveItem -> remove one line; the order disappears with its last line
func (oc *OrderController) RemoveItem(c *gin.Context) {
	tableID := c.Param("table_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid line index"))
		return
	}

	if err := oc.Orders.RemoveItemFromOrder(tableID, index); err != nil {
		respondOrderError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from order", oc.Orders.OrderByTable(tableID))
}

// UpdateItemQuantity -> set a line quantity; zero or less removes the line
func (oc *OrderController) UpdateItemQuantity(c *gin.Context) {
	tableID := c.Param("table_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid line index"))
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.UpdateItemQuantity(tableID, index, req.Quantity); err != nil {
		respondOrderError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item quantity updated", oc.Orders.OrderByTable(tableID))
}

// CompleteOrder -> bill the active order with the current rates and move
// it to the completed collection
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		PaymentMethod string              `json:"payment_method" binding:"required"`
		Customer      models.CustomerInfo `json:"customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	completed, err := oc.Orders.CompleteOrder(tableID, req.PaymentMethod, req.Customer)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order completed", completed)
}

// GetOrderHistory -> completed orders of one table
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	history := oc.Orders.OrderHistory(c.Param("table_id"))
	utils.RespondJSON(c, http.StatusOK, "Order history", history)
}

// GetActiveTables -> tables holding an active order
func (oc *OrderController) GetActiveTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Active tables", oc.Orders.ActiveTables())
}

// GetBillingConfig -> current tax and service-charge rates
func (oc *OrderController) GetBillingConfig(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Billing configuration", oc.Orders.BillingConfig())
}

// UpdateBillingConfig -> admin only; affects subsequent completions, never
// orders already completed
func (oc *OrderController) UpdateBillingConfig(c *gin.Context) {
	var req struct {
		TaxRate       *float64 `json:"tax_rate"`
		ServiceCharge *float64 `json:"service_charge"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TaxRate != nil {
		if err := oc.Orders.SetTaxRate(*req.TaxRate); err != nil {
			respondOrderError(c, err)
			return
		}
	}
	if req.ServiceCharge != nil {
		if err := oc.Orders.SetServiceCharge(*req.ServiceCharge); err != nil {
			respondOrderError(c, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Billing configuration updated", oc.Orders.BillingConfig())
}
