package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/services"
	"github.com/tableside/tableside/utils"
)

type MenuController struct {
	Directory *services.MenuDirectory
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{Directory: services.NewMenuDirectory(db)}
}

type menuRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" binding:"required,gt=0"`
	Category    string               `json:"category" binding:"required"`
	Image       string               `json:"image"`
	Available   *bool                `json:"available"`
	Popular     bool                 `json:"popular"`
	Options     []models.OptionGroup `json:"options"`
}

func (r menuRequest) toItem() (models.MenuItem, error) {
	item := models.MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Available:   true,
		Popular:     r.Popular,
	}
	if r.Available != nil {
		item.Available = *r.Available
	}
	if err := item.SetOptionGroups(r.Options); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// GetAllMenus -> public menu listing
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	items, err := mc.Directory.Items()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetMenusByCategory -> public listing filtered by category
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	category := c.Param("category")
	items, err := mc.Directory.ItemsByCategory(category)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus for category: "+category, items)
}

// GetMenuByID -> detail of one menu item
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	item, err := mc.Directory.ItemByID(c.Param("menu_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", item)
}

// CreateMenu -> admin only
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := req.toItem()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err = mc.Directory.Upsert(item)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", item)
}

// UpdateMenu -> admin only, full replace by id
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	existing, err := mc.Directory.ItemByID(c.Param("menu_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := req.toItem()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt

	item, err = mc.Directory.Upsert(item)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}

// DeleteMenu -> admin only
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id := c.Param("menu_id")
	if err := mc.Directory.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
