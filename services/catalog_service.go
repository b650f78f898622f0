package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/store"
	"github.com/tableside/tableside/utils"
)

// defaultMenu seeds the catalog on first run.
var defaultMenu = []models.MenuItem{
	{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true},
	{ID: "item2", Name: "Pizza", Price: 12.99, Category: "Main Course", Available: true},
	{ID: "item3", Name: "Salad", Price: 6.99, Category: "Starters", Available: true},
	{ID: "item4", Name: "Ice Cream", Price: 4.99, Category: "Desserts", Available: true},
	{ID: "item5", Name: "Coffee", Price: 2.99, Category: "Beverages", Available: true},
}

// CatalogService is the client-authoritative menu directory: an in-memory
// item list synced to the store. It knows nothing about order lifecycles.
type CatalogService struct {
	store store.Store
	items []models.MenuItem
}

// NewCatalogService loads the persisted menu, seeding the default menu
// when the store holds none.
func NewCatalogService(s store.Store) (*CatalogService, error) {
	cs := &CatalogService{store: s}
	ok, err := store.Load(s, store.KeyMenu, &cs.items)
	if err != nil {
		return nil, err
	}
	if !ok {
		cs.items = make([]models.MenuItem, len(defaultMenu))
		copy(cs.items, defaultMenu)
		if err := cs.persist(); err != nil {
			return nil, err
		}
		utils.InfoLogger.Printf("Seeded default menu (%d items)", len(cs.items))
	}
	return cs, nil
}

// Items returns a copy of every catalog entry.
func (cs *CatalogService) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(cs.items))
	copy(out, cs.items)
	return out
}

// ItemsByCategory filters the catalog by category, case-insensitively.
func (cs *CatalogService) ItemsByCategory(category string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range cs.items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

// ItemByID looks up one catalog entry.
func (cs *CatalogService) ItemByID(id string) (models.MenuItem, error) {
	for _, item := range cs.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

// Upsert replaces the entry with the same id, or appends the item with a
// generated id when it has none.
func (cs *CatalogService) Upsert(item models.MenuItem) (models.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.UpdatedAt = time.Now()

	replaced := false
	for i := range cs.items {
		if cs.items[i].ID == item.ID {
			item.CreatedAt = cs.items[i].CreatedAt
			cs.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		item.CreatedAt = item.UpdatedAt
		cs.items = append(cs.items, item)
	}

	if err := cs.persist(); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// Delete removes the entry with the given id.
func (cs *CatalogService) Delete(id string) error {
	for i := range cs.items {
		if cs.items[i].ID == id {
			cs.items = append(cs.items[:i], cs.items[i+1:]...)
			return cs.persist()
		}
	}
	return ErrNotFound
}

// SetCurrentTable remembers which table this client is ordering for.
func (cs *CatalogService) SetCurrentTable(tableID string) error {
	return store.Save(cs.store, store.KeyCurrentTable, tableID)
}

// CurrentTable returns the remembered table id, empty when none is set.
func (cs *CatalogService) CurrentTable() (string, error) {
	var tableID string
	if _, err := store.Load(cs.store, store.KeyCurrentTable, &tableID); err != nil {
		return "", err
	}
	return tableID, nil
}

func (cs *CatalogService) persist() error {
	if err := store.Save(cs.store, store.KeyMenu, cs.items); err != nil {
		utils.ErrorLogger.Errorf("Failed to persist menu: %v", err)
		return err
	}
	return nil
}
