package services

import (
	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/store"
	"github.com/tableside/tableside/utils"
)

// CartService holds the browsing cart: menu items with chosen options and
// quantities. Every mutation is written back to the store so the cart
// survives restarts.
type CartService struct {
	store store.Store
	lines []models.OrderLine
}

// NewCartService restores any persisted cart from the store.
func NewCartService(s store.Store) (*CartService, error) {
	cs := &CartService{store: s, lines: []models.OrderLine{}}
	if _, err := store.Load(s, store.KeyCart, &cs.lines); err != nil {
		return nil, err
	}
	if cs.lines == nil {
		cs.lines = []models.OrderLine{}
	}
	return cs, nil
}

// AddToCart merges the item into an existing line when the item id and the
// option selection match exactly, otherwise appends a new line. A quantity
// below 1 defaults to 1, a nil selection to an empty one.
func (cs *CartService) AddToCart(item models.MenuItem, options map[string]models.ChosenOption, quantity int) error {
	if item.Price <= 0 {
		return ErrUnpriced
	}
	if quantity < 1 {
		quantity = 1
	}
	if options == nil {
		options = map[string]models.ChosenOption{}
	}

	merged := false
	for i := range cs.lines {
		if cs.lines[i].SameSelection(item.ID, options) {
			cs.lines[i].Quantity += quantity
			cs.lines[i].Subtotal = cs.lines[i].UnitPrice() * float64(cs.lines[i].Quantity)
			merged = true
			break
		}
	}

	if !merged {
		line := models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
			Options:  options,
		}
		line.Subtotal = line.UnitPrice() * float64(line.Quantity)
		cs.lines = append(cs.lines, line)
	}

	return cs.persist()
}

// RemoveFromCart deletes the line at index. An out-of-range index leaves
// the cart untouched.
func (cs *CartService) RemoveFromCart(index int) error {
	if index < 0 || index >= len(cs.lines) {
		return ErrInvalidIndex
	}
	cs.lines = append(cs.lines[:index], cs.lines[index+1:]...)
	return cs.persist()
}

// UpdateQuantity sets the quantity of the line at index; a quantity of
// zero or less removes the line instead.
func (cs *CartService) UpdateQuantity(index int, quantity int) error {
	if index < 0 || index >= len(cs.lines) {
		return ErrInvalidIndex
	}
	if quantity <= 0 {
		return cs.RemoveFromCart(index)
	}
	cs.lines[index].Quantity = quantity
	cs.lines[index].Subtotal = cs.lines[index].UnitPrice() * float64(quantity)
	return cs.persist()
}

// Clear empties the cart.
func (cs *CartService) Clear() error {
	cs.lines = []models.OrderLine{}
	return cs.persist()
}

// TotalPrice recomputes the cart total on every call: the sum over lines
// of (base price + chosen option deltas) x quantity.
func (cs *CartService) TotalPrice() float64 {
	var total float64
	for _, line := range cs.lines {
		total += line.UnitPrice() * float64(line.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities across lines.
func (cs *CartService) TotalItems() int {
	var count int
	for _, line := range cs.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart lines.
func (cs *CartService) Lines() []models.OrderLine {
	out := make([]models.OrderLine, len(cs.lines))
	copy(out, cs.lines)
	return out
}

func (cs *CartService) persist() error {
	if err := store.Save(cs.store, store.KeyCart, cs.lines); err != nil {
		utils.ErrorLogger.Errorf("Failed to persist cart: %v", err)
		return err
	}
	return nil
}
