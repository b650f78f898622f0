package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/store"
)

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	kv, err := store.NewGormStore(db)
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}
	return kv
}

func burgerItem() models.MenuItem {
	return models.MenuItem{ID: "item1", Name: "Burger", Price: 8.99, Category: "Main Course", Available: true}
}

func TestAddToCartMergesSameSelection(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	opts := map[string]models.ChosenOption{
		"Size": {Name: "Large", Price: 1.50},
	}
	for i := 0; i < 5; i++ {
		assert.NoError(t, cart.AddToCart(burgerItem(), opts, 1))
	}

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestAddToCartDifferentOptionsStaySeparate(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	assert.NoError(t, cart.AddToCart(burgerItem(), map[string]models.ChosenOption{
		"Size": {Name: "Large", Price: 1.50},
	}, 1))
	assert.NoError(t, cart.AddToCart(burgerItem(), map[string]models.ChosenOption{
		"Size": {Name: "Small", Price: 0},
	}, 1))
	assert.NoError(t, cart.AddToCart(burgerItem(), nil, 1))

	assert.Len(t, cart.Lines(), 3)
	assert.Equal(t, 3, cart.TotalItems())
}

func TestCartTotalPriceWithOptions(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	opts := map[string]models.ChosenOption{
		"Size": {Name: "Large", Price: 1.50},
	}
	assert.NoError(t, cart.AddToCart(burgerItem(), opts, 3))

	// (8.99 + 1.50) * 3
	assert.InDelta(t, 31.47, cart.TotalPrice(), 0.001)
}

func TestRemoveFromCart(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	assert.NoError(t, cart.AddToCart(burgerItem(), nil, 1))
	assert.NoError(t, cart.RemoveFromCart(0))
	assert.Equal(t, 0, cart.TotalItems())
	assert.Empty(t, cart.Lines())
}

func TestRemoveFromCartInvalidIndex(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	assert.NoError(t, cart.AddToCart(burgerItem(), nil, 1))

	assert.ErrorIs(t, cart.RemoveFromCart(3), ErrInvalidIndex)
	assert.ErrorIs(t, cart.RemoveFromCart(-1), ErrInvalidIndex)
	assert.Len(t, cart.Lines(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	assert.NoError(t, cart.AddToCart(burgerItem(), nil, 1))
	assert.NoError(t, cart.UpdateQuantity(0, 4))
	assert.Equal(t, 4, cart.TotalItems())

	// Zero or negative removes the line.
	assert.NoError(t, cart.UpdateQuantity(0, 0))
	assert.Empty(t, cart.Lines())
}

func TestAddToCartRejectsUnpricedItem(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	item := models.MenuItem{ID: "broken", Name: "Mystery"}
	assert.ErrorIs(t, cart.AddToCart(item, nil, 1), ErrUnpriced)
	assert.Empty(t, cart.Lines())
}

func TestClearCart(t *testing.T) {
	cart, err := NewCartService(setupTestStore(t))
	assert.NoError(t, err)

	assert.NoError(t, cart.AddToCart(burgerItem(), nil, 2))
	assert.NoError(t, cart.Clear())
	assert.Equal(t, 0, cart.TotalItems())
	assert.Zero(t, cart.TotalPrice())
}

func TestCartSurvivesRestart(t *testing.T) {
	kv := setupTestStore(t)

	cart, err := NewCartService(kv)
	assert.NoError(t, err)
	assert.NoError(t, cart.AddToCart(burgerItem(), map[string]models.ChosenOption{
		"Size": {Name: "Large", Price: 1.50},
	}, 2))

	restored, err := NewCartService(kv)
	assert.NoError(t, err)
	assert.Len(t, restored.Lines(), 1)
	assert.Equal(t, 2, restored.TotalItems())
	assert.InDelta(t, cart.TotalPrice(), restored.TotalPrice(), 0.001)
}
