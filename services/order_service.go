package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/store"
	"github.com/tableside/tableside/utils"
)

const (
	DefaultTaxRate       = 0.08
	DefaultServiceCharge = 0.05
)

// orderBook is the persisted shape of the order collections.
type orderBook struct {
	Active    map[string]models.ActiveOrder `json:"active"`
	Completed []models.CompletedOrder       `json:"completed"`
}

// OrderService keeps at most one active order per table and an append-only
// list of completed orders. The billing configuration is process-wide and
// guarded by the service mutex so admin requests can change it while
// completions read it.
type OrderService struct {
	mu        sync.Mutex
	store     store.Store
	active    map[string]*models.ActiveOrder
	completed []models.CompletedOrder
	config    models.BillingConfig
}

// NewOrderService restores the order collections and billing configuration
// from the store; missing state starts empty with the default rates.
func NewOrderService(s store.Store) (*OrderService, error) {
	os := &OrderService{
		store:  s,
		active: make(map[string]*models.ActiveOrder),
		config: models.BillingConfig{TaxRate: DefaultTaxRate, ServiceCharge: DefaultServiceCharge},
	}

	var book orderBook
	ok, err := store.Load(s, store.KeyOrders, &book)
	if err != nil {
		return nil, err
	}
	if ok {
		for tableID, order := range book.Active {
			o := order
			os.active[tableID] = &o
		}
		os.completed = book.Completed
	}

	if _, err := store.Load(s, store.KeyBillingConfig, &os.config); err != nil {
		return nil, err
	}
	return os, nil
}

// AddItemToOrder adds the item to the table's active order, creating the
// order on the first add. The merge key is the item id plus structural
// equality of the option selection.
func (os *OrderService) AddItemToOrder(tableID string, item models.MenuItem, options map[string]models.ChosenOption, quantity int) error {
	if item.Price <= 0 {
		return ErrUnpriced
	}
	if quantity < 1 {
		quantity = 1
	}
	if options == nil {
		options = map[string]models.ChosenOption{}
	}

	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.active[tableID]
	if !exists {
		order = &models.ActiveOrder{
			TableID:   tableID,
			Items:     []models.OrderLine{},
			Status:    models.OrderStatusActive,
			CreatedAt: time.Now(),
		}
		os.active[tableID] = order
	}

	merged := false
	for i := range order.Items {
		if order.Items[i].SameSelection(item.ID, options) {
			order.Items[i].Quantity += quantity
			order.Items[i].Subtotal = order.Items[i].UnitPrice() * float64(order.Items[i].Quantity)
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
		order.Items = append(order.Items, line)
	}

	order.UpdatedAt = time.Now()
	return os.persist()
}

// RemoveItemFromOrder deletes the line at index. Removing the last line
// deletes the active order itself; an active order never has zero lines.
func (os *OrderService) RemoveItemFromOrder(tableID string, index int) error {
	os.mu.Lock()
	defer os.mu.Unlock()
	return os.removeItemLocked(tableID, index)
}

func (os *OrderService) removeItemLocked(tableID string, index int) error {
	order, exists := os.active[tableID]
	if !exists {
		return ErrNoActiveOrder
	}
	if index < 0 || index >= len(order.Items) {
		return ErrInvalidIndex
	}

	order.Items = append(order.Items[:index], order.Items[index+1:]...)
	if len(order.Items) == 0 {
		delete(os.active, tableID)
	} else {
		order.UpdatedAt = time.Now()
	}
	return os.persist()
}

// UpdateItemQuantity sets the quantity of the line at index and recomputes
// its subtotal; a quantity of zero or less removes the line.
func (os *OrderService) UpdateItemQuantity(tableID string, index int, quantity int) error {
	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.active[tableID]
	if !exists {
		return ErrNoActiveOrder
	}
	if index < 0 || index >= len(order.Items) {
		return ErrInvalidIndex
	}
	if quantity <= 0 {
		return os.removeItemLocked(tableID, index)
	}

	order.Items[index].Quantity = quantity
	order.Items[index].Subtotal = order.Items[index].UnitPrice() * float64(quantity)
	order.UpdatedAt = time.Now()
	return os.persist()
}

// CompleteOrder snapshots the table's active order into an immutable
// completed order, billed with the rates configured at this moment, and
// deletes the active order.
func (os *OrderService) CompleteOrder(tableID, paymentMethod string, customer models.CustomerInfo) (*models.CompletedOrder, error) {
	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.active[tableID]
	if !exists {
		return nil, ErrNoActiveOrder
	}

	items := make([]models.OrderLine, len(order.Items))
	copy(items, order.Items)

	completed := models.CompletedOrder{
		OrderID:       uuid.NewString(),
		TableID:       tableID,
		Items:         items,
		Status:        models.OrderStatusCompleted,
		PaymentMethod: paymentMethod,
		Customer:      customer,
		Bill:          CalculateBill(items, os.config.TaxRate, os.config.ServiceCharge),
		CreatedAt:     order.CreatedAt,
		CompletedAt:   time.Now(),
	}

	os.completed = append(os.completed, completed)
	delete(os.active, tableID)

	if err := os.persist(); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s completed for table %s (total=%.2f)",
		completed.OrderID, tableID, completed.Total)
	return &completed, nil
}

// OrderByTable returns a copy of the table's active order, or nil when the
// table has none.
func (os *OrderService) OrderByTable(tableID string) *models.ActiveOrder {
	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.active[tableID]
	if !exists {
		return nil
	}
	snapshot := *order
	snapshot.Items = make([]models.OrderLine, len(order.Items))
	copy(snapshot.Items, order.Items)
	return &snapshot
}

// ActiveTables lists the tables that currently hold an active order.
func (os *OrderService) ActiveTables() []string {
	os.mu.Lock()
	defer os.mu.Unlock()

	tables := make([]string, 0, len(os.active))
	for tableID := range os.active {
		tables = append(tables, tableID)
	}
	return tables
}

// CompletedOrders returns a copy of the append-only completed sequence.
func (os *OrderService) CompletedOrders() []models.CompletedOrder {
	os.mu.Lock()
	defer os.mu.Unlock()

	out := make([]models.CompletedOrder, len(os.completed))
	copy(out, os.completed)
	return out
}

// OrderHistory returns the completed orders of one table.
func (os *OrderService) OrderHistory(tableID string) []models.CompletedOrder {
	os.mu.Lock()
	defer os.mu.Unlock()

	var out []models.CompletedOrder
	for _, order := range os.completed {
		if order.TableID == tableID {
			out = append(out, order)
		}
	}
	return out
}

// SetTaxRate replaces the process-wide tax rate. It applies to subsequent
// completions only; completed orders keep their stored figures.
func (os *OrderService) SetTaxRate(rate float64) error {
	if rate < 0 || rate >= 1 {
		return ErrInvalidRate
	}
	os.mu.Lock()
	defer os.mu.Unlock()
	os.config.TaxRate = rate
	return os.persistConfig()
}

// SetServiceCharge replaces the process-wide service-charge rate.
func (os *OrderService) SetServiceCharge(rate float64) error {
	if rate < 0 || rate >= 1 {
		return ErrInvalidRate
	}
	os.mu.Lock()
	defer os.mu.Unlock()
	os.config.ServiceCharge = rate
	return os.persistConfig()
}

// BillingConfig returns the currently configured rates.
func (os *OrderService) BillingConfig() models.BillingConfig {
	os.mu.Lock()
	defer os.mu.Unlock()
	return os.config
}

// persist writes both order collections; callers hold the mutex.
func (os *OrderService) persist() error {
	book := orderBook{
		Active:    make(map[string]models.ActiveOrder, len(os.active)),
		Completed: os.completed,
	}
	for tableID, order := range os.active {
		book.Active[tableID] = *order
	}
	if err := store.Save(os.store, store.KeyOrders, book); err != nil {
		utils.ErrorLogger.Errorf("Failed to persist orders: %v", err)
		return err
	}
	return nil
}

func (os *OrderService) persistConfig() error {
	if err := store.Save(os.store, store.KeyBillingConfig, os.config); err != nil {
		utils.ErrorLogger.Errorf("Failed to persist billing config: %v", err)
		return err
	}
	return nil
}
