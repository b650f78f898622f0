package models

import "time"

const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
)

// ChosenOption is the choice picked from one option group of a menu item.
// Price is the delta the choice adds to the item base price.
type ChosenOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderLine is one menu item with its chosen options and quantity, inside
// a cart or a table order. Two lines with the same item id and the same
// option selection are always merged, never duplicated.
type OrderLine struct {
	ItemID   string                  `json:"item_id"`
	Name     string                  `json:"name"`
	Price    float64                 `json:"price"`
	Quantity int                     `json:"quantity"`
	Options  map[string]ChosenOption `json:"options"`
	Subtotal float64                 `json:"subtotal"`
}

// UnitPrice is the base price plus every chosen option delta.
func (l OrderLine) UnitPrice() float64 {
	price := l.Price
	for _, opt := range l.Options {
		price += opt.Price
	}
	return price
}

// SameSelection reports whether the line refers to the same item with a
// structurally equal option selection.
func (l OrderLine) SameSelection(itemID string, options map[string]ChosenOption) bool {
	if l.ItemID != itemID {
		return false
	}
	if len(l.Options) != len(options) {
		return false
	}
	for group, opt := range options {
		chosen, ok := l.Options[group]
		if !ok || chosen != opt {
			return false
		}
	}
	return true
}

// CustomerInfo identifies who paid for a completed order.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ActiveOrder is the in-progress, unbilled order of a single table.
// It never exists with zero lines.
type ActiveOrder struct {
	TableID   string      `json:"table_id"`
	Items     []OrderLine `json:"items"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Bill holds the billing figures derived from an order at completion time.
type Bill struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"service_charge"`
	Total         float64 `json:"total"`
}

// CompletedOrder is the immutable, billed snapshot of a former active
// order. Once appended to the completed-orders collection it is never
// mutated.
type CompletedOrder struct {
	OrderID       string       `json:"order_id"`
	TableID       string       `json:"table_id"`
	Items         []OrderLine  `json:"items"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	Customer      CustomerInfo `json:"customer"`
	Bill
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// BillingConfig is the shared tax-rate/service-charge pair applied to
// every order at completion time. Rates are fractions in [0,1).
type BillingConfig struct {
	TaxRate       float64 `json:"tax_rate"`
	ServiceCharge float64 `json:"service_charge"`
}
