package services

import (
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/tableside/tableside/models"
	"github.com/tableside/tableside/utils"
)

// CheckoutService forwards a line-item list to the hosted checkout page.
// It only produces a redirect URL; payment capture happens on the
// provider's side and is out of scope here.
type CheckoutService struct {
	client snap.Client
}

// NewCheckoutService configures the Snap client from the environment.
// MIDTRANS_ENV=production selects the live endpoint, anything else the
// sandbox.
func NewCheckoutService() *CheckoutService {
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	cs := &CheckoutService{}
	cs.client.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)
	return cs
}

// CreateCheckout creates a hosted checkout session for the given lines and
// returns the redirect URL. Amounts are sent in the smallest currency unit.
func (cs *CheckoutService) CreateCheckout(lines []models.OrderLine, customer models.CustomerInfo) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	items := make([]midtrans.ItemDetails, 0, len(lines))
	var gross int64
	for _, line := range lines {
		unit := int64(math.Round(line.UnitPrice() * 100))
		items = append(items, midtrans.ItemDetails{
			ID:    line.ItemID,
			Name:  line.Name,
			Price: unit,
			Qty:   int32(line.Quantity),
		})
		gross += unit * int64(line.Quantity)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  uuid.NewString(),
			GrossAmt: gross,
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
	}

	resp, snapErr := cs.client.CreateTransaction(req)
	if snapErr != nil {
		utils.ErrorLogger.Errorf("Checkout session failed: %v", snapErr)
		return "", snapErr
	}

	utils.InfoLogger.Printf("Checkout session created (%d items, gross=%d)", len(items), gross)
	return resp.RedirectURL, nil
}
