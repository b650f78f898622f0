package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tableside/tableside/models"
)

func TestCreateCheckoutRejectsEmptyCart(t *testing.T) {
	cs := NewCheckoutService()

	_, err := cs.CreateCheckout(nil, models.CustomerInfo{Name: "Dana"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = cs.CreateCheckout([]models.OrderLine{}, models.CustomerInfo{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
