package services

import "github.com/tableside/tableside/models"

// CalculateBill derives the billing figures for a set of order lines.
// Tax and service charge are fractions of the subtotal; the subtotal is
// the sum of the line subtotals as stored on the lines.
func CalculateBill(lines []models.OrderLine, taxRate, serviceRate float64) models.Bill {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal
	}

	tax := subtotal * taxRate
	serviceCharge := subtotal * serviceRate

	return models.Bill{
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: serviceCharge,
		Total:         subtotal + tax + serviceCharge,
	}
}
