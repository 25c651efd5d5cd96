package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// delivery fee tiers, lower bound inclusive
var (
	freeDeliveryFrom    = decimal.NewFromInt(1000)
	reducedDeliveryFrom = decimal.NewFromInt(500)
	reducedDeliveryFee  = decimal.NewFromInt(20)
	standardDeliveryFee = decimal.NewFromInt(40)
	gramsPerKilogram    = decimal.NewFromInt(1000)
	defaultQuantity     = decimal.NewFromInt(1)
)

// DeliveryFee returns delivery fee for given order subtotal
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThanOrEqual(freeDeliveryFrom):
		return decimal.Zero
	case subtotal.GreaterThanOrEqual(reducedDeliveryFrom):
		return reducedDeliveryFee
	default:
		return standardDeliveryFee
	}
}

var amountNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseQuantity extracts an order quantity from an amount string such
// as "2kg", "500g", "3 pcs" or "1 box". Weight amounts are scaled to
// fractional kilograms, count units use the first embedded number.
// An unparseable amount defaults to 1.
func ParseQuantity(amount, unit string) decimal.Decimal {
	num := amountNumberRe.FindString(amount)
	if num == "" {
		return defaultQuantity
	}

	qty, err := decimal.NewFromString(num)
	if err != nil {
		return defaultQuantity
	}

	switch unit {
	case models.UnitKg:
		lower := strings.ToLower(amount)
		// grams unless the string itself says kilograms
		if strings.Contains(lower, "g") && !strings.Contains(lower, "kg") {
			return qty.Div(gramsPerKilogram)
		}
		return qty
	case models.UnitPiece, models.UnitBox:
		return qty.Truncate(0)
	default:
		return qty
	}
}
