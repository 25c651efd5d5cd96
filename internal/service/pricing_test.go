package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{name: "small_order", subtotal: 120, want: 40},
		{name: "just_below_reduced_tier", subtotal: 499, want: 40},
		{name: "reduced_tier_lower_bound", subtotal: 500, want: 20},
		{name: "just_below_free_tier", subtotal: 999, want: 20},
		{name: "free_tier_lower_bound", subtotal: 1000, want: 0},
		{name: "large_order", subtotal: 2500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryFee(decimal.NewFromInt(tt.subtotal))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		unit   string
		want   string
	}{
		{name: "whole_kilograms", amount: "2kg", unit: models.UnitKg, want: "2"},
		{name: "grams_scaled_to_kilograms", amount: "500g", unit: models.UnitKg, want: "0.5"},
		{name: "fractional_kilograms", amount: "1.5kg", unit: models.UnitKg, want: "1.5"},
		{name: "bare_number_with_kg_unit", amount: "3", unit: models.UnitKg, want: "3"},
		{name: "pieces", amount: "3 pcs", unit: models.UnitPiece, want: "3"},
		{name: "single_box", amount: "1 box", unit: models.UnitBox, want: "1"},
		{name: "fractional_pieces_truncated", amount: "2.7 pcs", unit: models.UnitPiece, want: "2"},
		{name: "unparseable_defaults_to_one", amount: "garbage", unit: models.UnitPiece, want: "1"},
		{name: "empty_defaults_to_one", amount: "", unit: models.UnitKg, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatalf("bad want value: %v", err)
			}

			got := ParseQuantity(tt.amount, tt.unit)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}
