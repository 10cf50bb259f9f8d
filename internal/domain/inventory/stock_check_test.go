package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/inventory"
)

func goods(onHand int64) *entity.Goods {
	return &entity.Goods{ID: "G1", Name: "Arroz 5kg", OnHand: decimal.NewFromInt(onHand)}
}

func TestCheckAvailability_NoExiste(t *testing.T) {
	err := inventory.CheckAvailability("UNKNOWN", nil, decimal.NewFromInt(1), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrItemNotFound))

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "UNKNOWN", se.GoodsID)
	assert.Contains(t, se.Error(), "UNKNOWN")
}

func TestCheckAvailability_Agotado(t *testing.T) {
	for _, onHand := range []int64{0, -2} {
		err := inventory.CheckAvailability("G1", goods(onHand), decimal.NewFromInt(1), 1)
		assert.True(t, errors.Is(err, domain.ErrOutOfStock), "on_hand=%d", onHand)
		assert.Contains(t, err.Error(), "Arroz 5kg", "el mensaje usa el nombre de la mercancía")
	}
}

func TestCheckAvailability_Insuficiente(t *testing.T) {
	err := inventory.CheckAvailability("G1", goods(3), decimal.NewFromInt(5), 2)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.LineNo)
}

func TestCheckAvailability_Suficiente(t *testing.T) {
	assert.NoError(t, inventory.CheckAvailability("G1", goods(10), decimal.NewFromInt(5), 1))
	assert.NoError(t, inventory.CheckAvailability("G1", goods(5), decimal.NewFromInt(5), 1), "cantidad igual a la existencia es válida")
}

func TestLineAmount(t *testing.T) {
	amount, vat := inventory.LineAmount(decimal.NewFromInt(3), decimal.NewFromInt(1000), decimal.NewFromInt(10))
	assert.True(t, amount.Equal(decimal.NewFromInt(3000)))
	assert.True(t, vat.Equal(decimal.NewFromInt(300)))

}

func TestLineAmount_TasaSiemprePorcentaje(t *testing.T) {
	cases := []struct {
		rate string
		vat  string
	}{
		{"1", "10"},
		{"0.5", "5"},
		{"19", "190"},
		{"0", "0"},
	}
	for _, tc := range cases {
		_, vat := inventory.LineAmount(decimal.NewFromInt(1), decimal.NewFromInt(1000), decimal.RequireFromString(tc.rate))
		assert.True(t, vat.Equal(decimal.RequireFromString(tc.vat)), "tasa %s%%: iva %s", tc.rate, vat)
	}
}
