package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
)

func TestSuccess_CodigoYStatusConsistentes(t *testing.T) {
	env := dto.Success(&dto.SaleResult{VoucherID: "V1", AffectedRows: 2}, "venta registrada")

	assert.True(t, env.IsSuccess)
	assert.Equal(t, dto.CodeSuccess, env.ResponseCode)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	require.NotNil(t, env.Data)
	assert.Equal(t, "V1", env.Data.VoucherID)
}

func TestFromError_TablaDeCodigos(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{&domain.StockError{Err: domain.ErrItemNotFound, GoodsID: "X"}, dto.CodeItemNotFound, http.StatusNotFound},
		{&domain.StockError{Err: domain.ErrOutOfStock, GoodsName: "Sal"}, dto.CodeOutOfStock, http.StatusBadRequest},
		{&domain.StockError{Err: domain.ErrInsufficientStock, GoodsName: "Sal"}, dto.CodeNotEnoughStock, http.StatusBadRequest},
		{domain.ErrStockConflict, dto.CodeStockConflict, http.StatusConflict},
		{domain.ErrVoucherExists, dto.CodeVoucherExists, http.StatusConflict},
		{fmt.Errorf("items: %w", domain.ErrInvalidInput), dto.CodeInvalidModel, http.StatusBadRequest},
		{domain.ErrNotFound, dto.CodeNotFound, http.StatusNotFound},
		{domain.ErrEmailAlreadyExists, dto.CodeDuplicate, http.StatusConflict},
		{domain.ErrConflict, dto.CodeConflict, http.StatusConflict},
		{domain.ErrForbidden, dto.CodeForbidden, http.StatusForbidden},
		{errors.New("connection reset by peer"), dto.CodeException, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		env := dto.FromError[*dto.SaleResult](tc.err)
		assert.False(t, env.IsSuccess, tc.code)
		assert.Equal(t, tc.code, env.ResponseCode)
		assert.Equal(t, tc.status, env.StatusCode, tc.code)
		assert.Nil(t, env.Data)
	}
}

func TestFromError_ExceptionExponeMensajeOriginal(t *testing.T) {
	env := dto.FromError[any](errors.New("insert voucher: deadlock detected"))
	assert.Equal(t, "insert voucher: deadlock detected", env.Message)
}

func TestEnvelope_JSONSinDataEnFallo(t *testing.T) {
	raw, err := json.Marshal(dto.Fail[*dto.SaleResult](dto.CodeNotEnoughStock, "no hay stock"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["isSuccess"])
	assert.Equal(t, "NOT_ENOUGH_STOCK", body["responseCode"])
	assert.Equal(t, float64(400), body["statusCode"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestStatusFor_CodigoDesconocido(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, dto.StatusFor("WHATEVER"))
}
