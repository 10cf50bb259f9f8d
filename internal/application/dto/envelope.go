package dto

import (
	"errors"
	"net/http"

	"github.com/jhoicas/inventario-ventas/internal/domain"
)

// Códigos de respuesta. Cada código tiene un único StatusCode asociado (ver statusByCode).
const (
	CodeSuccess           = "SUCCESS"
	CodeInvalidModel      = "INVALID_MODEL"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeOutOfStock        = "OUT_OF_STOCK"
	CodeNotEnoughStock    = "NOT_ENOUGH_STOCK"
	CodeException         = "EXCEPTION"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeConflict          = "CONFLICT"
	CodeVoucherExists     = "VOUCHER_EXISTS"
	CodeStockConflict     = "STOCK_CONFLICT"
	CodeReturnExceedsSold = "RETURN_EXCEEDS_SOLD"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMissingRole       = "MISSING_ROLE"
	CodeForbidden         = "FORBIDDEN"
	CodeRateLimited       = "RATE_LIMITED"
	CodeIdempotencyReplay = "IDEMPOTENCY_REPLAY"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeRequestTimeout    = "REQUEST_TIMEOUT"
)

var statusByCode = map[string]int{
	CodeSuccess:           http.StatusOK,
	CodeInvalidModel:      http.StatusBadRequest,
	CodeItemNotFound:      http.StatusNotFound,
	CodeOutOfStock:        http.StatusBadRequest,
	CodeNotEnoughStock:    http.StatusBadRequest,
	CodeException:         http.StatusInternalServerError,
	CodeNotFound:          http.StatusNotFound,
	CodeDuplicate:         http.StatusConflict,
	CodeConflict:          http.StatusConflict,
	CodeVoucherExists:     http.StatusConflict,
	CodeStockConflict:     http.StatusConflict,
	CodeReturnExceedsSold: http.StatusBadRequest,
	CodeUnauthorized:      http.StatusUnauthorized,
	CodeMissingToken:      http.StatusUnauthorized,
	CodeInvalidToken:      http.StatusUnauthorized,
	CodeMissingRole:       http.StatusUnauthorized,
	CodeForbidden:         http.StatusForbidden,
	CodeRateLimited:       http.StatusTooManyRequests,
	CodeIdempotencyReplay: http.StatusConflict,
	CodeMethodNotAllowed:  http.StatusMethodNotAllowed,
	CodeRequestTimeout:    http.StatusRequestTimeout,
}

// StatusFor devuelve el status HTTP de un código; los códigos desconocidos son 500.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Envelope es la respuesta uniforme de todas las operaciones.
// Se construye con Success, Fail o FromError y no se modifica después.
type Envelope[T any] struct {
	IsSuccess    bool   `json:"isSuccess"`
	ResponseCode string `json:"responseCode"`
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message,omitempty"`
	Data         T      `json:"data,omitempty"`
}

// Success construye un envelope SUCCESS/200 con payload.
func Success[T any](data T, message string) Envelope[T] {
	return Envelope[T]{
		IsSuccess:    true,
		ResponseCode: CodeSuccess,
		StatusCode:   http.StatusOK,
		Message:      message,
		Data:         data,
	}
}

// Created es Success con 201, para altas de recursos.
func Created[T any](data T, message string) Envelope[T] {
	env := Success(data, message)
	env.StatusCode = http.StatusCreated
	return env
}

// Fail construye un envelope de error; el status sale del código.
func Fail[T any](code, message string) Envelope[T] {
	return Envelope[T]{
		ResponseCode: code,
		StatusCode:   StatusFor(code),
		Message:      message,
	}
}

// FromError traduce un error de dominio a envelope. Los errores no reconocidos
// son EXCEPTION/500 y exponen el texto original del fallo.
func FromError[T any](err error) Envelope[T] {
	return Fail[T](CodeForError(err), err.Error())
}

// CodeForError devuelve el código de respuesta para un error.
func CodeForError(err error) string {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, domain.ErrItemNotFound):
		return CodeItemNotFound
	case errors.Is(err, domain.ErrOutOfStock):
		return CodeOutOfStock
	case errors.Is(err, domain.ErrInsufficientStock):
		return CodeNotEnoughStock
	case errors.Is(err, domain.ErrStockConflict):
		return CodeStockConflict
	case errors.Is(err, domain.ErrVoucherExists):
		return CodeVoucherExists
	case errors.Is(err, domain.ErrReturnExceedsSold):
		return CodeReturnExceedsSold
	case errors.Is(err, domain.ErrInvalidInput):
		return CodeInvalidModel
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return CodeDuplicate
	case errors.Is(err, domain.ErrConflict):
		return CodeConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden
	}
	return CodeException
}
