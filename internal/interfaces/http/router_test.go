package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-ventas/internal/interfaces/http"
)

type memWarehouses struct {
	repository.WarehouseRepository
	items map[string]*entity.Warehouse
}

func (r *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	for _, existing := range r.items {
		if existing.Code == w.Code {
			return domain.ErrDuplicate
		}
	}
	r.items[w.ID] = w
	return nil
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas: el status del envelope es el status HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_StatusDelEnvelopeIgualAlHTTP(t *testing.T) {
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC: usecase.NewWarehouseUseCase(&memWarehouses{items: map[string]*entity.Warehouse{}}),
		JWTSecret:   testJWTSecret,
		Log:         zerolog.Nop(),
	})

	post := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/warehouses",
			bytes.NewBufferString(`{"code":"B1","name":"Principal"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer(t, apphttp.RoleAdmin))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := post()
	env := decodeEnvelope(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(resp.StatusCode), env["statusCode"])
	assert.Equal(t, dto.CodeSuccess, env["responseCode"])
	assert.Equal(t, "B1", env["data"].(map[string]any)["code"])

	resp = post()
	env = decodeEnvelope(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, float64(resp.StatusCode), env["statusCode"])
	assert.Equal(t, dto.CodeDuplicate, env["responseCode"])
}

func TestCreated_EnvelopeLleva201(t *testing.T) {
	env := dto.Created("x", "creado")
	assert.True(t, env.IsSuccess)
	assert.Equal(t, dto.CodeSuccess, env.ResponseCode)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorHandler: errores de Fiber
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_ErroresDeFiber(t *testing.T) {
	cases := []struct {
		err  *fiber.Error
		code string
	}{
		{fiber.ErrNotFound, dto.CodeNotFound},
		{fiber.ErrMethodNotAllowed, dto.CodeMethodNotAllowed},
		{fiber.ErrRequestTimeout, dto.CodeRequestTimeout},
		{fiber.ErrBadRequest, dto.CodeInvalidModel},
		{fiber.ErrRequestEntityTooLarge, dto.CodeInvalidModel},
		{fiber.ErrUnsupportedMediaType, dto.CodeInvalidModel},
		{fiber.ErrConflict, dto.CodeConflict},
		{fiber.ErrTooManyRequests, dto.CodeRateLimited},
		{fiber.ErrServiceUnavailable, dto.CodeException},
	}

	for _, tc := range cases {
		t.Run(tc.code+"_"+tc.err.Message, func(t *testing.T) {
			app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, zerolog.Nop())
			app.Get("/boom", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
			require.NoError(t, err)
			env := decodeEnvelope(t, resp)

			assert.Equal(t, tc.code, env["responseCode"])
			assert.Equal(t, false, env["isSuccess"])
			assert.Equal(t, float64(resp.StatusCode), env["statusCode"])
		})
	}
}
