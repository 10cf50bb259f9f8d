package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/inventario-ventas/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el flujo de venta
// ──────────────────────────────────────────────────────────────────────────────

type saleStore struct {
	mu       sync.Mutex
	goods    map[string]*entity.Goods
	vouchers map[string]*entity.Voucher
	ledger   []*entity.WarehouseTransaction
}

func newSaleStore(items ...*entity.Goods) *saleStore {
	s := &saleStore{goods: map[string]*entity.Goods{}, vouchers: map[string]*entity.Voucher{}}
	for _, g := range items {
		s.goods[g.ID] = g
	}
	return s
}

func (s *saleStore) RunSale(_ context.Context, fn func(
	repository.GoodsRepository,
	repository.VoucherRepository,
	repository.WarehouseTransactionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// copia para simular rollback
	backup := make(map[string]decimal.Decimal, len(s.goods))
	for id, g := range s.goods {
		backup[id] = g.OnHand
	}
	ledgerLen := len(s.ledger)
	before := make(map[string]bool, len(s.vouchers))
	for id := range s.vouchers {
		before[id] = true
	}
	if err := fn(storeGoods{s: s}, storeVouchers{s: s}, storeLedger{s: s}); err != nil {
		for id, q := range backup {
			s.goods[id].OnHand = q
		}
		for id := range s.vouchers {
			if !before[id] {
				delete(s.vouchers, id)
			}
		}
		s.ledger = s.ledger[:ledgerLen]
		return err
	}
	return nil
}

type storeGoods struct {
	repository.GoodsRepository
	s *saleStore
}

func (r storeGoods) GetForUpdate(_ context.Context, id string) (*entity.Goods, error) {
	g, ok := r.s.goods[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r storeGoods) AdjustOnHand(_ context.Context, id string, delta decimal.Decimal) error {
	g, ok := r.s.goods[id]
	if !ok {
		return domain.ErrNotFound
	}
	if g.OnHand.Add(delta).IsNegative() {
		return domain.ErrStockConflict
	}
	g.OnHand = g.OnHand.Add(delta)
	return nil
}

type storeVouchers struct {
	repository.VoucherRepository
	s *saleStore
}

func (r storeVouchers) Create(_ context.Context, v *entity.Voucher) (int64, error) {
	if _, dup := r.s.vouchers[v.ID]; dup {
		return 0, domain.ErrVoucherExists
	}
	r.s.vouchers[v.ID] = v
	return int64(1 + len(v.Lines)), nil
}

type storeLedger struct {
	repository.WarehouseTransactionRepository
	s *saleStore
}

func (r storeLedger) Create(_ context.Context, t *entity.WarehouseTransaction) error {
	r.s.ledger = append(r.s.ledger, t)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func saleApp(t *testing.T, store *saleStore, idem *cache.IdempotencyStore) *fiber.App {
	t.Helper()
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		CreateSale: sales.NewCreateSaleUseCase(store, nil, sales.Config{
			DeductStock:          true,
			DefaultDebitAccount:  "131",
			DefaultCreditAccount: "5111",
		}, zerolog.Nop()),
		Idempotency: idem,
		JWTSecret:   testJWTSecret,
		Log:         zerolog.Nop(),
	})
	return app
}

func postSale(t *testing.T, app *fiber.App, role string, body any, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, role))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func stock(id string, onHand int64) *entity.Goods {
	return &entity.Goods{
		ID: id, Name: "Mercancía " + id, Unit: "und",
		SalePrice: decimal.NewFromInt(1000), VATRate: decimal.NewFromInt(19),
		OnHand: decimal.NewFromInt(onHand), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func saleBody(voucherID, goodsID string, qty string) map[string]any {
	return map[string]any{
		"voucherId": voucherID,
		"items": []map[string]any{
			{"goodsId": goodsID, "quantity": qty, "unitPrice": "1000", "vatRate": "19"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/sales
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_Success(t *testing.T) {
	store := newSaleStore(stock("G1", 10))
	resp, env := postSale(t, saleApp(t, store, nil), "vendedor", saleBody("V-100", "G1", "3"), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, env["isSuccess"])
	assert.Equal(t, dto.CodeSuccess, env["responseCode"])
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "V-100", data["voucherId"])
	assert.Equal(t, float64(2), data["affectedRows"])
	assert.Equal(t, "7", store.goods["G1"].OnHand.String())
}

func TestSaleHandler_NotEnoughStock_400(t *testing.T) {
	store := newSaleStore(stock("G1", 2))
	resp, env := postSale(t, saleApp(t, store, nil), "vendedor", saleBody("V-101", "G1", "5"), nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, env["isSuccess"])
	assert.Equal(t, dto.CodeNotEnoughStock, env["responseCode"])
	assert.Equal(t, float64(400), env["statusCode"])
	assert.Empty(t, store.vouchers)
	assert.Equal(t, "2", store.goods["G1"].OnHand.String())
}

func TestSaleHandler_OutOfStock_400(t *testing.T) {
	store := newSaleStore(stock("G1", 0))
	resp, env := postSale(t, saleApp(t, store, nil), "admin", saleBody("V-102", "G1", "1"), nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeOutOfStock, env["responseCode"])
}

func TestSaleHandler_ItemNotFound_404(t *testing.T) {
	store := newSaleStore()
	resp, env := postSale(t, saleApp(t, store, nil), "vendedor", saleBody("V-103", "NOPE", "1"), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, dto.CodeItemNotFound, env["responseCode"])
	assert.Contains(t, env["message"], "NOPE")
}

func TestSaleHandler_ModeloInvalido_400(t *testing.T) {
	store := newSaleStore(stock("G1", 10))
	app := saleApp(t, store, nil)

	resp, env := postSale(t, app, "vendedor", saleBody("", "G1", "1"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeInvalidModel, env["responseCode"])

	resp, env = postSale(t, app, "vendedor", saleBody("V-104", "G1", "-1"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeInvalidModel, env["responseCode"])
	assert.Contains(t, env["message"], "quantity")
}

func TestSaleHandler_BodegueroNoVende_403(t *testing.T) {
	store := newSaleStore(stock("G1", 10))
	resp, env := postSale(t, saleApp(t, store, nil), "bodeguero", saleBody("V-105", "G1", "1"), nil)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeForbidden, env["responseCode"])
	assert.Equal(t, "10", store.goods["G1"].OnHand.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotency-Key
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_IdempotencyKey_ReproduceRespuesta(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	idem := cache.NewIdempotencyStore(client, time.Hour)

	store := newSaleStore(stock("G1", 10))
	app := saleApp(t, store, idem)
	headers := map[string]string{apphttp.HeaderIdempotencyKey: "abc-123"}

	resp1, env1 := postSale(t, app, "vendedor", saleBody("V-200", "G1", "4"), headers)
	require.Equal(t, http.StatusOK, resp1.StatusCode)

	// El reintento no vuelve a descontar ni choca con VOUCHER_EXISTS.
	resp2, env2 := postSale(t, app, "vendedor", saleBody("V-200", "G1", "4"), headers)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "true", resp2.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, env1, env2)
	assert.Equal(t, "6", store.goods["G1"].OnHand.String())

	// Sin clave el duplicado sí llega al caso de uso.
	resp3, env3 := postSale(t, app, "vendedor", saleBody("V-200", "G1", "4"), nil)
	assert.Equal(t, http.StatusConflict, resp3.StatusCode)
	assert.Equal(t, dto.CodeVoucherExists, env3["responseCode"])
}
