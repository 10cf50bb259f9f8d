package sales_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción (snapshot + rollback)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	goods    map[string]*entity.Goods
	vouchers map[string]*entity.Voucher
	ledger   []*entity.WarehouseTransaction
	// failVoucherInsert simula un fallo de la base de datos al insertar la cabecera.
	failVoucherInsert error
	// casMiss hace fallar el compare-and-set de esas mercancías, como si otra
	// transacción hubiera cambiado la existencia entre el chequeo y el descuento.
	casMiss map[string]bool
	// locks registra el orden de los SELECT FOR UPDATE.
	locks []string
}

func newMemStore(goods ...*entity.Goods) *memStore {
	s := &memStore{
		goods:    make(map[string]*entity.Goods),
		vouchers: make(map[string]*entity.Voucher),
	}
	for _, g := range goods {
		s.goods[g.ID] = g
	}
	return s
}

func (s *memStore) onHand(id string) decimal.Decimal {
	return s.goods[id].OnHand
}

// RunSale serializa las transacciones y restaura el estado si fn falla.
func (s *memStore) RunSale(ctx context.Context, fn func(
	goodsRepo repository.GoodsRepository,
	voucherRepo repository.VoucherRepository,
	ledgerRepo repository.WarehouseTransactionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goodsSnap := make(map[string]entity.Goods, len(s.goods))
	for id, g := range s.goods {
		goodsSnap[id] = *g
	}
	vouchersSnap := make(map[string]*entity.Voucher, len(s.vouchers))
	for id, v := range s.vouchers {
		vouchersSnap[id] = v
	}
	ledgerLen := len(s.ledger)

	if err := fn(&memGoods{s}, &memVouchers{s}, &memLedger{s}); err != nil {
		for id, g := range goodsSnap {
			g := g
			s.goods[id] = &g
		}
		s.vouchers = vouchersSnap
		s.ledger = s.ledger[:ledgerLen]
		return err
	}
	return nil
}

type memGoods struct{ s *memStore }

func (r *memGoods) Create(_ context.Context, g *entity.Goods) error {
	r.s.goods[g.ID] = g
	return nil
}

func (r *memGoods) GetByID(_ context.Context, id string) (*entity.Goods, error) {
	g, ok := r.s.goods[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *memGoods) GetForUpdate(ctx context.Context, id string) (*entity.Goods, error) {
	r.s.locks = append(r.s.locks, id)
	return r.GetByID(ctx, id)
}

func (r *memGoods) Update(_ context.Context, g *entity.Goods) error {
	r.s.goods[g.ID] = g
	return nil
}

func (r *memGoods) Upsert(ctx context.Context, g *entity.Goods) error { return r.Update(ctx, g) }

func (r *memGoods) AdjustOnHand(_ context.Context, id string, delta decimal.Decimal) error {
	g, ok := r.s.goods[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.s.casMiss[id] {
		return domain.ErrStockConflict
	}
	next := g.OnHand.Add(delta)
	if next.IsNegative() {
		return domain.ErrStockConflict
	}
	g.OnHand = next
	return nil
}

func (r *memGoods) List(_ context.Context, _ string, _, _ int) ([]*entity.Goods, error) {
	out := make([]*entity.Goods, 0, len(r.s.goods))
	for _, g := range r.s.goods {
		out = append(out, g)
	}
	return out, nil
}

func (r *memGoods) Delete(_ context.Context, id string) error {
	delete(r.s.goods, id)
	return nil
}

type memVouchers struct{ s *memStore }

func (r *memVouchers) Create(_ context.Context, v *entity.Voucher) (int64, error) {
	if r.s.failVoucherInsert != nil {
		return 0, r.s.failVoucherInsert
	}
	if _, ok := r.s.vouchers[v.ID]; ok {
		return 0, domain.ErrVoucherExists
	}
	r.s.vouchers[v.ID] = v
	return int64(1 + len(v.Lines)), nil
}

func (r *memVouchers) GetByID(_ context.Context, id string) (*entity.Voucher, error) {
	return r.s.vouchers[id], nil
}

func (r *memVouchers) List(_ context.Context, from, to *time.Time, limit, offset int) ([]*entity.Voucher, error) {
	out := make([]*entity.Voucher, 0)
	for _, v := range r.s.vouchers {
		if from != nil && v.VoucherDate.Before(*from) {
			continue
		}
		if to != nil && v.VoucherDate.After(*to) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memLedger struct{ s *memStore }

func (r *memLedger) Create(_ context.Context, tx *entity.WarehouseTransaction) error {
	r.s.ledger = append(r.s.ledger, tx)
	return nil
}

func (r *memLedger) ListByGoods(_ context.Context, goodsID string, _, _ int) ([]*entity.WarehouseTransaction, error) {
	var out []*entity.WarehouseTransaction
	for _, t := range r.s.ledger {
		if t.GoodsID == goodsID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memLedger) StockByWarehouse(_ context.Context, _ string) ([]entity.StockSummary, error) {
	return nil, nil
}

func (r *memLedger) ReturnedQuantity(_ context.Context, voucherID, goodsID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.s.ledger {
		if t.Type == entity.MovementTypeRETURN && t.Reference == voucherID && t.GoodsID == goodsID {
			sum = sum.Add(t.Quantity)
		}
	}
	return sum, nil
}

type memCustomers struct {
	items map[string]*entity.Customer
}

func (r *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.items[id], nil
}

func (r *memCustomers) List(_ context.Context, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}

func goods(id, name string, onHand int64) *entity.Goods {
	return &entity.Goods{
		ID:        id,
		Name:      name,
		Unit:      "UND",
		SalePrice: decimal.NewFromInt(1000),
		VATRate:   decimal.NewFromInt(19),
		OnHand:    decimal.NewFromInt(onHand),
	}
}

func (r *memGoods) ListBelow(_ context.Context, threshold decimal.Decimal) ([]*entity.Goods, error) {
	var out []*entity.Goods
	for _, g := range r.s.goods {
		if g.OnHand.LessThan(threshold) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memLedger) SoldSince(_ context.Context, _ time.Time) ([]entity.StockSummary, error) {
	return nil, nil
}
