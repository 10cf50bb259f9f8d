package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
)

type memGoodsRepo struct {
	items map[string]*entity.Goods
}

func newMemGoodsRepo() *memGoodsRepo { return &memGoodsRepo{items: map[string]*entity.Goods{}} }

func (r *memGoodsRepo) Create(_ context.Context, g *entity.Goods) error {
	r.items[g.ID] = g
	return nil
}

func (r *memGoodsRepo) GetByID(_ context.Context, id string) (*entity.Goods, error) {
	return r.items[id], nil
}

func (r *memGoodsRepo) GetForUpdate(ctx context.Context, id string) (*entity.Goods, error) {
	return r.GetByID(ctx, id)
}

func (r *memGoodsRepo) Update(_ context.Context, g *entity.Goods) error {
	r.items[g.ID] = g
	return nil
}

func (r *memGoodsRepo) Upsert(ctx context.Context, g *entity.Goods) error { return r.Update(ctx, g) }

func (r *memGoodsRepo) AdjustOnHand(_ context.Context, id string, delta decimal.Decimal) error {
	r.items[id].OnHand = r.items[id].OnHand.Add(delta)
	return nil
}

func (r *memGoodsRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Goods, error) {
	out := make([]*entity.Goods, 0, len(r.items))
	for _, g := range r.items {
		out = append(out, g)
	}
	return out, nil
}

func (r *memGoodsRepo) ListBelow(_ context.Context, _ decimal.Decimal) ([]*entity.Goods, error) {
	return nil, nil
}

func (r *memGoodsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memUserRepo struct {
	items map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{items: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.items[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memWarehouseRepo struct {
	items map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	for _, x := range r.items {
		if x.Code == w.Code {
			return domain.ErrDuplicate
		}
	}
	r.items[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return r.items[id], nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.items[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) List(_ context.Context, _, _ int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, w)
	}
	return out, nil
}

type memCustomerRepo struct {
	items []*entity.Customer
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	for _, it := range r.items {
		if c.TaxCode != "" && it.TaxCode == c.TaxCode {
			return domain.ErrDuplicate
		}
	}
	r.items = append(r.items, c)
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	if offset >= len(r.items) {
		return nil, nil
	}
	end := min(offset+limit, len(r.items))
	return r.items[offset:end], nil
}
