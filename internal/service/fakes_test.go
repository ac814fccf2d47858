package service

import (
	"context"
	"errors"
	"sync"

	"github.com/kahve-next/internal/models"
	"github.com/kahve-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errRemoteDown = errors.New("remote store unavailable")

type fakeCartRepo struct {
	mu       sync.Mutex
	rows     map[string]models.CartRow
	failing  bool
	inserts  int
	deletes  int
	updates  int
	failKeys map[string]bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{rows: make(map[string]models.CartRow), failKeys: make(map[string]bool)}
}

func (f *fakeCartRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.CartRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errRemoteDown
	}
	rows := make([]models.CartRow, 0)
	for _, row := range f.rows {
		if row.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeCartRepo) Upsert(ctx context.Context, row *models.CartRow) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.failing {
		return "", errRemoteDown
	}
	for id, existing := range f.rows {
		if existing.OwnerID == row.OwnerID && existing.ItemID == row.ItemID {
			existing.Quantity += row.Quantity
			existing.Name = row.Name
			existing.UnitPriceCents = row.UnitPriceCents
			existing.Image = row.Image
			f.rows[id] = existing
			return id, nil
		}
	}
	clone := *row
	clone.ID = primitive.NewObjectID()
	id := clone.ID.Hex()
	f.rows[id] = clone
	return id, nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failing || f.failKeys[id] {
		return errRemoteDown
	}
	if row, ok := f.rows[id]; ok {
		row.Quantity = quantity
		f.rows[id] = row
	}
	return nil
}

func (f *fakeCartRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.failing {
		return errRemoteDown
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCartRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errRemoteDown
	}
	var n int64
	for id, row := range f.rows {
		if row.OwnerID == ownerID {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCartRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeFavoriteRepo struct {
	mu      sync.Mutex
	rows    []models.FavoriteRow
	failing bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (f *fakeFavoriteRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.FavoriteRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errRemoteDown
	}
	rows := make([]models.FavoriteRow, 0)
	for _, row := range f.rows {
		if row.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeFavoriteRepo) Insert(ctx context.Context, row *models.FavoriteRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errRemoteDown
	}
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeFavoriteRepo) DeleteByOwnerAndItem(ctx context.Context, ownerID string, itemID int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errRemoteDown
	}
	var n int64
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.ItemID == itemID {
			n++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeFavoriteRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeSaleRepo struct {
	mu        sync.Mutex
	rows      []models.SaleRow
	failItems map[int]bool
	failing   bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{failItems: make(map[int]bool)}
}

func (f *fakeSaleRepo) Insert(ctx context.Context, row *models.SaleRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing || f.failItems[row.ItemID] {
		return errRemoteDown
	}
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeSaleRepo) ListRecent(ctx context.Context, limit int64) ([]models.SaleRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := append([]models.SaleRow(nil), f.rows...)
	if limit > 0 && int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeSaleRepo) ListByBasket(ctx context.Context, basketID string) ([]models.SaleRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]models.SaleRow, 0)
	for _, row := range f.rows {
		if row.BasketID == basketID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeSaleRepo) EnsureIndexes(ctx context.Context) error { return nil }

var (
	_ repository.CartRepository     = (*fakeCartRepo)(nil)
	_ repository.FavoriteRepository = (*fakeFavoriteRepo)(nil)
	_ repository.SaleRepository     = (*fakeSaleRepo)(nil)
)
