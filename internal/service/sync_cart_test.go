package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/session"
)

func newSyncTestService(cartRepo *fakeCartRepo, favRepo *fakeFavoriteRepo, saleRepo *fakeSaleRepo) *SyncService {
	return NewSyncService(cartRepo, favRepo, saleRepo, session.NewManager(), nil)
}

func TestAddToCartInsertsNewEntry(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())

	entry, err := svc.AddToCart(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if entry.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", entry.Quantity)
	}
	if strings.HasPrefix(entry.Key, constants.LocalKeyPrefix) {
		t.Fatalf("expected remote key, got %q", entry.Key)
	}
	if entry.SyncPending {
		t.Fatal("expected entry to be synced")
	}
	if cartRepo.inserts != 1 {
		t.Fatalf("expected 1 remote insert, got %d", cartRepo.inserts)
	}
}

func TestAddToCartIncrementsQuantity(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "u1", 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	entry, err := svc.AddToCart(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if entry.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", entry.Quantity)
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 1 {
		t.Fatalf("expected single cart entry, got %d", len(view.Entries))
	}
	// 商品 3 单价 100，两件共 200
	if view.Total.Cents() != 20000 {
		t.Fatalf("expected total 20000 cents, got %d", view.Total.Cents())
	}
}

func TestAddToCartUnknownItemRejected(t *testing.T) {
	svc := newSyncTestService(newFakeCartRepo(), newFakeFavoriteRepo(), newFakeSaleRepo())
	if _, err := svc.AddToCart(context.Background(), "u1", 999); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAddToCartFallsBackToLocalKey(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.failing = true
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())

	entry, err := svc.AddToCart(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("add with remote down must not fail: %v", err)
	}
	if !strings.HasPrefix(entry.Key, constants.LocalKeyPrefix) {
		t.Fatalf("expected local key, got %q", entry.Key)
	}
	if !entry.SyncPending {
		t.Fatal("expected entry to be pending")
	}

	view, err := svc.Cart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if view.Pending != 1 {
		t.Fatalf("expected 1 pending entry, got %d", view.Pending)
	}
}

func TestAddToCartQuantityMergeSurvivesRemoteFailure(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	first, err := svc.AddToCart(ctx, "u1", 4)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cartRepo.failKeys[first.Key] = true

	entry, err := svc.AddToCart(ctx, "u1", 4)
	if err != nil {
		t.Fatalf("second add must not fail: %v", err)
	}
	if entry.Quantity != 2 {
		t.Fatalf("expected quantity 2 in mirror, got %d", entry.Quantity)
	}
	if !entry.SyncPending {
		t.Fatal("expected pending after remote update failure")
	}
}

func TestRemoveFromCartIdempotent(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	entry, err := svc.AddToCart(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.RemoveFromCart(ctx, "u1", entry.Key); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveFromCart(ctx, "u1", entry.Key); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Fatalf("expected empty cart, got %d entries", len(view.Entries))
	}
}

func TestRemoveFromCartKeepsMirrorOnRemoteFailure(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	entry, err := svc.AddToCart(ctx, "u1", 6)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cartRepo.failing = true
	if err := svc.RemoveFromCart(ctx, "u1", entry.Key); err != nil {
		t.Fatalf("remove with remote down must not fail: %v", err)
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Fatal("expected mirror entry removed regardless of remote outcome")
	}
}

func TestBootstrapReplacesLocalState(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	cartRepo.failing = true
	if _, err := svc.AddToCart(ctx, "u1", 1); err != nil {
		t.Fatalf("offline add failed: %v", err)
	}
	cartRepo.failing = false

	if _, err := svc.AddToCart(ctx, "u2", 2); err != nil {
		t.Fatalf("seed remote row failed: %v", err)
	}

	// 重新装载 u1：远端没有它的行，本地未同步条目被覆盖
	if err := svc.Bootstrap(ctx, "u1"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Fatalf("expected bootstrap to replace mirror, got %d entries", len(view.Entries))
	}
}

func TestReconcilePushesPendingEntries(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	cartRepo.failing = true
	entry, err := svc.AddToCart(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("offline add failed: %v", err)
	}
	if !strings.HasPrefix(entry.Key, constants.LocalKeyPrefix) {
		t.Fatalf("expected local key, got %q", entry.Key)
	}

	cartRepo.failing = false
	remaining, err := svc.Reconcile(ctx, "u1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected no remaining pending entries, got %d", remaining)
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(view.Entries))
	}
	if strings.HasPrefix(view.Entries[0].Key, constants.LocalKeyPrefix) {
		t.Fatalf("expected remote key after reconcile, got %q", view.Entries[0].Key)
	}
	if view.Pending != 0 {
		t.Fatalf("expected no pending entries, got %d", view.Pending)
	}
}
