package service

import (
	"context"
	"errors"
	"testing"
)

func TestAddFavoriteAndDuplicateRejected(t *testing.T) {
	favRepo := newFakeFavoriteRepo()
	svc := newSyncTestService(newFakeCartRepo(), favRepo, newFakeSaleRepo())
	ctx := context.Background()

	entry, err := svc.AddFavorite(ctx, "u1", 9)
	if err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if entry.Name != "Kıbrıs Tatlısı" {
		t.Fatalf("unexpected favorite name: %s", entry.Name)
	}

	if _, err := svc.AddFavorite(ctx, "u1", 9); !errors.Is(err, ErrFavoriteExists) {
		t.Fatalf("expected ErrFavoriteExists, got %v", err)
	}

	favorites, err := svc.Favorites(ctx, "u1")
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favorites))
	}
}

func TestAddFavoriteUnknownItemRejected(t *testing.T) {
	svc := newSyncTestService(newFakeCartRepo(), newFakeFavoriteRepo(), newFakeSaleRepo())
	if _, err := svc.AddFavorite(context.Background(), "u1", 0); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAddFavoriteOptimisticFallback(t *testing.T) {
	favRepo := newFakeFavoriteRepo()
	favRepo.failing = true
	svc := newSyncTestService(newFakeCartRepo(), favRepo, newFakeSaleRepo())
	ctx := context.Background()

	entry, err := svc.AddFavorite(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("add with remote down must not fail: %v", err)
	}
	if !entry.SyncPending {
		t.Fatal("expected pending favorite")
	}

	favRepo.failing = false
	remaining, err := svc.Reconcile(ctx, "u1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected no remaining pending, got %d", remaining)
	}
	if len(favRepo.rows) != 1 {
		t.Fatalf("expected favorite written remotely, got %d rows", len(favRepo.rows))
	}
}

func TestRemoveFavorite(t *testing.T) {
	favRepo := newFakeFavoriteRepo()
	svc := newSyncTestService(newFakeCartRepo(), favRepo, newFakeSaleRepo())
	ctx := context.Background()

	if _, err := svc.AddFavorite(ctx, "u1", 11); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if err := svc.RemoveFavorite(ctx, "u1", 11); err != nil {
		t.Fatalf("remove favorite failed: %v", err)
	}
	if err := svc.RemoveFavorite(ctx, "u1", 11); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
	if len(favRepo.rows) != 0 {
		t.Fatalf("expected remote favorite removed, got %d rows", len(favRepo.rows))
	}
}
