package service

import (
	"context"
	"errors"
	"testing"
)

func TestCheckoutEmptyCartRejected(t *testing.T) {
	svc := newSyncTestService(newFakeCartRepo(), newFakeFavoriteRepo(), newFakeSaleRepo())
	if _, err := svc.Checkout(context.Background(), "u1"); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutWritesSaleLinesAndClearsCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	saleRepo := newFakeSaleRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), saleRepo)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "u1", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "u1", 14); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "u1", 14); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := svc.Checkout(ctx, "u1")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.BasketID == "" {
		t.Fatal("expected basket id")
	}
	if result.Succeeded != 2 || result.Failed != 0 {
		t.Fatalf("expected 2 succeeded 0 failed, got %d/%d", result.Succeeded, result.Failed)
	}
	// Türk Kahvesi 100 + Poğaça 15x2 = 130
	if result.Total.Cents() != 13000 {
		t.Fatalf("expected total 13000 cents, got %d", result.Total.Cents())
	}

	sales, err := saleRepo.ListByBasket(ctx, result.BasketID)
	if err != nil {
		t.Fatalf("list sales failed: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 sale lines, got %d", len(sales))
	}
	for _, sale := range sales {
		if sale.BasketID != result.BasketID {
			t.Fatalf("sale line carries wrong basket id: %s", sale.BasketID)
		}
		if sale.OwnerID != "u1" {
			t.Fatalf("sale line carries wrong owner: %s", sale.OwnerID)
		}
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Fatalf("expected cart cleared, got %d entries", len(view.Entries))
	}
	if len(cartRepo.rows) != 0 {
		t.Fatalf("expected remote cart docs deleted, got %d", len(cartRepo.rows))
	}
}

func TestCheckoutPartialFailureKeepsFailedLines(t *testing.T) {
	cartRepo := newFakeCartRepo()
	saleRepo := newFakeSaleRepo()
	saleRepo.failItems[14] = true
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), saleRepo)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "u1", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "u1", 14); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := svc.Checkout(ctx, "u1")
	if err != nil {
		t.Fatalf("checkout must not fail on partial errors: %v", err)
	}
	if result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("expected 1 succeeded 1 failed, got %d/%d", result.Succeeded, result.Failed)
	}
	if result.Total.Cents() != 10000 {
		t.Fatalf("expected total of succeeded lines only, got %d", result.Total.Cents())
	}

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 1 || view.Entries[0].ItemID != 14 {
		t.Fatalf("expected only failed line to remain, got %+v", view.Entries)
	}
}

func TestCheckoutLocalOnlyEntryStillSells(t *testing.T) {
	cartRepo := newFakeCartRepo()
	saleRepo := newFakeSaleRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), saleRepo)
	ctx := context.Background()

	cartRepo.failing = true
	if _, err := svc.AddToCart(ctx, "u1", 16); err != nil {
		t.Fatalf("offline add failed: %v", err)
	}
	cartRepo.failing = false

	result, err := svc.Checkout(ctx, "u1")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected local-only line to sell, got %d succeeded", result.Succeeded)
	}
	if len(saleRepo.rows) != 1 {
		t.Fatalf("expected 1 sale row, got %d", len(saleRepo.rows))
	}
}
