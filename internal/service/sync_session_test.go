package service

import (
	"context"
	"strings"
	"testing"

	"github.com/kahve-next/internal/catalog"
	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/models"
)

func TestSignInReplacesMirrorWithRemoteSnapshot(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	// 上个会话遗留：远端不可达时加入的本地占位条目
	cartRepo.failing = true
	if _, err := svc.AddToCart(ctx, "u1", 1); err != nil {
		t.Fatalf("offline add failed: %v", err)
	}
	cartRepo.failing = false

	// 远端真实状态只有商品 2 的一行
	item, _ := catalog.ItemByID(2)
	seed := models.CartRow{OwnerID: "u1", ItemID: item.ID, Name: item.Name, UnitPriceCents: item.Price.Cents(), Quantity: 1}
	if _, err := cartRepo.Upsert(ctx, &seed); err != nil {
		t.Fatalf("seed remote row failed: %v", err)
	}

	svc.SignIn(ctx, "u1")

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 1 {
		t.Fatalf("expected mirror to hold only the remote snapshot, got %d entries", len(view.Entries))
	}
	if view.Entries[0].ItemID != 2 {
		t.Fatalf("expected remote row item 2, got %d", view.Entries[0].ItemID)
	}
	if strings.HasPrefix(view.Entries[0].Key, constants.LocalKeyPrefix) {
		t.Fatalf("expected remote key after sign-in, got %q", view.Entries[0].Key)
	}
	if view.Pending != 0 {
		t.Fatalf("expected no pending entries after sign-in, got %d", view.Pending)
	}
}

func TestSignInWithRemoteDownDiscardsLocalResidue(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	cartRepo.failing = true
	if _, err := svc.AddToCart(ctx, "u1", 3); err != nil {
		t.Fatalf("offline add failed: %v", err)
	}

	// 远端仍不可达：镜像照样清掉，残留条目不跨登录存活
	svc.SignIn(ctx, "u1")

	view, err := svc.Cart(ctx, "u1")
	if err != nil {
		t.Fatalf("cart view failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Fatalf("expected empty mirror after sign-in, got %d entries", len(view.Entries))
	}
}

func TestReconcileMergesIntoExistingRemoteRow(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newSyncTestService(cartRepo, newFakeFavoriteRepo(), newFakeSaleRepo())
	ctx := context.Background()

	// 远端已有 u1 商品 7 两件
	item, _ := catalog.ItemByID(7)
	seed := models.CartRow{OwnerID: "u1", ItemID: item.ID, Name: item.Name, UnitPriceCents: item.Price.Cents(), Quantity: 2}
	if _, err := cartRepo.Upsert(ctx, &seed); err != nil {
		t.Fatalf("seed remote row failed: %v", err)
	}

	// 装载失败，镜像空载，再加一件只能落本地占位键
	cartRepo.failing = true
	if _, err := svc.AddToCart(ctx, "u1", 7); err != nil {
		t.Fatalf("offline add failed: %v", err)
	}
	cartRepo.failing = false

	if _, err := svc.Reconcile(ctx, "u1"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	rows, err := cartRepo.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("list remote rows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single remote row per item, got %d", len(rows))
	}
	if rows[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", rows[0].Quantity)
	}
}
