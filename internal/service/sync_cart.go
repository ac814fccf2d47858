package service

import (
	"context"
	"time"

	"github.com/kahve-next/internal/catalog"
	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/models"

	"github.com/google/uuid"
)

// CartView 购物车视图（用于响应）
type CartView struct {
	Entries []models.CartEntry `json:"entries"`
	Total   models.Money       `json:"total"`
	Pending int                `json:"pending"`
}

// Cart 获取用户购物车视图
func (s *SyncService) Cart(ctx context.Context, ownerID string) (CartView, error) {
	sess := s.EnsureLoaded(ctx, ownerID)
	entries := sess.Cart()

	total := models.MoneyFromCents(0)
	pending := 0
	for _, e := range entries {
		total = total.Add(e.LineTotal())
		if e.SyncPending {
			pending++
		}
	}
	return CartView{Entries: entries, Total: total, Pending: pending}, nil
}

// AddToCart 加购一件商品
// 已在购物车时数量加一，否则新增数量为一的条目。
// 远端写入失败时条目仍进入镜像，打本地 key 与待同步标记。
func (s *SyncService) AddToCart(ctx context.Context, ownerID string, itemID int) (models.CartEntry, error) {
	item, ok := catalog.ItemByID(itemID)
	if !ok {
		return models.CartEntry{}, ErrItemNotFound
	}
	sess := s.EnsureLoaded(ctx, ownerID)

	if existing, ok := sess.CartEntryByItem(itemID); ok {
		existing.Quantity++
		if models.IsLocalKey(existing.Key) {
			// 本地条目还没有远端 key，只能改镜像等对账
			existing.SyncPending = true
		} else if err := s.cartRepo.UpdateQuantity(ctx, existing.Key, existing.Quantity); err != nil {
			logger.Warnw("cart_update_quantity_failed", "owner_id", ownerID, "item_id", itemID, "error", err)
			existing.SyncPending = true
		} else {
			existing.SyncPending = false
		}
		sess.UpsertCartEntry(existing)
		if existing.SyncPending {
			s.enqueueReconcile(ownerID)
		}
		return existing, nil
	}

	entry := models.CartEntry{
		OwnerID:  ownerID,
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: 1,
	}

	row := models.CartRowFromEntry(entry, time.Now())
	remoteKey, err := s.cartRepo.Upsert(ctx, &row)
	if err != nil {
		logger.Warnw("cart_upsert_failed", "owner_id", ownerID, "item_id", itemID, "error", err)
		entry.Key = constants.LocalKeyPrefix + uuid.NewString()
		entry.SyncPending = true
		sess.UpsertCartEntry(entry)
		s.enqueueReconcile(ownerID)
		return entry, nil
	}

	entry.Key = remoteKey
	sess.UpsertCartEntry(entry)
	return entry, nil
}

// RemoveFromCart 按 key 删除购物车条目
// 镜像先删，远端删除失败只记日志，重复删除视为成功
func (s *SyncService) RemoveFromCart(ctx context.Context, ownerID, key string) error {
	sess := s.EnsureLoaded(ctx, ownerID)

	removed := sess.RemoveCartEntry(key)
	if !removed {
		return nil
	}
	if models.IsLocalKey(key) {
		return nil
	}
	if err := s.cartRepo.DeleteByID(ctx, key); err != nil {
		logger.Warnw("cart_delete_failed", "owner_id", ownerID, "key", key, "error", err)
	}
	return nil
}
