package service

import (
	"context"
	"time"

	"github.com/kahve-next/internal/catalog"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/models"
)

// Favorites 获取用户收藏列表
func (s *SyncService) Favorites(ctx context.Context, ownerID string) ([]models.FavoriteEntry, error) {
	sess := s.EnsureLoaded(ctx, ownerID)
	return sess.Favorites(), nil
}

// AddFavorite 收藏一件商品，重复收藏拒绝
func (s *SyncService) AddFavorite(ctx context.Context, ownerID string, itemID int) (models.FavoriteEntry, error) {
	item, ok := catalog.ItemByID(itemID)
	if !ok {
		return models.FavoriteEntry{}, ErrItemNotFound
	}
	sess := s.EnsureLoaded(ctx, ownerID)

	if sess.HasFavorite(itemID) {
		return models.FavoriteEntry{}, ErrFavoriteExists
	}

	entry := models.FavoriteEntry{
		OwnerID: ownerID,
		ItemID:  item.ID,
		Name:    item.Name,
		Price:   item.Price,
		Image:   item.Image,
	}

	row := models.FavoriteRowFromEntry(entry, time.Now())
	if err := s.favRepo.Insert(ctx, &row); err != nil {
		logger.Warnw("favorite_insert_failed", "owner_id", ownerID, "item_id", itemID, "error", err)
		entry.SyncPending = true
		s.enqueueReconcile(ownerID)
	}
	sess.AddFavorite(entry)
	return entry, nil
}

// RemoveFavorite 取消收藏
// 远端按 (owner, item) 等值删除，镜像先删，重复删除报未找到
func (s *SyncService) RemoveFavorite(ctx context.Context, ownerID string, itemID int) error {
	sess := s.EnsureLoaded(ctx, ownerID)

	if !sess.RemoveFavorite(itemID) {
		return ErrFavoriteNotFound
	}
	if _, err := s.favRepo.DeleteByOwnerAndItem(ctx, ownerID, itemID); err != nil {
		logger.Warnw("favorite_delete_failed", "owner_id", ownerID, "item_id", itemID, "error", err)
	}
	return nil
}
