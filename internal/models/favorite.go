package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemSnapshot 收藏时的商品快照
type ItemSnapshot struct {
	ItemID         int    `bson:"item_id" json:"item_id"`
	Name           string `bson:"name" json:"name"`
	UnitPriceCents int64  `bson:"unit_price_cents" json:"-"`
	Image          string `bson:"image" json:"image"`
}

// FavoriteRow 收藏行文档（favorites 集合）
// (owner_id, item_id) 唯一，无数量语义
type FavoriteRow struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID string             `bson:"owner_id"`
	ItemID  int                `bson:"item_id"`
	Item    ItemSnapshot       `bson:"item"`
	AddedAt time.Time          `bson:"added_at"`
}

// FavoriteEntry 会话内收藏镜像条目
type FavoriteEntry struct {
	OwnerID     string `json:"-"`
	ItemID      int    `json:"item_id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	SyncPending bool   `json:"sync_pending"`
}

// EntryFromFavoriteRow 远端行转会话条目
func EntryFromFavoriteRow(row FavoriteRow) FavoriteEntry {
	return FavoriteEntry{
		OwnerID: row.OwnerID,
		ItemID:  row.ItemID,
		Name:    row.Item.Name,
		Price:   MoneyFromCents(row.Item.UnitPriceCents),
		Image:   row.Item.Image,
	}
}

// FavoriteRowFromEntry 会话条目转远端行
func FavoriteRowFromEntry(entry FavoriteEntry, now time.Time) FavoriteRow {
	return FavoriteRow{
		OwnerID: entry.OwnerID,
		ItemID:  entry.ItemID,
		Item: ItemSnapshot{
			ItemID:         entry.ItemID,
			Name:           entry.Name,
			UnitPriceCents: entry.Price.Cents(),
			Image:          entry.Image,
		},
		AddedAt: now,
	}
}
