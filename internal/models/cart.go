package models

import (
	"strings"
	"time"

	"github.com/kahve-next/internal/constants"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRow 购物车行文档（carts 集合）
// 每个 (owner_id, item_id) 至多一行，金额以分单位整数存储
type CartRow struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID        string             `bson:"owner_id"`
	ItemID         int                `bson:"item_id"`
	Name           string             `bson:"name"`
	UnitPriceCents int64              `bson:"unit_price_cents"`
	Image          string             `bson:"image"`
	Quantity       int                `bson:"quantity"`
	AddedAt        time.Time          `bson:"added_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// CartEntry 会话内购物车镜像条目
// Key 为远端行 ID（hex），或远端写入失败时的 local: 占位键
type CartEntry struct {
	Key         string `json:"key"`
	OwnerID     string `json:"-"`
	ItemID      int    `json:"item_id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
	SyncPending bool   `json:"sync_pending"`
}

// LineTotal 条目小计
func (e CartEntry) LineTotal() Money {
	return e.Price.MulInt(int64(e.Quantity))
}

// IsLocalKey 判断是否为本地占位键
func IsLocalKey(key string) bool {
	return strings.HasPrefix(key, constants.LocalKeyPrefix)
}

// EntryFromCartRow 远端行转会话条目
func EntryFromCartRow(row CartRow) CartEntry {
	return CartEntry{
		Key:      row.ID.Hex(),
		OwnerID:  row.OwnerID,
		ItemID:   row.ItemID,
		Name:     row.Name,
		Price:    MoneyFromCents(row.UnitPriceCents),
		Image:    row.Image,
		Quantity: row.Quantity,
	}
}

// CartRowFromEntry 会话条目转远端行（新插入时 ID 留空）
func CartRowFromEntry(entry CartEntry, now time.Time) CartRow {
	return CartRow{
		OwnerID:        entry.OwnerID,
		ItemID:         entry.ItemID,
		Name:           entry.Name,
		UnitPriceCents: entry.Price.Cents(),
		Image:          entry.Image,
		Quantity:       entry.Quantity,
		AddedAt:        now,
		UpdatedAt:      now,
	}
}
