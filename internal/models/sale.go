package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleRow 销售记录文档（sales 集合）
// 每个结算行一条记录，basket_id 把同一次结算的行关联起来
type SaleRow struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	BasketID       string             `bson:"basket_id"`
	OwnerID        string             `bson:"owner_id"`
	ItemID         int                `bson:"item_id"`
	Name           string             `bson:"name"`
	UnitPriceCents int64              `bson:"unit_price_cents"`
	Quantity       int                `bson:"quantity"`
	Timestamp      time.Time          `bson:"timestamp"`
}

// LineTotal 行小计
func (s SaleRow) LineTotal() Money {
	return MoneyFromCents(s.UnitPriceCents).MulInt(int64(s.Quantity))
}

// SaleRowFromCartEntry 结算时由购物车条目生成销售行
func SaleRowFromCartEntry(entry CartEntry, basketID string, now time.Time) SaleRow {
	return SaleRow{
		BasketID:       basketID,
		OwnerID:        entry.OwnerID,
		ItemID:         entry.ItemID,
		Name:           entry.Name,
		UnitPriceCents: entry.Price.Cents(),
		Quantity:       entry.Quantity,
		Timestamp:      now,
	}
}
