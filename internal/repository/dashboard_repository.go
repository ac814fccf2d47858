package repository

import (
	"context"
	"time"

	"github.com/kahve-next/internal/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DashboardRepository 销售统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(ctx context.Context) (DashboardOverviewRow, error)
	ListBaskets(ctx context.Context, limit int64) ([]DashboardBasketRow, error)
	GetTopItems(ctx context.Context, limit int64) ([]DashboardItemRankingRow, error)
}

// DashboardOverviewRow 总览原始统计结果
type DashboardOverviewRow struct {
	RevenueCents int64 `bson:"revenue_cents"`
	LinesTotal   int64 `bson:"lines_total"`
	UnitsTotal   int64 `bson:"units_total"`
	BasketCount  int64 `bson:"basket_count"`
	BuyerCount   int64 `bson:"buyer_count"`
}

// DashboardBasketLine 篮子内单行
type DashboardBasketLine struct {
	ItemID         int    `bson:"item_id"`
	Name           string `bson:"name"`
	UnitPriceCents int64  `bson:"unit_price_cents"`
	Quantity       int    `bson:"quantity"`
}

// DashboardBasketRow 按篮子分组后的销售明细
type DashboardBasketRow struct {
	BasketID   string                `bson:"_id"`
	OwnerID    string                `bson:"owner_id"`
	Lines      []DashboardBasketLine `bson:"lines"`
	TotalCents int64                 `bson:"total_cents"`
	SoldAt     time.Time             `bson:"sold_at"`
}

// DashboardItemRankingRow 商品销量排行原始行
type DashboardItemRankingRow struct {
	ItemID       int    `bson:"_id"`
	Name         string `bson:"name"`
	Units        int64  `bson:"units"`
	RevenueCents int64  `bson:"revenue_cents"`
}

// MongoDashboardRepository MongoDB 聚合实现
type MongoDashboardRepository struct {
	collection *mongo.Collection
}

// NewDashboardRepository 创建统计仓库
func NewDashboardRepository(db *mongo.Database) *MongoDashboardRepository {
	return &MongoDashboardRepository{collection: db.Collection(constants.CollectionSales)}
}

func lineTotalExpr() bson.M {
	return bson.M{"$multiply": bson.A{"$unit_price_cents", "$quantity"}}
}

// GetOverview 获取总览统计
func (r *MongoDashboardRepository) GetOverview(ctx context.Context) (DashboardOverviewRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"revenue_cents": bson.M{"$sum": lineTotalExpr()},
			"lines_total":   bson.M{"$sum": 1},
			"units_total":   bson.M{"$sum": "$quantity"},
			"baskets":       bson.M{"$addToSet": "$basket_id"},
			"buyers":        bson.M{"$addToSet": "$owner_id"},
		}}},
		{{Key: "$project", Value: bson.M{
			"revenue_cents": 1,
			"lines_total":   1,
			"units_total":   1,
			"basket_count":  bson.M{"$size": "$baskets"},
			"buyer_count":   bson.M{"$size": "$buyers"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return DashboardOverviewRow{}, err
	}
	defer cursor.Close(ctx)

	var rows []DashboardOverviewRow
	if err := cursor.All(ctx, &rows); err != nil {
		return DashboardOverviewRow{}, err
	}
	if len(rows) == 0 {
		return DashboardOverviewRow{}, nil
	}
	return rows[0], nil
}

// ListBaskets 按篮子分组的销售明细，最近的在前
func (r *MongoDashboardRepository) ListBaskets(ctx context.Context, limit int64) ([]DashboardBasketRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$basket_id",
			"owner_id": bson.M{"$first": "$owner_id"},
			"lines": bson.M{"$push": bson.M{
				"item_id":          "$item_id",
				"name":             "$name",
				"unit_price_cents": "$unit_price_cents",
				"quantity":         "$quantity",
			}},
			"total_cents": bson.M{"$sum": lineTotalExpr()},
			"sold_at":     bson.M{"$max": "$timestamp"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "sold_at", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]DashboardBasketRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopItems 商品销量排行
func (r *MongoDashboardRepository) GetTopItems(ctx context.Context, limit int64) ([]DashboardItemRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$item_id",
			"name":          bson.M{"$first": "$name"},
			"units":         bson.M{"$sum": "$quantity"},
			"revenue_cents": bson.M{"$sum": lineTotalExpr()},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "units", Value: -1}, {Key: "revenue_cents", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]DashboardItemRankingRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
