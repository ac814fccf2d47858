package repository

import (
	"context"
	"time"

	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaleRepository 销售记录数据访问接口
type SaleRepository interface {
	Insert(ctx context.Context, row *models.SaleRow) error
	ListRecent(ctx context.Context, limit int64) ([]models.SaleRow, error)
	ListByBasket(ctx context.Context, basketID string) ([]models.SaleRow, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoSaleRepository MongoDB 实现
type MongoSaleRepository struct {
	collection *mongo.Collection
}

// NewSaleRepository 创建销售记录仓库
func NewSaleRepository(db *mongo.Database) *MongoSaleRepository {
	return &MongoSaleRepository{collection: db.Collection(constants.CollectionSales)}
}

// Insert 写入一条销售行
func (r *MongoSaleRepository) Insert(ctx context.Context, row *models.SaleRow) error {
	if row.ID.IsZero() {
		row.ID = primitive.NewObjectID()
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, row)
	return err
}

// ListRecent 最近销售行，时间倒序
func (r *MongoSaleRepository) ListRecent(ctx context.Context, limit int64) ([]models.SaleRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]models.SaleRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByBasket 指定篮子的全部销售行
func (r *MongoSaleRepository) ListByBasket(ctx context.Context, basketID string) ([]models.SaleRow, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"basket_id": basketID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]models.SaleRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// EnsureIndexes 创建篮子与时间索引
func (r *MongoSaleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "basket_id", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}
