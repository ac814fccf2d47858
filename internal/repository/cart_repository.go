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

// CartRepository 购物车数据访问接口
// 每个商品行一个文档，文档 ID 就是会话镜像里的远端 key
type CartRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.CartRow, error)
	Upsert(ctx context.Context, row *models.CartRow) (string, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoCartRepository MongoDB 实现
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection(constants.CollectionCarts)}
}

// ListByOwner 列出用户全部购物车行，按加入时间排序
func (r *MongoCartRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.CartRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]models.CartRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert 以 (owner_id, item_id) 为键写入或合并行，数量做 $inc 累加
// 已存在时合并到既有行而不是再插一行，返回行的远端 key
func (r *MongoCartRepository) Upsert(ctx context.Context, row *models.CartRow) (string, error) {
	now := time.Now()
	filter := bson.M{"owner_id": row.OwnerID, "item_id": row.ItemID}
	update := bson.M{
		"$inc": bson.M{"quantity": row.Quantity},
		"$set": bson.M{
			"name":             row.Name,
			"unit_price_cents": row.UnitPriceCents,
			"image":            row.Image,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{"added_at": now},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", err
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	var existing models.CartRow
	if err := r.collection.FindOne(ctx, filter).Decode(&existing); err != nil {
		return "", err
	}
	return existing.ID.Hex(), nil
}

// UpdateQuantity 修改行数量，行不存在视为成功
func (r *MongoCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	update := bson.M{"$set": bson.M{"quantity": quantity, "updated_at": time.Now()}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

// DeleteByID 删除单行，幂等
func (r *MongoCartRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// DeleteByOwner 清空用户购物车，返回删除行数
func (r *MongoCartRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureIndexes 创建 (owner_id, item_id) 唯一索引
// 唯一约束兜底保证同一商品在同一用户下只有一行
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "item_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
