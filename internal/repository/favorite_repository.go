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

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.FavoriteRow, error)
	Insert(ctx context.Context, row *models.FavoriteRow) error
	DeleteByOwnerAndItem(ctx context.Context, ownerID string, itemID int) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoFavoriteRepository MongoDB 实现
type MongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{collection: db.Collection(constants.CollectionFavorites)}
}

// ListByOwner 列出用户全部收藏，按加入时间排序
func (r *MongoFavoriteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.FavoriteRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]models.FavoriteRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert 写入收藏行
func (r *MongoFavoriteRepository) Insert(ctx context.Context, row *models.FavoriteRow) error {
	if row.ID.IsZero() {
		row.ID = primitive.NewObjectID()
	}
	if row.AddedAt.IsZero() {
		row.AddedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, row)
	return err
}

// DeleteByOwnerAndItem 按 (owner, item) 删除收藏，返回删除行数
func (r *MongoFavoriteRepository) DeleteByOwnerAndItem(ctx context.Context, ownerID string, itemID int) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"owner_id": ownerID, "item_id": itemID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureIndexes 创建 (owner, item) 唯一索引，数据库层兜底去重
func (r *MongoFavoriteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "item_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
