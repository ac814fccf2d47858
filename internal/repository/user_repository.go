package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	Create(ctx context.Context, user *models.UserProfile) error
	Update(ctx context.Context, user *models.UserProfile) error
	EnsureIndexes(ctx context.Context) error
}

// MongoUserRepository MongoDB 实现
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(constants.CollectionUsers)}
}

// GetByEmail 根据邮箱获取用户，未找到返回 nil
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户，未找到返回 nil
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var user models.UserProfile
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *MongoUserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// Update 更新用户
func (r *MongoUserRepository) Update(ctx context.Context, user *models.UserProfile) error {
	user.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// EnsureIndexes 创建唯一邮箱索引
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
