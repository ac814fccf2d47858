package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile 用户档案文档（users 集合）
type UserProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	AvatarURL    string             `bson:"avatar_url" json:"avatar_url"`
	Status       string             `bson:"status" json:"status"`
	TokenVersion uint64             `bson:"token_version" json:"-"`
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// OwnerID 返回作为其它集合 owner_id 的标识
func (u *UserProfile) OwnerID() string {
	if u == nil {
		return ""
	}
	return u.ID.Hex()
}
