package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"          json:"id"`
	Name         string               `bson:"name"                   json:"name"`
	Email        string               `bson:"email"                  json:"email"`
	Password     string               `bson:"password"               json:"-"`
	Bio          string               `bson:"bio,omitempty"          json:"bio,omitempty"`
	ProfileImage string               `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Favorites    []primitive.ObjectID `bson:"favorites"              json:"favorites"`
	CreatedAt    time.Time            `bson:"createdAt"              json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"              json:"updatedAt"`
}

// PublicUser is the credential-free view returned by profile and
// follow endpoints. Followers and following are computed from the
// followings collection, not stored on the user document.
type PublicUser struct {
	ID           primitive.ObjectID   `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Bio          string               `json:"bio,omitempty"`
	ProfileImage string               `json:"profileImage,omitempty"`
	Followers    []primitive.ObjectID `json:"followers"`
	Following    []primitive.ObjectID `json:"following"`
}

// FollowEdge is one directed follow relationship. A single document
// per edge keeps both endpoints' views consistent without a dual
// write.
type FollowEdge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Follower  primitive.ObjectID `bson:"follower"      json:"follower"`
	Followee  primitive.ObjectID `bson:"followee"      json:"followee"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
