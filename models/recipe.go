package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	UserID    primitive.ObjectID `bson:"userId"    json:"userId"`
	User      string             `bson:"-"         json:"user,omitempty"`
	Text      string             `bson:"comment"   json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Rating struct {
	UserID    primitive.ObjectID `bson:"userId"    json:"userId"`
	Value     int                `bson:"rating"    json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	Title       string             `bson:"title"                 json:"title"`
	Description string             `bson:"description"           json:"description"`
	Ingredients []string           `bson:"ingredients"           json:"ingredients"`
	Steps       []string           `bson:"steps"                 json:"steps"`
	CookingTime int                `bson:"cookingTime,omitempty" json:"cookingTime,omitempty"`
	Servings    int                `bson:"servings,omitempty"    json:"servings,omitempty"`
	Photo       string             `bson:"photo,omitempty"       json:"photo,omitempty"`
	Video       string             `bson:"video,omitempty"       json:"video,omitempty"`
	Comments    []Comment          `bson:"comments"              json:"comments"`
	Ratings     []Rating           `bson:"ratings"               json:"ratings"`
	Rating      float64            `bson:"rating"                json:"rating"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty"   json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"             json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"             json:"updatedAt"`
}
