package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealPlan struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title"         json:"title"`
	Recipes   []primitive.ObjectID `bson:"recipes"       json:"recipes"`
	CreatedBy primitive.ObjectID   `bson:"createdBy"     json:"createdBy"`
	CreatedAt time.Time            `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"     json:"updatedAt"`
}

// PopulatedMealPlan is the read-side shape with recipe references
// expanded to full documents.
type PopulatedMealPlan struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Recipes   []Recipe           `json:"recipes"`
	CreatedBy primitive.ObjectID `json:"createdBy"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
