package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	RecipeCollection     *mongo.Collection
	MealPlanCollection   *mongo.Collection
	FollowingsCollection *mongo.Collection

	Client *mongo.Client
)

// Connect establishes the MongoDB connection and wires up the
// package-level collection handles.
func Connect(ctx context.Context, uri string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}

	Client = client

	database := client.Database("recipedb")
	UserCollection = database.Collection("users")
	RecipeCollection = database.Collection("recipes")
	MealPlanCollection = database.Collection("mealplans")
	FollowingsCollection = database.Collection("followings")

	return nil
}

// EnsureIndexes creates the indexes the handlers rely on: unique user
// emails and one document per directed follow edge.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = FollowingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "follower", Value: 1},
			{Key: "followee", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = MealPlanCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdBy", Value: 1}},
	})
	return err
}

// OptionsFindLatest sorts newest-first by creation time. A limit of
// zero or less means no limit.
func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}
