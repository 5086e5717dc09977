package profile

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"savora/db"
	"savora/models"
	"savora/mq"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// A follow relationship is one document in the followings collection,
// keyed (follower, followee) with a unique index. Each endpoint's
// follower/following view is computed by query, so the edge is never
// half-written.

// Follow creates the caller -> target edge.
func Follow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	callerID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := context.TODO()

	var target models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if targetID == callerID {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot follow yourself")
		return
	}

	edge := models.FollowEdge{
		Follower:  callerID,
		Followee:  targetID,
		CreatedAt: time.Now(),
	}
	if _, err := db.FollowingsCollection.InsertOne(ctx, edge); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Already following this user")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit("user-followed", mq.Index{EntityType: "user", Method: "PUT", EntityId: targetID.Hex(), ItemId: callerID.Hex(), ItemType: "follow"})
	respondWithPair(w, ctx, "You are now following "+target.Name, "userToFollow", targetID, callerID)
}

// Unfollow removes the caller -> target edge. An absent edge is a
// silent no-op.
func Unfollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	callerID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := context.TODO()

	var target models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": targetID}).Decode(&target); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if targetID == callerID {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot unfollow yourself")
		return
	}

	if _, err := db.FollowingsCollection.DeleteOne(ctx, bson.M{"follower": callerID, "followee": targetID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit("user-unfollowed", mq.Index{EntityType: "user", Method: "PUT", EntityId: targetID.Hex(), ItemId: callerID.Hex(), ItemType: "follow"})
	respondWithPair(w, ctx, "You have unfollowed "+target.Name, "userToUnfollow", targetID, callerID)
}

func respondWithPair(w http.ResponseWriter, ctx context.Context, message, targetKey string, targetID, callerID primitive.ObjectID) {
	targetProfile, err := PublicProfile(ctx, targetID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	callerProfile, err := PublicProfile(ctx, callerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":     message,
		targetKey:     targetProfile,
		"currentUser": callerProfile,
	})
}

// PublicProfile builds the credential-free view of a user with both
// edge sets resolved from the followings collection.
func PublicProfile(ctx context.Context, userID primitive.ObjectID) (*models.PublicUser, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID.Hex(), err)
	}

	followers, following, err := followEdges(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.PublicUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		Followers:    followers,
		Following:    following,
	}, nil
}

func followEdges(ctx context.Context, userID primitive.ObjectID) (followers, following []primitive.ObjectID, err error) {
	followers = []primitive.ObjectID{}
	following = []primitive.ObjectID{}

	cursor, err := db.FollowingsCollection.Find(ctx, bson.M{"followee": userID})
	if err != nil {
		return nil, nil, err
	}
	var in []models.FollowEdge
	if err := cursor.All(ctx, &in); err != nil {
		return nil, nil, err
	}
	for _, edge := range in {
		followers = append(followers, edge.Follower)
	}

	cursor, err = db.FollowingsCollection.Find(ctx, bson.M{"follower": userID})
	if err != nil {
		return nil, nil, err
	}
	var out []models.FollowEdge
	if err := cursor.All(ctx, &out); err != nil {
		return nil, nil, err
	}
	for _, edge := range out {
		following = append(following, edge.Followee)
	}

	return followers, following, nil
}
