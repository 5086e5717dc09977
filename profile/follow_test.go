package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"savora/db"
	"savora/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func followRequest(t *testing.T, callerID primitive.ObjectID, method string, targetID primitive.ObjectID) (*http.Request, httprouter.Params) {
	t.Helper()
	r := httptest.NewRequest(method, "/api/follows/"+targetID.Hex(), nil)
	ctx := context.WithValue(r.Context(), globals.UserIDKey, callerID.Hex())
	return r.WithContext(ctx), httprouter.Params{{Key: "id", Value: targetID.Hex()}}
}

func TestFollowRejectsMalformedTargetID(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/api/follows/nope", nil)
	w := httptest.NewRecorder()

	Follow(w, r, httprouter.Params{{Key: "id", Value: "nope"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowRequiresAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/api/follows/65b1f0c4a1b2c3d4e5f60718", nil)
	w := httptest.NewRecorder()

	Follow(w, r, httprouter.Params{{Key: "id", Value: "65b1f0c4a1b2c3d4e5f60718"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnfollowRejectsMalformedTargetID(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/api/follows/nope", nil)
	w := httptest.NewRecorder()

	Unfollow(w, r, httprouter.Params{{Key: "id", Value: "nope"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowDuplicateEdgeConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second follow of the same user is a conflict", func(mt *mtest.T) {
		db.UserCollection = mt.Coll
		db.FollowingsCollection = mt.Coll

		callerID := primitive.NewObjectID()
		targetID := primitive.NewObjectID()

		// The unique (follower, followee) index rejects the second
		// insert with a duplicate-key write error.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "recipedb.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: targetID},
				{Key: "name", Value: "casey"},
			}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: recipedb.followings",
			}),
		)

		r, ps := followRequest(mt.T, callerID, http.MethodPut, targetID)
		w := httptest.NewRecorder()
		Follow(w, r, ps)

		assert.Equal(mt, http.StatusConflict, w.Code)
		assert.Contains(mt, w.Body.String(), "Already following this user")
	})
}

func TestUnfollowAbsentEdgeIsNoOp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("removing a missing edge still succeeds", func(mt *mtest.T) {
		db.UserCollection = mt.Coll
		db.FollowingsCollection = mt.Coll

		callerID := primitive.NewObjectID()
		targetID := primitive.NewObjectID()

		targetDoc := bson.D{{Key: "_id", Value: targetID}, {Key: "name", Value: "casey"}}
		callerDoc := bson.D{{Key: "_id", Value: callerID}, {Key: "name", Value: "riley"}}
		noEdges := func() bson.D {
			return mtest.CreateCursorResponse(0, "recipedb.followings", mtest.FirstBatch)
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "recipedb.users", mtest.FirstBatch, targetDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			// Both sides of the response pair rebuild their profiles.
			mtest.CreateCursorResponse(0, "recipedb.users", mtest.FirstBatch, targetDoc),
			noEdges(),
			noEdges(),
			mtest.CreateCursorResponse(0, "recipedb.users", mtest.FirstBatch, callerDoc),
			noEdges(),
			noEdges(),
		)

		r, ps := followRequest(mt.T, callerID, http.MethodDelete, targetID)
		w := httptest.NewRecorder()
		Unfollow(w, r, ps)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "You have unfollowed casey")
	})
}

func TestFollowRejectsSelfFollow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("following yourself is rejected", func(mt *mtest.T) {
		db.UserCollection = mt.Coll

		callerID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "recipedb.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: callerID},
			{Key: "name", Value: "casey"},
		}))

		r, ps := followRequest(mt.T, callerID, http.MethodPut, callerID)
		w := httptest.NewRecorder()
		Follow(w, r, ps)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "You cannot follow yourself")
	})
}
