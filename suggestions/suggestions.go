package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"savora/db"
	"savora/models"
	"savora/rdx"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserSuggest struct {
	ID   primitive.ObjectID `bson:"_id"           json:"id"`
	Name string             `bson:"name"          json:"name"`
	Bio  string             `bson:"bio,omitempty" json:"bio,omitempty"`
}

const cacheTTL = 2 * time.Minute

// SuggestFollowers returns users the caller does not follow yet,
// paginated. Pages are cached briefly in Redis.
func SuggestFollowers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	raw := utils.GetUserIDFromContext(r.Context())
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	ctx := context.TODO()
	cacheKey := fmt.Sprintf("suggestions:follow:%s:%d:%d", raw, page, limit)

	if rdx.Conn != nil {
		if val, err := rdx.Conn.Get(ctx, cacheKey).Result(); err == nil && val != "" {
			var cached []UserSuggest
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				utils.RespondWithJSON(w, http.StatusOK, cached)
				return
			}
		}
	}

	// Everyone the caller already follows, plus the caller, is
	// excluded.
	cursor, err := db.FollowingsCollection.Find(ctx, bson.M{"follower": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}
	var edges []models.FollowEdge
	if err := cursor.All(ctx, &edges); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}

	excluded := make([]primitive.ObjectID, 0, len(edges)+1)
	for _, edge := range edges {
		excluded = append(excluded, edge.Followee)
	}
	excluded = append(excluded, userID)

	filter := bson.M{"_id": bson.M{"$nin": excluded}}
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"name": 1, "bio": 1})

	cursor, err = db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	defer cursor.Close(ctx)

	var suggested []UserSuggest
	if err := cursor.All(ctx, &suggested); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	if suggested == nil {
		suggested = []UserSuggest{}
	}

	if rdx.Conn != nil {
		if jsonBytes, err := json.Marshal(suggested); err == nil {
			_ = rdx.Conn.Set(ctx, cacheKey, jsonBytes, cacheTTL).Err()
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, suggested)
}
