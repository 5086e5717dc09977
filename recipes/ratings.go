package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// upsertRating replaces any prior entry by the same user and appends
// the new one, keeping at most one rating per rater.
func upsertRating(ratings []models.Rating, entry models.Rating) []models.Rating {
	out := make([]models.Rating, 0, len(ratings)+1)
	for _, r := range ratings {
		if r.UserID != entry.UserID {
			out = append(out, r)
		}
	}
	return append(out, entry)
}

// meanRating is the unweighted mean over all entries, 0 when none
// exist.
func meanRating(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings))
}

// AddRating upserts the caller's rating and recomputes the recipe
// mean in the same write.
func AddRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be 1-5")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	ratings := upsertRating(recipe.Ratings, models.Rating{
		UserID:    userID,
		Value:     body.Rating,
		CreatedAt: time.Now(),
	})
	mean := meanRating(ratings)

	_, err = db.RecipeCollection.UpdateOne(
		context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"ratings":   ratings,
			"rating":    mean,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rating": mean, "ratings": ratings})
}
