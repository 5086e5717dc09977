package recipes

import (
	"context"
	"encoding/json"
	"net/http"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddFavorite inserts a recipe reference into the caller's favorites
// set. Adding an already-present id is a no-op.
func AddFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipeID, ok := favoriteIDFromBody(w, r)
	if !ok {
		return
	}

	res, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"favorites": recipeID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	respondWithFavorites(w, userID)
}

// RemoveFavorite pulls a recipe reference from the favorites set.
// Removing an absent id is a no-op, not an error.
func RemoveFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipeID, ok := favoriteIDFromBody(w, r)
	if !ok {
		return
	}

	res, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favorites": recipeID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	respondWithFavorites(w, userID)
}

// GetFavorites returns the caller's favorites resolved to full recipe
// documents.
func GetFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	favorites, err := resolveFavorites(context.TODO(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, favorites)
}

func favoriteIDFromBody(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	var body struct {
		RecipeID string `json:"recipeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RecipeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Recipe ID required")
		return primitive.NilObjectID, false
	}
	recipeID, err := primitive.ObjectIDFromHex(body.RecipeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return primitive.NilObjectID, false
	}
	return recipeID, true
}

func respondWithFavorites(w http.ResponseWriter, userID primitive.ObjectID) {
	favorites, err := resolveFavorites(context.TODO(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"favorites": favorites})
}

// resolveFavorites expands the stored recipe references into full
// documents, preserving the order of the favorites set.
func resolveFavorites(ctx context.Context, userID primitive.ObjectID) ([]models.Recipe, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []models.Recipe{}, nil
	}

	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"_id": bson.M{"$in": user.Favorites}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Recipe
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Recipe, len(found))
	for _, recipe := range found {
		byID[recipe.ID] = recipe
	}

	resolved := make([]models.Recipe, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if recipe, ok := byID[id]; ok {
			resolved = append(resolved, recipe)
		}
	}
	return resolved, nil
}
