package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddComment appends a comment to a recipe. Comments are append-only:
// there is no edit or delete path.
func AddComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	// An identity without a display name would corrupt attribution
	// downstream, so it is treated as unauthorized.
	var author models.User
	err = db.UserCollection.FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&author)
	if err != nil || strings.TrimSpace(author.Name) == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment text required")
		return
	}

	comment := models.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	res, err := db.RecipeCollection.UpdateOne(
		context.TODO(),
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	attachCommentAuthors(context.TODO(), &recipe)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"comments": recipe.Comments})
}

// attachCommentAuthors resolves comment author names from the users
// collection. Comments store a stable user reference, so a rename
// never orphans past attribution.
func attachCommentAuthors(ctx context.Context, recipe *models.Recipe) {
	if len(recipe.Comments) == 0 {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(recipe.Comments))
	seen := make(map[primitive.ObjectID]bool)
	for _, c := range recipe.Comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := db.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return
	}
	defer cursor.Close(ctx)

	names := make(map[primitive.ObjectID]string)
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	for i := range recipe.Comments {
		recipe.Comments[i].User = names[recipe.Comments[i].UserID]
	}
}
