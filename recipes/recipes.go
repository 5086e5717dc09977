package recipes

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"savora/db"
	"savora/media"
	"savora/models"
	"savora/mq"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	raw := utils.GetUserIDFromContext(r.Context())
	if raw == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// ownerOnly reports whether recipe edit/delete is restricted to the
// creator. Default is the open, wiki-style model.
func ownerOnly() bool {
	return os.Getenv("RECIPE_OWNER_ONLY") == "true"
}

// GetRecipes lists recipes newest-first, with an optional
// case-insensitive title search and result limit.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := context.TODO()
	query := bson.M{}

	if search := r.URL.Query().Get("search"); search != "" {
		query["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	limit := int64(utils.ParseInt(r.URL.Query().Get("limit")))
	cursor, err := db.RecipeCollection.Find(ctx, query, db.OptionsFindLatest(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// GetRecipe returns a single recipe with comment author names
// resolved.
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	attachCommentAuthors(context.TODO(), &recipe)
	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	now := time.Now()
	recipe := models.Recipe{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Ingredients: utils.SplitCSV(r.FormValue("ingredients")),
		Steps:       utils.SplitCSV(r.FormValue("steps")),
		CookingTime: utils.ParseInt(r.FormValue("cookingTime")),
		Servings:    utils.ParseInt(r.FormValue("servings")),
		Comments:    []models.Comment{},
		Ratings:     []models.Rating{},
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.Steps == nil {
		recipe.Steps = []string{}
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		url, err := media.UploadPhoto(file, header, "recipes/photos")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving photo")
			return
		}
		recipe.Photo = url
	}
	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		url, err := media.Upload(file, header, "recipes/videos")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving video")
			return
		}
		recipe.Video = url
	}

	if _, err := db.RecipeCollection.InsertOne(context.TODO(), recipe); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	mq.Emit("recipe-created", mq.Index{EntityType: "recipe", Method: "POST", EntityId: recipe.ID.Hex()})
	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	filter := bson.M{"_id": id}
	if ownerOnly() {
		filter["createdBy"] = userID
	}

	var existing models.Recipe
	if err := db.RecipeCollection.FindOne(context.TODO(), filter).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		updates["title"] = title
	}
	if description := strings.TrimSpace(r.FormValue("description")); description != "" {
		updates["description"] = description
	}
	if ingredients := r.FormValue("ingredients"); ingredients != "" {
		updates["ingredients"] = utils.SplitCSV(ingredients)
	}
	if steps := r.FormValue("steps"); steps != "" {
		updates["steps"] = utils.SplitCSV(steps)
	}
	if cookingTime := r.FormValue("cookingTime"); cookingTime != "" {
		updates["cookingTime"] = utils.ParseInt(cookingTime)
	}
	if servings := r.FormValue("servings"); servings != "" {
		updates["servings"] = utils.ParseInt(servings)
	}

	// A newly uploaded file replaces the stored URL; an absent field
	// leaves the existing one untouched.
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		url, err := media.UploadPhoto(file, header, "recipes/photos")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving photo")
			return
		}
		updates["photo"] = url
	}
	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		url, err := media.Upload(file, header, "recipes/videos")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving video")
			return
		}
		updates["video"] = url
	}

	// The write carries the same ownership filter as the precheck, so
	// a racing owner change cannot slip a non-owner's update through.
	res, err := db.RecipeCollection.UpdateOne(context.TODO(), filter, bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	var updated models.Recipe
	if err := db.RecipeCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	mq.Emit("recipe-updated", mq.Index{EntityType: "recipe", Method: "PUT", EntityId: id.Hex()})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	filter := bson.M{"_id": id}
	if ownerOnly() {
		filter["createdBy"] = userID
	}

	res, err := db.RecipeCollection.DeleteOne(context.TODO(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	mq.Emit("recipe-deleted", mq.Index{EntityType: "recipe", Method: "DELETE", EntityId: id.Hex()})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Recipe deleted"})
}
