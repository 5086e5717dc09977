package mealplans

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
)

// Every lookup filters on (id, createdBy): a plan that exists but
// belongs to someone else reads as NotFound, never Forbidden.

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

type payload struct {
	Title   string   `json:"title"`
	Recipes []string `json:"recipes"`
}

func parseRecipeIDs(raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func GetMealPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := context.TODO()
	cursor, err := db.MealPlanCollection.Find(ctx, bson.M{"createdBy": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var plans []models.MealPlan
	if err := cursor.All(ctx, &plans); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	populated := make([]models.PopulatedMealPlan, 0, len(plans))
	for _, plan := range plans {
		p, err := populate(ctx, plan)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		populated = append(populated, p)
	}

	utils.RespondWithJSON(w, http.StatusOK, populated)
}

func GetMealPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid meal plan ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := context.TODO()
	var plan models.MealPlan
	if err := db.MealPlanCollection.FindOne(ctx, bson.M{"_id": id, "createdBy": userID}).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Meal plan not found")
		return
	}

	populated, err := populate(ctx, plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, populated)
}

func CreateMealPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body payload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Title) == "" || body.Recipes == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and recipes are required")
		return
	}

	recipeIDs, ok := parseRecipeIDs(body.Recipes)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	now := time.Now()
	plan := models.MealPlan{
		ID:        primitive.NewObjectID(),
		Title:     strings.TrimSpace(body.Title),
		Recipes:   recipeIDs,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.MealPlanCollection.InsertOne(context.TODO(), plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, plan)
}

func UpdateMealPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid meal plan ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body payload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if title := strings.TrimSpace(body.Title); title != "" {
		updates["title"] = title
	}
	if body.Recipes != nil {
		recipeIDs, ok := parseRecipeIDs(body.Recipes)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
			return
		}
		updates["recipes"] = recipeIDs
	}

	res, err := db.MealPlanCollection.UpdateOne(
		context.TODO(),
		bson.M{"_id": id, "createdBy": userID},
		bson.M{"$set": updates},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Meal plan not found")
		return
	}

	var plan models.MealPlan
	if err := db.MealPlanCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

func DeleteMealPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid meal plan ID")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	res, err := db.MealPlanCollection.DeleteOne(context.TODO(), bson.M{"_id": id, "createdBy": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Meal plan not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Meal plan removed"})
}

// populate expands recipe references to full documents, keeping the
// plan's recipe order.
func populate(ctx context.Context, plan models.MealPlan) (models.PopulatedMealPlan, error) {
	populated := models.PopulatedMealPlan{
		ID:        plan.ID,
		Title:     plan.Title,
		Recipes:   []models.Recipe{},
		CreatedBy: plan.CreatedBy,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
	if len(plan.Recipes) == 0 {
		return populated, nil
	}

	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"_id": bson.M{"$in": plan.Recipes}})
	if err != nil {
		return populated, err
	}
	defer cursor.Close(ctx)

	var found []models.Recipe
	if err := cursor.All(ctx, &found); err != nil {
		return populated, err
	}

	byID := make(map[primitive.ObjectID]models.Recipe, len(found))
	for _, recipe := range found {
		byID[recipe.ID] = recipe
	}
	for _, id := range plan.Recipes {
		if recipe, ok := byID[id]; ok {
			populated.Recipes = append(populated.Recipes, recipe)
		}
	}

	return populated, nil
}
