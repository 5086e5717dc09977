package profile

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
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

// GetProfile returns the caller's own profile with follow edges
// resolved.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	followers, following, err := followEdges(context.TODO(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, struct {
		models.User
		Followers []primitive.ObjectID `json:"followers"`
		Following []primitive.ObjectID `json:"following"`
	}{user, followers, following})
}

// EditProfile applies a partial update of name, email, bio and
// password. Absent fields are left untouched.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Bio      string `json:"bio"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if email := strings.TrimSpace(body.Email); email != "" {
		updates["email"] = email
	}
	if bio := strings.TrimSpace(body.Bio); bio != "" {
		updates["bio"] = bio
	}
	if body.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		updates["password"] = string(hash)
	}

	if _, err := db.UserCollection.UpdateOne(context.TODO(), bson.M{"_id": userID}, bson.M{"$set": updates}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Email already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	})
}

// GetAllUsers lists every user, credential excluded.
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := context.TODO()
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}
