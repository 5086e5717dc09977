package recipes

import (
	"bytes"
	"context"
	"mime/multipart"
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

func authedRequestAs(t *testing.T, userID primitive.ObjectID, method, target string, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	r := httptest.NewRequest(method, target, body)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID.Hex())
	return r.WithContext(ctx)
}

func authedRequest(t *testing.T, method, target string, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	return authedRequestAs(t, primitive.NewObjectID(), method, target, body, contentType)
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	body, contentType := multipartForm(t, map[string]string{"title": "Soup"})
	r := httptest.NewRequest(http.MethodPost, "/api/recipes", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	CreateRecipe(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeRejectsBlankTitle(t *testing.T) {
	body, contentType := multipartForm(t, map[string]string{
		"title":       "   ",
		"description": "Hot",
	})
	w := httptest.NewRecorder()

	CreateRecipe(w, authedRequest(t, http.MethodPost, "/api/recipes", body, contentType), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title and description are required")
}

func TestCreateRecipeRejectsMissingDescription(t *testing.T) {
	body, contentType := multipartForm(t, map[string]string{"title": "Soup"})
	w := httptest.NewRecorder()

	CreateRecipe(w, authedRequest(t, http.MethodPost, "/api/recipes", body, contentType), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeRejectsMalformedID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/recipes/recipe/nope", nil)
	w := httptest.NewRecorder()

	GetRecipe(w, r, httprouter.Params{{Key: "id", Value: "nope"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipesSortsNewestFirst(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sort and limit reach the query", func(mt *mtest.T) {
		db.RecipeCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "recipedb.recipes", mtest.FirstBatch))

		r := httptest.NewRequest(http.MethodGet, "/api/recipes?limit=5", nil)
		w := httptest.NewRecorder()
		GetRecipes(w, r, nil)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.JSONEq(mt, "[]", w.Body.String())

		evt := mt.GetStartedEvent()
		require.Equal(mt, "find", evt.CommandName)

		sort, err := evt.Command.LookupErr("sort", "createdAt")
		require.NoError(mt, err)
		assert.Equal(mt, int32(-1), sort.Int32())

		limit, err := evt.Command.LookupErr("limit")
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), limit.Int64())
	})
}

func TestUpdateRecipeScopesWriteToOwner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner filter reaches the write", func(mt *mtest.T) {
		mt.Setenv("RECIPE_OWNER_ONLY", "true")
		db.RecipeCollection = mt.Coll

		owner := primitive.NewObjectID()
		recipeID := primitive.NewObjectID()
		recipeDoc := bson.D{
			{Key: "_id", Value: recipeID},
			{Key: "title", Value: "Soup"},
			{Key: "description", Value: "Hot"},
			{Key: "createdBy", Value: owner},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "recipedb.recipes", mtest.FirstBatch, recipeDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, "recipedb.recipes", mtest.FirstBatch, recipeDoc),
		)

		body, contentType := multipartForm(mt.T, map[string]string{"title": "Stew"})
		r := authedRequestAs(mt.T, owner, http.MethodPut, "/api/recipes/recipe/"+recipeID.Hex(), body, contentType)
		w := httptest.NewRecorder()
		UpdateRecipe(w, r, httprouter.Params{{Key: "id", Value: recipeID.Hex()}})

		require.Equal(mt, http.StatusOK, w.Code)

		findEvt := mt.GetStartedEvent()
		require.Equal(mt, "find", findEvt.CommandName)

		updateEvt := mt.GetStartedEvent()
		require.Equal(mt, "update", updateEvt.CommandName)

		createdBy, err := updateEvt.Command.LookupErr("updates", "0", "q", "createdBy")
		require.NoError(mt, err, "update must carry the ownership filter")
		got, ok := createdBy.ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, owner, got)
	})

	mt.Run("missed write reads as not found", func(mt *mtest.T) {
		mt.Setenv("RECIPE_OWNER_ONLY", "true")
		db.RecipeCollection = mt.Coll

		owner := primitive.NewObjectID()
		recipeID := primitive.NewObjectID()
		recipeDoc := bson.D{
			{Key: "_id", Value: recipeID},
			{Key: "title", Value: "Soup"},
			{Key: "description", Value: "Hot"},
			{Key: "createdBy", Value: owner},
		}

		// The precheck matches, then ownership changes before the
		// write lands: the update matches nothing.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "recipedb.recipes", mtest.FirstBatch, recipeDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		body, contentType := multipartForm(mt.T, map[string]string{"title": "Stew"})
		r := authedRequestAs(mt.T, owner, http.MethodPut, "/api/recipes/recipe/"+recipeID.Hex(), body, contentType)
		w := httptest.NewRecorder()
		UpdateRecipe(w, r, httprouter.Params{{Key: "id", Value: recipeID.Hex()}})

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Recipe not found")
	})
}
