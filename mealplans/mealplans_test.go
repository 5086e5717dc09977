package mealplans

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"savora/globals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authed(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, primitive.NewObjectID().Hex())
	return r.WithContext(ctx)
}

func TestParseRecipeIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids, ok := parseRecipeIDs([]string{a.Hex(), b.Hex()})
	require.True(t, ok)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)

	_, ok = parseRecipeIDs([]string{a.Hex(), "bogus"})
	assert.False(t, ok)

	ids, ok = parseRecipeIDs(nil)
	require.True(t, ok)
	assert.Empty(t, ids)
}

func TestCreateMealPlanRequiresAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/mealplans", strings.NewReader(`{"title":"Week 1","recipes":[]}`))
	w := httptest.NewRecorder()

	CreateMealPlan(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateMealPlanRequiresTitleAndRecipes(t *testing.T) {
	cases := []string{
		`{"recipes":[]}`,
		`{"title":"  "}`,
		`{"title":"Week 1"}`,
	}
	for _, body := range cases {
		r := authed(httptest.NewRequest(http.MethodPost, "/api/mealplans", strings.NewReader(body)))
		w := httptest.NewRecorder()

		CreateMealPlan(w, r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestCreateMealPlanRejectsMalformedRecipeID(t *testing.T) {
	r := authed(httptest.NewRequest(http.MethodPost, "/api/mealplans", strings.NewReader(`{"title":"Week 1","recipes":["nope"]}`)))
	w := httptest.NewRecorder()

	CreateMealPlan(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid recipe ID")
}
