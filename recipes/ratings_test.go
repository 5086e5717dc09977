package recipes

import (
	"testing"
	"time"

	"savora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertRatingKeepsOneEntryPerUser(t *testing.T) {
	user := primitive.NewObjectID()

	var ratings []models.Rating
	for _, value := range []int{1, 3, 2, 5} {
		ratings = upsertRating(ratings, models.Rating{
			UserID:    user,
			Value:     value,
			CreatedAt: time.Now(),
		})
	}

	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Value)
	assert.Equal(t, user, ratings[0].UserID)
}

func TestUpsertRatingDoesNotTouchOtherRaters(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	ratings := upsertRating(nil, models.Rating{UserID: alice, Value: 2})
	ratings = upsertRating(ratings, models.Rating{UserID: bob, Value: 4})
	ratings = upsertRating(ratings, models.Rating{UserID: alice, Value: 3})

	require.Len(t, ratings, 2)
	byUser := map[primitive.ObjectID]int{}
	for _, r := range ratings {
		byUser[r.UserID] = r.Value
	}
	assert.Equal(t, 3, byUser[alice])
	assert.Equal(t, 4, byUser[bob])
}

func TestMeanRating(t *testing.T) {
	assert.Equal(t, 0.0, meanRating(nil))

	ratings := []models.Rating{
		{UserID: primitive.NewObjectID(), Value: 2},
		{UserID: primitive.NewObjectID(), Value: 5},
	}
	assert.InDelta(t, 3.5, meanRating(ratings), 1e-9)
}

func TestRerateOverwritesAndMeanFollows(t *testing.T) {
	user := primitive.NewObjectID()

	ratings := upsertRating(nil, models.Rating{UserID: user, Value: 1})
	ratings = upsertRating(ratings, models.Rating{UserID: user, Value: 5})

	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Value)
	assert.Equal(t, 5.0, meanRating(ratings))
}
