package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestOptionsFindLatestSortsByCreationTime(t *testing.T) {
	opts := OptionsFindLatest(0)

	require.NotNil(t, opts.Sort)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestOptionsFindLatestAppliesPositiveLimit(t *testing.T) {
	opts := OptionsFindLatest(25)

	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(25), *opts.Limit)
}

func TestOptionsFindLatestIgnoresNonPositiveLimit(t *testing.T) {
	assert.Nil(t, OptionsFindLatest(0).Limit)
	assert.Nil(t, OptionsFindLatest(-3).Limit)
}
