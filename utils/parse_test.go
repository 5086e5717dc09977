package utils

import (
	"context"
	"testing"

	"savora/globals"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"water", "salt"}, SplitCSV("water, salt"))
	assert.Equal(t, []string{"a", "b"}, SplitCSV(" a ,, b , "))
	assert.Nil(t, SplitCSV(""))
	assert.Nil(t, SplitCSV(" , ,"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 45, ParseInt(" 45 "))
	assert.Equal(t, 0, ParseInt("not a number"))
	assert.Equal(t, 0, ParseInt(""))
}

func TestGetUserIDFromContext(t *testing.T) {
	assert.Equal(t, "", GetUserIDFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), globals.UserIDKey, "abc123")
	assert.Equal(t, "abc123", GetUserIDFromContext(ctx))
}
