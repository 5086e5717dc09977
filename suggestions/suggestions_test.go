package suggestions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestFollowersRequiresAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/suggestions/follow", nil)
	w := httptest.NewRecorder()

	SuggestFollowers(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
