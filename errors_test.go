package hermod

import (
	"net/http"
	"testing"

	"github.com/monzo/terrors"
	"github.com/stretchr/testify/assert"
)

func TestIsInvalidArgument(t *testing.T) {
	t.Parallel()

	assert.True(t, IsInvalidArgument(errInvalidArgument("verb", "unknown verb")))
	assert.False(t, IsInvalidArgument(terrors.InternalService("boom", "boom", nil)))
	assert.False(t, IsInvalidArgument(terrors.BadRequest("other", "other bad request", nil)))
	assert.False(t, IsInvalidArgument(nil))
}

func TestStatus2TerrCode(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		http.StatusBadRequest:          terrors.ErrBadRequest,
		http.StatusUnauthorized:        terrors.ErrUnauthorized,
		http.StatusForbidden:           terrors.ErrForbidden,
		http.StatusNotFound:            terrors.ErrNotFound,
		http.StatusTooManyRequests:     terrors.ErrRateLimited,
		http.StatusGatewayTimeout:      terrors.ErrTimeout,
		http.StatusInternalServerError: terrors.ErrInternalService,
		http.StatusTeapot:              terrors.ErrInternalService, // unmapped statuses
	}
	for status, code := range cases {
		assert.Equal(t, code, status2TerrCode(status), "status %d", status)
	}
}
