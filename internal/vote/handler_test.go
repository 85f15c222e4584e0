package vote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func postVote(h *Handler, voter, target int64) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"voterFid":%d,"targetFid":%d}`, voter, target)
	req := httptest.NewRequest(http.MethodPost, "/api/vote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Vote(rec, req)
	return rec
}

func TestHandlerVoteSuccess(t *testing.T) {
	h := NewHandler(newTestService(t, 2), zap.NewNop().Sugar())

	rec := postVote(h, 1, 2)
	require.Equal(t, http.StatusOK, rec.Code)

	var receipt Receipt
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&receipt))
	assert.Equal(t, int64(2), receipt.TargetFID)
	assert.Equal(t, 1, receipt.VoteCount)
	assert.NotEmpty(t, receipt.ReceiptID)
}

func TestHandlerVoteStatusMapping(t *testing.T) {
	h := NewHandler(newTestService(t, 2), zap.NewNop().Sugar())

	t.Run("self vote conflicts", func(t *testing.T) {
		rec := postVote(h, 2, 2)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "your own house")
	})

	t.Run("missing target", func(t *testing.T) {
		rec := postVote(h, 1, 404)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "does not exist")
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		require.Equal(t, http.StatusOK, postVote(h, 3, 2).Code)
		rec := postVote(h, 3, 2)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already voted")
	})

	t.Run("bad payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vote", strings.NewReader(`{"voterFid":1}`))
		rec := httptest.NewRecorder()
		h.Vote(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
