package router

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrasetya/realestate-rizz/internal/frame"
	"github.com/andrasetya/realestate-rizz/internal/house"
	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	houserepo "github.com/andrasetya/realestate-rizz/internal/house/repo"
	"github.com/andrasetya/realestate-rizz/internal/image"
	"github.com/andrasetya/realestate-rizz/internal/leaderboard"
	"github.com/andrasetya/realestate-rizz/internal/profile"
	"github.com/andrasetya/realestate-rizz/internal/vote"
	voterepo "github.com/andrasetya/realestate-rizz/internal/vote/repo"
)

type fakeLookup struct{}

func (fakeLookup) Lookup(ctx context.Context, fid int64) (*entity.Profile, error) {
	if fid >= 1000 {
		return nil, profile.ErrNotFound
	}
	return &entity.Profile{FID: fid, Username: "user", FollowerCount: 10, FollowingCount: 10}, nil
}

func newTestMux() http.Handler {
	logger := zap.NewNop().Sugar()
	baseURL := "http://localhost:3000"

	houseStore := houserepo.NewMemoryStore()
	voteStore := voterepo.NewMemoryStore()
	gen := house.NewGenerator(house.NewLockedRand(rand.NewSource(1)))
	houseSvc := house.NewService(houseStore, gen)
	voteSvc := vote.NewService(voteStore, houseStore)
	boardSvc := leaderboard.NewService(houseStore, voteStore)
	images := image.NewClient(image.Config{}) // no API key: image endpoint degrades

	return RegisterRoutes(logger, Handlers{
		House:       house.NewHandler(houseSvc, fakeLookup{}, baseURL, logger),
		Vote:        vote.NewHandler(voteSvc, logger),
		Leaderboard: leaderboard.NewHandler(boardSvc, logger),
		Frame:       frame.NewHandler(houseSvc, voteSvc, fakeLookup{}, baseURL, logger),
		Image:       image.NewHandler(images, logger),
	})
}

func TestHealthAndMiddleware(t *testing.T) {
	mux := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRequestIDPreserved(t *testing.T) {
	mux := newTestMux()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
}

func TestHouseVoteLeaderboardFlow(t *testing.T) {
	mux := newTestMux()

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		return rec
	}

	// create a house for fid 1, vote for it from fids 2 and 3
	require.Equal(t, http.StatusOK, post("/api/mini/house", `{"fid":1}`).Code)
	require.Equal(t, http.StatusOK, post("/api/vote", `{"voterFid":2,"targetFid":1}`).Code)
	require.Equal(t, http.StatusOK, post("/api/vote", `{"voterFid":3,"targetFid":1}`).Code)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Leaderboard []entity.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Leaderboard, 1)
	assert.Equal(t, int64(1), resp.Leaderboard[0].FID)
	assert.Equal(t, 2, resp.Leaderboard[0].VoteCount)
}

func TestFrameVoteFlow(t *testing.T) {
	mux := newTestMux()

	// voter fid in the frame body, target in the query string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/frame/vote?targetFid=5", strings.NewReader(`{"untrustedData":{"fid":9}}`))
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp frame.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Text, "Vote recorded! Total votes: 1")
	require.NotEmpty(t, resp.Buttons)
	assert.Contains(t, resp.Buttons[0].Target, "warpcast.com")

	// the same voter again gets the duplicate reason, still HTTP 200 (frames render it)
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/frame/vote?targetFid=5", strings.NewReader(`{"fid":9}`))
	mux.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)

	var resp2 frame.Response
	require.NoError(t, json.NewDecoder(rec2.Body).Decode(&resp2))
	assert.Contains(t, resp2.Text, "already voted")
}

func TestFrameUnknownUser(t *testing.T) {
	mux := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/frame", strings.NewReader(`{"fid":5000}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	mux := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
