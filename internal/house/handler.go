package house

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	"github.com/andrasetya/realestate-rizz/internal/profile"
)

// Handler exposes the mini-app house endpoints.
type Handler struct {
	svc      *Service
	profiles profile.Lookup
	baseURL  string
	logger   *zap.SugaredLogger
}

func NewHandler(svc *Service, profiles profile.Lookup, baseURL string, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, profiles: profiles, baseURL: baseURL, logger: logger}
}

// HouseRequest is the POST /api/mini/house payload.
type HouseRequest struct {
	FID int64 `json:"fid"`
}

// HouseResponse bundles the house with the share and leaderboard links the
// mini-app renders.
type HouseResponse struct {
	House          *entity.House `json:"house"`
	ShareURL       string        `json:"shareUrl"`
	LeaderboardURL string        `json:"leaderboardUrl"`
}

// GetOrCreate handles POST /api/mini/house.
func (h *Handler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req HouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FID == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing fid"})
		return
	}

	p, err := h.profiles.Lookup(r.Context(), req.FID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found in Neynar"})
			return
		}
		h.logger.Warnw("profile lookup failed", "fid", req.FID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	house, err := h.svc.GetOrCreate(r.Context(), *p)
	if err != nil {
		h.logger.Errorw("get or create house failed", "fid", req.FID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	h.writeJSON(w, http.StatusOK, HouseResponse{
		House:          house,
		ShareURL:       fmt.Sprintf("%s/share?fid=%d", h.baseURL, req.FID),
		LeaderboardURL: h.baseURL + "/leaderboard",
	})
}

// List handles GET /api/houses (gallery, ascending by creation time).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	houses, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.logger.Errorw("list houses failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"houses": houses})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
