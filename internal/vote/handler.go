package vote

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Handler exposes the voting endpoint.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// VoteRequest is the POST /api/vote payload.
type VoteRequest struct {
	VoterFID  int64 `json:"voterFid"`
	TargetFID int64 `json:"targetFid"`
}

// Vote handles POST /api/vote. Precondition failures carry the specific
// reason string so the client can re-display it to the voter.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VoterFID == 0 || req.TargetFID == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing voterFid or targetFid"})
		return
	}

	receipt, err := h.svc.Vote(r.Context(), req.VoterFID, req.TargetFID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfVote), errors.Is(err, ErrDuplicateVote):
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrTargetNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			h.logger.Errorw("vote failed", "voter", req.VoterFID, "target", req.TargetFID, "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, receipt)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
