// Package frame serves the Farcaster frame endpoints: the house reveal frame
// and the vote frame. Frames speak a small JSON protocol of image, text and
// buttons.
package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/andrasetya/realestate-rizz/internal/house"
	"github.com/andrasetya/realestate-rizz/internal/profile"
	"github.com/andrasetya/realestate-rizz/internal/vote"
)

// Button is one frame action button.
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Target string `json:"target"`
}

// Response is the frame JSON payload.
type Response struct {
	Image    string   `json:"image"`
	ImageAlt string   `json:"imageAlt"`
	Text     string   `json:"text"`
	Buttons  []Button `json:"buttons"`
}

type Handler struct {
	houses   *house.Service
	votes    *vote.Service
	profiles profile.Lookup
	baseURL  string
	logger   *zap.SugaredLogger
}

func NewHandler(houses *house.Service, votes *vote.Service, profiles profile.Lookup, baseURL string, logger *zap.SugaredLogger) *Handler {
	return &Handler{houses: houses, votes: votes, profiles: profiles, baseURL: baseURL, logger: logger}
}

// frameBody is the untrusted frame POST payload; the fid may arrive at the
// top level or nested under untrustedData.
type frameBody struct {
	FID           int64 `json:"fid"`
	UntrustedData struct {
		FID int64 `json:"fid"`
	} `json:"untrustedData"`
}

func parseFID(r *http.Request) int64 {
	var body frameBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return 0
	}
	if body.UntrustedData.FID != 0 {
		return body.UntrustedData.FID
	}
	return body.FID
}

// Show handles POST /frame: reveal the caller's house.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	fid := parseFID(r)
	if fid == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing fid"})
		return
	}

	p, err := h.profiles.Lookup(r.Context(), fid)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found in Neynar"})
			return
		}
		h.logger.Warnw("frame profile lookup failed", "fid", fid, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal error"})
		return
	}

	hs, err := h.houses.GetOrCreate(r.Context(), *p)
	if err != nil {
		h.logger.Errorw("frame house creation failed", "fid", fid, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal error"})
		return
	}

	imageURL := fmt.Sprintf("%s/api/house-image?username=%s&houseType=%s",
		h.baseURL, url.QueryEscape(hs.Username), url.QueryEscape(hs.HouseType))
	shareURL := fmt.Sprintf("%s/share?fid=%d", h.baseURL, fid)
	composeText := fmt.Sprintf("My onchain house is: %q at %s — price vibes: %s 🏡 #RealEstateRizz",
		hs.HouseType, hs.AddressLine, hs.PriceLine)

	text := strings.Join([]string{
		"@" + hs.Username,
		"🏡 House type: " + hs.HouseType,
		"📍 Address: " + hs.AddressLine,
		"💸 Price vibes: " + hs.PriceLine,
		fmt.Sprintf("📊 Investment: %d/10 – %s", hs.InvestmentScore, hs.InvestmentNote),
		"✨ Vibe: " + hs.VibeLabel,
		"⚠️ Risk: " + hs.RiskLabel,
	}, "\n")

	h.writeJSON(w, http.StatusOK, Response{
		Image:    imageURL,
		ImageAlt: hs.Tagline,
		Text:     text,
		Buttons: []Button{
			{Label: "🔁 Re-roll my house", Action: "post", Target: h.baseURL + "/frame"},
			{Label: "📤 Open share page", Action: "link", Target: shareURL},
			{Label: "📝 Cast this house", Action: "link", Target: ComposeURL(composeText, shareURL)},
			{Label: "🏆 View leaderboard", Action: "link", Target: h.baseURL + "/leaderboard"},
		},
	})
}

// ShowInfo handles GET /frame for browsers poking at the endpoint.
func (h *Handler) ShowInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Use POST from Farcaster Frame to get result."})
}

// Vote handles POST /frame/vote?targetFid=N: the voter fid comes from the
// frame body, the target from the query string. The target's house is
// created on demand so a vote can land on a fresh account.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	voterFID := parseFID(r)
	if voterFID == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing voter fid"})
		return
	}

	targetRaw := r.URL.Query().Get("targetFid")
	if targetRaw == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing targetFid"})
		return
	}
	targetFID, err := strconv.ParseInt(targetRaw, 10, 64)
	if err != nil || targetFID == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing targetFid"})
		return
	}

	target, err := h.profiles.Lookup(r.Context(), targetFID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Target user not found"})
			return
		}
		h.logger.Warnw("frame target lookup failed", "fid", targetFID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal error"})
		return
	}

	targetHouse, err := h.houses.GetOrCreate(r.Context(), *target)
	if err != nil {
		h.logger.Errorw("frame target house failed", "fid", targetFID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal error"})
		return
	}

	receipt, voteErr := h.votes.Vote(r.Context(), voterFID, targetFID)

	imageURL := fmt.Sprintf("%s/og/house-card?fid=%d", h.baseURL, targetFID)
	shareURL := fmt.Sprintf("%s/share?fid=%d", h.baseURL, targetFID)

	var castText, statusLine string
	if voteErr == nil {
		castText = fmt.Sprintf("I just voted for @%s's house: %q at %s 🏡 #RealEstateRizz",
			targetHouse.Username, targetHouse.HouseType, targetHouse.AddressLine)
		statusLine = fmt.Sprintf("✅ Vote recorded! Total votes: %d", receipt.VoteCount)
	} else {
		castText = fmt.Sprintf("Tried voting for @%s's house, but: %s", targetHouse.Username, voteErr.Error())
		statusLine = "⚠️ " + voteErr.Error()
	}

	text := strings.Join([]string{
		statusLine,
		"",
		fmt.Sprintf("Target house: %q", targetHouse.HouseType),
		"Address: " + targetHouse.AddressLine,
		"Price vibes: " + targetHouse.PriceLine,
	}, "\n")

	h.writeJSON(w, http.StatusOK, Response{
		Image:    imageURL,
		ImageAlt: fmt.Sprintf("Voting for @%s's house", targetHouse.Username),
		Text:     text,
		Buttons: []Button{
			{Label: "📝 Cast about this vote", Action: "link", Target: ComposeURL(castText, shareURL)},
			{Label: "🏆 View leaderboard", Action: "link", Target: h.baseURL + "/leaderboard"},
			{Label: "🔙 Back to main frame", Action: "post", Target: h.baseURL + "/frame"},
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
