package image

import (
	"net/http"

	"go.uber.org/zap"
)

type Handler struct {
	client *Client
	logger *zap.SugaredLogger
}

func NewHandler(client *Client, logger *zap.SugaredLogger) *Handler {
	return &Handler{client: client, logger: logger}
}

// Get handles GET /api/house-image?username=&houseType=. The generated card
// is immutable for a given prompt so it gets long-lived cache headers.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		username = "anon"
	}
	houseType := r.URL.Query().Get("houseType")
	if houseType == "" {
		houseType = "mysterious tiny house"
	}

	buf, err := h.client.Render(r.Context(), BuildPrompt(username, houseType))
	if err != nil {
		h.logger.Warnw("house image render failed", "err", err)
		http.Error(w, "AI image unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}
