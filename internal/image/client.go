// Package image renders house-card images through the Hugging Face
// inference API.
package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrUnavailable means image generation is not configured or the upstream
// model did not produce an image.
var ErrUnavailable = errors.New("ai image unavailable")

type Config struct {
	BaseURL string
	APIKey  string
	ModelID string
	Timeout time.Duration
}

// ConfigFromEnv reads Hugging Face config from environment variables.
func ConfigFromEnv() Config {
	base := os.Getenv("HF_BASE_URL")
	if base == "" {
		base = "https://api-inference.huggingface.co"
	}
	model := os.Getenv("HF_MODEL_ID")
	if model == "" {
		model = "stabilityai/stable-diffusion-2-1"
	}
	return Config{
		BaseURL: base,
		APIKey:  os.Getenv("HF_API_KEY"),
		ModelID: model,
		Timeout: 30 * time.Second,
	}
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// BuildPrompt composes the text-to-image prompt for a house card. The
// username rides along in the query contract but the prompt keys off the
// house type only.
func BuildPrompt(username, houseType string) string {
	return fmt.Sprintf("futuristic illustration of a house representing: %q, "+
		"neon cyberpunk style, isometric view, bright, playful, cute, cartoonish, "+
		"high detail, 3d render, soft lighting", houseType)
}

// Render runs the prompt through the configured model and returns raw image
// bytes. ErrUnavailable when no API key is configured.
func (c *Client) Render(ctx context.Context, prompt string) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrUnavailable
	}

	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s", c.cfg.BaseURL, c.cfg.ModelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hf request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hf status %d: %w", resp.StatusCode, ErrUnavailable)
	}
	return io.ReadAll(resp.Body)
}
