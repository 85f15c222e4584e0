// Package profile looks up Farcaster accounts through the Neynar API.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// ErrNotFound means the account does not exist upstream. The caller must not
// synthesize a profile in that case.
var ErrNotFound = errors.New("profile not found")

// Lookup is the capability handlers depend on; tests stub it.
type Lookup interface {
	Lookup(ctx context.Context, fid int64) (*entity.Profile, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ConfigFromEnv reads Neynar config from environment variables.
func ConfigFromEnv() Config {
	base := os.Getenv("NEYNAR_BASE_URL")
	if base == "" {
		base = "https://api.neynar.com"
	}
	return Config{
		BaseURL: base,
		APIKey:  os.Getenv("NEYNAR_API_KEY"),
		Timeout: 10 * time.Second,
	}
}

// Client is an HTTP Neynar client implementing Lookup.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// neynarUser mirrors the subset of the upstream user payload we consume.
type neynarUser struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PfpURL         string `json:"pfp_url"`
}

type neynarResponse struct {
	User *neynarUser `json:"user"`
	// some API versions nest the user under result
	Result struct {
		User *neynarUser `json:"user"`
	} `json:"result"`
}

// Lookup fetches the account for fid. A 404 or an empty payload maps to
// ErrNotFound; transport and decode failures are returned as-is.
func (c *Client) Lookup(ctx context.Context, fid int64) (*entity.Profile, error) {
	url := fmt.Sprintf("%s/v2/farcaster/user?fid=%d", c.cfg.BaseURL, fid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("api_key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neynar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("neynar status %d", resp.StatusCode)
	}

	var body neynarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("neynar decode: %w", err)
	}
	u := body.User
	if u == nil {
		u = body.Result.User
	}
	if u == nil || u.Username == "" {
		return nil, ErrNotFound
	}
	return &entity.Profile{
		FID:            fid,
		Username:       u.Username,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		PfpURL:         u.PfpURL,
	}, nil
}
