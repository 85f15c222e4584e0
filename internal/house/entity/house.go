package entity

import "time"

// House is the generated house profile attached to one Farcaster account.
// Exactly one House ever exists per FID; once created it is immutable.
type House struct {
	FID             int64     `json:"fid" db:"fid"`
	Username        string    `json:"username" db:"username"`
	HouseType       string    `json:"houseType" db:"house_type"`
	PriceLine       string    `json:"absurdPrice" db:"price_line"`
	InvestmentScore int       `json:"investmentScore" db:"investment_score"`
	InvestmentNote  string    `json:"investmentNote" db:"investment_note"`
	Tagline         string    `json:"tagline" db:"tagline"`
	AddressLine     string    `json:"addressLine" db:"address_line"`
	City            string    `json:"city" db:"city"`
	Neighborhood    string    `json:"neighborhood" db:"neighborhood"`
	VibeLabel       string    `json:"vibeLabel" db:"vibe_label"`
	RiskLabel       string    `json:"riskLabel" db:"risk_label"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// LeaderboardEntry is a read-side projection of a House plus its distinct
// voter count. It has no independent lifecycle and is never stored.
type LeaderboardEntry struct {
	FID       int64     `json:"fid"`
	Username  string    `json:"username"`
	HouseType string    `json:"houseType"`
	PriceLine string    `json:"absurdPrice"`
	VoteCount int       `json:"voteCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the minimal social-profile projection the generator consumes.
// It comes from the profile lookup collaborator and is never persisted.
type Profile struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	PfpURL         string `json:"pfp_url,omitempty"`
}
