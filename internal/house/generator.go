package house

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// Rand is the uniform draw source the generator depends on. *math/rand.Rand
// satisfies it; tests inject a seeded instance for exact-output assertions.
type Rand interface {
	Intn(n int) int
}

// lockedRand guards a *rand.Rand so a single Generator can be shared by
// concurrent request handlers.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

// NewLockedRand wraps src into a concurrency-safe Rand.
func NewLockedRand(src rand.Source) Rand {
	return &lockedRand{rnd: rand.New(src)}
}

// Tier classifies a follower/following ratio and selects which content pools
// the generator draws from.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "mid"
	}
}

// tierConfig carries everything a tier contributes to a generated house.
type tierConfig struct {
	houseTypes     [4]string
	pricePool      [4]string
	riskPool       [4]string
	scoreMin       int
	scoreMax       int
	investmentNote string
}

var tiers = map[Tier]tierConfig{
	TierLow: {
		houseTypes: [4]string{
			"Shoebox rental with borrowed Wi-Fi",
			"3×3 boarding room that smells like air freshener",
			"Tiny row house next to the train tracks",
			"Budget studio above a noisy street food stall",
		},
		pricePool: [4]string{
			"Rp 7.2M… kidding, Rp 7.2M in emotional damage, Rp 7.2M vibes only.",
			"Rp 15M including 1 free water dispenser and instant noodles.",
			"Rp 3.5M + two boxes of instant noodles as deposit.",
			"Rp 9.9M flash sale, only today (emotionally).",
		},
		riskPool: [4]string{
			"High emotional risk, low financial upside.",
			"More risk from neighbors than from the market.",
			"Main hazard: leaks, drama, and group chats.",
			"Beware: thin walls, thick emotions.",
		},
		scoreMin:       2,
		scoreMax:       4,
		investmentNote: "High chance of flooding and feelings.",
	},
	TierMid: {
		houseTypes: [4]string{
			"Type 21++ but renovation failed halfway",
			"Minimalist cluster, maximalist mortgage",
			"Corner house but neighbors own the parking",
			"Starter home with a forever ‘under construction’ balcony",
		},
		pricePool: [4]string{
			"Rp 420M because you’re loyal but over-decorate.",
			"Rp 690M, includes a budget for changing your mind.",
			"Rp 350M, minus repainting the pastel walls.",
			"Rp 500M, but the neighborhood group chat is priceless.",
		},
		riskPool: [4]string{
			"Moderate risk: flood of feelings once a year.",
			"Safe for living, dangerous for online shopping.",
			"Stable investment, unstable sleep schedule.",
			"Risk: accidental house parties every weekend.",
		},
		scoreMin:       3,
		scoreMax:       6,
		investmentNote: "Medium chance of flooding, 100% chance of group chat drama.",
	},
	TierHigh: {
		houseTypes: [4]string{
			"3-floor minimalist mansion just for ‘healing’",
			"Crypto bro penthouse with no realized profit",
			"Bali-style villa but somehow still in the suburbs",
			"Skyline loft with plants that cost more than rent",
		},
		pricePool: [4]string{
			"Rp 7.2B because your aura is high risk, high return.",
			"Rp 12B, but you’ll be paying it off in your next life.",
			"Rp 4.5B, discount applied for overthinking.",
			"Rp 9B including private ‘don’t text my ex’ security system.",
		},
		riskPool: [4]string{
			"High upside, high drama, billionaire neighbor potential.",
			"Volatile like crypto, but at least you can live in it.",
			"Luxury returns, influencer problems.",
			"Big gains, bigger HOA group chats.",
		},
		scoreMin:       7,
		scoreMax:       10,
		investmentNote: "Good for long-term value, bad for soft quitting.",
	},
}

var (
	neighborhoods = [6]string{
		"Soft-Launch District",
		"Overthinker’s Corner",
		"Low-Profile High-Drama Block",
		"Semi-Rich but Tired Avenue",
		"Always-Renovating Street",
		"Late-Rent Lane",
	}
	cities = [6]string{
		"Base City",
		"Onchain Heights",
		"Warpcast Bay",
		"Layer2 Valley",
		"Gas-Saver Town",
		"Emoji District",
	}
	vibeLabels = [6]string{
		"Main character energy",
		"Side quest enjoyer",
		"Low maintenance, high chaos",
		"Cozy but emotionally expensive",
		"Minimalist aesthetic, maximalist feelings",
		"Air fryer and LED strip supremacy",
	}
	streetGlyphs = [6]string{"🏡", "🌆", "🌃", "🌴", "🛸", "✨"}
)

// Classify maps a follower/following ratio onto a tier. Exactly 0.5 and
// exactly 2 are mid.
func Classify(ratio float64) Tier {
	if ratio < 0.5 {
		return TierLow
	}
	if ratio > 2 {
		return TierHigh
	}
	return TierMid
}

// Generator produces house content from a social profile. It is a pure
// function of the profile and its Rand; it never touches storage.
type Generator struct {
	rnd Rand
}

func NewGenerator(rnd Rand) *Generator {
	return &Generator{rnd: rnd}
}

// pick draws one element uniformly. An empty pool is a programming error,
// not a runtime condition.
func pick(rnd Rand, pool []string) string {
	if len(pool) == 0 {
		panic("house: draw from empty pool")
	}
	return pool[rnd.Intn(len(pool))]
}

// Generate builds house content for the given profile. CreatedAt is left
// zero; the repository stamps it on first store.
func (g *Generator) Generate(p entity.Profile) entity.House {
	following := p.FollowingCount
	if following < 1 {
		following = 1
	}
	ratio := float64(p.FollowerCount) / float64(following)

	cfg := tiers[Classify(ratio)]

	houseType := pick(g.rnd, cfg.houseTypes[:])
	priceLine := pick(g.rnd, cfg.pricePool[:])
	riskLabel := pick(g.rnd, cfg.riskPool[:])
	score := cfg.scoreMin + g.rnd.Intn(cfg.scoreMax-cfg.scoreMin+1)

	city := pick(g.rnd, cities[:])
	neighborhood := pick(g.rnd, neighborhoods[:])
	streetNumber := 1 + g.rnd.Intn(200)
	glyph := pick(g.rnd, streetGlyphs[:])

	return entity.House{
		FID:             p.FID,
		Username:        p.Username,
		HouseType:       houseType,
		PriceLine:       priceLine,
		InvestmentScore: score,
		InvestmentNote:  cfg.investmentNote,
		Tagline:         fmt.Sprintf("House version of @%s: %s", p.Username, houseType),
		AddressLine:     fmt.Sprintf("%d %s %s, %s", streetNumber, neighborhood, glyph, city),
		City:            city,
		Neighborhood:    neighborhood,
		VibeLabel:       pick(g.rnd, vibeLabels[:]),
		RiskLabel:       riskLabel,
	}
}
