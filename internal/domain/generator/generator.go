// Package generator produces synthetic roster users.
package generator

import (
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/roster/internal/domain/model"
)

// Default generation parameters.
const (
	DefaultCount       = 100
	DefaultAvatarHost  = "ui-avatars.com"
	teamMemberWindow   = 12
	teamMemberChance   = 0.5
	usernameNumberSpan = 1000
)

// Exclusive upper bounds for each metric draw.
const (
	maxTimeSpent      = 24 * 60
	maxRevenue        = 100_000
	maxEngagement     = 100
	maxReferrals      = 50
	maxPurchases      = 100
	maxComments       = 200
	maxLikes          = 500
	maxShares         = 100
	maxLoginStreak    = 30
	maxCompletionRate = 100
)

var (
	adjectives = []string{"Cool", "Swift", "Bright", "Quick", "Smart", "Tech", "Crypto", "Digital", "Web3", "Meta"}
	nouns      = []string{"Ninja", "Wizard", "Guru", "Master", "Pioneer", "Builder", "Maker", "Creator", "Dev", "Pro"}
	// avatar background colors, hex without '#'
	avatarColors = []string{"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEEAD", "D4A5A5", "9B9B9B", "A3A1A8"}
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests pass a seeded source for fixtures.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed seeds the random source. A zero seed keeps the clock-seeded default.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not security sensitive
		}
	}
}

// WithAvatarHost overrides the host of the avatar image service.
func WithAvatarHost(host string) Option {
	return func(g *Generator) {
		if host = strings.TrimSpace(host); host != "" {
			g.avatarHost = host
		}
	}
}

// Generator builds users from a random source. It is not safe for concurrent use.
type Generator struct {
	rng        *rand.Rand
	avatarHost string
}

// New creates a generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // synthetic data, not security sensitive
		avatarHost: DefaultAvatarHost,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns count users in generation order. count <= 0 means DefaultCount.
func (g *Generator) Generate(count int) []model.User {
	if count <= 0 {
		count = DefaultCount
	}

	users := make([]model.User, count)
	for i := range users {
		users[i] = g.user(i)
	}
	return users
}

func (g *Generator) user(index int) model.User {
	adj := pick(g.rng, adjectives)
	noun := pick(g.rng, nouns)
	num := strconv.Itoa(g.rng.Intn(usernameNumberSpan))
	color := pick(g.rng, avatarColors)
	username := adj + noun + num
	statuses := model.Statuses()

	return model.User{
		ID:           "user-" + strconv.Itoa(index),
		Username:     username,
		Handle:       "@" + strings.ToLower(adj) + strings.ToLower(noun) + num,
		AvatarURL:    AvatarURL(g.avatarHost, username, color),
		Status:       statuses[g.rng.Intn(len(statuses))],
		IsTeamMember: index < teamMemberWindow && g.rng.Float64() > teamMemberChance,
		Metrics:      g.metrics(),
	}
}

func (g *Generator) metrics() model.Metrics {
	return model.Metrics{
		TimeSpent:      g.rng.Intn(maxTimeSpent),
		Revenue:        g.rng.Intn(maxRevenue),
		Engagement:     g.rng.Intn(maxEngagement),
		Referrals:      g.rng.Intn(maxReferrals),
		Purchases:      g.rng.Intn(maxPurchases),
		Comments:       g.rng.Intn(maxComments),
		Likes:          g.rng.Intn(maxLikes),
		Shares:         g.rng.Intn(maxShares),
		LoginStreak:    g.rng.Intn(maxLoginStreak),
		CompletionRate: g.rng.Intn(maxCompletionRate),
	}
}

// AvatarURL renders the avatar image URL for a username and a hex6 background color.
func AvatarURL(host, username, background string) string {
	// Built by hand: url.Values.Encode would reorder the parameters.
	return "https://" + host + "/api/?name=" + url.QueryEscape(username) +
		"&background=" + background + "&color=fff&size=200&bold=true"
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}
