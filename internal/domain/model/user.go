// Package model contains domain models passed between layers.
package model

// Status is a user's presence state.
type Status string

// Presence states.
const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusOffline Status = "offline"
)

// Statuses lists every presence state in a fixed order.
func Statuses() []Status {
	return []Status{StatusOnline, StatusAway, StatusOffline}
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusAway:
		return "Away"
	case StatusOffline:
		return "Offline"
	default:
		return string(s)
	}
}

// User is a single roster record.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Handle       string  `json:"handle"`
	AvatarURL    string  `json:"avatar_url"`
	Status       Status  `json:"status"`
	IsTeamMember bool    `json:"is_team_member"`
	Metrics      Metrics `json:"metrics"`

	// Rank is 1-based and only set by the view model; zero means unranked.
	Rank int `json:"rank,omitempty"`
}

// Metrics holds one non-negative value per MetricKey.
type Metrics struct {
	TimeSpent      int `json:"timeSpent"` // minutes
	Revenue        int `json:"revenue"`
	Engagement     int `json:"engagement"`
	Referrals      int `json:"referrals"`
	Purchases      int `json:"purchases"`
	Comments       int `json:"comments"`
	Likes          int `json:"likes"`
	Shares         int `json:"shares"`
	LoginStreak    int `json:"loginStreak"`
	CompletionRate int `json:"completionRate"`
}

// Value returns the value stored under key. Unknown keys report 0, false.
func (m Metrics) Value(key MetricKey) (int, bool) {
	switch key {
	case MetricTimeSpent:
		return m.TimeSpent, true
	case MetricRevenue:
		return m.Revenue, true
	case MetricEngagement:
		return m.Engagement, true
	case MetricReferrals:
		return m.Referrals, true
	case MetricPurchases:
		return m.Purchases, true
	case MetricComments:
		return m.Comments, true
	case MetricLikes:
		return m.Likes, true
	case MetricShares:
		return m.Shares, true
	case MetricLoginStreak:
		return m.LoginStreak, true
	case MetricCompletionRate:
		return m.CompletionRate, true
	default:
		return 0, false
	}
}
