package model

import "strings"

// MetricKey identifies a per-user metric. It joins descriptors to User.Metrics.
type MetricKey string

// Metric keys in declaration order.
const (
	MetricTimeSpent      MetricKey = "timeSpent"
	MetricRevenue        MetricKey = "revenue"
	MetricEngagement     MetricKey = "engagement"
	MetricReferrals      MetricKey = "referrals"
	MetricPurchases      MetricKey = "purchases"
	MetricComments       MetricKey = "comments"
	MetricLikes          MetricKey = "likes"
	MetricShares         MetricKey = "shares"
	MetricLoginStreak    MetricKey = "loginStreak"
	MetricCompletionRate MetricKey = "completionRate"
)

// AllMetricKeys returns every metric key in declaration order.
func AllMetricKeys() []MetricKey {
	return []MetricKey{
		MetricTimeSpent,
		MetricRevenue,
		MetricEngagement,
		MetricReferrals,
		MetricPurchases,
		MetricComments,
		MetricLikes,
		MetricShares,
		MetricLoginStreak,
		MetricCompletionRate,
	}
}

// Valid reports whether k is one of the known metric keys.
func (k MetricKey) Valid() bool {
	for _, known := range AllMetricKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseMetricKeys splits a comma separated list into keys, skipping blanks.
// Keys are not validated.
func ParseMetricKeys(s string) []MetricKey {
	parts := strings.Split(s, ",")
	keys := make([]MetricKey, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keys = append(keys, MetricKey(p))
	}
	return keys
}

// MetricDescriptor describes how a metric is presented.
type MetricDescriptor struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Key     MetricKey `json:"key"`
	Enabled bool      `json:"enabled"`
}

// Descriptors is an ordered descriptor list with exactly one entry per MetricKey.
// Methods never modify the receiver; updates return a new list.
type Descriptors []MetricDescriptor

// DefaultDescriptors returns a fresh copy of the default descriptor table.
func DefaultDescriptors() Descriptors {
	return Descriptors{
		{ID: "1", Label: "Time Spent in Whop", Key: MetricTimeSpent, Enabled: true},
		{ID: "2", Label: "Revenue Generated", Key: MetricRevenue, Enabled: true},
		{ID: "3", Label: "Engagement Score", Key: MetricEngagement},
		{ID: "4", Label: "Referrals", Key: MetricReferrals},
		{ID: "5", Label: "Total Purchases", Key: MetricPurchases},
		{ID: "6", Label: "Comments", Key: MetricComments},
		{ID: "7", Label: "Likes", Key: MetricLikes},
		{ID: "8", Label: "Shares", Key: MetricShares},
		{ID: "9", Label: "Login Streak", Key: MetricLoginStreak},
		{ID: "10", Label: "Completion Rate", Key: MetricCompletionRate},
	}
}

// Clone returns a copy of d.
func (d Descriptors) Clone() Descriptors {
	out := make(Descriptors, len(d))
	copy(out, d)
	return out
}

// Find returns the descriptor for key.
func (d Descriptors) Find(key MetricKey) (MetricDescriptor, bool) {
	for _, m := range d {
		if m.Key == key {
			return m, true
		}
	}
	return MetricDescriptor{}, false
}

// Toggle returns a copy of d with the Enabled flag of key flipped.
// An unknown key yields an unchanged copy.
func (d Descriptors) Toggle(key MetricKey) Descriptors {
	out := d.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Enabled = !out[i].Enabled
			break
		}
	}
	return out
}

// WithEnabled returns a copy of d where exactly the given keys are enabled.
func (d Descriptors) WithEnabled(keys []MetricKey) Descriptors {
	want := make(map[MetricKey]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	out := d.Clone()
	for i := range out {
		_, out[i].Enabled = want[out[i].Key]
	}
	return out
}

// EnabledKeys returns the enabled keys in declaration order.
func (d Descriptors) EnabledKeys() []MetricKey {
	keys := make([]MetricKey, 0, len(d))
	for _, m := range d {
		if m.Enabled {
			keys = append(keys, m.Key)
		}
	}
	return keys
}
