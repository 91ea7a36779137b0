// Package roster derives the displayed roster from generated users.
//
// Derivation runs in a fixed order: rank the full set, filter by search
// text, then format the enabled metrics of each surviving user. Ranks are
// assigned before filtering and are never renumbered by it.
package roster

import (
	"slices"
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// Query carries the operator inputs of one derivation.
type Query struct {
	Metric  model.MetricKey   // ranking metric
	Sort    bool              // rank by Metric when true, generation order otherwise
	Search  string            // case-insensitive substring of username or handle
	Enabled []model.MetricKey // visible metrics
}

// Overrides adjusts a single derivation without touching the session state.
// Nil fields fall back to the session value.
type Overrides struct {
	Search *string
	Metric *model.MetricKey
	Sort   *bool
	// Limit caps the returned rows; zero or less means no cap.
	Limit int
}

// Cell is one formatted metric of a row.
type Cell struct {
	Key     model.MetricKey `json:"key"`
	Label   string          `json:"label"`
	Value   int             `json:"value"`
	Display string          `json:"display"`
}

// Row is a ranked user ready for rendering.
type Row struct {
	model.User
	Badge       Badge  `json:"badge,omitempty"`
	StatusLabel string `json:"status_label"`
	Cells       []Cell `json:"cells"`
}

// View is the result of a derivation.
type View struct {
	// Total counts the full record set, before filtering.
	Total  int             `json:"total"`
	Metric model.MetricKey `json:"metric"`
	Sorted bool            `json:"sorted"`
	Search string          `json:"search"`
	Rows   []Row           `json:"rows"`
}

// Derive ranks, filters and formats records. records is not modified.
func Derive(records []model.User, q Query) View {
	ranked := Rank(records, q.Metric, q.Sort)
	visible := Filter(ranked, q.Search)
	columns := Columns(q.Enabled)

	rows := make([]Row, len(visible))
	for i, u := range visible {
		rows[i] = NewRow(u, columns)
	}

	return View{
		Total:  len(records),
		Metric: q.Metric,
		Sorted: q.Sort,
		Search: q.Search,
		Rows:   rows,
	}
}

// Rank returns a copy of records with Rank assigned over the full set.
// With sort enabled the copy is stably ordered by metric, highest first;
// ties and unknown metrics keep generation order.
func Rank(records []model.User, metric model.MetricKey, sort bool) []model.User {
	ranked := slices.Clone(records)
	if sort {
		slices.SortStableFunc(ranked, func(a, b model.User) int {
			av, _ := a.Metrics.Value(metric)
			bv, _ := b.Metrics.Value(metric)
			return bv - av
		})
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Filter keeps users whose username or handle contains search, ignoring case.
// Only the empty string keeps everything; whitespace is matched literally.
// Ranks are left as they are.
func Filter(ranked []model.User, search string) []model.User {
	if search == "" {
		return slices.Clone(ranked)
	}
	needle := strings.ToLower(search)
	out := make([]model.User, 0, len(ranked))
	for _, u := range ranked {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Handle), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Columns intersects enabled with the descriptor table, keeping declaration
// order. Unknown and repeated keys are dropped.
func Columns(enabled []model.MetricKey) []model.MetricDescriptor {
	want := make(map[model.MetricKey]struct{}, len(enabled))
	for _, k := range enabled {
		want[k] = struct{}{}
	}
	cols := make([]model.MetricDescriptor, 0, len(want))
	for _, d := range model.DefaultDescriptors() {
		if _, ok := want[d.Key]; ok {
			d.Enabled = true
			cols = append(cols, d)
		}
	}
	return cols
}

// NewRow formats u for the given columns.
func NewRow(u model.User, columns []model.MetricDescriptor) Row {
	cells := make([]Cell, len(columns))
	for i, c := range columns {
		v, _ := u.Metrics.Value(c.Key)
		cells[i] = Cell{Key: c.Key, Label: c.Label, Value: v, Display: FormatValue(c.Key, v)}
	}
	return Row{
		User:        u,
		Badge:       BadgeFor(u.Rank),
		StatusLabel: u.Status.Label(),
		Cells:       cells,
	}
}
