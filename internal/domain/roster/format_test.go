package roster_test

import (
	"testing"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatValue(t *testing.T) {
	Convey("Given metric values to format", t, func() {
		cases := []struct {
			key  model.MetricKey
			in   int
			want string
		}{
			{model.MetricTimeSpent, 125, "2h 5m"},
			{model.MetricTimeSpent, 45, "45m"},
			{model.MetricTimeSpent, 0, "0m"},
			{model.MetricTimeSpent, 60, "1h 0m"},
			{model.MetricTimeSpent, 1439, "23h 59m"},
			{model.MetricRevenue, 75000, "$75,000"},
			{model.MetricRevenue, 0, "$0"},
			{model.MetricRevenue, 999, "$999"},
			{model.MetricCompletionRate, 83, "83%"},
			{model.MetricLikes, 1200, "1,200"},
			{model.MetricComments, 1234567, "1,234,567"},
			{model.MetricShares, 7, "7"},
			{"karma", 4500, "4,500"},
		}

		Convey("Then each key uses its own rule", func() {
			for _, c := range cases {
				So(roster.FormatValue(c.key, c.in), ShouldEqual, c.want)
			}
		})
	})
}

func TestBadgeFor(t *testing.T) {
	Convey("Given ranks around the podium", t, func() {
		So(roster.BadgeFor(1), ShouldEqual, roster.BadgeGold)
		So(roster.BadgeFor(2), ShouldEqual, roster.BadgeSilver)
		So(roster.BadgeFor(3), ShouldEqual, roster.BadgeBronze)
		So(roster.BadgeFor(4), ShouldEqual, roster.BadgeNone)
		So(roster.BadgeFor(0), ShouldEqual, roster.BadgeNone)
	})
}

func TestColumns(t *testing.T) {
	Convey("Given every metric enabled in reverse order", t, func() {
		keys := model.AllMetricKeys()
		reversed := make([]model.MetricKey, len(keys))
		for i, k := range keys {
			reversed[len(keys)-1-i] = k
		}
		cols := roster.Columns(reversed)

		Convey("Then columns come back in declaration order", func() {
			So(len(cols), ShouldEqual, len(keys))
			for i, c := range cols {
				So(c.Key, ShouldEqual, keys[i])
				So(c.Enabled, ShouldBeTrue)
			}
		})
	})

	Convey("Given no enabled metrics", t, func() {
		So(roster.Columns(nil), ShouldBeEmpty)
	})
}
