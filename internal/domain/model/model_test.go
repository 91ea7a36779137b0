package model_test

import (
	"testing"

	"github.com/okian/roster/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics_Value(t *testing.T) {
	Convey("Given a metrics set with distinct values", t, func() {
		m := model.Metrics{
			TimeSpent: 1, Revenue: 2, Engagement: 3, Referrals: 4, Purchases: 5,
			Comments: 6, Likes: 7, Shares: 8, LoginStreak: 9, CompletionRate: 10,
		}

		Convey("Then every known key resolves to its own field", func() {
			for i, key := range model.AllMetricKeys() {
				v, ok := m.Value(key)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, i+1)
			}
		})

		Convey("And an unknown key resolves to zero", func() {
			v, ok := m.Value("karma")
			So(ok, ShouldBeFalse)
			So(v, ShouldEqual, 0)
		})
	})
}

func TestDescriptors_Default(t *testing.T) {
	Convey("Given the default descriptor table", t, func() {
		d := model.DefaultDescriptors()

		Convey("Then there is exactly one descriptor per metric key, in declaration order", func() {
			So(len(d), ShouldEqual, len(model.AllMetricKeys()))
			seen := map[model.MetricKey]bool{}
			ids := map[string]bool{}
			for i, key := range model.AllMetricKeys() {
				So(d[i].Key, ShouldEqual, key)
				So(seen[key], ShouldBeFalse)
				So(ids[d[i].ID], ShouldBeFalse)
				seen[key] = true
				ids[d[i].ID] = true
			}
		})

		Convey("And only time spent and revenue are enabled", func() {
			So(d.EnabledKeys(), ShouldResemble, []model.MetricKey{model.MetricTimeSpent, model.MetricRevenue})
		})

		Convey("And each call returns an independent copy", func() {
			d[0].Enabled = false
			So(model.DefaultDescriptors()[0].Enabled, ShouldBeTrue)
		})
	})
}

func TestDescriptors_Toggle(t *testing.T) {
	Convey("Given the default descriptors", t, func() {
		d := model.DefaultDescriptors()

		Convey("When toggling likes once", func() {
			toggled := d.Toggle(model.MetricLikes)

			Convey("Then likes is enabled on the copy only", func() {
				m, ok := toggled.Find(model.MetricLikes)
				So(ok, ShouldBeTrue)
				So(m.Enabled, ShouldBeTrue)

				orig, _ := d.Find(model.MetricLikes)
				So(orig.Enabled, ShouldBeFalse)
			})
		})

		Convey("When toggling the same metric twice", func() {
			twice := d.Toggle(model.MetricRevenue).Toggle(model.MetricRevenue)

			Convey("Then the list equals the starting list", func() {
				So(twice, ShouldResemble, d)
			})
		})

		Convey("When toggling an unknown metric", func() {
			same := d.Toggle("karma")

			Convey("Then nothing changes", func() {
				So(same, ShouldResemble, d)
			})
		})
	})
}

func TestDescriptors_WithEnabled(t *testing.T) {
	Convey("Given the default descriptors", t, func() {
		d := model.DefaultDescriptors()

		Convey("When enabling likes and completion rate only", func() {
			out := d.WithEnabled([]model.MetricKey{model.MetricCompletionRate, model.MetricLikes, "karma"})

			Convey("Then enabled keys follow declaration order", func() {
				So(out.EnabledKeys(), ShouldResemble, []model.MetricKey{model.MetricLikes, model.MetricCompletionRate})
			})
		})
	})
}

func TestMetricKeys(t *testing.T) {
	Convey("Given metric key helpers", t, func() {
		Convey("Then known keys are valid and others are not", func() {
			So(model.MetricShares.Valid(), ShouldBeTrue)
			So(model.MetricKey("Shares").Valid(), ShouldBeFalse)
		})

		Convey("And comma lists are split and trimmed", func() {
			keys := model.ParseMetricKeys(" likes, ,revenue ,")
			So(keys, ShouldResemble, []model.MetricKey{model.MetricLikes, model.MetricRevenue})
		})
	})
}

func TestStatus_Label(t *testing.T) {
	Convey("Given each presence state", t, func() {
		So(model.StatusOnline.Label(), ShouldEqual, "Online")
		So(model.StatusAway.Label(), ShouldEqual, "Away")
		So(model.StatusOffline.Label(), ShouldEqual, "Offline")
		So(len(model.Statuses()), ShouldEqual, 3)
	})
}
