package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	app "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/config"
	"github.com/okian/roster/internal/domain/roster"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func recordsGauge() float64 {
	families, err := metrics.GetRegistry().Gather()
	convey.So(err, convey.ShouldBeNil)
	for _, f := range families {
		if f.GetName() == "roster_service_records" {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return -1
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		_ = os.Setenv("ROSTER_RECORD_COUNT", "12")
		_ = os.Setenv("ROSTER_SEED", "3")
		_ = os.Setenv("ROSTER_DEFAULT_METRIC", "likes")
		_ = os.Setenv("ROSTER_DEFAULT_SORT", "true")
		_ = os.Setenv("ROSTER_MAX_ROSTER_LIMIT", "5")
		defer func() {
			for _, k := range []string{"ROSTER_RECORD_COUNT", "ROSTER_SEED", "ROSTER_DEFAULT_METRIC",
				"ROSTER_DEFAULT_SORT", "ROSTER_MAX_ROSTER_LIMIT"} {
				_ = os.Unsetenv(k)
			}
		}()

		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, cfg, svc)

		convey.Convey("Then the roster reflects the configured session", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roster", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			var view roster.View
			convey.So(json.Unmarshal(w.Body.Bytes(), &view), convey.ShouldBeNil)
			convey.So(view.Total, convey.ShouldEqual, 12)
			convey.So(string(view.Metric), convey.ShouldEqual, "likes")
			convey.So(view.Sorted, convey.ShouldBeTrue)
		})

		convey.Convey("Then the configured limit cap is enforced", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roster?limit=6", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("Then the docs routes are registered", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then the service metrics updater mirrors the roster size", func() {
			metrics.UpdateRecordCount(0)
			updateServiceMetrics(svc)
			convey.So(recordsGauge(), convey.ShouldEqual, 12)
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background metric updaters", t, func() {
		convey.Convey("Then system metrics update without panicking", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updaters return when the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				startServiceMetricsUpdater(ctx, app.New())
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				convey.So("updaters still running", convey.ShouldBeEmpty)
			}
		})

		convey.Convey("Then a service that never started leaves the gauge alone", func() {
			metrics.UpdateRecordCount(7)
			updateServiceMetrics(app.New())
			convey.So(recordsGauge(), convey.ShouldEqual, 7)
		})
	})
}
