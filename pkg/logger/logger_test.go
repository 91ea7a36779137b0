package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Then the global logger is available", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("roster"), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		defer func() { _ = InitWithWriter(&bytes.Buffer{}) }()

		ctx := context.Background()

		Convey("When logging at info with fields", func() {
			Get().Named("store").Info(ctx, "roster refreshed", String("generation", "g-1"), Int("records", 100), Bool("sorted", true))

			Convey("Then the message, fields, logger name and source are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "roster refreshed")
				So(out, ShouldContainSubstring, "generation=g-1")
				So(out, ShouldContainSubstring, "records=100")
				So(out, ShouldContainSubstring, "sorted=true")
				So(out, ShouldContainSubstring, "logger=store")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the current level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden message")
			So(SetLevelString("info"), ShouldBeNil)

			Convey("Then nothing is written", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden message")
			})
		})

		Convey("When switching to json output", func() {
			So(SetFormat("json"), ShouldBeNil)
			Get().Warn(ctx, "json line", Int("rows", 3))
			So(SetFormat("text"), ShouldBeNil)

			Convey("Then a JSON object is written", func() {
				line := strings.TrimSpace(buf.String())
				var decoded map[string]interface{}
				So(json.Unmarshal([]byte(line), &decoded), ShouldBeNil)
				So(decoded["msg"], ShouldEqual, "json line")
				So(decoded["rows"], ShouldEqual, float64(3))
			})
		})
	})
}

func TestLoggerSettings(t *testing.T) {
	Convey("Given level and format settings", t, func() {
		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "WARN", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			So(SetLevelString("info"), ShouldBeNil)
		})

		Convey("And unknown levels are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("And unknown formats are rejected", func() {
			So(SetFormat("xml"), ShouldNotBeNil)
		})

		Convey("And a nil writer is rejected", func() {
			So(InitWithWriter(nil), ShouldNotBeNil)
		})
	})
}
