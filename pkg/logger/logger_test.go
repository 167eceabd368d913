package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Named("test"), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("json"), WithWriter(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info level", func() {
			Get().Info(ctx, "roster loaded", Int("paddlers", 12), Bool("fallback", false))

			Convey("Then the record carries fields and a source location", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "roster loaded")
				So(rec["paddlers"], ShouldEqual, float64(12))
				So(rec["fallback"], ShouldEqual, false)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the current level", func() {
			Get().Debug(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(ctx, "visible", Error(errors.New("boom")))

			Convey("Then debug records are written", func() {
				So(buf.String(), ShouldContainSubstring, "visible")
				So(buf.String(), ShouldContainSubstring, "boom")
			})
		})

		Convey("When using With and Named", func() {
			Get().Named("api").With(String("request_id", "abc")).Warn(ctx, "slow")

			Convey("Then the fields are grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, `"api":{`)
				So(buf.String(), ShouldContainSubstring, `"request_id":"abc"`)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "warn", "WARNING", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()

		Convey("Then logging does not panic", func() {
			So(func() { l.Error(context.Background(), "ignored") }, ShouldNotPanic)
		})
	})
}
