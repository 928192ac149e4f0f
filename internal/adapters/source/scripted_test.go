package source_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func collect(ctx context.Context, s source.EventSource) ([]model.RawEvent, error) {
	var got []model.RawEvent
	err := s.Stream(ctx, func(ev model.RawEvent) error {
		got = append(got, ev)
		return nil
	})
	return got, err
}

func TestScripted(t *testing.T) {
	script := []model.RawEvent{
		{Kind: model.RawMouseMove, Time: time.UnixMilli(100), X: 10, Y: 20},
		{Kind: model.RawButtonPress, Time: time.UnixMilli(150), Button: "Left"},
		{Kind: model.RawKeyPress, Time: time.UnixMilli(200), Key: "A"},
	}

	convey.Convey("Given a scripted source", t, func() {
		convey.Convey("When streamed without options", func() {
			got, err := collect(context.Background(), source.NewScripted(script))

			convey.Convey("Then every event arrives in order and the stream ends", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, script)
			})
		})

		convey.Convey("When emit fails", func() {
			boom := errors.New("boom")
			calls := 0
			err := source.NewScripted(script).Stream(context.Background(), func(model.RawEvent) error {
				calls++
				return boom
			})

			convey.Convey("Then the emit error is returned unchanged", func() {
				convey.So(err, convey.ShouldEqual, boom)
				convey.So(calls, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When restamped", func() {
			stamp := time.UnixMilli(9000)
			got, err := collect(context.Background(), source.NewScripted(script, source.WithRestamp(func() time.Time { return stamp })))

			convey.So(err, convey.ShouldBeNil)
			for _, ev := range got {
				convey.So(ev.Time, convey.ShouldEqual, stamp)
			}
		})

		convey.Convey("When holding after the script", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			got, err := collect(ctx, source.NewScripted(script, source.WithHold()))

			convey.Convey("Then it waits for cancellation", func() {
				convey.So(len(got), convey.ShouldEqual, 3)
				convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When repeating with an interval", func() {
			ctx, cancel := context.WithCancel(context.Background())
			var got []model.RawEvent
			err := source.NewScripted(script, source.WithRepeat(), source.WithInterval(time.Millisecond)).
				Stream(ctx, func(ev model.RawEvent) error {
					got = append(got, ev)
					if len(got) == 7 {
						cancel()
					}
					return nil
				})

			convey.Convey("Then the script loops until cancelled", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(len(got), convey.ShouldEqual, 7)
				convey.So(got[3], convey.ShouldResemble, script[0])
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			got, err := collect(ctx, source.NewScripted(script))

			convey.So(got, convey.ShouldBeEmpty)
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestEventSourceFunc(t *testing.T) {
	convey.Convey("Given a function source", t, func() {
		src := source.EventSourceFunc(func(_ context.Context, emit source.Emit) error {
			return emit(model.RawEvent{Kind: model.RawKeyRelease, Key: "Q"})
		})
		got, err := collect(context.Background(), src)

		convey.So(err, convey.ShouldBeNil)
		convey.So(got, convey.ShouldResemble, []model.RawEvent{{Kind: model.RawKeyRelease, Key: "Q"}})
	})
}

func TestDemoScript(t *testing.T) {
	convey.Convey("Given the demo script", t, func() {
		script := source.DemoScript()

		convey.So(len(script), convey.ShouldBeGreaterThan, 0)
		convey.So(script[0].Kind, convey.ShouldEqual, model.RawMouseMove)
		for _, ev := range script {
			convey.So(ev.Time.IsZero(), convey.ShouldBeTrue)
		}
	})
}
