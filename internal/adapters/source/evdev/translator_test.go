package evdev_test

import (
	"testing"
	"time"

	"github.com/okian/inputtrail/internal/adapters/source/evdev"
	"github.com/okian/inputtrail/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	typSyn = 0
	typKey = 1
	typRel = 2
)

func feed(tr *evdev.Translator, events ...evdev.InputEvent) []model.RawEvent {
	var out []model.RawEvent
	for _, ev := range events {
		out = append(out, tr.Translate(ev)...)
	}
	return out
}

func ev(typ, code uint16, value int32) evdev.InputEvent {
	return evdev.InputEvent{Time: time.UnixMilli(42), Type: typ, Code: code, Value: value}
}

func TestTranslatorMotion(t *testing.T) {
	Convey("Given a translator at the origin", t, func() {
		tr := evdev.NewTranslator(0, 0, 0, 0)

		Convey("When relative motion is reported in frames", func() {
			got := feed(tr,
				ev(typRel, 0, 10), ev(typRel, 1, 20), ev(typSyn, 0, 0),
				ev(typRel, 0, 5), ev(typSyn, 0, 0),
			)

			Convey("Then one absolute move is emitted per frame", func() {
				So(got, ShouldResemble, []model.RawEvent{
					{Kind: model.RawMouseMove, Time: time.UnixMilli(42), X: 10, Y: 20},
					{Kind: model.RawMouseMove, Time: time.UnixMilli(42), X: 15, Y: 20},
				})
			})
		})

		Convey("When a frame carries no motion", func() {
			So(feed(tr, ev(typSyn, 0, 0)), ShouldBeEmpty)
		})

		Convey("When motion goes past the origin", func() {
			feed(tr, ev(typRel, 0, -50), ev(typSyn, 0, 0))
			x, y := tr.Position()

			Convey("Then it stops at zero", func() {
				So(x, ShouldEqual, 0.0)
				So(y, ShouldEqual, 0.0)
			})
		})

		Convey("When the kernel drops events", func() {
			got := feed(tr,
				ev(typRel, 0, 3), ev(typSyn, 3, 0),
				ev(typRel, 0, 100), ev(typSyn, 0, 0),
				ev(typRel, 1, 4), ev(typSyn, 0, 0),
			)

			Convey("Then everything up to the next report is discarded", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Y, ShouldEqual, 4.0)
			})
		})
	})

	Convey("Given a bounded translator", t, func() {
		tr := evdev.NewTranslator(100, 100, 120, 110)
		got := feed(tr, ev(typRel, 0, 50), ev(typRel, 1, 50), ev(typSyn, 0, 0))

		So(got[0].X, ShouldEqual, 120.0)
		So(got[0].Y, ShouldEqual, 110.0)
	})
}

func TestTranslatorKeys(t *testing.T) {
	Convey("Given key and button events", t, func() {
		tr := evdev.NewTranslator(0, 0, 0, 0)

		Convey("Keys press, repeat and release", func() {
			got := feed(tr, ev(typKey, 30, 1), ev(typKey, 30, 2), ev(typKey, 30, 0))

			So(got, ShouldResemble, []model.RawEvent{
				{Kind: model.RawKeyPress, Time: time.UnixMilli(42), Key: "A"},
				{Kind: model.RawKeyPress, Time: time.UnixMilli(42), Key: "A"},
				{Kind: model.RawKeyRelease, Time: time.UnixMilli(42), Key: "A"},
			})
		})

		Convey("Mouse buttons press and release by name", func() {
			got := feed(tr, ev(typKey, 0x110, 1), ev(typKey, 0x111, 0), ev(typKey, 0x112, 1))

			So(got[0].Kind, ShouldEqual, model.RawButtonPress)
			So(got[0].Button, ShouldEqual, "Left")
			So(got[1].Kind, ShouldEqual, model.RawButtonRelease)
			So(got[1].Button, ShouldEqual, "Right")
			So(got[2].Button, ShouldEqual, "Middle")
		})

		Convey("Unknown codes keep their number", func() {
			got := feed(tr, ev(typKey, 0x115, 1), ev(typKey, 500, 1))

			So(got[0].Button, ShouldEqual, "Unknown(277)")
			So(got[1].Key, ShouldEqual, "Unknown(500)")
		})

		Convey("Button repeats are ignored", func() {
			So(feed(tr, ev(typKey, 0x110, 2)), ShouldBeEmpty)
		})
	})
}
