package logcheck_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/inputtrail/internal/adapters/sink"
	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/internal/logcheck"
	"github.com/okian/inputtrail/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const header = "timestamp,event_type,key,button,x,y\n"

func check(input string, opts ...logcheck.Option) (*logcheck.Report, error) {
	return logcheck.Check(context.Background(), strings.NewReader(input), opts...)
}

func TestCheckValidLog(t *testing.T) {
	Convey("Given a log written by the sink", t, func() {
		_ = logger.InitWithWriter(io.Discard)
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "events.csv")

		s, err := sink.Open(ctx, path, sink.WithSync(false))
		So(err, ShouldBeNil)
		for _, r := range []model.Record{
			{Timestamp: 100, Kind: model.MouseMove, X: 10, Y: 20},
			{Timestamp: 150, Kind: model.ButtonPress, Button: "Left", X: 10, Y: 20},
			{Timestamp: 150, Kind: model.KeyPress, Key: "A"},
			{Timestamp: 210, Kind: model.KeyRelease, Key: "A"},
		} {
			So(s.Write(ctx, r), ShouldBeNil)
		}
		So(s.Close(), ShouldBeNil)

		Convey("When it is checked", func() {
			report, err := logcheck.CheckFile(ctx, path)
			So(err, ShouldBeNil)

			Convey("Then it has no problems and counts every kind", func() {
				So(report.OK(), ShouldBeTrue)
				So(report.Rows, ShouldEqual, 4)
				So(report.ByKind[model.MouseMove], ShouldEqual, 1)
				So(report.ByKind[model.ButtonPress], ShouldEqual, 1)
				So(report.ByKind[model.KeyPress], ShouldEqual, 1)
				So(report.ByKind[model.KeyRelease], ShouldEqual, 1)
				So(report.FirstTimestamp, ShouldEqual, int64(100))
				So(report.LastTimestamp, ShouldEqual, int64(210))
			})

			Convey("Then the summary says ok", func() {
				var buf bytes.Buffer
				So(logcheck.WriteSummary(&buf, report, false), ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, "rows: 4")
				So(out, ShouldContainSubstring, "mouse_move")
				So(out, ShouldContainSubstring, "span: 100 .. 210 (110 ms)")
				So(out, ShouldEndWith, "ok\n")
				So(out, ShouldNotContainSubstring, "button_release")
			})
		})
	})
}

func TestCheckProblems(t *testing.T) {
	Convey("Given logs with defects", t, func() {
		_ = logger.InitWithWriter(io.Discard)

		Convey("When the header is missing", func() {
			report, err := check("1,key_press,A,,,\n")
			So(err, ShouldBeNil)

			Convey("Then it is reported and the first row still counts", func() {
				So(report.TotalProblems, ShouldEqual, 1)
				So(report.Problems[0].Line, ShouldEqual, 1)
				So(errors.Is(report.Problems[0].Err, logcheck.ErrMissingHeader), ShouldBeTrue)
				So(report.Rows, ShouldEqual, 1)
			})
		})

		Convey("When the input is empty", func() {
			report, err := check("")
			So(err, ShouldBeNil)
			So(report.OK(), ShouldBeFalse)
			So(errors.Is(report.Problems[0].Err, logcheck.ErrMissingHeader), ShouldBeTrue)
		})

		Convey("When a timestamp goes backwards", func() {
			report, err := check(header + "200,key_press,A,,,\n100,key_release,A,,,\n300,key_press,B,,,\n")
			So(err, ShouldBeNil)

			Convey("Then the offending line is reported", func() {
				So(report.TotalProblems, ShouldEqual, 1)
				So(report.Problems[0].Line, ShouldEqual, 3)
				So(errors.Is(report.Problems[0].Err, logcheck.ErrOutOfOrder), ShouldBeTrue)
				So(report.Rows, ShouldEqual, 3)
				So(report.LastTimestamp, ShouldEqual, int64(300))
			})
		})

		Convey("When rows do not decode", func() {
			report, err := check(header + "x,key_press,A,,,\n1,key_press\n2,scroll,,,,\n")
			So(err, ShouldBeNil)

			Convey("Then each row is reported with its decoding error", func() {
				So(report.TotalProblems, ShouldEqual, 3)
				So(report.Rows, ShouldEqual, 0)
				So(report.Problems[0].Line, ShouldEqual, 2)
				So(errors.Is(report.Problems[0].Err, model.ErrMalformedField), ShouldBeTrue)
				So(errors.Is(report.Problems[1].Err, model.ErrArity), ShouldBeTrue)
				So(errors.Is(report.Problems[2].Err, model.ErrUnknownKind), ShouldBeTrue)
			})
		})

		Convey("When a row is not valid CSV", func() {
			report, err := check(header + "1,key_\"press,A,,,\n2,key_press,B,,,\n")
			So(err, ShouldBeNil)

			Convey("Then it is reported and reading continues", func() {
				So(report.TotalProblems, ShouldEqual, 1)
				So(errors.Is(report.Problems[0].Err, logcheck.ErrUnreadable), ShouldBeTrue)
				So(report.Rows, ShouldEqual, 1)
			})
		})

		Convey("When there are more problems than the limit", func() {
			input := header + strings.Repeat("bad\n", 5)
			report, err := check(input, logcheck.WithMaxProblems(2))
			So(err, ShouldBeNil)

			Convey("Then only the first ones are kept but all are counted", func() {
				So(report.Problems, ShouldHaveLength, 2)
				So(report.TotalProblems, ShouldEqual, 5)

				var buf bytes.Buffer
				So(logcheck.WriteSummary(&buf, report, true), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "problems: 5")
				So(buf.String(), ShouldContainSubstring, "line 2: ")
				So(buf.String(), ShouldContainSubstring, "... 3 more")
			})
		})
	})
}

func TestCheckErrors(t *testing.T) {
	Convey("Given conditions that stop a check", t, func() {
		_ = logger.InitWithWriter(io.Discard)

		Convey("When the file does not exist", func() {
			_, err := logcheck.CheckFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
			So(err, ShouldNotBeNil)
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := logcheck.Check(ctx, strings.NewReader(header))
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
