package scoring_test

import (
	"errors"
	"testing"

	"github.com/wodboard/wodboard/internal/scoring"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeTime(t *testing.T) {
	Convey("Given a time-scored event with a 720s cap", t, func() {
		Convey("When parsing a plain MM:SS duration", func() {
			v, err := scoring.Normalize("12:05", scoring.KindTime, 720)

			Convey("Then it should yield total seconds", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 725)
			})

			Convey("And formatting the seconds back should round-trip", func() {
				So(scoring.FormatSeconds(725), ShouldEqual, "12:05")
			})
		})

		Convey("When parsing an HH:MM:SS duration", func() {
			v, err := scoring.Normalize("1:02:03", scoring.KindTime, 720)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 3723)
			So(scoring.FormatSeconds(3723), ShouldEqual, "1:02:03")
		})

		Convey("When parsing the capped-completion shorthand", func() {
			Convey("Then CAP:05 adds the penalty beyond the cap", func() {
				v, err := scoring.Normalize("CAP:05", scoring.KindTime, 720)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 725)
			})

			Convey("And CAP:00 is exactly the cap value", func() {
				v, err := scoring.Normalize("CAP:00", scoring.KindTime, 720)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 720)
			})

			Convey("And lowercase with whitespace is accepted", func() {
				v, err := scoring.Normalize("  cap:10 ", scoring.KindTime, 720)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 730)
			})
		})

		Convey("When the event has no cap, CAP falls back to a base of 0", func() {
			v, err := scoring.Normalize("CAP:05", scoring.KindTime, 0)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 5)
		})

		Convey("When the input is malformed", func() {
			for _, raw := range []string{"", "abc", "12", "12:xx", "-1:30", "1:2:3:4", "CAP:9999", "CAP:-5"} {
				_, err := scoring.Normalize(raw, scoring.KindTime, 720)

				var invalid *scoring.InvalidScoreError
				So(err, ShouldNotBeNil)
				So(errors.As(err, &invalid), ShouldBeTrue)
			}
		})
	})
}

func TestNormalizeReps(t *testing.T) {
	Convey("Given a reps-scored event", t, func() {
		Convey("When parsing a plain count", func() {
			v, err := scoring.Normalize("150", scoring.KindReps, 0)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 150)
		})

		Convey("When parsing zero", func() {
			v, err := scoring.Normalize("0", scoring.KindReps, 0)

			Convey("Then zero is a valid count, distinct from invalid input", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When the input is malformed it is invalid, never defaulted to zero", func() {
			for _, raw := range []string{"", "abc", "-3", "12.5", "10:00"} {
				_, err := scoring.Normalize(raw, scoring.KindReps, 0)

				var invalid *scoring.InvalidScoreError
				So(errors.As(err, &invalid), ShouldBeTrue)
			}
		})
	})
}
