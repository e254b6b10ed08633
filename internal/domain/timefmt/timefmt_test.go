package timefmt_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	timefmt "github.com/cmcleod/classpulse/internal/domain/timefmt"
)

func TestElapsed(t *testing.T) {
	Convey("Given a fixed reference time", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		Convey("When the timestamp is under a minute old", func() {
			Convey("Then it should read Just now", func() {
				So(timefmt.Elapsed(now, now), ShouldEqual, "Just now")
				So(timefmt.Elapsed(now, now.Add(-30*time.Second)), ShouldEqual, "Just now")
				So(timefmt.Elapsed(now, now.Add(-59*time.Second)), ShouldEqual, "Just now")
			})
		})

		Convey("When the timestamp sits in the future", func() {
			Convey("Then it should still read Just now", func() {
				So(timefmt.Elapsed(now, now.Add(30*time.Second)), ShouldEqual, "Just now")
				So(timefmt.Elapsed(now, now.Add(2*time.Hour)), ShouldEqual, "Just now")
			})
		})

		Convey("When the timestamp is minutes old", func() {
			Convey("Then whole minutes should floor", func() {
				So(timefmt.Elapsed(now, now.Add(-1*time.Minute)), ShouldEqual, "1m ago")
				So(timefmt.Elapsed(now, now.Add(-90*time.Second)), ShouldEqual, "1m ago")
				So(timefmt.Elapsed(now, now.Add(-5*time.Minute)), ShouldEqual, "5m ago")
				So(timefmt.Elapsed(now, now.Add(-59*time.Minute)), ShouldEqual, "59m ago")
			})
		})

		Convey("When the timestamp is hours old", func() {
			Convey("Then whole hours should floor", func() {
				So(timefmt.Elapsed(now, now.Add(-60*time.Minute)), ShouldEqual, "1h ago")
				So(timefmt.Elapsed(now, now.Add(-119*time.Minute)), ShouldEqual, "1h ago")
				So(timefmt.Elapsed(now, now.Add(-3*time.Hour)), ShouldEqual, "3h ago")
				So(timefmt.Elapsed(now, now.Add(-23*time.Hour-59*time.Minute)), ShouldEqual, "23h ago")
			})
		})

		Convey("When the timestamp is days old", func() {
			Convey("Then whole days should floor", func() {
				So(timefmt.Elapsed(now, now.Add(-24*time.Hour)), ShouldEqual, "1d ago")
				So(timefmt.Elapsed(now, now.Add(-47*time.Hour)), ShouldEqual, "1d ago")
				So(timefmt.Elapsed(now, now.Add(-10*24*time.Hour)), ShouldEqual, "10d ago")
				So(timefmt.Elapsed(now, now.Add(-365*24*time.Hour)), ShouldEqual, "365d ago")
			})
		})

		Convey("When the timestamp sits exactly on a tier boundary", func() {
			Convey("Then it should promote to the larger unit", func() {
				So(timefmt.Elapsed(now, now.Add(-time.Hour)), ShouldEqual, "1h ago")
				So(timefmt.Elapsed(now, now.Add(-24*time.Hour)), ShouldEqual, "1d ago")
			})
		})
	})
}
