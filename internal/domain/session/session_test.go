package session_test

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	session "github.com/cmcleod/classpulse/internal/domain/session"
)

func TestNew(t *testing.T) {
	Convey("Given a new session", t, func() {
		Convey("When created with defaults", func() {
			s := session.New()

			Convey("Then the pseudonym should follow the Anonymous N format", func() {
				So(s.Pseudonym(), ShouldStartWith, "Anonymous ")

				n, err := strconv.Atoi(strings.TrimPrefix(s.Pseudonym(), "Anonymous "))
				So(err, ShouldBeNil)
				So(n, ShouldBeGreaterThanOrEqualTo, 1)
				So(n, ShouldBeLessThanOrEqualTo, 1000)
			})

			Convey("And the start time should be set", func() {
				So(s.StartedAt().IsZero(), ShouldBeFalse)
			})
		})

		Convey("When created with a seeded random source", func() {
			a := session.New(session.WithRand(rand.New(rand.NewSource(42))))
			b := session.New(session.WithRand(rand.New(rand.NewSource(42))))

			Convey("Then equal seeds should produce equal pseudonyms", func() {
				So(a.Pseudonym(), ShouldEqual, b.Pseudonym())
			})
		})

		Convey("When created with a fake clock", func() {
			at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
			clock := clockwork.NewFakeClockAt(at)
			s := session.New(session.WithClock(clock))

			Convey("Then the start time should come from the clock", func() {
				So(s.StartedAt(), ShouldEqual, at)
			})
		})

		Convey("When many sessions are created", func() {
			rng := rand.New(rand.NewSource(7))

			Convey("Then every pseudonym number should stay in range", func() {
				for i := 0; i < 500; i++ {
					s := session.New(session.WithRand(rng))
					n, err := strconv.Atoi(strings.TrimPrefix(s.Pseudonym(), "Anonymous "))
					So(err, ShouldBeNil)
					So(n, ShouldBeGreaterThanOrEqualTo, 1)
					So(n, ShouldBeLessThanOrEqualTo, 1000)
				}
			})
		})

		Convey("When the identity is read twice", func() {
			s := session.New(session.WithRand(rand.New(rand.NewSource(3))))

			Convey("Then it should not change between reads", func() {
				So(s.Pseudonym(), ShouldEqual, s.Pseudonym())
				So(s.StartedAt(), ShouldEqual, s.StartedAt())
			})
		})
	})
}
