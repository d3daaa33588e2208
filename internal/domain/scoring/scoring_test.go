package scoring_test

import (
	"errors"
	"testing"

	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func ratings(v [model.SkillCount]int) model.Ratings {
	return model.RatingsFromValues(v)
}

func TestScore(t *testing.T) {
	Convey("Given a full set of valid ratings", t, func() {
		r := ratings([model.SkillCount]int{8, 7, 9, 6, 10, 5, 7})

		Convey("Then the score is the mean rounded to two decimals", func() {
			got, err := scoring.Score(r)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 7.43)
		})
	})

	Convey("Given all ratings at the same value", t, func() {
		r := ratings([model.SkillCount]int{10, 10, 10, 10, 10, 10, 10})

		Convey("Then the score equals that value", func() {
			got, err := scoring.Score(r)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 10.0)
		})
	})

	Convey("Given a rating below the domain", t, func() {
		r := ratings([model.SkillCount]int{8, 7, 9, 6, 10, 0, 7})

		Convey("Then scoring fails with ErrRatingRange", func() {
			_, err := scoring.Score(r)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, scoring.ErrRatingRange), ShouldBeTrue)
		})
	})

	Convey("Given a rating above the domain", t, func() {
		r := ratings([model.SkillCount]int{8, 7, 9, 6, 10, 11, 7})

		Convey("Then scoring fails with ErrRatingRange", func() {
			_, err := scoring.Score(r)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, scoring.ErrRatingRange), ShouldBeTrue)
		})
	})
}

func TestRecorded(t *testing.T) {
	Convey("Given a partially rated applicant", t, func() {
		r := ratings([model.SkillCount]int{8, 0, 0, 6, 0, 0, 7})

		Convey("Then only the rated skills contribute to the mean", func() {
			So(scoring.Recorded(r), ShouldEqual, 7.0)
		})
	})

	Convey("Given an unrated applicant", t, func() {
		Convey("Then the recorded score is zero", func() {
			So(scoring.Recorded(model.Ratings{}), ShouldEqual, 0.0)
		})
	})

	Convey("Given a fully rated applicant", t, func() {
		r := ratings([model.SkillCount]int{8, 7, 9, 6, 10, 5, 7})

		Convey("Then Recorded matches Score", func() {
			want, err := scoring.Score(r)
			So(err, ShouldBeNil)
			So(scoring.Recorded(r), ShouldEqual, want)
		})
	})
}
