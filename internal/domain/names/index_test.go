package names_test

import (
	"testing"

	"github.com/LeifStrom/hiring/internal/domain/names"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex(t *testing.T) {
	Convey("Given an empty index", t, func() {
		idx := names.NewIndex()

		Convey("Then no name resolves", func() {
			So(idx.Has("Alice"), ShouldBeFalse)
			So(idx.Size(), ShouldEqual, 0)
		})

		Convey("When a name is recorded", func() {
			dup := idx.Record("Alice", 0)

			Convey("Then it resolves to its row", func() {
				So(dup, ShouldBeFalse)
				row, ok := idx.Lookup("Alice")
				So(ok, ShouldBeTrue)
				So(row, ShouldEqual, 0)
			})
		})

		Convey("When the same name is recorded twice", func() {
			idx.Record("Alice", 0)
			dup := idx.Record("Alice", 3)

			Convey("Then the first position wins and the collision is flagged", func() {
				So(dup, ShouldBeTrue)
				row, ok := idx.Lookup("Alice")
				So(ok, ShouldBeTrue)
				So(row, ShouldEqual, 0)
				So(idx.Duplicates(), ShouldResemble, []string{"Alice"})
				So(idx.Size(), ShouldEqual, 1)
			})
		})
	})
}
