package seed_test

import (
	"context"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/seed"
	"github.com/LeifStrom/hiring/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := seed.NewGenerator(42)

		Convey("Names are unique across a large draw", func() {
			seen := make(map[string]bool)
			for i := 0; i < 500; i++ {
				a := gen.Next()
				So(seen[a.Name], ShouldBeFalse)
				seen[a.Name] = true
			}
		})

		Convey("Generated rows survive the worksheet codec", func() {
			for i := 0; i < 100; i++ {
				a := gen.Next()
				row := a.ToRow()
				So(len(row), ShouldEqual, len(model.Header()))

				got, err := model.ParseRow(i, row)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, a.Name)
				So(got.Ratings, ShouldResemble, a.Ratings)
			}
		})

		Convey("Ratings are either absent or within range", func() {
			for i := 0; i < 200; i++ {
				a := gen.Next()
				for _, v := range a.Ratings.Values() {
					So(v, ShouldBeBetweenOrEqual, 0, 10)
				}
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		client := sheets.NewInMemoryClient()
		cfg := &seed.Config{
			Worksheet: "active",
			Count:     25,
			Seed:      7,
			Client:    client,
		}

		Convey("Run creates the worksheet and appends every applicant", func() {
			So(seed.Run(context.Background(), cfg), ShouldBeNil)
			So(len(client.Rows("active")), ShouldEqual, 25)
			So(client.Calls["ensure_worksheet"], ShouldEqual, 1)
		})

		Convey("Run rejects a missing worksheet name", func() {
			cfg.Worksheet = ""
			So(seed.Run(context.Background(), cfg), ShouldNotBeNil)
		})

		Convey("Run rejects a non-positive count", func() {
			cfg.Count = 0
			So(seed.Run(context.Background(), cfg), ShouldNotBeNil)
		})

		Convey("Run without a client requires a spreadsheet id", func() {
			cfg.Client = nil
			So(seed.Run(context.Background(), cfg), ShouldNotBeNil)
		})
	})
}
