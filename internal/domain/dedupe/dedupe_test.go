package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	dedupe "github.com/okian/paddock/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should be empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When creating a deduper with a size hint", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithExpectedSize(24))

			Convey("Then it should still start empty", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(ctx, "9472")

				Convey("Then it should return false and record the key", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already seen", func() {
				d.SeenAndRecord(ctx, "9472")
				seen := d.SeenAndRecord(ctx, "9472")

				Convey("Then it should return true without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And many distinct keys are recorded", func() {
				for i := 0; i < 100; i++ {
					So(d.SeenAndRecord(ctx, fmt.Sprintf("key-%d", i)), ShouldBeFalse)
				}

				Convey("Then all of them are kept", func() {
					So(d.Size(), ShouldEqual, 100)
					So(d.SeenAndRecord(ctx, "key-0"), ShouldBeTrue)
				})
			})
		})
	})
}
