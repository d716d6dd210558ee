package types_test

import (
	"encoding/json"
	"math"
	"testing"

	types "github.com/okian/paddock/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInt(t *testing.T) {
	Convey("Given loosely typed upstream values", t, func() {
		Convey("When the value is a numeric string", func() {
			Convey("Then it coerces to the number", func() {
				So(types.Int("1", 0), ShouldEqual, 1)
				So(types.Int(" 12 ", 0), ShouldEqual, 12)
				So(types.Int("3.0", 0), ShouldEqual, 3)
				So(types.Int("7.9", 0), ShouldEqual, 7)
			})
		})

		Convey("When the value is already numeric", func() {
			Convey("Then it is used directly", func() {
				So(types.Int(float64(5), 0), ShouldEqual, 5)
				So(types.Int(json.Number("20"), 0), ShouldEqual, 20)
				So(types.Int(4, 0), ShouldEqual, 4)
				So(types.Int(true, 0), ShouldEqual, 1)
			})
		})

		Convey("When the value is missing or junk", func() {
			Convey("Then the caller default is returned", func() {
				So(types.Int(nil, 0), ShouldEqual, 0)
				So(types.Int(nil, -1), ShouldEqual, -1)
				So(types.Int("", 0), ShouldEqual, 0)
				So(types.Int("R", 0), ShouldEqual, 0)
				So(types.Int("nan", 9), ShouldEqual, 9)
				So(types.Int(math.Inf(1), 9), ShouldEqual, 9)
				So(types.Int([]any{1}, 3), ShouldEqual, 3)
			})
		})
	})
}

func TestFloat(t *testing.T) {
	Convey("Given points values", t, func() {
		So(types.Float("25", 0), ShouldEqual, 25.0)
		So(types.Float("12.5", 0), ShouldEqual, 12.5)
		So(types.Float(json.Number("0.5"), 0), ShouldEqual, 0.5)
		So(types.Float(nil, 0), ShouldEqual, 0.0)
		So(types.Float("abc", 1), ShouldEqual, 1.0)
		So(types.Float("NaN", 0), ShouldEqual, 0.0)
	})
}

func TestText(t *testing.T) {
	Convey("Given mixed identifier values", t, func() {
		So(types.Text("33"), ShouldEqual, "33")
		So(types.Text(json.Number("44")), ShouldEqual, "44")
		So(types.Text(float64(1)), ShouldEqual, "1")
		So(types.Text(nil), ShouldEqual, "")
		So(types.Text(map[string]any{}), ShouldEqual, "")
	})
}
