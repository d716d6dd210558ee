package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/paddock/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPlacement(t *testing.T) {
	convey.Convey("Given placements", t, func() {
		convey.Convey("When unset", func() {
			data, err := json.Marshal(model.Placement(0))

			convey.Convey("Then it renders as a dash", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, `"-"`)
			})
		})

		convey.Convey("When set", func() {
			data, err := json.Marshal(model.Placement(3))

			convey.Convey("Then it renders as a number", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, `3`)
			})
		})

		convey.Convey("When reading either form back", func() {
			var p, q model.Placement
			convey.So(json.Unmarshal([]byte(`"-"`), &p), convey.ShouldBeNil)
			convey.So(json.Unmarshal([]byte(`7`), &q), convey.ShouldBeNil)

			convey.Convey("Then both decode", func() {
				convey.So(p, convey.ShouldEqual, model.Placement(0))
				convey.So(q, convey.ShouldEqual, model.Placement(7))
			})
		})
	})
}

func TestCareerStatsJSON(t *testing.T) {
	convey.Convey("Given career stats with a best finish", t, func() {
		c := model.CareerStats{GPEntered: 10, BestFinish: 2, BestFinishCount: 3}

		convey.Convey("When marshalled", func() {
			data, err := json.Marshal(c)
			convey.So(err, convey.ShouldBeNil)
			var out map[string]any
			convey.So(json.Unmarshal(data, &out), convey.ShouldBeNil)

			convey.Convey("Then the display label and numeric fields are both present", func() {
				convey.So(out["best_finish"], convey.ShouldEqual, "2 (x3)")
				convey.So(out["best_finish_position"], convey.ShouldEqual, float64(2))
				convey.So(out["best_finish_count"], convey.ShouldEqual, float64(3))
				convey.So(out["best_grid"], convey.ShouldEqual, "-")
				convey.So(out["gp_entered"], convey.ShouldEqual, float64(10))
			})
		})

		convey.Convey("When the driver never finished", func() {
			convey.So(model.CareerStats{}.BestFinishLabel(), convey.ShouldEqual, "-")
		})
	})
}

func TestRaceControlMessage(t *testing.T) {
	convey.Convey("Given a decoded race control message", t, func() {
		m := model.RaceControlMessage{
			"date":          "2024-03-02T15:03:00+00:00",
			"category":      "Flag",
			"message":       "GREEN LIGHT - PIT EXIT OPEN",
			"driver_number": json.Number("1"),
		}

		convey.Convey("Then the accessors read the typed fields", func() {
			convey.So(m.Date(), convey.ShouldEqual, "2024-03-02T15:03:00+00:00")
			convey.So(m.Category(), convey.ShouldEqual, "Flag")
			convey.So(m.Message(), convey.ShouldEqual, "GREEN LIGHT - PIT EXIT OPEN")
		})

		convey.Convey("Then non-string fields read as empty", func() {
			m["message"] = nil
			convey.So(m.Message(), convey.ShouldEqual, "")
		})
	})
}
