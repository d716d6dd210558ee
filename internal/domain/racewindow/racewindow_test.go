package racewindow_test

import (
	"errors"
	"testing"

	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/racewindow"
	. "github.com/smartystreets/goconvey/convey"
)

func msg(date, category, text string) model.RaceControlMessage {
	m := model.RaceControlMessage{"category": category, "message": text}
	if date != "" {
		m["date"] = date
	}
	return m
}

func TestResolve(t *testing.T) {
	Convey("Given a race control log", t, func() {
		Convey("When explicit start and chequered markers exist", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T16:32:11+00:00", "Flag", "CHEQUERED FLAG"),
				msg("2024-03-02T15:03:00+00:00", "Race", "Race start"),
				msg("2024-03-02T15:20:00+00:00", "Flag", "YELLOW IN TRACK SECTOR 4"),
			}

			w, err := racewindow.Resolve(log)

			Convey("Then the markers bound the window", func() {
				So(err, ShouldBeNil)
				So(w.RaceStartDate, ShouldEqual, "2024-03-02T15:03:00+00:00")
				So(w.RaceEndDate, ShouldEqual, "2024-03-02T16:32:11+00:00")
			})

			Convey("And all messages come back sorted", func() {
				So(len(w.AllMessages), ShouldEqual, 3)
				So(w.AllMessages[0].Message(), ShouldEqual, "Race start")
				So(w.AllMessages[2].Message(), ShouldEqual, "CHEQUERED FLAG")
			})
		})

		Convey("When the start marker is missing but a green flag exists", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T14:50:00+00:00", "Race", "FORMATION LAP"),
				msg("2024-03-02T15:00:00+00:00", "Flag", "GREEN FLAG - TRACK CLEAR"),
				msg("2024-03-02T16:30:00+00:00", "Flag", "CHEQUERED FLAG"),
			}

			w, err := racewindow.Resolve(log)

			Convey("Then the green flag outranks the earlier Race category message", func() {
				So(err, ShouldBeNil)
				So(w.RaceStartDate, ShouldEqual, "2024-03-02T15:00:00+00:00")
			})
		})

		Convey("When several chequered flags exist", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T15:00:00+00:00", "Race", "RACE START"),
				msg("2024-03-02T16:30:00+00:00", "Flag", "CHEQUERED FLAG"),
				msg("2024-03-02T16:31:00+00:00", "Flag", "Chequered flag for car 2"),
				msg("2024-03-02T16:35:00+00:00", "Race", "RACE FINISHED"),
			}

			w, err := racewindow.Resolve(log)

			Convey("Then the last chequered flag wins over a later Race category message", func() {
				So(err, ShouldBeNil)
				So(w.RaceEndDate, ShouldEqual, "2024-03-02T16:31:00+00:00")
			})
		})

		Convey("When only Race category messages exist", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T16:40:00+00:00", "Race", "RACE RESULT PROVISIONAL"),
				msg("2024-03-02T14:00:00+00:00", "Other", "PIT EXIT OPEN"),
				msg("2024-03-02T15:00:00+00:00", "Race", "FORMATION LAP"),
			}

			w, err := racewindow.Resolve(log)

			Convey("Then it falls back to the first and last of that category", func() {
				So(err, ShouldBeNil)
				So(w.RaceStartDate, ShouldEqual, "2024-03-02T15:00:00+00:00")
				So(w.RaceEndDate, ShouldEqual, "2024-03-02T16:40:00+00:00")
			})
		})

		Convey("When the only end candidate predates the start", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T15:00:00+00:00", "Flag", "CHEQUERED FLAG"),
				msg("2024-03-02T15:10:00+00:00", "Flag", "Race start"),
			}

			_, err := racewindow.Resolve(log)

			Convey("Then it is an error, not a negative window", func() {
				So(errors.Is(err, racewindow.ErrEndNotAfterStart), ShouldBeTrue)
			})
		})

		Convey("When start and end resolve to the same Race message", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T15:00:00+00:00", "Race", "SESSION STARTED"),
			}

			_, err := racewindow.Resolve(log)

			Convey("Then the zero-length window is rejected", func() {
				So(errors.Is(err, racewindow.ErrEndNotAfterStart), ShouldBeTrue)
			})
		})

		Convey("When no start candidate exists", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T16:30:00+00:00", "Flag", "CHEQUERED FLAG"),
			}

			_, err := racewindow.Resolve(log)

			Convey("Then the start error is reported", func() {
				So(errors.Is(err, racewindow.ErrStartNotFound), ShouldBeTrue)
			})
		})

		Convey("When no end candidate exists", func() {
			log := []model.RaceControlMessage{
				msg("2024-03-02T15:00:00+00:00", "Flag", "GREEN FLAG"),
			}

			_, err := racewindow.Resolve(log)

			Convey("Then the end error is reported", func() {
				So(errors.Is(err, racewindow.ErrEndNotFound), ShouldBeTrue)
			})
		})

		Convey("When the log is empty", func() {
			_, err := racewindow.Resolve(nil)

			Convey("Then the start error is reported", func() {
				So(errors.Is(err, racewindow.ErrStartNotFound), ShouldBeTrue)
			})
		})

		Convey("When some messages have no usable date", func() {
			log := []model.RaceControlMessage{
				msg("", "Race", "Race start"),
				msg("not-a-date", "Flag", "CHEQUERED FLAG"),
				msg("2024-03-02T15:00:00Z", "Race", "Race start"),
				msg("2024-03-02T16:30:00.250000+00:00", "Flag", "CHEQUERED FLAG"),
			}

			w, err := racewindow.Resolve(log)

			Convey("Then they are skipped by the search", func() {
				So(err, ShouldBeNil)
				So(w.RaceStartDate, ShouldEqual, "2024-03-02T15:00:00Z")
				So(w.RaceEndDate, ShouldEqual, "2024-03-02T16:30:00.250000+00:00")
			})

			Convey("And passed through after the sorted ones", func() {
				So(len(w.AllMessages), ShouldEqual, 4)
				So(w.AllMessages[2].Date(), ShouldEqual, "")
				So(w.AllMessages[3].Date(), ShouldEqual, "not-a-date")
			})
		})

		Convey("When messages carry extra upstream fields", func() {
			start := msg("2024-03-02T15:00:00+00:00", "Race", "Race start")
			start["lap_number"] = 1
			start["flag"] = nil
			log := []model.RaceControlMessage{start, msg("2024-03-02T16:30:00+00:00", "Flag", "CHEQUERED FLAG")}

			w, err := racewindow.Resolve(log)

			Convey("Then they survive untouched", func() {
				So(err, ShouldBeNil)
				So(w.AllMessages[0]["lap_number"], ShouldEqual, 1)
				_, hasFlag := w.AllMessages[0]["flag"]
				So(hasFlag, ShouldBeTrue)
			})
		})
	})
}

func TestParseTimestamp(t *testing.T) {
	Convey("Given upstream date strings", t, func() {
		Convey("Then offset and Z forms are equivalent", func() {
			a, okA := racewindow.ParseTimestamp("2024-03-02T15:00:00+00:00")
			b, okB := racewindow.ParseTimestamp("2024-03-02T15:00:00Z")
			So(okA, ShouldBeTrue)
			So(okB, ShouldBeTrue)
			So(a.Equal(b), ShouldBeTrue)
		})

		Convey("Then non-UTC offsets are normalised", func() {
			a, ok := racewindow.ParseTimestamp("2024-03-02T18:00:00+03:00")
			So(ok, ShouldBeTrue)
			So(a.Hour(), ShouldEqual, 15)
		})

		Convey("Then offset-less values are read as UTC", func() {
			a, ok := racewindow.ParseTimestamp("2024-03-02T15:00:00.5")
			So(ok, ShouldBeTrue)
			So(a.Hour(), ShouldEqual, 15)
		})

		Convey("Then junk is rejected", func() {
			_, ok := racewindow.ParseTimestamp("yesterday")
			So(ok, ShouldBeFalse)
			_, ok = racewindow.ParseTimestamp("")
			So(ok, ShouldBeFalse)
		})
	})
}
