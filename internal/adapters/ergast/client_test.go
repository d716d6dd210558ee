package ergast_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/paddock/internal/adapters/ergast"
	"github.com/okian/paddock/internal/adapters/fetch"
	"github.com/okian/paddock/internal/domain/model"
)

// The standings page is capped at two rows server-side, so three rows arrive
// over two requests.
const standingsPage1 = `{"MRData":{"limit":"2","offset":"0","total":"3","StandingsTable":{"season":"2023","StandingsLists":[
 {"season":"2023","round":"22","DriverStandings":[
  {"position":"1","points":"575","Driver":{"driverId":"max_verstappen","permanentNumber":"33","code":"VER","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},"Constructors":[{"constructorId":"red_bull","name":"Red Bull"}]},
  {"position":"2","points":"285","Driver":{"driverId":"perez","permanentNumber":"11","code":"PER","givenName":"Sergio","familyName":"Pérez","nationality":"Mexican"},"Constructor":{"constructorId":"red_bull","name":"Red Bull"}}
 ]}]}}}`

const standingsPage2 = `{"MRData":{"limit":"2","offset":"2","total":"3","StandingsTable":{"season":"2023","StandingsLists":[
 {"season":"2023","round":"22","DriverStandings":[
  {"position":"3","points":"234.5","Driver":{"driverId":"hamilton","givenName":"Lewis","familyName":"Hamilton","nationality":"British"},"Constructors":[]}
 ]}]}}}`

const seasonResults = `{"MRData":{"limit":"2000","offset":"0","total":"3","RaceTable":{"Races":[
 {"season":"2023","round":"1","Results":[{"position":"1","grid":"2","points":"25","status":"Finished"}]},
 {"season":"2023","round":"2","Results":[{"position":"15","grid":"5","points":"0","status":"Accident"}]},
 {"season":"2023","round":"3","Results":[]}
]}}}`

const careerStandings = `{"MRData":{"limit":"2000","offset":"0","total":"3","StandingsTable":{"driverId":"max_verstappen","StandingsLists":[
 {"season":"2021","round":"22","DriverStandings":[{"position":"1","points":"395.5"}]},
 {"season":"2022","round":"22","DriverStandings":[{"position":1,"points":454}]},
 {"season":"2015","round":"19","DriverStandings":[]}
]}}}`

func newServer(t *testing.T, queries *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*queries = append(*queries, r.URL.RawQuery)
		switch r.URL.Path {
		case "/2023/driverStandings.json":
			if r.URL.Query().Get("offset") == "2" {
				_, _ = w.Write([]byte(standingsPage2))
				return
			}
			_, _ = w.Write([]byte(standingsPage1))
		case "/2023/drivers/max_verstappen/results.json":
			_, _ = w.Write([]byte(seasonResults))
		case "/drivers/max_verstappen/driverStandings.json":
			_, _ = w.Write([]byte(careerStandings))
		case "/1950/driverStandings.json":
			_, _ = w.Write([]byte(`{"MRData":{"limit":"2000","offset":"0","total":"0","StandingsTable":{"StandingsLists":[]}}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDriverStandings(t *testing.T) {
	Convey("Given a standings endpoint that pages", t, func() {
		var queries []string
		srv := newServer(t, &queries)
		client := ergast.New(fetch.New(), srv.URL, ergast.WithPageLimit(2000))

		rows, err := client.DriverStandings(context.Background(), 2023)
		So(err, ShouldBeNil)

		Convey("Every page is requested and merged", func() {
			So(queries, ShouldResemble, []string{"limit=2000", "limit=2000&offset=2"})
			So(rows, ShouldHaveLength, 3)
		})

		Convey("Rows are mapped with coerced numbers", func() {
			So(rows[0], ShouldResemble, model.DriverEntry{
				DriverID:        "max_verstappen",
				GivenName:       "Max",
				FamilyName:      "Verstappen",
				Code:            "VER",
				PermanentNumber: "33",
				Nationality:     "Dutch",
				TeamName:        "Red Bull",
				Position:        1,
				Points:          575.0,
			})
			So(rows[2].Points, ShouldEqual, 234.5)
		})

		Convey("A single constructor object resolves the team", func() {
			So(rows[1].TeamName, ShouldEqual, "Red Bull")
		})

		Convey("An empty constructor list leaves the team blank", func() {
			So(rows[2].TeamName, ShouldEqual, "")
			So(rows[2].Code, ShouldEqual, "")
		})
	})

	Convey("Given a season without standings", t, func() {
		var queries []string
		srv := newServer(t, &queries)
		client := ergast.New(fetch.New(), srv.URL)

		rows, err := client.DriverStandings(context.Background(), 1950)
		So(err, ShouldBeNil)
		So(rows, ShouldNotBeNil)
		So(rows, ShouldBeEmpty)
	})

	Convey("Given a failing endpoint", t, func() {
		var queries []string
		srv := newServer(t, &queries)
		client := ergast.New(fetch.New(), srv.URL)

		_, err := client.DriverStandings(context.Background(), 2099)
		So(errors.Is(err, fetch.ErrStatus), ShouldBeTrue)
	})
}

func TestResults(t *testing.T) {
	Convey("Given a driver's season results", t, func() {
		var queries []string
		srv := newServer(t, &queries)
		client := ergast.New(fetch.New(), srv.URL)

		races, err := client.SeasonResults(context.Background(), 2023, "max_verstappen")
		So(err, ShouldBeNil)
		So(races, ShouldHaveLength, 3)

		Convey("Classified results are coerced", func() {
			So(races[0], ShouldResemble, model.RaceResult{
				Season: "2023", Round: "1", Position: 1, Grid: 2, Points: 25.0, Status: "Finished",
			})
		})

		Convey("A race without result rows is an unclassified entry", func() {
			So(races[2], ShouldResemble, model.RaceResult{Season: "2023", Round: "3"})
		})
	})

	Convey("Given a driver's standings history", t, func() {
		var queries []string
		srv := newServer(t, &queries)
		client := ergast.New(fetch.New(), srv.URL)

		seasons, err := client.StandingsHistory(context.Background(), "max_verstappen")
		So(err, ShouldBeNil)

		Convey("Seasons without rows are skipped and positions coerced", func() {
			So(seasons, ShouldResemble, []model.SeasonStanding{
				{Season: "2021", Position: 1},
				{Season: "2022", Position: 1},
			})
		})
	})
}
