package ergast

import (
	"encoding/json"

	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/types"
)

// Numeric fields arrive as strings on most seasons and as numbers on some,
// so they are decoded as any and coerced through types.

type envelope struct {
	MRData mrData `json:"MRData"`
}

type mrData struct {
	Limit          any            `json:"limit"`
	Offset         any            `json:"offset"`
	Total          any            `json:"total"`
	StandingsTable standingsTable `json:"StandingsTable"`
	RaceTable      raceTable      `json:"RaceTable"`
}

type standingsTable struct {
	StandingsLists []standingsList `json:"StandingsLists"`
}

type standingsList struct {
	Season          any              `json:"season"`
	Round           any              `json:"round"`
	DriverStandings []driverStanding `json:"DriverStandings"`
}

type driverStanding struct {
	Position     any             `json:"position"`
	Points       any             `json:"points"`
	Driver       driver          `json:"Driver"`
	Constructors json.RawMessage `json:"Constructors"`
	Constructor  json.RawMessage `json:"Constructor"`
}

type driver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber any    `json:"permanentNumber"`
	Code            string `json:"code"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	Nationality     string `json:"nationality"`
}

type constructor struct {
	Name string `json:"name"`
}

type raceTable struct {
	Races []race `json:"Races"`
}

type race struct {
	Season  any      `json:"season"`
	Round   any      `json:"round"`
	Results []result `json:"Results"`
}

type result struct {
	Position any    `json:"position"`
	Grid     any    `json:"grid"`
	Points   any    `json:"points"`
	Status   string `json:"status"`
}

// teamName accepts the constructor as a list (usual) or a single object.
func (s driverStanding) teamName() string {
	for _, raw := range []json.RawMessage{s.Constructors, s.Constructor} {
		if len(raw) == 0 {
			continue
		}
		var list []constructor
		if err := json.Unmarshal(raw, &list); err == nil {
			if len(list) > 0 && list[0].Name != "" {
				return list[0].Name
			}
			continue
		}
		var one constructor
		if err := json.Unmarshal(raw, &one); err == nil && one.Name != "" {
			return one.Name
		}
	}
	return ""
}

func (s driverStanding) entry() model.DriverEntry {
	return model.DriverEntry{
		DriverID:        s.Driver.DriverID,
		GivenName:       s.Driver.GivenName,
		FamilyName:      s.Driver.FamilyName,
		Code:            s.Driver.Code,
		PermanentNumber: types.Text(s.Driver.PermanentNumber),
		Nationality:     s.Driver.Nationality,
		TeamName:        s.teamName(),
		Position:        types.Int(s.Position, 0),
		Points:          types.Float(s.Points, 0),
	}
}

// result returns this driver's entry in the race; a race with no result rows
// counts as an unclassified entry.
func (r race) result() model.RaceResult {
	out := model.RaceResult{
		Season: types.Text(r.Season),
		Round:  types.Text(r.Round),
	}
	if len(r.Results) == 0 {
		return out
	}
	res := r.Results[0]
	out.Position = types.Int(res.Position, 0)
	out.Grid = types.Int(res.Grid, 0)
	out.Points = types.Float(res.Points, 0)
	out.Status = res.Status
	return out
}

func (l standingsList) standing() (model.SeasonStanding, bool) {
	if len(l.DriverStandings) == 0 {
		return model.SeasonStanding{}, false
	}
	return model.SeasonStanding{
		Season:   types.Text(l.Season),
		Position: types.Int(l.DriverStandings[0].Position, 0),
	}, true
}
