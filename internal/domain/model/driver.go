package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DriverRecord is one row of drivers.json.
type DriverRecord struct {
	Slug        string `json:"slug"`
	FullName    string `json:"full_name"`
	Code        string `json:"code"`
	Number      string `json:"number"`
	TeamName    string `json:"team_name"`
	Nationality string `json:"nationality"`
}

// DriverEntry is a season standings row reduced to what the stats need.
type DriverEntry struct {
	DriverID        string
	GivenName       string
	FamilyName      string
	Code            string
	PermanentNumber string
	Nationality     string
	TeamName        string
	Position        int
	Points          float64
}

// RaceResult is one driver's classified result in one race.
// Position is 0 when the driver was not classified.
type RaceResult struct {
	Season   string
	Round    string
	Position int
	Grid     int
	Points   float64
	Status   string
}

// SeasonStanding is a driver's final (or current) position in one season.
type SeasonStanding struct {
	Season   string
	Position int
}

// Placement is a finishing or grid position where 0 means "none".
// It serialises as "-" when unset, matching what the front end renders.
type Placement int

// MarshalJSON implements json.Marshaler.
func (p Placement) MarshalJSON() ([]byte, error) {
	if p <= 0 {
		return []byte(`"-"`), nil
	}
	return []byte(strconv.Itoa(int(p))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Placement) UnmarshalJSON(data []byte) error {
	if string(data) == `"-"` || string(data) == "null" {
		*p = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("placement: %w", err)
	}
	*p = Placement(n)
	return nil
}

// SeasonStats is one driver's aggregate for a single year.
// Sprint fields are reserved; the results source has no reliable sprint breakdown.
type SeasonStats struct {
	SeasonYear     int       `json:"season_year"`
	SeasonPosition Placement `json:"season_position"`
	SeasonPoints   float64   `json:"season_points"`
	GPRaces        int       `json:"gp_races"`
	GPPoints       float64   `json:"gp_points"`
	GPPodiums      int       `json:"gp_podiums"`
	GPTop10s       int       `json:"gp_top10s"`
	Wins           int       `json:"wins"`
	DNFs           int       `json:"dnfs"`
	BestGrid       Placement `json:"best_grid"`
	Poles          int       `json:"poles"`
	SprintRaces    int       `json:"sprint_races"`
	SprintPoints   float64   `json:"sprint_points"`
	SprintPodiums  int       `json:"sprint_podiums"`
	SprintPoles    int       `json:"sprint_poles"`
	SprintTop10s   int       `json:"sprint_top10s"`
}

// CareerStats is one driver's all-time aggregate.
type CareerStats struct {
	GPEntered          int       `json:"gp_entered"`
	Points             float64   `json:"points"`
	BestFinish         Placement `json:"best_finish_position"`
	BestFinishCount    int       `json:"best_finish_count"`
	Podiums            int       `json:"podiums"`
	BestGrid           Placement `json:"best_grid"`
	Poles              int       `json:"poles"`
	WorldChampionships int       `json:"world_championships"`
	DNFs               int       `json:"dnfs"`
}

// BestFinishLabel renders the best finish as "<pos> (x<count>)", or "-" when never classified.
func (c CareerStats) BestFinishLabel() string {
	if c.BestFinish <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d (x%d)", c.BestFinish, c.BestFinishCount)
}

// MarshalJSON adds the display label "best_finish" next to the numeric fields.
func (c CareerStats) MarshalJSON() ([]byte, error) {
	type plain CareerStats
	return json.Marshal(struct {
		plain
		BestFinishLabel string `json:"best_finish"`
	}{plain: plain(c), BestFinishLabel: c.BestFinishLabel()})
}

// DriverStats is the content of stats/<slug>.json.
type DriverStats struct {
	Season SeasonStats `json:"season"`
	Career CareerStats `json:"career"`
}
