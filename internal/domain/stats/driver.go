package stats

import (
	"sort"
	"strings"

	"github.com/okian/paddock/internal/domain/model"
)

const fallbackCodeLength = 3

// NewDriverRecord derives the drivers.json row for a standings entry.
// The code falls back to the first three letters of the driver id, upper-cased.
func NewDriverRecord(e model.DriverEntry) model.DriverRecord {
	fullName := strings.TrimSpace(strings.TrimSpace(e.GivenName) + " " + strings.TrimSpace(e.FamilyName))

	code := e.Code
	if code == "" {
		id := []rune(e.DriverID)
		if len(id) > fallbackCodeLength {
			id = id[:fallbackCodeLength]
		}
		code = strings.ToUpper(string(id))
	}

	return model.DriverRecord{
		Slug:        Slugify(fullName),
		FullName:    fullName,
		Code:        code,
		Number:      e.PermanentNumber,
		TeamName:    e.TeamName,
		Nationality: e.Nationality,
	}
}

// SortDrivers orders records by team name, then full name.
func SortDrivers(records []model.DriverRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TeamName != records[j].TeamName {
			return records[i].TeamName < records[j].TeamName
		}
		return records[i].FullName < records[j].FullName
	})
}
