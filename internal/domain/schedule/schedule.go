// Package schedule turns upstream session records into the published race schedule.
package schedule

import (
	"context"
	"sort"
	"strconv"

	"github.com/okian/paddock/internal/domain/dedupe"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/types"
)

// SessionNameRace is the session_name filter used for the schedule.
const SessionNameRace = "Race"

// Normalize maps raw session records to SessionSummary values, keeps the first
// record for each session_key and sorts by date_start. Records without a usable
// session_key are all kept.
//
// date_start is compared as a string: upstream sends zero-padded UTC ISO-8601,
// so lexical order is chronological and malformed values sort predictably.
func Normalize(ctx context.Context, records []map[string]any) []model.SessionSummary {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithExpectedSize(len(records)))
	out := make([]model.SessionSummary, 0, len(records))
	for _, r := range records {
		s := Summarize(r)
		if s.SessionKey != 0 && seen.SeenAndRecord(ctx, strconv.Itoa(s.SessionKey)) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateStart < out[j].DateStart })
	return out
}

// Summarize keeps the schedule fields of one session record and drops the rest.
func Summarize(r map[string]any) model.SessionSummary {
	return model.SessionSummary{
		SessionKey:       types.Int(r["session_key"], 0),
		SessionName:      types.Text(r["session_name"]),
		SessionYear:      types.Int(r["year"], 0),
		CountryName:      types.Text(r["country_name"]),
		MeetingName:      types.Text(r["meeting_name"]),
		DateStart:        types.Text(r["date_start"]),
		CircuitShortName: types.Text(r["circuit_short_name"]),
	}
}
