// Package racewindow infers when a race actually started and ended from its
// race-control message log.
package racewindow

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/paddock/internal/domain/model"
)

// CategoryRace is the race-control category used as the last-resort marker.
const CategoryRace = "Race"

// Layouts accepted for message dates. Offset-less values are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an upstream ISO-8601 date. A trailing "Z" is accepted.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// rule is one step of a candidate cascade.
type rule func(model.RaceControlMessage) bool

// Start candidates, in priority order.
var startRules = []rule{
	func(m model.RaceControlMessage) bool {
		return strings.HasPrefix(strings.ToLower(m.Message()), "race start")
	},
	func(m model.RaceControlMessage) bool {
		return strings.Contains(strings.ToLower(m.Message()), "green flag")
	},
	isRaceCategory,
}

// End candidates, in priority order. Each is searched from the end of the log.
var endRules = []rule{
	func(m model.RaceControlMessage) bool {
		return strings.Contains(strings.ToLower(m.Message()), "chequered flag")
	},
	isRaceCategory,
}

func isRaceCategory(m model.RaceControlMessage) bool {
	return m.Category() == CategoryRace
}

type dated struct {
	msg model.RaceControlMessage
	at  time.Time
}

// Sort orders messages by date. Messages whose date is missing or unparseable
// are returned separately, in arrival order.
func Sort(messages []model.RaceControlMessage) (sorted, undated []model.RaceControlMessage) {
	ds := make([]dated, 0, len(messages))
	for _, m := range messages {
		at, ok := ParseTimestamp(m.Date())
		if !ok {
			undated = append(undated, m)
			continue
		}
		ds = append(ds, dated{msg: m, at: at})
	}
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].at.Before(ds[j].at) })

	sorted = make([]model.RaceControlMessage, len(ds))
	for i, d := range ds {
		sorted[i] = d.msg
	}
	return sorted, undated
}

// Resolve finds the race window in an unordered race-control log.
//
// Start: first "race start" prefix, else first "green flag", else first Race
// category message. End: last "chequered flag", else last Race category message.
// A missing candidate or an end that is not strictly after the start is an
// error; the window is never clamped.
//
// AllMessages holds the dated messages in order followed by the undated ones.
func Resolve(messages []model.RaceControlMessage) (model.RaceWindow, error) {
	sorted, undated := Sort(messages)

	start, ok := first(sorted, startRules)
	if !ok {
		return model.RaceWindow{}, ErrStartNotFound
	}
	end, ok := last(sorted, endRules)
	if !ok {
		return model.RaceWindow{}, ErrEndNotFound
	}

	startAt, okStart := ParseTimestamp(start.Date())
	endAt, okEnd := ParseTimestamp(end.Date())
	if !okStart || !okEnd {
		return model.RaceWindow{}, ErrInvalidTimestamp
	}
	if !endAt.After(startAt) {
		return model.RaceWindow{}, ErrEndNotAfterStart
	}

	return model.RaceWindow{
		RaceStartDate: start.Date(),
		RaceEndDate:   end.Date(),
		AllMessages:   append(sorted, undated...),
	}, nil
}

func first(msgs []model.RaceControlMessage, rules []rule) (model.RaceControlMessage, bool) {
	for _, r := range rules {
		for _, m := range msgs {
			if r(m) {
				return m, true
			}
		}
	}
	return nil, false
}

func last(msgs []model.RaceControlMessage, rules []rule) (model.RaceControlMessage, bool) {
	for _, r := range rules {
		for i := len(msgs) - 1; i >= 0; i-- {
			if r(msgs[i]) {
				return msgs[i], true
			}
		}
	}
	return nil, false
}
