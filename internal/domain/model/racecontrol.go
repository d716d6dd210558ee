package model

// RaceControlMessage is one upstream race-control entry.
// Every upstream field is kept so the message can be re-emitted untouched;
// the accessors read the few fields the race window heuristics need.
type RaceControlMessage map[string]any

// Date returns the raw ISO-8601 timestamp, or "" when absent or not a string.
func (m RaceControlMessage) Date() string { return m.text("date") }

// Category returns the message category, e.g. "Flag", "Race", "SafetyCar".
func (m RaceControlMessage) Category() string { return m.text("category") }

// Message returns the free-text body.
func (m RaceControlMessage) Message() string { return m.text("message") }

func (m RaceControlMessage) text(key string) string {
	s, _ := m[key].(string)
	return s
}

// RaceWindow is the resolved start/end of a race plus the sorted message log.
// The timestamps are the upstream strings, not re-serialised times.
type RaceWindow struct {
	RaceStartDate string               `json:"race_start_date"`
	RaceEndDate   string               `json:"race_end_date"`
	AllMessages   []RaceControlMessage `json:"all_messages"`
}
