// Package model contains domain models passed between layers.
package model

import "encoding/json"

// SessionSummary is one race session in the published schedule.
type SessionSummary struct {
	SessionKey       int    `json:"session_key"`
	SessionName      string `json:"session_name"`
	SessionYear      int    `json:"session_year"`
	CountryName      string `json:"country_name"`
	MeetingName      string `json:"meeting_name"`
	DateStart        string `json:"date_start"` // zero-padded UTC ISO-8601, compared as a string
	CircuitShortName string `json:"circuit_short_name"`
}

// TelemetryChunk holds the raw location and position samples of one replay window.
type TelemetryChunk struct {
	Locations []json.RawMessage `json:"locations"`
	Positions []json.RawMessage `json:"positions"`
}
