package stats

import (
	"regexp"
	"strings"
)

var lappedStatus = regexp.MustCompile(`^\+\d+\s+Laps?$`)

// Finished reports whether a result status counts as a classified finish:
// it contains "Finished", or it is a lapped finisher such as "+1 Lap" / "+12 Laps".
// Everything else is a DNF.
func Finished(status string) bool {
	if status == "" {
		return false
	}
	if strings.Contains(status, "Finished") {
		return true
	}
	return lappedStatus.MatchString(status)
}
