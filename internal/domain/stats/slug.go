package stats

import (
	"regexp"
	"strings"
)

var (
	nonAlphaNum  = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedDash = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases text, turns every non [a-z0-9] run into one hyphen and
// trims hyphens at both ends. "Max Verstappen" -> "max-verstappen".
//
// The slug names stats/<slug>.json, so readers of the artifacts must use this
// exact rule. Non-ASCII letters are not transliterated: "Hülkenberg" -> "h-lkenberg".
func Slugify(text string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(text), "-")
	s = repeatedDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
