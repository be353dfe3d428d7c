package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

// Fixed unit vocabulary. Longer spellings come first so the alternation does
// not stop at a prefix ("minutes" before "min", "miles" before "mi").
var quantityRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(km|miles|mi|minutes|mins|min|hours|hrs|hr|pages|glasses|times|reps|sets|cups|days|weeks)\b`)

var canonicalUnits = map[string]string{
	"mi":   "miles",
	"min":  "minutes",
	"mins": "minutes",
	"hr":   "hours",
	"hrs":  "hours",
}

// ExtractQuantity pulls at most one quantity/unit pair out of the text; the
// first regex match wins.
func ExtractQuantity(text string) (float64, string, bool) {
	m := quantityRe.FindStringSubmatch(text)
	if len(m) != 3 {
		return 0, "", false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	unit := strings.ToLower(m[2])
	if canonical, ok := canonicalUnits[unit]; ok {
		unit = canonical
	}
	return value, unit, true
}
