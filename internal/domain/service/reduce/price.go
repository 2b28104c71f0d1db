package reduce

import (
	"regexp"
	"strconv"
	"strings"
)

var priceRe = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d+)?)`) //nolint:gochecknoglobals

// ExtractPrice returns the first dollar amount found in text.
func ExtractPrice(text string) (float64, bool) {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}

	return value, true
}
