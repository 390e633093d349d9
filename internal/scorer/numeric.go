package scorer

import (
	"regexp"
	"strconv"
)

var numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseAverage extracts every number in text and returns their mean, so a
// range like "10-15" reads as 12.5. It reports false when text has no number.
// More than two numbers are averaged uniformly.
func ParseAverage(text string) (float64, bool) {
	tokens := numberRegex.FindAllString(text, -1)
	if len(tokens) == 0 {
		return 0, false
	}
	var sum float64
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false
		}
		sum += v
	}
	return sum / float64(len(tokens)), true
}

// parseOptional is ParseAverage returning a pointer, nil when absent.
func parseOptional(text string) *float64 {
	v, ok := ParseAverage(text)
	if !ok {
		return nil
	}
	return &v
}
