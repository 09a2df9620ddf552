package ranking

import (
	"regexp"
	"strings"
)

var rankingLinePattern = regexp.MustCompile("(^([א-ת \\-`'\u05f3\u2019]+\\s)+)=\\s?(([1-9])|10|(\\d\\.\\d))$")

// ParseRankings turns a filled-in template back into a name to raw rating
// map. Each line is matched independently: "<name tokens> = <rating>" where
// the rating is an integer 1-10 or a one-decimal real. Non-matching lines
// are silently ignored, this parser never errors on garbage. When a name
// repeats across matching lines the last occurrence wins.
func ParseRankings(message string) map[string]string {
	out := make(map[string]string)

	for _, line := range strings.Split(message, "\n") {
		match := rankingLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		out[strings.TrimSpace(match[1])] = match[3]
	}

	return out
}
