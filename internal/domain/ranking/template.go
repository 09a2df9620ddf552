package ranking

import (
	"strconv"
	"strings"
)

// GenerateTemplate builds the fill-in message for one ranker: first the
// players they already rated with the stored value, then every remaining
// player with a blank value inviting completion. Output order follows
// allNames, so the template is deterministic for a given registry listing.
func GenerateTemplate(allNames []string, userRankings map[string]float64) string {
	var b strings.Builder

	if len(userRankings) == 0 {
		b.WriteString("לא קיימים שחקנים שדירגת.\n")
	} else {
		b.WriteString("אלו השחקנים שדירגת:\n")
		for _, name := range allNames {
			rating, ok := userRankings[name]
			if !ok {
				continue
			}
			b.WriteString(name)
			b.WriteString(" = ")
			b.WriteString(strconv.FormatFloat(rating, 'f', -1, 64))
			b.WriteString("\n")
		}
	}

	unranked := make([]string, 0, len(allNames))
	for _, name := range allNames {
		if _, ok := userRankings[name]; !ok {
			unranked = append(unranked, name)
		}
	}

	if len(unranked) == 0 {
		b.WriteString("\nדירגת את כל השחקנים האפשריים.")
	} else {
		b.WriteString("\nלהלן השחקנים שלא דירגת:\n")
		for _, name := range unranked {
			b.WriteString(name)
			b.WriteString(" = \n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
