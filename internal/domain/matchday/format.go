package matchday

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kaduregel/matchday/internal/domain/player"
)

const divider = "----------------------------------------"

// RosterEntry pairs a roster name with its rating at rendering time.
type RosterEntry struct {
	Name   string
	Rating float64
}

// RenderSummary renders a matchday into the display text sent to the group
// chat. While no teams exist it lists the numbered roster; once teams were
// generated it lists each team with member ratings, the team's rating sum
// and the average over its non-goalkeeper members. Pure, no external calls.
func RenderSummary(m Matchday, roster []RosterEntry) string {
	var b strings.Builder
	b.WriteString("הרשימה היומית כפי שנקלטה:\n")

	if !m.Date.IsZero() {
		fmt.Fprintf(&b, "תאריך: %s\n", FormatDate(m.Date))
	}
	if m.Location != "" {
		fmt.Fprintf(&b, "מיקום: %s\n", m.Location)
	}

	if len(roster) > 0 && len(m.Teams) == 0 {
		b.WriteString(divider + "\n")
		for i, entry := range roster {
			fmt.Fprintf(&b, "%d.%s = %s\n", i+1, entry.Name, formatRating(entry.Rating))
		}
		b.WriteString(divider + "\n")
	}

	if len(m.Teams) > 0 {
		b.WriteString("\nלהלן הקבוצות שנוצרו עבור המשחק:\n")
		for i, team := range m.Teams {
			fmt.Fprintf(&b, "קבוצה %d: (ציון - %.2f, ממוצע - %.2f)\n", i+1, team.TotalRating, fieldPlayerAverage(team))
			for j, member := range team.Members {
				fmt.Fprintf(&b, "%d.%s - %.2f (%s)\n", j+1, member.Name, member.Rating, member.Characteristic.HebrewLabel())
			}
			b.WriteString("\n\n")
		}
		b.WriteString("שיהיה בהצלחה!")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// formatRating prints a roster mean without fixed precision. Unrated
// players show a bare 0; whole means keep one fractional digit.
func formatRating(v float64) string {
	if v == 0 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func fieldPlayerAverage(team Team) float64 {
	var sum float64
	var count int
	for _, member := range team.Members {
		if member.Characteristic == player.CharacteristicGoalkeeper {
			continue
		}
		sum += member.Rating
		count++
	}
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
