package matchday

import (
	"fmt"
	"time"

	"github.com/kaduregel/matchday/internal/domain/player"
)

// DateLayout is the canonical day-month-year rendering of a matchday date.
const DateLayout = "02-01-2006"

// Matchday is one calendar day's session. At most one exists per date;
// inserting a second replaces the first.
type Matchday struct {
	Date            time.Time
	Location        string
	OriginalMessage string
	Roster          []string
	Teams           []Team
}

// TeamMember snapshots a player at generation time. The rating and
// characteristic may drift from the registry afterwards.
type TeamMember struct {
	Name           string
	Characteristic player.Characteristic
	Rating         float64
}

// Team is one generated side with the summed rating of its members.
type Team struct {
	Members     []TeamMember
	TotalRating float64
}

func (m Matchday) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("matchday date is required")
	}

	return nil
}

// FormatDate renders a date the way matchday keys are displayed and stored.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses a canonical matchday date key.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	return parsed, nil
}
