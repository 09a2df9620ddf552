package matchday

import (
	"strings"
	"testing"
	"time"

	"github.com/kaduregel/matchday/internal/domain/player"
)

func TestRenderSummaryRoster(t *testing.T) {
	m := Matchday{
		Date:     time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC),
		Location: "ספורטק",
	}
	roster := []RosterEntry{
		{Name: "דני", Rating: 7.5},
		{Name: "אבי", Rating: 8},
		{Name: "יוסי", Rating: 0},
	}

	got := RenderSummary(m, roster)
	want := strings.Join([]string{
		"הרשימה היומית כפי שנקלטה:",
		"תאריך: 21-08-2026",
		"מיקום: ספורטק",
		divider,
		"1.דני = 7.5",
		"2.אבי = 8.0",
		"3.יוסי = 0",
		divider,
	}, "\n")
	if got != want {
		t.Fatalf("unexpected summary:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderSummaryTeams(t *testing.T) {
	m := Matchday{
		Date: time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC),
		Teams: []Team{
			{
				Members: []TeamMember{
					{Name: "דני", Characteristic: player.CharacteristicOffensive, Rating: 8.5},
					{Name: "אבי", Characteristic: player.CharacteristicDefensive, Rating: 6.5},
				},
				TotalRating: 15,
			},
			{
				Members: []TeamMember{
					{Name: "איתי", Characteristic: player.CharacteristicGoalkeeper, Rating: 0},
				},
				TotalRating: 0,
			},
		},
	}

	// The roster block is suppressed once teams exist.
	got := RenderSummary(m, []RosterEntry{{Name: "דני", Rating: 8.5}})
	want := strings.Join([]string{
		"הרשימה היומית כפי שנקלטה:",
		"תאריך: 21-08-2026",
		"",
		"להלן הקבוצות שנוצרו עבור המשחק:",
		"קבוצה 1: (ציון - 15.00, ממוצע - 7.50)",
		"1.דני - 8.50 (התקפה)",
		"2.אבי - 6.50 (הגנה)",
		"",
		"",
		"קבוצה 2: (ציון - 0.00, ממוצע - 0.00)",
		"1.איתי - 0.00 (שוער)",
		"",
		"",
		"שיהיה בהצלחה!",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected summary:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatRating(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		8:         "8.0",
		9.5:       "9.5",
		23.0 / 3:  "7.666666666666667",
	}
	for in, want := range cases {
		if got := formatRating(in); got != want {
			t.Fatalf("unexpected rating format for %v: got=%s want=%s", in, got, want)
		}
	}
}

func TestFieldPlayerAverageGoalkeepersOnly(t *testing.T) {
	team := Team{
		Members: []TeamMember{
			{Name: "איתי", Characteristic: player.CharacteristicGoalkeeper, Rating: 0},
		},
	}
	if got := fieldPlayerAverage(team); got != 0 {
		t.Fatalf("unexpected average: got=%f want=0", got)
	}
}
