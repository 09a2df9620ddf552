package matchday

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestExtractDate(t *testing.T) {
	t.Run("two digit year with dots", func(t *testing.T) {
		date, found, err := ExtractDate("משחק השבוע\nנתראה ב 21.8.26 כרגיל")
		if err != nil {
			t.Fatalf("extract date: %v", err)
		}
		if !found {
			t.Fatal("expected a date to be found")
		}
		want := time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC)
		if !date.Equal(want) {
			t.Fatalf("unexpected date: got=%s want=%s", date, want)
		}
	})

	t.Run("four digit year with hyphens", func(t *testing.T) {
		date, found, err := ExtractDate("21-08-2026")
		if err != nil {
			t.Fatalf("extract date: %v", err)
		}
		if !found {
			t.Fatal("expected a date to be found")
		}
		if FormatDate(date) != "21-08-2026" {
			t.Fatalf("unexpected date: got=%s", FormatDate(date))
		}
	})

	t.Run("backslash separators", func(t *testing.T) {
		date, found, err := ExtractDate(`5\3\27`)
		if err != nil {
			t.Fatalf("extract date: %v", err)
		}
		if !found {
			t.Fatal("expected a date to be found")
		}
		if FormatDate(date) != "05-03-2027" {
			t.Fatalf("unexpected date: got=%s", FormatDate(date))
		}
	})

	t.Run("first matching line wins", func(t *testing.T) {
		date, found, err := ExtractDate("12.12.26\n13.12.26")
		if err != nil {
			t.Fatalf("extract date: %v", err)
		}
		if !found {
			t.Fatal("expected a date to be found")
		}
		if FormatDate(date) != "12-12-2026" {
			t.Fatalf("unexpected date: got=%s", FormatDate(date))
		}
	})

	t.Run("impossible calendar date", func(t *testing.T) {
		_, _, err := ExtractDate("נפגשים ב 31.04.26")
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("no date present", func(t *testing.T) {
		_, found, err := ExtractDate("אין כאן תאריך בכלל")
		if err != nil {
			t.Fatalf("extract date: %v", err)
		}
		if found {
			t.Fatal("expected no date to be found")
		}
	})
}

func TestExtractLocation(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		location, found := ExtractLocation("משחק מחר\nמיקום: מגרש הספורטק 3\nנתראה")
		if !found {
			t.Fatal("expected a location to be found")
		}
		if location != "מגרש הספורטק 3" {
			t.Fatalf("unexpected location: got=%q", location)
		}
	})

	t.Run("absent", func(t *testing.T) {
		_, found := ExtractLocation("משחק מחר בשעה שמונה")
		if found {
			t.Fatal("expected no location to be found")
		}
	})
}

func TestExtractRoster(t *testing.T) {
	t.Run("first maximal run wins", func(t *testing.T) {
		message := "רשימה:\n1.דני\n2.יוסי כהן\n3.\nהודעה באמצע\n4.אבי"
		got := ExtractRoster(message)
		want := []string{"דני", "יוסי כהן", ""}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected roster: got=%v want=%v", got, want)
		}
	})

	t.Run("non hebrew characters stripped", func(t *testing.T) {
		got := ExtractRoster("1.רועי - חדש\n2.דני ⚽")
		want := []string{"רועי - חדש", "דני"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected roster: got=%v want=%v", got, want)
		}
	})

	t.Run("bare date line opens the block", func(t *testing.T) {
		// "21.8.26" is digits-dot-rest, so it reads as a numbered line with
		// an empty name and the location line below it terminates the run.
		got := ExtractRoster("21.8.26\nמיקום: ספורטק\n1.דני\n2.אבי")
		want := []string{""}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected roster: got=%v want=%v", got, want)
		}
	})

	t.Run("no numbered lines", func(t *testing.T) {
		if got := ExtractRoster("סתם הודעה\nבלי רשימה"); len(got) != 0 {
			t.Fatalf("unexpected roster: got=%v", got)
		}
	})
}

func TestParseMessage(t *testing.T) {
	message := "משחק!\nנתראה ב21.8.26\nמיקום: ספורטק\n1.דני\n2.אבי"

	parsed, err := ParseMessage(message)
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}
	if !parsed.HasDate || FormatDate(parsed.Date) != "21-08-2026" {
		t.Fatalf("unexpected date: got=%s found=%v", FormatDate(parsed.Date), parsed.HasDate)
	}
	if !parsed.HasLocation || parsed.Location != "ספורטק" {
		t.Fatalf("unexpected location: got=%q found=%v", parsed.Location, parsed.HasLocation)
	}
	if want := []string{"דני", "אבי"}; !reflect.DeepEqual(parsed.Roster, want) {
		t.Fatalf("unexpected roster: got=%v want=%v", parsed.Roster, want)
	}
}

func TestParseMessageInvalidDate(t *testing.T) {
	_, err := ParseMessage("31.04.26\n1.דני")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("21-08-2026")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if FormatDate(date) != "21-08-2026" {
		t.Fatalf("unexpected roundtrip: got=%s", FormatDate(date))
	}

	if _, err := ParseDate("2026-08-21"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
