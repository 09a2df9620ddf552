package matchday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate marks a date that matched syntactically but does not exist
// on the calendar, e.g. 31.04. It is distinct from "no date found".
var ErrInvalidDate = errors.New("invalid calendar date")

var (
	datePattern     = regexp.MustCompile(`((0?[1-9])|1\d|2\d|30|31)[./\\-]((0?[1-9])|1[012])[./\\-]((20)?([2-9]\d))`)
	locationPattern = regexp.MustCompile("מיקום: ([א-ת\\d \"]*)")

	rosterLinePattern   = regexp.MustCompile("^\\d{1,2}\\.(([א-ת \\-`'\u05f3\u2019]+)|)")
	rosterNameBlacklist = regexp.MustCompile("[^א-ת \\-`'\u05f3\u2019]")
)

// ParsedMessage holds whatever could be extracted from one announcement.
// Absent fields are reported through the Has flags, never as errors.
type ParsedMessage struct {
	Date        time.Time
	HasDate     bool
	Location    string
	HasLocation bool
	Roster      []string
}

// ParseMessage extracts the date, location and roster from a raw announcement.
// The only error it can return is ErrInvalidDate.
func ParseMessage(message string) (ParsedMessage, error) {
	out := ParsedMessage{Roster: ExtractRoster(message)}

	date, found, err := ExtractDate(message)
	if err != nil {
		return ParsedMessage{}, err
	}
	out.Date = date
	out.HasDate = found

	out.Location, out.HasLocation = ExtractLocation(message)

	return out, nil
}

// ExtractDate scans lines for a day-month-year triple with ./\- separators.
// The first matching line wins. Two-digit years are read as 20xx.
func ExtractDate(message string) (time.Time, bool, error) {
	for _, line := range strings.Split(message, "\n") {
		match := datePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		day, _ := strconv.Atoi(strings.TrimSpace(match[1]))
		month, _ := strconv.Atoi(strings.TrimSpace(match[3]))
		year := strings.TrimSpace(match[5])
		if len(year) == 2 {
			year = "20" + year
		}
		yearNum, _ := strconv.Atoi(year)

		date := time.Date(yearNum, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if date.Day() != day || date.Month() != time.Month(month) || date.Year() != yearNum {
			return time.Time{}, false, fmt.Errorf("%w: %02d-%02d-%d", ErrInvalidDate, day, month, yearNum)
		}

		return date, true, nil
	}

	return time.Time{}, false, nil
}

// ExtractLocation returns the text after the first "מיקום:" marker.
func ExtractLocation(message string) (string, bool) {
	for _, line := range strings.Split(message, "\n") {
		match := locationPattern.FindStringSubmatch(strings.TrimSpace(line))
		if match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}

	return "", false
}

// ExtractRoster collects the first maximal run of "<ordinal>.<name>" lines.
// The run ends at the first non-matching line after it started; numbered
// lines appearing later in the message are ignored. A matching line whose
// name strips down to nothing still contributes an empty entry.
func ExtractRoster(message string) []string {
	var names []string
	started := false

	for _, line := range strings.Split(message, "\n") {
		match := rosterLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match != nil {
			started = true
			names = append(names, rosterNameBlacklist.ReplaceAllString(strings.TrimSpace(match[1]), ""))
		} else if started {
			break
		}
	}

	return names
}
