package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/event-reminder/internal/event"
)

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	// "Mar 1-15" or "March 1-15"
	sameMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	// "Mar 1 - Apr 15" or "March 1 - April 15"
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	// "March" or "Mar"
	wholeMonth = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
	// "2026-11-01..2026-12-31"
	isoRange = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*\.\.\s*(\d{4}-\d{2}-\d{2})$`)
)

// ParseDateRange parses a date range string into inclusive start and end dates.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//   - "2026-11-01..2026-12-31" - Explicit dates
//
// The year is inferred from today:
//   - If the month is earlier than today's month, assumes next year
//   - Otherwise, uses today's year
//   - For cross-month ranges, if end month < start month, end is in next year
func ParseDateRange(input string, today event.Date) (*event.Date, *event.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if matches := sameMonthRange.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := yearForMonth(month, today)

		from, err := dayOf(year, month, matches[2])
		if err != nil {
			return nil, nil, err
		}
		to, err := dayOf(year, month, matches[3])
		if err != nil {
			return nil, nil, err
		}
		return ordered(from, to)
	}

	if matches := crossMonthRange.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		month2 := parseMonth(matches[3])

		year1 := yearForMonth(month1, today)
		year2 := year1
		// If month2 < month1, assume month2 is in the next year
		if month2 < month1 {
			year2++
		}

		from, err := dayOf(year1, month1, matches[2])
		if err != nil {
			return nil, nil, err
		}
		to, err := dayOf(year2, month2, matches[4])
		if err != nil {
			return nil, nil, err
		}
		return ordered(from, to)
	}

	if matches := wholeMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := yearForMonth(month, today)

		from := event.Date{Year: year, Month: month, Day: 1}
		// Last day of month
		to := event.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
		return &from, &to, nil
	}

	if matches := isoRange.FindStringSubmatch(input); matches != nil {
		from, err := event.ParseDate(matches[1])
		if err != nil {
			return nil, nil, err
		}
		to, err := event.ParseDate(matches[2])
		if err != nil {
			return nil, nil, err
		}
		return ordered(from, to)
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', 'March' or '2026-11-01..2026-12-31'")
}

func dayOf(year int, month time.Month, day string) (event.Date, error) {
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return event.Date{}, fmt.Errorf("invalid day: %s", day)
	}
	return event.NewDate(year, month, d)
}

func ordered(from, to event.Date) (*event.Date, *event.Date, error) {
	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))

	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "sept": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[name]
}

// yearForMonth returns today's year, or the next one if month has already
// passed.
func yearForMonth(month time.Month, today event.Date) int {
	if month < today.Month {
		return today.Year + 1
	}
	return today.Year
}
