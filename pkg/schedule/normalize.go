package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in priority order; the first successful parse
// wins. Slash dates are listed before ISO, then free-form month names,
// then generic last-resort layouts.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2006/01/02",
	"01-02-2006",
}

// NormalizeDate converts a date string in any recognized format to
// YYYY-MM-DD. Unparsable input (including empty) degrades to today's
// date rather than failing: a bad date must only lose one field, never
// abort an import.
func NormalizeDate(input string) string {
	s := strings.TrimSpace(input)
	if s != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return time.Now().Format("2006-01-02")
}

var (
	clock24Re  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	meridiemRe = regexp.MustCompile(`(?i)^([0-9]{1,2})(?::([0-9]{2}))?\s*(am|pm)$`)
	bareHourRe = regexp.MustCompile(`^[0-9]{1,2}$`)
)

// NormalizeTime converts a time string to 24-hour HH:MM. Already-valid
// 24-hour values pass through, 12-hour values are converted, a bare
// 1-2 digit number is a whole hour. Anything else is returned unchanged;
// this function never fails.
func NormalizeTime(input string) string {
	s := strings.TrimSpace(input)
	if clock24Re.MatchString(s) {
		return s
	}
	if m := meridiemRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToLower(m[3])
		if meridiem == "am" && hour == 12 {
			hour = 0
		} else if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	if bareHourRe.MatchString(s) {
		if hour, err := strconv.Atoi(s); err == nil && hour <= 23 {
			return fmt.Sprintf("%02d:00", hour)
		}
	}
	return input
}

// SplitName divides a full name into first/last: the final
// whitespace-delimited token is the surname, everything before it the
// first name. A single token is treated as a surname only.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	last = parts[len(parts)-1]
	first = strings.Join(parts[:len(parts)-1], " ")
	return first, last
}

// MondayOf returns the Monday of the week containing t, at midnight in
// t's location.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
