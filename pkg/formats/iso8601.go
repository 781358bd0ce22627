package formats

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	calendarExtended = regexp.MustCompile(`^([+-]?\d{4})-(\d{2})-(\d{2})$`)
	calendarBasic    = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	yearMonth        = regexp.MustCompile(`^([+-]?\d{4})-(\d{2})$`)
	yearOnly         = regexp.MustCompile(`^([+-]?\d{4})$`)
	ordinalDate      = regexp.MustCompile(`^(\d{4})-?(\d{3})$`)
	weekDate         = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?([1-7]))?$`)
	isoTime          = regexp.MustCompile(`^(\d{2})(?::?(\d{2})(?::?(\d{2})(?:[.,]\d+)?)?)?(Z|[+-]\d{2}(?::?\d{2})?)?$`)
)

// IsDate accepts the ISO-8601 date forms (calendar, reduced precision,
// ordinal and week dates in basic or extended notation), optionally
// followed by a 'T' time of day with fraction and zone designator.
func IsDate(v string) bool {
	datePart, timePart, hasTime := strings.Cut(v, "T")
	if !validISODate(datePart) {
		return false
	}
	if !hasTime {
		return true
	}
	return validISOTime(timePart)
}

func validISODate(s string) bool {
	if m := calendarExtended.FindStringSubmatch(s); m != nil {
		return validYMD(m[1], m[2], m[3])
	}
	if m := calendarBasic.FindStringSubmatch(s); m != nil {
		return validYMD(m[1], m[2], m[3])
	}
	if m := yearMonth.FindStringSubmatch(s); m != nil {
		month := atoi(m[2])
		return month >= 1 && month <= 12
	}
	if yearOnly.MatchString(s) {
		return true
	}
	if m := ordinalDate.FindStringSubmatch(s); m != nil {
		year, day := atoi(m[1]), atoi(m[2])
		days := 365
		if isLeap(year) {
			days = 366
		}
		return day >= 1 && day <= days
	}
	if m := weekDate.FindStringSubmatch(s); m != nil {
		year, week := atoi(m[1]), atoi(m[2])
		return week >= 1 && week <= weeksInYear(year)
	}
	return false
}

func validYMD(y, m, d string) bool {
	year, month, day := atoi(y), atoi(m), atoi(d)
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysIn(time.Month(month), year)
}

func validISOTime(s string) bool {
	m := isoTime.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hour := atoi(m[1])
	if hour > 24 {
		return false
	}
	if m[2] != "" && atoi(m[2]) > 59 {
		return false
	}
	// leap second
	if m[3] != "" && atoi(m[3]) > 60 {
		return false
	}
	if hour == 24 && (atoi(m[2]) != 0 || atoi(m[3]) != 0) {
		return false
	}
	return true
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// weeksInYear returns 52 or 53; Dec 28 always falls in the last ISO week.
func weeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
