package fields

import (
	"strconv"
	"strings"
)

// PresentMarker is shown in place of a missing end date when a start date is set.
const PresentMarker = "Present"

// RangeSeparator sits between the start and end of a rendered date range.
const RangeSeparator = " – "

var monthAbbrev = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatMonthYear renders a stored "YYYY-MM" value as "Mon YYYY".
// Empty and malformed input both yield "".
func FormatMonthYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	year, month, ok := strings.Cut(value, "-")
	if !ok || len(year) != 4 {
		return ""
	}
	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		return ""
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}

	return monthAbbrev[m-1] + " " + year
}

// FormatRange renders a from/to pair of "YYYY-MM" values.
//
//	both set        -> "Sep 2023 – Jun 2024"
//	only from set   -> "Sep 2023 – Present"
//	only to set     -> "Jun 2024"
//	neither set     -> ""
//
// Each side is formatted first, so a malformed value counts as unset.
func FormatRange(from, to string) string {
	f := FormatMonthYear(from)
	t := FormatMonthYear(to)

	switch {
	case f == "" && t == "":
		return ""
	case t == "":
		return f + RangeSeparator + PresentMarker
	case f == "":
		return t
	default:
		return f + RangeSeparator + t
	}
}

// FormatDate renders a standalone date field. It accepts "YYYY-MM" like
// FormatMonthYear and also a bare four-digit year, which is kept as is.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) == 4 {
		if strings.Trim(value, "0123456789") != "" || value == "0000" {
			return ""
		}
		return value
	}
	return FormatMonthYear(value)
}
