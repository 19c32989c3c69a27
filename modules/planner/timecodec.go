package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical times are 24-hour "HH:MM" strings; 12-hour triples exist only
// at the input/display boundary.

// To24Hour converts a 12-hour {hour, minute, meridiem} input triple to a
// canonical time. An hour that is blank, zero or unparsable collapses to
// "no time set" and yields the empty string; a valid noon/midnight is
// entered as 12. An unparsable minute defaults to 0.
func To24Hour(hourText, minuteText, meridiem string) string {
	h, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil || h == 0 {
		return ""
	}

	m, err := strconv.Atoi(strings.TrimSpace(minuteText))
	if err != nil {
		m = 0
	}

	hours := h % 12
	if meridiem == "PM" {
		hours += 12
	}
	return fmt.Sprintf("%02d:%02d", hours, m)
}

// Split24To12 converts a canonical time back to 12-hour input fields.
// Empty input yields empty hour and minute with meridiem defaulting to
// "AM".
func Split24To12(canonical string) (hour, minute, meridiem string) {
	if canonical == "" {
		return "", "", "AM"
	}

	h, m := splitCanonical(canonical)
	meridiem = "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		meridiem = "PM"
	case h > 12:
		h -= 12
		meridiem = "PM"
	}
	return strconv.Itoa(h), fmt.Sprintf("%02d", m), meridiem
}

// FormatTime12 renders a canonical time as a human "H:MM AM|PM" label.
// Empty input yields the empty string.
func FormatTime12(canonical string) string {
	if canonical == "" {
		return ""
	}

	h, m := splitCanonical(canonical)
	meridiem := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		meridiem = "PM"
	case h > 12:
		h -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, meridiem)
}

// ParseTimeToMin converts a canonical time to minutes since midnight.
// Empty and malformed inputs yield 0, which orders them first; the result
// is only ever used for relative ordering.
func ParseTimeToMin(canonical string) int {
	if canonical == "" {
		return 0
	}
	h, m := splitCanonical(canonical)
	return h*60 + m
}

// splitCanonical parses "HH:MM" leniently, substituting 0 for any piece
// that fails to parse.
func splitCanonical(canonical string) (h, m int) {
	parts := strings.SplitN(canonical, ":", 2)
	if v, err := strconv.Atoi(parts[0]); err == nil {
		h = v
	}
	if len(parts) == 2 {
		if v, err := strconv.Atoi(parts[1]); err == nil {
			m = v
		}
	}
	return h, m
}
