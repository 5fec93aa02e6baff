package extraction

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried for direct parsing. The model is asked for ISO dates but
// historically also emits locale-formatted strings, which fall through to
// parseLocaleDeadline.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDeadline normalizes a free-text deadline into a timestamp. A nil
// result means no usable deadline; it never fails.
func ParseDeadline(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}

	return parseLocaleDeadline(s)
}

// parseLocaleDeadline handles the "M/D/YYYY, H:MM:SS AM|PM" shape.
func parseLocaleDeadline(s string) *time.Time {
	datePart, timePart, found := strings.Cut(s, ",")
	if !found {
		return nil
	}

	dateFields := strings.Split(strings.TrimSpace(datePart), "/")
	if len(dateFields) != 3 {
		return nil
	}

	clock, meridiem, found := strings.Cut(strings.TrimSpace(timePart), " ")
	if !found {
		return nil
	}

	clockFields := strings.Split(clock, ":")
	if len(clockFields) != 3 {
		return nil
	}

	nums := make([]int, 0, 6)
	for _, f := range append(dateFields, clockFields...) {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	month, day, year := nums[0], nums[1], nums[2]
	hour, minute, second := nums[3], nums[4], nums[5]

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return nil
	}

	switch strings.ToUpper(strings.TrimSpace(meridiem)) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return nil
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	return &t
}
