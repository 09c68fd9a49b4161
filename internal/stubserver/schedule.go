package stubserver

import (
	"fmt"
	"strings"
	"time"
)

// ParseSpan разбирает интервал вида "08:30-10:00"
func ParseSpan(s string) (start, end time.Duration, err error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("stubserver: span %q: want HH:MM-HH:MM", s)
	}
	if start, err = parseClock(from); err != nil {
		return 0, 0, err
	}
	if end, err = parseClock(to); err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("stubserver: span %q ends before it starts", s)
	}
	return start, end, nil
}

// Weekdays занятия с понедельника по пятницу в одном интервале
func Weekdays(start, end time.Duration) []Class {
	classes := make([]Class, 0, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		classes = append(classes, Class{Weekday: d, Start: start, End: end})
	}
	return classes
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("stubserver: time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
