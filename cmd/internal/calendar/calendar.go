// Package calendar computes the day and week windows of the appointment
// calendar and filters appointments into them.
package calendar

import (
	"fmt"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils"
	"sort"
	"strings"
	"time"
)

type Mode string

const (
	Day  Mode = "day"
	Week Mode = "week"
)

type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Day, nil
	case Day, Week:
		return m, nil
	}
	return "", fmt.Errorf("unknown view %q, expected day or week", s)
}

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Next, Prev:
		return d, nil
	}
	return "", fmt.Errorf("unknown step %q, expected next or prev", s)
}

// Window is an inclusive range of calendar dates.
type Window struct {
	Mode  Mode
	Start time.Time
	End   time.Time
}

// DayWindow is the single calendar date of date.
func DayWindow(date time.Time) Window {
	d := midnight(date)
	return Window{Mode: Day, Start: d, End: d}
}

// WeekWindow is the Monday-to-Sunday week containing date.
func WeekWindow(date time.Time) Window {
	d := midnight(date)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return Window{Mode: Week, Start: start, End: start.AddDate(0, 0, 6)}
}

func WindowFor(mode Mode, date time.Time) Window {
	if mode == Week {
		return WeekWindow(date)
	}
	return DayWindow(date)
}

// Navigate moves the reference date one day in day mode and seven days in
// week mode.
func Navigate(date time.Time, dir Direction, mode Mode) time.Time {
	days := 1
	if mode == Week {
		days = 7
	}
	if dir == Prev {
		days = -days
	}
	return date.AddDate(0, 0, days)
}

func (w Window) StartDate() string { return utils.FormatDate(w.Start) }

func (w Window) EndDate() string { return utils.FormatDate(w.End) }

// Days lists every date of the window in order.
func (w Window) Days() []string {
	var days []string
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, utils.FormatDate(d))
	}
	return days
}

// Contains compares calendar dates only; YYYY-MM-DD strings order the same
// way the dates do.
func (w Window) Contains(date string) bool {
	key := dateKey(date)
	return key != "" && key >= w.StartDate() && key <= w.EndDate()
}

// Filter returns the appointments inside w, ordered by time of day. The
// result is empty, never nil, when nothing matches.
func Filter(appts []*entity.Appointment, w Window) []*entity.Appointment {
	out := make([]*entity.Appointment, 0)
	for _, a := range appts {
		if w.Contains(a.Date) {
			out = append(out, a)
		}
	}
	SortByTime(out)
	return out
}

// SortByTime orders by the zero-padded HH:MM string; ties keep their order.
func SortByTime(appts []*entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Time < appts[j].Time
	})
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateKey returns s when it is a YYYY-MM-DD date and "" otherwise. Stores
// match dates as exact strings, so nothing longer is accepted here either.
func dateKey(s string) string {
	s = strings.TrimSpace(s)
	if _, err := utils.ParseDate(s); err != nil {
		return ""
	}
	return s
}
