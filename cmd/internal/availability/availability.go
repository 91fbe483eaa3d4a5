// Package availability turns a doctor's stored weekday schedule into a fixed
// seven-day structure and answers whether the doctor works on a given day.
package availability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	NoSchedule        Status = "No Schedule"
	ScheduleError     Status = "Schedule Error"
	AvailableToday    Status = "Available Today"
	NotAvailableToday Status = "Not Available Today"
)

// ErrMalformed wraps every reason a stored schedule could not be parsed.
var ErrMalformed = errors.New("malformed availability")

// WeeklySchedule holds the slot labels for each day, indexed by time.Weekday.
// A day without slots is an empty (nil) entry.
type WeeklySchedule [7][]string

type Result struct {
	Status    Status `json:"status"`
	Available bool   `json:"available"`
	Slots     string `json:"slots,omitempty"`
}

// WeekdayKey is the lowercase full weekday name used as schedule key.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// Parse reads a stored schedule. The document is either an object keyed by
// weekday name, or that same object serialized into a JSON string. ok is
// false when no schedule is stored at all.
func Parse(raw []byte) (s WeeklySchedule, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if isBlank(raw) {
		return s, false, nil
	}

	if raw[0] == '"' {
		var inner string
		if err = json.Unmarshal(raw, &inner); err != nil {
			return s, false, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = bytes.TrimSpace([]byte(inner))
		if isBlank(raw) {
			return s, false, nil
		}
	}

	var days map[string]json.RawMessage
	if err = json.Unmarshal(raw, &days); err != nil {
		return s, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for key, value := range days {
		day, known := weekdayByKey[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			continue
		}
		var slots []string
		if err = json.Unmarshal(value, &slots); err != nil {
			return WeeklySchedule{}, false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
		}
		s[day] = compact(slots)
	}
	return s, true, nil
}

// On reports the schedule for one weekday.
func (s WeeklySchedule) On(day time.Weekday) Result {
	slots := s[day]
	if len(slots) == 0 {
		return Result{Status: NotAvailableToday}
	}
	return Result{Status: AvailableToday, Available: true, Slots: strings.Join(slots, ", ")}
}

func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	m := make(map[string][]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if len(s[d]) > 0 {
			m[WeekdayKey(d)] = s[d]
		}
	}
	return json.Marshal(m)
}

// Today answers for the weekday of now. It never fails: a missing or
// malformed schedule is reported through the result status.
func Today(raw []byte, now time.Time) Result {
	s, ok, err := Parse(raw)
	if err != nil {
		return Result{Status: ScheduleError}
	}
	if !ok {
		return Result{Status: NoSchedule}
	}
	return s.On(now.Weekday())
}

var weekdayByKey = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		m[WeekdayKey(d)] = d
	}
	return m
}()

func isBlank(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func compact(slots []string) []string {
	var out []string
	for _, s := range slots {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
