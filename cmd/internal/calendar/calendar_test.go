package calendar

import (
	"medicore/cmd/internal/domain/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestDayWindow_ContainsOnlyItsDate(t *testing.T) {
	appts := []*entity.Appointment{
		{ID: 1, Date: "2024-06-01", Time: "09:00"},
		{ID: 2, Date: "2024-06-02", Time: "09:00"},
		{ID: 3, Date: "2024-05-31", Time: "09:00"},
	}

	for _, a := range appts {
		window := Filter(appts, DayWindow(date(t, a.Date)))
		require.Len(t, window, 1)
		assert.Equal(t, a.ID, window[0].ID)
	}
}

func TestWeekWindow_StartsOnMonday(t *testing.T) {
	// 2024-06-03 is a Monday
	for _, d := range []string{"2024-06-03", "2024-06-05", "2024-06-08", "2024-06-09"} {
		t.Run(d, func(t *testing.T) {
			w := WeekWindow(date(t, d))
			assert.Equal(t, time.Monday, w.Start.Weekday())
			assert.Equal(t, "2024-06-03", w.StartDate())
			assert.Equal(t, "2024-06-09", w.EndDate())
			assert.Len(t, w.Days(), 7)
			assert.False(t, w.Start.After(date(t, d)))
		})
	}
}

func TestWeekWindow_AcrossYearBoundary(t *testing.T) {
	w := WeekWindow(date(t, "2025-01-01"))
	assert.Equal(t, "2024-12-30", w.StartDate())
	assert.Equal(t, "2025-01-05", w.EndDate())
}

func TestFilter_WeekSortedByTime(t *testing.T) {
	appts := []*entity.Appointment{
		{ID: 1, Date: "2024-06-04", Time: "14:30"},
		{ID: 2, Date: "2024-06-10", Time: "08:00"},
		{ID: 3, Date: "2024-06-03", Time: "09:15"},
		{ID: 4, Date: "2024-06-09", Time: "07:45"},
		{ID: 5, Date: "not a date", Time: "06:00"},
		{ID: 6, Date: "2024-06-05T00:00:00Z", Time: "05:00"},
	}

	got := Filter(appts, WeekWindow(date(t, "2024-06-05")))

	var ids []int
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int{4, 3, 1}, ids)
}

func TestFilter_EmptyWindowIsNotNil(t *testing.T) {
	got := Filter(nil, DayWindow(date(t, "2024-06-05")))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNavigate(t *testing.T) {
	ref := date(t, "2024-06-05")

	assert.Equal(t, "2024-06-06", Navigate(ref, Next, Day).Format("2006-01-02"))
	assert.Equal(t, "2024-06-04", Navigate(ref, Prev, Day).Format("2006-01-02"))
	assert.Equal(t, "2024-06-12", Navigate(ref, Next, Week).Format("2006-01-02"))
	assert.Equal(t, "2024-05-29", Navigate(ref, Prev, Week).Format("2006-01-02"))
}

func TestParseModeAndDirection(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Day, m)

	m, err = ParseMode("WEEK")
	require.NoError(t, err)
	assert.Equal(t, Week, m)

	_, err = ParseMode("month")
	assert.Error(t, err)

	d, err := ParseDirection("prev")
	require.NoError(t, err)
	assert.Equal(t, Prev, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
