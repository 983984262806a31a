package schedule

import (
	"time"

	"classmark.io/entities"
)

// IsLiveNow reports whether the course's scheduled class is in session at
// now. The class window is inclusive at both ends.
func IsLiveNow(s entities.CourseSchedule, now time.Time) bool {
	if len(s.DaysOfWeek) == 0 || s.StartTime == "" || s.EndTime == "" {
		return false
	}
	if !IsActiveOccurrence(s, now) {
		return false
	}

	startMin, err := s.StartMinutes()
	if err != nil {
		return false
	}
	endMin, err := s.EndMinutes()
	if err != nil {
		return false
	}

	y, m, d := now.Date()
	classStart := time.Date(y, m, d, startMin/60, startMin%60, 0, 0, now.Location())
	classEnd := time.Date(y, m, d, endMin/60, endMin%60, 0, 0, now.Location())
	return !now.Before(classStart) && !now.After(classEnd)
}

// EnumerateSessions returns every active occurrence between the
// schedule's start and end dates inclusive, ascending by date. The list
// is recomputed fresh on every call.
func EnumerateSessions(s entities.CourseSchedule) []entities.ScheduleOccurrence {
	active, _ := enumerate(s)
	return active
}

// CancelledSessions returns the occurrences suppressed by exception
// dates, for callers that render cancelled markers on a calendar.
func CancelledSessions(s entities.CourseSchedule) []entities.ScheduleOccurrence {
	_, cancelled := enumerate(s)
	return cancelled
}

// enumerate walks the date range day by day and filters through the
// recurrence rules. The day-by-day walk is the ground truth: it lands on
// every matching weekday of an active week even when the start date
// itself is not a scheduled day.
func enumerate(s entities.CourseSchedule) (active, cancelled []entities.ScheduleOccurrence) {
	start, err := s.StartOn()
	if err != nil {
		return nil, nil
	}
	end, err := s.EndOn()
	if err != nil {
		return nil, nil
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !s.HasDay(weekdayName(day)) {
			continue
		}
		if !patternActive(s.Recurrence, weeksSinceStart(start, day)) {
			continue
		}
		occ := entities.ScheduleOccurrence{
			Date:      day.Format(entities.DateLayout),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
		if s.Recurrence.HasException(occ.Date) {
			occ.IsException = true
			cancelled = append(cancelled, occ)
			continue
		}
		active = append(active, occ)
	}
	return active, cancelled
}

// steppedSessionDates is the week-strided fast path: it jumps over
// inactive weeks instead of testing every day, scanning only the seven
// days of each active week. It must produce exactly the date set of the
// daily filter; engine tests hold the two together.
func steppedSessionDates(s entities.CourseSchedule) []string {
	start, err := s.StartOn()
	if err != nil {
		return nil
	}
	end, err := s.EndOn()
	if err != nil {
		return nil
	}

	stride := 1
	switch s.Recurrence.Pattern {
	case entities.RecurrenceBiweekly:
		stride = 2
	case entities.RecurrenceCustom:
		if s.Recurrence.Interval < 1 {
			return nil
		}
		stride = s.Recurrence.Interval
	}

	var dates []string
	for weekStart := start; !weekStart.After(end); weekStart = weekStart.AddDate(0, 0, 7*stride) {
		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			if day.After(end) {
				break
			}
			dateStr := day.Format(entities.DateLayout)
			if s.HasDay(weekdayName(day)) && !s.Recurrence.HasException(dateStr) {
				dates = append(dates, dateStr)
			}
		}
	}
	return dates
}
