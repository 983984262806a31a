package schedule

import (
	"strings"
	"time"

	"classmark.io/entities"
)

// dateOnly strips the clock from t, keeping its calendar day at midnight
// UTC so it compares cleanly against parsed schedule dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// weeksSinceStart is anchored at the schedule's startDate, not at the
// first matching weekday. Two courses starting on different weekdays in
// the same calendar week can therefore disagree on parity; that anchoring
// is load-bearing and must not change.
func weeksSinceStart(start, day time.Time) int {
	return int(day.Sub(start)/(24*time.Hour)) / 7
}

// patternActive applies the recurrence pattern to a week offset from the
// start date. Unknown patterns behave as weekly; a custom pattern with a
// nonsensical interval is treated as never active since the record was
// never valid.
func patternActive(r entities.Recurrence, weekDiff int) bool {
	switch r.Pattern {
	case entities.RecurrenceBiweekly:
		return weekDiff%2 == 0
	case entities.RecurrenceCustom:
		if r.Interval < 1 {
			return false
		}
		return weekDiff%r.Interval == 0
	}
	return true
}

// IsActiveOccurrence reports whether candidate's calendar day is an
// active occurrence of the schedule. Evaluation assumes the schedule
// passed acceptance validation; anything unparseable yields false rather
// than an error, since looser historical validation may have let a
// malformed record through.
func IsActiveOccurrence(s entities.CourseSchedule, candidate time.Time) bool {
	start, err := s.StartOn()
	if err != nil {
		return false
	}
	end, err := s.EndOn()
	if err != nil {
		return false
	}

	day := dateOnly(candidate)
	if day.Before(start) || day.After(end) {
		return false
	}
	if !s.HasDay(weekdayName(day)) {
		return false
	}
	if s.Recurrence.HasException(day.Format(entities.DateLayout)) {
		return false
	}
	return patternActive(s.Recurrence, weeksSinceStart(start, day))
}
