package schedule

import (
	"classmark.io/entities"
	"classmark.io/infrastructure/logger"
)

// OwnedSchedule pairs a schedule with the identifier of the course that
// owns it, for conflict reporting. Callers pre-filter to a single
// lecturer's courses; ownership is not checked here.
type OwnedSchedule struct {
	ID       string
	Schedule entities.CourseSchedule
}

// FindConflicts returns the IDs of schedules that clash with the
// candidate. Two schedules conflict only when their date ranges overlap,
// they share a weekday, and their time-of-day windows overlap. Windows
// that merely touch (one ends exactly when the other starts) do not
// overlap.
func FindConflicts(candidate entities.CourseSchedule, others []OwnedSchedule) []string {
	candStart, err := candidate.StartOn()
	if err != nil {
		return nil
	}
	candEnd, err := candidate.EndOn()
	if err != nil {
		return nil
	}
	candStartMin, err := candidate.StartMinutes()
	if err != nil {
		return nil
	}
	candEndMin, err := candidate.EndMinutes()
	if err != nil {
		return nil
	}

	var conflicts []string
	for _, other := range others {
		s := other.Schedule

		otherStart, err := s.StartOn()
		if err != nil {
			logSkippedSchedule(other.ID, err)
			continue
		}
		otherEnd, err := s.EndOn()
		if err != nil {
			logSkippedSchedule(other.ID, err)
			continue
		}
		if candStart.After(otherEnd) || candEnd.Before(otherStart) {
			continue
		}

		if !shareWeekday(candidate, s) {
			continue
		}

		otherStartMin, err := s.StartMinutes()
		if err != nil {
			logSkippedSchedule(other.ID, err)
			continue
		}
		otherEndMin, err := s.EndMinutes()
		if err != nil {
			logSkippedSchedule(other.ID, err)
			continue
		}
		if candStartMin < otherEndMin && candEndMin > otherStartMin {
			conflicts = append(conflicts, other.ID)
		}
	}
	return conflicts
}

func shareWeekday(a, b entities.CourseSchedule) bool {
	for _, day := range a.DaysOfWeek {
		if b.HasDay(day) {
			return true
		}
	}
	return false
}

func logSkippedSchedule(id string, err error) {
	logger.Warning("skipping malformed schedule during conflict check", logger.LoggerOptions{
		Key:  "scheduleId",
		Data: id,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
}
