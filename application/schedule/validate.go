package schedule

import (
	"fmt"
	"strings"
	"time"

	"classmark.io/entities"
	"classmark.io/infrastructure/validator"
)

// ValidateSchedule is the acceptance gate for lecturer-submitted
// schedules. A schedule that fails here must never be persisted or
// handed to the evaluators. On success the schedule is normalized in
// place: weekday names are lowercased and exception dates outside the
// course's date range are dropped.
func ValidateSchedule(s *entities.CourseSchedule) *[]error {
	if s == nil {
		errs := []error{fmt.Errorf("schedule cannot be nil")}
		return &errs
	}

	if errs := validator.ValidatorInstance.ValidateStruct(*s); errs != nil {
		return errs
	}

	var errs []error

	start, startErr := s.StartOn()
	end, endErr := s.EndOn()
	if startErr == nil && endErr == nil && !start.Before(end) {
		errs = append(errs, fmt.Errorf("startDate must be before endDate"))
	}

	startMin, startMinErr := s.StartMinutes()
	endMin, endMinErr := s.EndMinutes()
	if startMinErr == nil && endMinErr == nil && startMin >= endMin {
		errs = append(errs, fmt.Errorf("startTime must be before endTime"))
	}

	if s.Recurrence.Pattern == entities.RecurrenceCustom && s.Recurrence.Interval < 1 {
		errs = append(errs, fmt.Errorf("custom recurrence requires an interval of at least 1"))
	}

	if len(errs) > 0 {
		return &errs
	}

	for i, day := range s.DaysOfWeek {
		s.DaysOfWeek[i] = strings.ToLower(day)
	}
	s.Recurrence.Exceptions = filterExceptions(s.Recurrence.Exceptions, start, end)
	return nil
}

// filterExceptions keeps only exception dates inside [start, end],
// matching how the schedule update path has always treated strays.
func filterExceptions(exceptions []string, start, end time.Time) []string {
	if len(exceptions) == 0 {
		return exceptions
	}
	kept := exceptions[:0]
	for _, e := range exceptions {
		day, err := time.Parse(entities.DateLayout, e)
		if err != nil {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
