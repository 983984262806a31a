package schedule

import (
	"time"

	"classmark.io/application/constants"
	"classmark.io/entities"
)

// StartsWithin reports whether the course's class on at's calendar day
// begins strictly within the window after at. A class that has already
// started does not count; use AttendanceWindowOpen for in-session checks.
func StartsWithin(s entities.CourseSchedule, at time.Time, window time.Duration) bool {
	if !IsActiveOccurrence(s, at) {
		return false
	}
	startMin, err := s.StartMinutes()
	if err != nil {
		return false
	}

	y, m, d := at.Date()
	classStart := time.Date(y, m, d, startMin/60, startMin%60, 0, 0, at.Location())
	diff := classStart.Sub(at)
	return diff > 0 && diff <= window
}

// AttendanceWindowOpen reports whether attendance may be captured for the
// course at the given instant.
func AttendanceWindowOpen(s entities.CourseSchedule, at time.Time) bool {
	return IsLiveNow(s, at)
}

// SameDayRange returns the half-open [midnight, next midnight) range of
// at's calendar day, for callers checking whether attendance was already
// marked today.
func SameDayRange(at time.Time) (time.Time, time.Time) {
	y, m, d := at.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, at.Location())
	return from, from.AddDate(0, 0, 1)
}

// DuplicateCheckRange returns the closed [at-window, at] range a store
// query should scan for an existing record before accepting a new
// attendance mark. A second mark inside the window belongs to the same
// session and must be rejected.
func DuplicateCheckRange(at time.Time) (time.Time, time.Time) {
	return at.Add(-constants.ATTENDANCE_WINDOW), at
}
