package entities

import (
	"strconv"
	"strings"
	"time"
)

const (
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceCustom   = "custom"
)

// DateLayout is the date-only form schedules are stored in.
const DateLayout = "2006-01-02"

// Recurrence describes how a course's weekly pattern repeats over its
// date range. Exceptions are date-only strings for cancelled sessions.
type Recurrence struct {
	Pattern    string   `bson:"pattern" json:"pattern" validate:"required,recurrence_pattern"`
	Interval   int      `bson:"interval,omitempty" json:"interval,omitempty"`
	Exceptions []string `bson:"exceptions,omitempty" json:"exceptions,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
}

// HasException reports whether the date-only string is a cancelled session.
func (r Recurrence) HasException(date string) bool {
	for _, e := range r.Exceptions {
		if e == date {
			return true
		}
	}
	return false
}

// CourseSchedule is the recurring weekly schedule embedded in a course
// document. It is owned by the lecturer-facing update path and read-only
// here; acceptance-time validation lives in application/schedule.
type CourseSchedule struct {
	DaysOfWeek []string   `bson:"daysOfWeek" json:"daysOfWeek" validate:"required,min=1,dive,weekday"`
	StartTime  string     `bson:"startTime" json:"startTime" validate:"required,timeofday"`
	EndTime    string     `bson:"endTime" json:"endTime" validate:"required,timeofday"`
	StartDate  string     `bson:"startDate" json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string     `bson:"endDate" json:"endDate" validate:"required,datetime=2006-01-02"`
	Recurrence Recurrence `bson:"recurrence" json:"recurrence" validate:"required"`
}

// HasDay reports whether the lowercase weekday name is scheduled.
func (s CourseSchedule) HasDay(day string) bool {
	for _, d := range s.DaysOfWeek {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

// StartOn returns the first calendar day of the schedule at midnight UTC.
func (s CourseSchedule) StartOn() (time.Time, error) {
	return time.Parse(DateLayout, s.StartDate)
}

// EndOn returns the last calendar day of the schedule at midnight UTC.
func (s CourseSchedule) EndOn() (time.Time, error) {
	return time.Parse(DateLayout, s.EndDate)
}

// StartMinutes returns the class start as minutes since midnight.
func (s CourseSchedule) StartMinutes() (int, error) {
	return parseMinutesOfDay(s.StartTime)
}

// EndMinutes returns the class end as minutes since midnight.
func (s CourseSchedule) EndMinutes() (int, error) {
	return parseMinutesOfDay(s.EndTime)
}

func parseMinutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		// Single-digit hours ("9:30") are accepted on the wire.
		parts := strings.SplitN(hhmm, ":", 2)
		if len(parts) != 2 {
			return 0, err
		}
		h, herr := strconv.Atoi(parts[0])
		m, merr := strconv.Atoi(parts[1])
		if herr != nil || merr != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			return 0, err
		}
		return h*60 + m, nil
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ScheduleOccurrence is one concrete class session derived from a
// CourseSchedule. It is recomputed on demand and never stored.
type ScheduleOccurrence struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsException bool   `json:"isException,omitempty"`
}
