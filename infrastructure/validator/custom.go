package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

var timeOfDayRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

func validateWeekdayName(fl validator.FieldLevel) bool {
	return weekdayNames[strings.ToLower(fl.Field().String())]
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayRegex.MatchString(fl.Field().String())
}

func validateRecurrencePattern(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "biweekly", "custom":
		return true
	}
	return false
}
