package queue_tasks

import (
	"context"
	"encoding/json"
	"time"

	"classmark.io/application/constants"
	"classmark.io/application/schedule"
	"classmark.io/entities"
	"classmark.io/infrastructure/logger"
	mq_types "classmark.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

var HandleClassReminderTaskName mq_types.Queues = "class_reminder"

type ClassReminderPayload struct {
	CourseID   string
	CourseName string
	Schedule   entities.CourseSchedule
	Recipients []string
}

// Notifier delivers a decided notification. Delivery transport is the
// embedding application's concern; the default only records the decision.
type Notifier func(recipient string, courseID string, message string)

var Notify Notifier = func(recipient string, courseID string, message string) {
	logger.Info("notification decided", logger.LoggerOptions{
		Key:  "recipient",
		Data: recipient,
	}, logger.LoggerOptions{
		Key:  "courseId",
		Data: courseID,
	}, logger.LoggerOptions{
		Key:  "message",
		Data: message,
	})
}

// HandleClassReminderTask evaluates a course schedule against the current
// instant and fires the reminders that are due: a lead-time reminder when
// class starts within the reminder window, and an attendance-window
// notice while the class is live.
func HandleClassReminderTask(ctx context.Context, t *asynq.Task) error {
	var payload ClassReminderPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling class reminder payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	now := time.Now()
	if schedule.StartsWithin(payload.Schedule, now, constants.CLASS_REMINDER_LEAD) {
		for _, recipient := range payload.Recipients {
			Notify(recipient, payload.CourseID, "Your class "+payload.CourseName+" starts in 30 minutes")
		}
	}
	if schedule.AttendanceWindowOpen(payload.Schedule, now) {
		for _, recipient := range payload.Recipients {
			Notify(recipient, payload.CourseID, "Attendance window is now open for "+payload.CourseName)
		}
	}
	return nil
}
