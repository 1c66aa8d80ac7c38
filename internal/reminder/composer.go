package reminder

import (
	"fmt"

	"github.com/sanjeevan43/LifeFlow/internal/push"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

// Class identifies a reminder class. The receiving client routes tap-through
// actions on the "type" field in the notification data.
type Class string

const (
	ClassTaskReminder  Class = "task_reminder"
	ClassStreakWarning Class = "streak_warning"
	ClassWelcome       Class = "welcome"
)

// ComposeTaskReminder builds the payload for a task that is due soon.
func ComposeTaskReminder(task store.Task) push.Notification {
	return push.Notification{
		Title: "⏰ Task Reminder",
		Body:  fmt.Sprintf("%q is due soon!", task.Title),
		Data: map[string]string{
			"taskId": task.ID,
			"type":   string(ClassTaskReminder),
		},
	}
}

// ComposeStreakWarning builds the payload for a user with incomplete habits
// today. The count is carried in the body so one push covers all of them.
func ComposeStreakWarning(incomplete int) push.Notification {
	return push.Notification{
		Title: "🔥 Don't break your streak!",
		Body:  fmt.Sprintf("You have %d habit(s) to complete today!", incomplete),
		Data: map[string]string{
			"type": string(ClassStreakWarning),
		},
	}
}

// ComposeWelcome builds the payload sent once after signup.
func ComposeWelcome() push.Notification {
	return push.Notification{
		Title: "🎉 Welcome to LifeFlow!",
		Body:  "Start your productivity journey today. Add your first task!",
		Data: map[string]string{
			"type": string(ClassWelcome),
		},
	}
}
