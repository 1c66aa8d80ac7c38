package store

import "time"

// User represents a user document in the users collection. The FCM token is
// attached asynchronously by the client after signup, so an empty token on an
// existing user is an expected state, not an error.
type User struct {
	ID        string    `firestore:"-"`
	FCMToken  string    `firestore:"fcmToken"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// HasToken reports whether the user has a push destination registered.
func (u *User) HasToken() bool {
	return u != nil && u.FCMToken != ""
}

// Task represents a task document in the tasks collection. ReminderSent is
// the acknowledgment flag: once true for a due window, the task is never
// re-notified for that window.
type Task struct {
	ID           string    `firestore:"-"`
	UserID       string    `firestore:"userId"`
	Title        string    `firestore:"title"`
	DueDate      time.Time `firestore:"dueDate"`
	IsCompleted  bool      `firestore:"isCompleted"`
	ReminderSent bool      `firestore:"reminderSent"`
}

// Habit represents a habit document in the habits collection. LastCompleted
// is nil for habits that have never been completed. There is no persisted
// "already warned today" flag; the daily cycle relies on running once a day.
type Habit struct {
	ID            string     `firestore:"-"`
	UserID        string     `firestore:"userId"`
	Name          string     `firestore:"name"`
	LastCompleted *time.Time `firestore:"lastCompleted"`
}

// CompletedOnOrAfter reports whether the habit was completed at or after the
// given instant (typically the start of the current day).
func (h *Habit) CompletedOnOrAfter(t time.Time) bool {
	return h.LastCompleted != nil && !h.LastCompleted.Before(t)
}
