package mission

import (
	"time"

	"pmportal/internal/model"
)

// ExpiredFor reports the listing-level "expired" badge: the due date has
// passed and the user has not submitted a report. A due date that does not
// parse never expires.
func ExpiredFor(m model.Mission, userID string, now time.Time) bool {
	due, ok := model.ParseISO(m.DueDate)
	if !ok || !due.Before(now) {
		return false
	}
	for _, sub := range m.Submissions {
		if sub.UserID == userID {
			return false
		}
	}
	return true
}
