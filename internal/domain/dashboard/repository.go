package dashboard

import "context"

type Repository interface {
	ListHomeStats(ctx context.Context) ([]HomeStat, error)
	CountClients(ctx context.Context) (int64, error)
	CountDocuments(ctx context.Context) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	ListReminders(ctx context.Context) ([]Reminder, error)
	// EnsureReminder inserts the reminder unless the same date and
	// description are already stored.
	EnsureReminder(ctx context.Context, reminder *Reminder) error
	CreateActivity(ctx context.Context, activity *UserActivity) error
	ListActivities(ctx context.Context, userID uint, limit int) ([]UserActivity, error)
}
