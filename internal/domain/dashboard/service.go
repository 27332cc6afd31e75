package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// HomeStats merges stored stats with live totals; live totals win.
func (s *Service) HomeStats(ctx context.Context) (map[string]int64, error) {
	stored, err := s.repo.ListHomeStats(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(stored)+3)
	for _, stat := range stored {
		stats[stat.StatName] = stat.StatValue
	}
	stats[StatTotalClients] = counts.Clients
	stats[StatTotalDocuments] = counts.Documents
	stats[StatTotalMessages] = counts.Messages
	return stats, nil
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		counts.Clients, err = s.repo.CountClients(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		counts.Documents, err = s.repo.CountDocuments(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		counts.Messages, err = s.repo.CountMessages(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *Service) Reminders(ctx context.Context) ([]Reminder, error) {
	return s.repo.ListReminders(ctx)
}

func (s *Service) SeedDefaultReminders(ctx context.Context) error {
	var errs []error
	for _, reminder := range DefaultReminders {
		reminder := reminder
		if err := s.repo.EnsureReminder(ctx, &reminder); err != nil {
			errs = append(errs, fmt.Errorf("seed reminder %q: %w", reminder.Description, err))
		}
	}
	return errors.Join(errs...)
}

// RecentActivities returns the latest activities of a user, newest first.
func (s *Service) RecentActivities(ctx context.Context, userID uint) ([]UserActivity, error) {
	return s.repo.ListActivities(ctx, userID, recentActivities)
}

// Record appends a user activity entry.
func (s *Service) Record(ctx context.Context, userID uint, activityType, description string) error {
	activityType = strings.TrimSpace(activityType)
	if userID == 0 || activityType == "" {
		return fmt.Errorf("record activity: user id and type are required")
	}
	return s.repo.CreateActivity(ctx, &UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
	})
}
