package dashboard

import (
	"context"

	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListHomeStats(ctx context.Context) ([]dashboarddomain.HomeStat, error) {
	var stats []dashboarddomain.HomeStat
	if err := r.db.WithContext(ctx).Order("stat_name asc").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *PostgresRepository) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, "users", "role = ?", userdomain.RoleClient)
}

func (r *PostgresRepository) CountDocuments(ctx context.Context) (int64, error) {
	return r.count(ctx, "documents", "")
}

func (r *PostgresRepository) CountMessages(ctx context.Context) (int64, error) {
	return r.count(ctx, "messages", "")
}

func (r *PostgresRepository) count(ctx context.Context, table, where string, args ...any) (int64, error) {
	query := r.db.WithContext(ctx).Table(table)
	if where != "" {
		query = query.Where(where, args...)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) ListReminders(ctx context.Context) ([]dashboarddomain.Reminder, error) {
	var reminders []dashboarddomain.Reminder
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).Order("id asc").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *PostgresRepository) EnsureReminder(ctx context.Context, reminder *dashboarddomain.Reminder) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "description"}},
			DoNothing: true,
		}).
		Create(reminder).Error
}

func (r *PostgresRepository) CreateActivity(ctx context.Context, activity *dashboarddomain.UserActivity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error
}

func (r *PostgresRepository) ListActivities(ctx context.Context, userID uint, limit int) ([]dashboarddomain.UserActivity, error) {
	var activities []dashboarddomain.UserActivity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order("id desc").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
