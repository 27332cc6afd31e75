package user

import (
	"context"
	"errors"
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
	"bookkeeping-app-go/internal/repository/postgres"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if postgres.IsDuplicate(err) {
			return userdomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*userdomain.User, error) {
	var user userdomain.User
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_expires > ?", tokenHash, now.UTC()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token":   tokenHash,
			"reset_expires": expiresAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("reset_token = ? AND reset_expires > ?", tokenHash, now.UTC()).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"reset_token":   nil,
			"reset_expires": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrInvalidResetToken
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, role string) ([]userdomain.User, error) {
	query := r.db.WithContext(ctx).Order("name asc").Order("id asc")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []userdomain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
