package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error
	// ConsumeResetToken stores a new hash only while the token is still
	// pending and unexpired, clearing it in the same statement. It returns
	// ErrInvalidResetToken when the token was already used or has expired.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) error
	// List returns users ordered by name; an empty role matches everyone.
	List(ctx context.Context, role string) ([]User, error)
}

// ResetNotifier delivers a password reset link to the account owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, user User, token string, expiresAt time.Time) error
}
