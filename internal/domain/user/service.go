package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultResetTokenTTL = 30 * time.Minute
	resetTokenBytes      = 32
	// bcrypt only hashes the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
)

type Options struct {
	BcryptCost    int
	ResetTokenTTL time.Duration
}

type Service struct {
	repo     Repository
	notifier ResetNotifier
	cost     int
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository, notifier ResetNotifier, opts Options) *Service {
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	ttl := opts.ResetTokenTTL
	if ttl <= 0 {
		ttl = defaultResetTokenTTL
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		cost:     cost,
		tokenTTL: ttl,
		now:      time.Now,
	}
}

func (s *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(input.Role)
	if email == "" || input.Password == "" || role == "" || name == "" {
		return nil, ErrMissingFields
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// RequestPasswordReset issues a single-use token and hands it to the notifier.
// Only the token hash is persisted. ErrUserNotFound is returned for unknown
// emails so callers can log it; it must not be surfaced to clients.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.tokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.SendPasswordReset(ctx, *user, token, expiresAt); err != nil {
		return fmt.Errorf("send reset link: %w", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, input ResetInput) error {
	token := strings.TrimSpace(input.Token)
	if token == "" || input.NewPassword == "" || input.ConfirmPassword == "" {
		return ErrMissingFields
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(input.NewPassword) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	tokenHash := hashToken(token)
	if _, err := s.repo.GetByResetToken(ctx, tokenHash, s.now()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.ConsumeResetToken(ctx, tokenHash, s.now(), string(hash))
}

func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListClients(ctx context.Context) ([]Account, error) {
	return s.listAccounts(ctx, RoleClient)
}

func (s *Service) ListUsers(ctx context.Context) ([]Account, error) {
	return s.listAccounts(ctx, "")
}

func (s *Service) listAccounts(ctx context.Context, role string) ([]Account, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, toAccount(u))
	}
	return accounts, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
