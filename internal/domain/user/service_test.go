package user

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error) {
	for _, user := range r.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash &&
			user.ResetExpiresAt != nil && user.ResetExpiresAt.After(now) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ResetTokenHash = &tokenHash
	user.ResetExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) error {
	var user *User
	for _, candidate := range r.users {
		if candidate.ResetTokenHash != nil && *candidate.ResetTokenHash == tokenHash &&
			candidate.ResetExpiresAt != nil && candidate.ResetExpiresAt.After(now) {
			user = candidate
		}
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	user.PasswordHash = passwordHash
	user.ResetTokenHash = nil
	user.ResetExpiresAt = nil
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, role string) ([]User, error) {
	result := make([]User, 0)
	for _, user := range r.users {
		if role == "" || user.Role == role {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type recordingNotifier struct {
	tokens []string
}

func (n *recordingNotifier) SendPasswordReset(ctx context.Context, user User, token string, expiresAt time.Time) error {
	n.tokens = append(n.tokens, token)
	return nil
}

func newTestService(repo Repository, notifier ResetNotifier) *Service {
	return NewService(repo, notifier, Options{BcryptCost: bcrypt.MinCost})
}

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo, nil)
	ctx := context.Background()

	created, err := service.Signup(ctx, SignupInput{Email: " Maria@Example.com ", Password: "secret", Role: RoleClient, Name: "Maria"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.PasswordHash == "secret" {
		t.Fatalf("password must be hashed")
	}

	logged, err := service.Login(ctx, "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != created.ID || logged.Role != RoleClient {
		t.Fatalf("unexpected login user: %+v", logged)
	}

	if _, err := service.Login(ctx, "maria@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignupRejectsDuplicatesAndBadInput(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo, nil)
	ctx := context.Background()

	input := SignupInput{Email: "a@example.com", Password: "pw", Role: RoleBookkeeper, Name: "A"}
	if _, err := service.Signup(ctx, input); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := service.Signup(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single stored user, got %d", len(repo.users))
	}

	if _, err := service.Signup(ctx, SignupInput{Email: "b@example.com", Password: "pw", Role: "admin", Name: "B"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := service.Signup(ctx, SignupInput{Email: "b@example.com", Role: RoleClient, Name: "B"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &recordingNotifier{}
	service := newTestService(repo, notifier)
	ctx := context.Background()

	created, err := service.Signup(ctx, SignupInput{Email: "c@example.com", Password: "old", Role: RoleClient, Name: "C"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := service.RequestPasswordReset(ctx, "c@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(notifier.tokens) != 1 {
		t.Fatalf("expected one reset notification")
	}
	token := notifier.tokens[0]
	if stored := repo.users[created.ID].ResetTokenHash; stored == nil || *stored == token {
		t.Fatalf("expected only the token hash to be stored")
	}

	err = service.ResetPassword(ctx, ResetInput{Token: token, NewPassword: "new", ConfirmPassword: "other"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if err := service.ResetPassword(ctx, ResetInput{Token: token, NewPassword: "new", ConfirmPassword: "new"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := service.Login(ctx, "c@example.com", "new"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	err = service.ResetPassword(ctx, ResetInput{Token: token, NewPassword: "again", ConfirmPassword: "again"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected token to be single use, got %v", err)
	}
}

func TestResetTokenExpires(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &recordingNotifier{}
	service := newTestService(repo, notifier)
	ctx := context.Background()

	if _, err := service.Signup(ctx, SignupInput{Email: "d@example.com", Password: "old", Role: RoleClient, Name: "D"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := service.RequestPasswordReset(ctx, "d@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	service.now = func() time.Time { return time.Now().Add(time.Hour) }
	err := service.ResetPassword(ctx, ResetInput{Token: notifier.tokens[0], NewPassword: "new", ConfirmPassword: "new"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestRequestResetUnknownEmail(t *testing.T) {
	service := newTestService(newFakeUserRepo(), &recordingNotifier{})

	if err := service.RequestPasswordReset(context.Background(), "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListClientsFiltersByRole(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo, nil)
	ctx := context.Background()

	for _, input := range []SignupInput{
		{Email: "z@example.com", Password: "pw", Role: RoleClient, Name: "Zed"},
		{Email: "b@example.com", Password: "pw", Role: RoleBookkeeper, Name: "Bea"},
		{Email: "a@example.com", Password: "pw", Role: RoleClient, Name: "Abe"},
	} {
		if _, err := service.Signup(ctx, input); err != nil {
			t.Fatalf("signup: %v", err)
		}
	}

	clients, err := service.ListClients(ctx)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 2 || clients[0].Name != "Abe" || clients[1].Name != "Zed" {
		t.Fatalf("unexpected clients: %+v", clients)
	}

	users, err := service.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}

func TestSignupAndResetRejectOverlongPasswords(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &recordingNotifier{}
	service := newTestService(repo, notifier)
	ctx := context.Background()
	long := strings.Repeat("p", maxPasswordBytes+1)

	_, err := service.Signup(ctx, SignupInput{Email: "e@example.com", Password: long, Role: RoleClient, Name: "E"})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no stored user, got %d", len(repo.users))
	}

	if _, err := service.Signup(ctx, SignupInput{Email: "e@example.com", Password: strings.Repeat("p", maxPasswordBytes), Role: RoleClient, Name: "E"}); err != nil {
		t.Fatalf("signup at the limit: %v", err)
	}
	if err := service.RequestPasswordReset(ctx, "e@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	err = service.ResetPassword(ctx, ResetInput{Token: notifier.tokens[0], NewPassword: long, ConfirmPassword: long})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

// racingUserRepo lets a competing reset consume the token right after lookup.
type racingUserRepo struct {
	*fakeUserRepo
}

func (r racingUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error) {
	user, err := r.fakeUserRepo.GetByResetToken(ctx, tokenHash, now)
	if err != nil {
		return nil, err
	}
	if err := r.fakeUserRepo.ConsumeResetToken(ctx, tokenHash, now, "winner"); err != nil {
		return nil, err
	}
	return user, nil
}

func TestResetTokenConsumedByConcurrentReset(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &recordingNotifier{}
	service := newTestService(racingUserRepo{repo}, notifier)
	ctx := context.Background()

	created, err := service.Signup(ctx, SignupInput{Email: "f@example.com", Password: "old", Role: RoleClient, Name: "F"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := service.RequestPasswordReset(ctx, "f@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	err = service.ResetPassword(ctx, ResetInput{Token: notifier.tokens[0], NewPassword: "new", ConfirmPassword: "new"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
	if got := repo.users[created.ID].PasswordHash; got != "winner" {
		t.Fatalf("expected the first reset to win, got %q", got)
	}
}
