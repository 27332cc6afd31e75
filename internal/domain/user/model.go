package user

import "time"

const (
	RoleClient     = "client"
	RoleBookkeeper = "bookkeeper"
)

type User struct {
	ID             uint       `gorm:"primaryKey"`
	Email          string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash   string     `gorm:"size:255;not null"`
	Role           string     `gorm:"type:varchar(16);not null"`
	Name           string     `gorm:"size:255;not null"`
	ResetTokenHash *string    `gorm:"column:reset_token;size:64;index"`
	ResetExpiresAt *time.Time `gorm:"column:reset_expires"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// Account is the public projection of a user.
type Account struct {
	ID        uint
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

type SignupInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}

type ResetInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

func ValidRole(role string) bool {
	return role == RoleClient || role == RoleBookkeeper
}

func toAccount(u User) Account {
	return Account{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
