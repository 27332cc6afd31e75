package dashboard

import (
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

const (
	StatTotalClients   = "total_clients"
	StatTotalDocuments = "total_documents"
	StatTotalMessages  = "total_messages"

	ReminderDateLayout = "Jan 2, 2006"
	recentActivities   = 10
)

type HomeStat struct {
	ID        uint      `gorm:"primaryKey"`
	StatName  string    `gorm:"size:100;not null;uniqueIndex"`
	StatValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (HomeStat) TableName() string {
	return "home_stats"
}

type Reminder struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_reminders_date_description"`
	Description string    `gorm:"size:255;not null;uniqueIndex:idx_reminders_date_description"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Reminder) TableName() string {
	return "reminders"
}

type UserActivity struct {
	ID           uint             `gorm:"primaryKey"`
	UserID       uint             `gorm:"not null;index"`
	User         *userdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ActivityType string           `gorm:"size:50;not null"`
	Description  string           `gorm:"type:text"`
	Timestamp    time.Time        `gorm:"autoCreateTime"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}

type Counts struct {
	Clients   int64
	Documents int64
	Messages  int64
}

var DefaultReminders = []Reminder{
	{Date: time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC), Description: "Quarterly VAT Return"},
	{Date: time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC), Description: "Monthly Percentage Tax"},
	{Date: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), Description: "Annual Income Tax Return"},
}
