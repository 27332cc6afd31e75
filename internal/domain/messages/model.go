package messages

import (
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

type Message struct {
	ID         uint             `gorm:"primaryKey"`
	SenderID   uint             `gorm:"not null;index"`
	Sender     *userdomain.User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint             `gorm:"not null;index"`
	Receiver   *userdomain.User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Message    string           `gorm:"type:text;not null"`
	Timestamp  time.Time        `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}

// Thread is a message joined with its sender's name and role.
type Thread struct {
	ID         uint
	SenderID   uint
	ReceiverID uint
	Message    string
	Timestamp  time.Time
	SenderName string
	SenderRole string
}

type SendInput struct {
	SenderID   uint
	ReceiverID uint
	Message    string
}
