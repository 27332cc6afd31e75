package documents

import (
	"io"
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

var DefaultForms = []string{
	"BIR Form 1706",
	"BIR Form 1707",
	"BIR Form 2550M",
	"BIR Form 2550Q",
	"BIR Form 2551M",
	"BIR Form 2551Q",
	"BIR Form 2552",
	"BIR Form 2553",
}

var quarterRank = map[string]int{"Q1": 1, "Q2": 2, "Q3": 3, "Q4": 4}

type Form struct {
	ID        uint      `gorm:"primaryKey"`
	FormName  string    `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Form) TableName() string {
	return "bir_forms"
}

type Document struct {
	ID         uint             `gorm:"primaryKey"`
	UserID     uint             `gorm:"not null;index"`
	User       *userdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FormID     uint             `gorm:"not null;index"`
	Form       *Form            `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
	FileName   string           `gorm:"size:255;not null"`
	FilePath   string           `gorm:"size:255;not null"`
	Quarter    string           `gorm:"size:10;not null"`
	Year       int              `gorm:"not null"`
	UploadedAt time.Time        `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentRow is a document joined with its form and owner names.
type DocumentRow struct {
	ID         uint
	UserID     uint
	FileName   string
	FilePath   string
	Quarter    string
	Year       int
	UploadedAt time.Time
	FormName   string
	ClientName string
}

type DocumentFilter struct {
	UserID   uint
	FormName string
}

type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type UploadInput struct {
	ClientID uint
	FormName string
	Quarter  string
	Year     int
	Files    []UploadFile
}

const (
	StageStore    = "store"
	StageRecord   = "record"
	StageActivity = "activity"
)

type UploadFailure struct {
	FileName string
	Stage    string
	Err      error
}

type UploadResult struct {
	Documents []Document
	Failures  []UploadFailure
}

// Download is an opened blob with the name it was uploaded under.
type Download struct {
	FileName string
	Content  io.ReadCloser
}
