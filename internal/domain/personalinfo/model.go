package personalinfo

import (
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

const (
	EmploymentEmployed     = "employed"
	EmploymentSelfEmployed = "self-employed"
)

const dateLayout = "2006-01-02"

type PersonalInfo struct {
	ID               uint             `gorm:"primaryKey"`
	UserID           uint             `gorm:"not null;uniqueIndex"`
	User             *userdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FullName         *string          `gorm:"size:255"`
	TIN              *string          `gorm:"column:tin;size:50"`
	BirthDate        *time.Time       `gorm:"type:date"`
	BirthPlace       *string          `gorm:"size:255"`
	Citizenship      *string          `gorm:"size:100"`
	CivilStatus      *string          `gorm:"size:50"`
	Gender           *string          `gorm:"size:20"`
	Address          *string          `gorm:"type:text"`
	Phone            *string          `gorm:"size:20"`
	SpouseName       *string          `gorm:"size:255"`
	SpouseTIN        *string          `gorm:"column:spouse_tin;size:50"`
	EmploymentStatus string           `gorm:"type:varchar(20);not null;default:'employed'"`
	PhilHealthNumber *string          `gorm:"column:philhealth_number;size:20"`
	SSSNumber        *string          `gorm:"column:sss_number;size:20"`
	PagIBIGNumber    *string          `gorm:"column:pagibig_number;size:20"`
	Version          int64            `gorm:"not null;default:1"`
	UpdatedAt        time.Time
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

type Dependent struct {
	ID              uint          `gorm:"primaryKey"`
	PersonalInfoID  uint          `gorm:"not null;index"`
	PersonalInfo    *PersonalInfo `gorm:"foreignKey:PersonalInfoID;constraint:OnDelete:CASCADE"`
	DepName         *string       `gorm:"size:255;not null"`
	DepBirthDate    *time.Time    `gorm:"type:date"`
	DepRelationship *string       `gorm:"size:100"`
}

func (Dependent) TableName() string {
	return "dependents"
}

// Record is a personal info row together with its dependents.
type Record struct {
	Info       PersonalInfo
	Dependents []Dependent
}

// SaveInput carries raw submitted values; empty strings mean absent.
type SaveInput struct {
	UserID           uint
	Version          *int64
	FullName         string
	TIN              string
	BirthDate        string
	BirthPlace       string
	Citizenship      string
	CivilStatus      string
	Gender           string
	Address          string
	Phone            string
	SpouseName       string
	SpouseTIN        string
	EmploymentStatus string
	PhilHealthNumber string
	SSSNumber        string
	PagIBIGNumber    string
	Dependents       []DependentInput
}

type DependentInput struct {
	ID           uint
	Name         string
	BirthDate    string
	Relationship string
}

const (
	OpDelete = "delete"
	OpUpdate = "update"
	OpInsert = "insert"
)

// WriteFailure describes one dependent write that was rolled back.
type WriteFailure struct {
	Op          string
	DependentID uint
	Err         error
}

type SaveResult struct {
	Record
	Deleted  int
	Updated  int
	Inserted int
	Failures []WriteFailure
}
