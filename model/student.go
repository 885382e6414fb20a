package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Student struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID      string         `gorm:"type:varchar(50);not null;uniqueIndex;column:student_id" json:"student_id"`
	FullName       string         `gorm:"type:varchar(150);not null;column:full_name" json:"full_name"`
	Gender         Gender         `gorm:"type:varchar(10);not null;column:gender" json:"gender"`
	BirthDate      datatypes.Date `gorm:"not null;column:birth_date" json:"birth_date"`
	BirthPlace     string         `gorm:"type:varchar(100);not null;column:birth_place" json:"birth_place"`
	Address        string         `gorm:"type:text;not null;column:address" json:"address"`
	Phone          *string        `gorm:"type:varchar(30);column:phone" json:"phone,omitempty"`
	ParentName     string         `gorm:"type:varchar(150);not null;column:parent_name" json:"parent_name"`
	ParentPhone    string         `gorm:"type:varchar(30);not null;column:parent_phone" json:"parent_phone"`
	EnrollmentDate datatypes.Date `gorm:"not null;column:enrollment_date" json:"enrollment_date"`
	IsActive       bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Student) TableName() string { return "students" }

func (s Student) PhoneOrEmpty() string {
	if s.Phone == nil {
		return ""
	}
	return *s.Phone
}
