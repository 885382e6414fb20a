package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Teacher struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	TeacherID  string         `gorm:"type:varchar(50);not null;uniqueIndex;column:teacher_id" json:"teacher_id"`
	FullName   string         `gorm:"type:varchar(150);not null;column:full_name" json:"full_name"`
	Gender     Gender         `gorm:"type:varchar(10);not null;column:gender" json:"gender"`
	BirthDate  datatypes.Date `gorm:"not null;column:birth_date" json:"birth_date"`
	BirthPlace string         `gorm:"type:varchar(100);not null;column:birth_place" json:"birth_place"`
	Address    string         `gorm:"type:text;not null;column:address" json:"address"`
	Phone      string         `gorm:"type:varchar(30);column:phone" json:"phone"`
	Email      string         `gorm:"type:varchar(150);column:email" json:"email"`
	HireDate   datatypes.Date `gorm:"not null;column:hire_date" json:"hire_date"`
	IsActive   bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Teacher) TableName() string { return "teachers" }
