package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Attendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;column:student_id" json:"student_id"`
	SubjectID uuid.UUID        `gorm:"type:uuid;not null;column:subject_id" json:"subject_id"`
	TeacherID uuid.UUID        `gorm:"type:uuid;not null;column:teacher_id" json:"teacher_id"`
	Date      datatypes.Date   `gorm:"not null;column:date" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(12);not null;column:status" json:"status"`
	Notes     *string          `gorm:"type:text;column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:updated_at" json:"updated_at"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }

func (a Attendance) SubjectName() string {
	if a.Subject == nil {
		return ""
	}
	return a.Subject.Name
}
