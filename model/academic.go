package model

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Code string    `gorm:"type:varchar(30);not null;uniqueIndex;column:code" json:"code"`
	Name string    `gorm:"type:varchar(120);not null;column:name" json:"name"`
}

func (Subject) TableName() string { return "subjects" }

// Class is a study group for one academic year.
type Class struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name              string     `gorm:"type:varchar(80);not null;column:name" json:"name"`
	Level             ClassLevel `gorm:"type:varchar(20);not null;column:level" json:"level"`
	AcademicYear      string     `gorm:"type:varchar(9);not null;column:academic_year" json:"academic_year"`
	HomeroomTeacherID *uuid.UUID `gorm:"type:uuid;column:homeroom_teacher_id" json:"homeroom_teacher_id,omitempty"`
	MaxStudents       int        `gorm:"not null;default:30;column:max_students" json:"max_students"`
	IsActive          bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`

	HomeroomTeacher *Teacher `gorm:"foreignKey:HomeroomTeacherID" json:"homeroom_teacher,omitempty"`
}

func (Class) TableName() string { return "classes" }

// ClassStudent enrolls a student in a class for one academic year.
type ClassStudent struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ClassID      uuid.UUID `gorm:"type:uuid;not null;column:class_id" json:"class_id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;column:student_id" json:"student_id"`
	AcademicYear string    `gorm:"type:varchar(9);not null;column:academic_year" json:"academic_year"`
	CreatedAt    time.Time `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ClassStudent) TableName() string { return "class_students" }

type Schedule struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ClassID      uuid.UUID `gorm:"type:uuid;not null;column:class_id" json:"class_id"`
	SubjectID    uuid.UUID `gorm:"type:uuid;not null;column:subject_id" json:"subject_id"`
	TeacherID    uuid.UUID `gorm:"type:uuid;not null;column:teacher_id" json:"teacher_id"`
	DayOfWeek    int       `gorm:"not null;column:day_of_week" json:"day_of_week"` // 1=Monday..7=Sunday
	StartTime    string    `gorm:"type:varchar(5);not null;column:start_time" json:"start_time"`
	EndTime      string    `gorm:"type:varchar(5);not null;column:end_time" json:"end_time"`
	AcademicYear string    `gorm:"type:varchar(9);not null;column:academic_year" json:"academic_year"`
	Semester     Semester  `gorm:"type:varchar(10);not null;column:semester" json:"semester"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	Class   *Class   `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

func (s Schedule) SubjectName() string {
	if s.Subject == nil {
		return ""
	}
	return s.Subject.Name
}

func (s Schedule) ClassName() string {
	if s.Class == nil {
		return ""
	}
	return s.Class.Name
}
