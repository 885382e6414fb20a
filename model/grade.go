package model

import (
	"time"

	"github.com/google/uuid"
)

// Grade holds precomputed scores; TotalScore and Grade are never derived here.
type Grade struct {
	ID              uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID       uuid.UUID    `gorm:"type:uuid;not null;column:student_id" json:"student_id"`
	SubjectID       uuid.UUID    `gorm:"type:uuid;not null;column:subject_id" json:"subject_id"`
	TeacherID       uuid.UUID    `gorm:"type:uuid;not null;column:teacher_id" json:"teacher_id"`
	AcademicYear    string       `gorm:"type:varchar(9);not null;column:academic_year" json:"academic_year"`
	Semester        Semester     `gorm:"type:varchar(10);not null;column:semester" json:"semester"`
	AssignmentScore float64      `gorm:"not null;default:0;column:assignment_score" json:"assignment_score"`
	MidtermScore    float64      `gorm:"not null;default:0;column:midterm_score" json:"midterm_score"`
	FinalScore      float64      `gorm:"not null;default:0;column:final_score" json:"final_score"`
	TotalScore      float64      `gorm:"not null;default:0;column:total_score" json:"total_score"`
	Grade           *LetterGrade `gorm:"type:varchar(1);column:grade" json:"grade,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:updated_at" json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Grade) TableName() string { return "grades" }

func (g Grade) Letter() string {
	if g.Grade == nil {
		return ""
	}
	return string(*g.Grade)
}

func (g Grade) SubjectName() string {
	if g.Subject == nil {
		return ""
	}
	return g.Subject.Name
}

func (g Grade) StudentName() string {
	if g.Student == nil {
		return ""
	}
	return g.Student.FullName
}

func (g Grade) TeacherName() string {
	if g.Teacher == nil {
		return ""
	}
	return g.Teacher.FullName
}
