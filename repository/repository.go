// Package repository declares the record stores the document pipeline reads from
// and writes to.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nikitaxru/rapor/model"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	// ListByClassAndYear returns the students enrolled in a class for one academic year,
	// ordered by name.
	ListByClassAndYear(ctx context.Context, classID uuid.UUID, academicYear string) ([]model.Student, error)
}

// ScheduleFilter narrows ListSchedule; zero values match everything.
type ScheduleFilter struct {
	AcademicYear string
	Semester     model.Semester
}

type TeacherRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
	// ListSchedule returns active schedule rows with Subject and Class loaded,
	// ordered by day and start time.
	ListSchedule(ctx context.Context, teacherID uuid.UUID, f ScheduleFilter) ([]model.Schedule, error)
}

type ClassRepository interface {
	// GetByID loads the class with its homeroom teacher when one is set.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
}

type GradeRepository interface {
	// ListByStudentYearSemester returns grades with Subject and Teacher loaded.
	ListByStudentYearSemester(ctx context.Context, studentID uuid.UUID, academicYear string, semester model.Semester) ([]model.Grade, error)
	// List returns every grade with Student, Subject and Teacher loaded.
	List(ctx context.Context) ([]model.Grade, error)
}

type AttendanceRepository interface {
	// ListByStudentAndRange returns rows with from <= date <= to, ordered by date,
	// with Subject loaded.
	ListByStudentAndRange(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]model.Attendance, error)
}

// Set groups the stores a report generator needs.
type Set struct {
	Students   StudentRepository
	Teachers   TeacherRepository
	Classes    ClassRepository
	Grades     GradeRepository
	Attendance AttendanceRepository
}
