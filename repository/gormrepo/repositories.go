package gormrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/repository"
)

type studentRepository struct {
	db *gorm.DB
}

func (repo *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var s model.Student
	if err := repo.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate("students.get", err)
	}
	return &s, nil
}

func (repo *studentRepository) Create(ctx context.Context, s *model.Student) error {
	return translate("students.create", repo.db.WithContext(ctx).Create(s).Error)
}

func (repo *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	var out []model.Student
	if err := repo.db.WithContext(ctx).Order("full_name").Find(&out).Error; err != nil {
		return nil, translate("students.list", err)
	}
	return out, nil
}

func (repo *studentRepository) ListByClassAndYear(ctx context.Context, classID uuid.UUID, academicYear string) ([]model.Student, error) {
	var out []model.Student
	err := repo.db.WithContext(ctx).
		Joins("JOIN class_students cs ON cs.student_id = students.id").
		Where("cs.class_id = ? AND cs.academic_year = ?", classID, academicYear).
		Order("students.full_name").
		Find(&out).Error
	if err != nil {
		return nil, translate("students.list_by_class", err)
	}
	return out, nil
}

type teacherRepository struct {
	db *gorm.DB
}

func (repo *teacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	var t model.Teacher
	if err := repo.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate("teachers.get", err)
	}
	return &t, nil
}

func (repo *teacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	var out []model.Teacher
	if err := repo.db.WithContext(ctx).Order("full_name").Find(&out).Error; err != nil {
		return nil, translate("teachers.list", err)
	}
	return out, nil
}

func (repo *teacherRepository) ListSchedule(ctx context.Context, teacherID uuid.UUID, f repository.ScheduleFilter) ([]model.Schedule, error) {
	q := repo.db.WithContext(ctx).
		Preload("Subject").
		Preload("Class").
		Where("teacher_id = ? AND is_active = ?", teacherID, true)
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	if f.Semester != "" {
		q = q.Where("semester = ?", f.Semester)
	}
	var out []model.Schedule
	if err := q.Order("day_of_week, start_time").Find(&out).Error; err != nil {
		return nil, translate("schedules.list", err)
	}
	return out, nil
}

type classRepository struct {
	db *gorm.DB
}

func (repo *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	var c model.Class
	if err := repo.db.WithContext(ctx).Preload("HomeroomTeacher").First(&c, "id = ?", id).Error; err != nil {
		return nil, translate("classes.get", err)
	}
	return &c, nil
}

type gradeRepository struct {
	db *gorm.DB
}

func (repo *gradeRepository) ListByStudentYearSemester(ctx context.Context, studentID uuid.UUID, academicYear string, semester model.Semester) ([]model.Grade, error) {
	var out []model.Grade
	err := repo.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("student_id = ? AND academic_year = ? AND semester = ?", studentID, academicYear, semester).
		Find(&out).Error
	if err != nil {
		return nil, translate("grades.list_by_student", err)
	}
	return out, nil
}

func (repo *gradeRepository) List(ctx context.Context) ([]model.Grade, error) {
	var out []model.Grade
	err := repo.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Teacher").
		Order("academic_year, semester").
		Find(&out).Error
	if err != nil {
		return nil, translate("grades.list", err)
	}
	return out, nil
}

type attendanceRepository struct {
	db *gorm.DB
}

func (repo *attendanceRepository) ListByStudentAndRange(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	err := repo.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ? AND date BETWEEN ? AND ?", studentID, from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Order("date").
		Find(&out).Error
	if err != nil {
		return nil, translate("attendance.list", err)
	}
	return out, nil
}
