package memrepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/repository"
)

type studentRepository struct {
	db *DB
}

func (repo *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("students.get", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	s := repo.db.student(id)
	if s == nil {
		return nil, repository.NotFound("students.get")
	}
	return s, nil
}

func (repo *studentRepository) Create(ctx context.Context, s *model.Student) error {
	if err := ctx.Err(); err != nil {
		return repository.Wrap("students.create", err)
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, existing := range repo.db.students {
		if existing.StudentID == s.StudentID {
			return repository.Duplicate("students.create", fmt.Sprintf("student code %q already exists", s.StudentID))
		}
	}
	ensureID(&s.ID)
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	cp := *s
	repo.db.students[s.ID] = &cp
	return nil
}

func (repo *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("students.list", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]model.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (repo *studentRepository) ListByClassAndYear(ctx context.Context, classID uuid.UUID, academicYear string) ([]model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("students.list_by_class", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	var out []model.Student
	for _, e := range repo.db.enrollments {
		if e.ClassID != classID || e.AcademicYear != academicYear {
			continue
		}
		if s := repo.db.student(e.StudentID); s != nil {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type teacherRepository struct {
	db *DB
}

func (repo *teacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("teachers.get", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	t := repo.db.teacher(id)
	if t == nil {
		return nil, repository.NotFound("teachers.get")
	}
	return t, nil
}

func (repo *teacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("teachers.list", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]model.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (repo *teacherRepository) ListSchedule(ctx context.Context, teacherID uuid.UUID, f repository.ScheduleFilter) ([]model.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("schedules.list", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	var out []model.Schedule
	for _, s := range repo.db.schedules {
		if s.TeacherID != teacherID || !s.IsActive {
			continue
		}
		if f.AcademicYear != "" && s.AcademicYear != f.AcademicYear {
			continue
		}
		if f.Semester != "" && s.Semester != f.Semester {
			continue
		}
		s.Subject = repo.db.subject(s.SubjectID)
		s.Class = repo.db.class(s.ClassID)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

type classRepository struct {
	db *DB
}

func (repo *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("classes.get", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	c := repo.db.class(id)
	if c == nil {
		return nil, repository.NotFound("classes.get")
	}
	if c.HomeroomTeacherID != nil {
		c.HomeroomTeacher = repo.db.teacher(*c.HomeroomTeacherID)
	}
	return c, nil
}

type gradeRepository struct {
	db *DB
}

func (repo *gradeRepository) ListByStudentYearSemester(ctx context.Context, studentID uuid.UUID, academicYear string, semester model.Semester) ([]model.Grade, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("grades.list_by_student", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	var out []model.Grade
	for _, g := range repo.db.grades {
		if g.StudentID != studentID || g.AcademicYear != academicYear || g.Semester != semester {
			continue
		}
		g.Subject = repo.db.subject(g.SubjectID)
		g.Teacher = repo.db.teacher(g.TeacherID)
		out = append(out, g)
	}
	return out, nil
}

func (repo *gradeRepository) List(ctx context.Context) ([]model.Grade, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("grades.list", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]model.Grade, 0, len(repo.db.grades))
	for _, g := range repo.db.grades {
		g.Student = repo.db.student(g.StudentID)
		g.Subject = repo.db.subject(g.SubjectID)
		g.Teacher = repo.db.teacher(g.TeacherID)
		out = append(out, g)
	}
	return out, nil
}

type attendanceRepository struct {
	db *DB
}

func (repo *attendanceRepository) ListByStudentAndRange(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Wrap("attendance.list", err)
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	var out []model.Attendance
	for _, a := range repo.db.attendance {
		d := time.Time(a.Date)
		if a.StudentID != studentID || d.Before(from) || d.After(to) {
			continue
		}
		a.Subject = repo.db.subject(a.SubjectID)
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return time.Time(out[i].Date).Before(time.Time(out[j].Date))
	})
	return out, nil
}
