// Package memrepo is an in-memory repository.Set used by tests and examples.
package memrepo

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/repository"
)

type DB struct {
	mutex       sync.RWMutex
	students    map[uuid.UUID]*model.Student
	teachers    map[uuid.UUID]*model.Teacher
	subjects    map[uuid.UUID]*model.Subject
	classes     map[uuid.UUID]*model.Class
	enrollments []model.ClassStudent
	grades      []model.Grade
	attendance  []model.Attendance
	schedules   []model.Schedule
}

func New() *DB {
	return &DB{
		students: map[uuid.UUID]*model.Student{},
		teachers: map[uuid.UUID]*model.Teacher{},
		subjects: map[uuid.UUID]*model.Subject{},
		classes:  map[uuid.UUID]*model.Class{},
	}
}

func (db *DB) Set() repository.Set {
	return repository.Set{
		Students:   &studentRepository{db: db},
		Teachers:   &teacherRepository{db: db},
		Classes:    &classRepository{db: db},
		Grades:     &gradeRepository{db: db},
		Attendance: &attendanceRepository{db: db},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// AddStudent stores s as-is, bypassing the uniqueness check of Create.
func (db *DB) AddStudent(s model.Student) model.Student {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&s.ID)
	db.students[s.ID] = &s
	return s
}

func (db *DB) AddTeacher(t model.Teacher) model.Teacher {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&t.ID)
	db.teachers[t.ID] = &t
	return t
}

func (db *DB) AddSubject(s model.Subject) model.Subject {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&s.ID)
	db.subjects[s.ID] = &s
	return s
}

func (db *DB) AddClass(c model.Class) model.Class {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&c.ID)
	db.classes[c.ID] = &c
	return c
}

func (db *DB) Enroll(classID, studentID uuid.UUID, academicYear string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.enrollments = append(db.enrollments, model.ClassStudent{
		ID: uuid.New(), ClassID: classID, StudentID: studentID, AcademicYear: academicYear,
	})
}

func (db *DB) AddGrade(g model.Grade) model.Grade {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&g.ID)
	db.grades = append(db.grades, g)
	return g
}

func (db *DB) AddAttendance(a model.Attendance) model.Attendance {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&a.ID)
	db.attendance = append(db.attendance, a)
	return a
}

func (db *DB) AddSchedule(s model.Schedule) model.Schedule {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	ensureID(&s.ID)
	db.schedules = append(db.schedules, s)
	return s
}

// StudentCount is the number of stored students.
func (db *DB) StudentCount() int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return len(db.students)
}

// relation helpers; callers hold the read lock

func (db *DB) subject(id uuid.UUID) *model.Subject {
	if s, ok := db.subjects[id]; ok {
		cp := *s
		return &cp
	}
	return nil
}

func (db *DB) teacher(id uuid.UUID) *model.Teacher {
	if t, ok := db.teachers[id]; ok {
		cp := *t
		return &cp
	}
	return nil
}

func (db *DB) student(id uuid.UUID) *model.Student {
	if s, ok := db.students[id]; ok {
		cp := *s
		return &cp
	}
	return nil
}

func (db *DB) class(id uuid.UUID) *model.Class {
	if c, ok := db.classes[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}
