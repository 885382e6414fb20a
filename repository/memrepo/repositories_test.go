package memrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/repository"
	"github.com/nikitaxru/rapor/repository/memrepo"
)

func TestStudentCreate(t *testing.T) {
	db := memrepo.New()
	repos := db.Set()
	ctx := context.Background()

	s := &model.Student{StudentID: "S001", FullName: "Ahmad"}
	require.NoError(t, repos.Students.Create(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)

	got, err := repos.Students.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmad", got.FullName)

	err = repos.Students.Create(ctx, &model.Student{StudentID: "S001", FullName: "Other"})
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
	assert.Equal(t, `student code "S001" already exists`, err.Error())
	assert.Equal(t, 1, db.StudentCount())

	_, err = repos.Students.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repos := memrepo.New().Set()

	err := repos.Students.Create(ctx, &model.Student{StudentID: "S001"})
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = repos.Grades.List(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListByClassAndYear(t *testing.T) {
	db := memrepo.New()
	class := db.AddClass(model.Class{Name: "7A", AcademicYear: "2024/2025"})
	zahra := db.AddStudent(model.Student{StudentID: "S2", FullName: "Zahra"})
	ahmad := db.AddStudent(model.Student{StudentID: "S1", FullName: "Ahmad"})
	last := db.AddStudent(model.Student{StudentID: "S3", FullName: "Bilal"})
	db.Enroll(class.ID, zahra.ID, "2024/2025")
	db.Enroll(class.ID, ahmad.ID, "2024/2025")
	db.Enroll(class.ID, last.ID, "2023/2024")

	got, err := db.Set().Students.ListByClassAndYear(context.Background(), class.ID, "2024/2025")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ahmad", got[0].FullName)
	assert.Equal(t, "Zahra", got[1].FullName)
}

func TestAttendanceRange(t *testing.T) {
	db := memrepo.New()
	student := db.AddStudent(model.Student{StudentID: "S1"})
	subject := db.AddSubject(model.Subject{Name: "Fiqih"})
	for _, d := range []int{15, 1, 30} {
		db.AddAttendance(model.Attendance{
			StudentID: student.ID,
			SubjectID: subject.ID,
			Date:      model.NewDate(2024, time.September, d),
			Status:    model.StatusPresent,
		})
	}
	db.AddAttendance(model.Attendance{StudentID: student.ID, Date: model.NewDate(2024, time.October, 1)})

	from := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC)
	got, err := db.Set().Attendance.ListByStudentAndRange(context.Background(), student.ID, from, to)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "1/9/2024", model.FormatDate(got[0].Date))
	assert.Equal(t, "30/9/2024", model.FormatDate(got[2].Date))
	assert.Equal(t, "Fiqih", got[0].SubjectName())
}
