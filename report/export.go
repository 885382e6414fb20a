package report

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/model"
)

const (
	StudentSheet = "Data Siswa"
	TeacherSheet = "Data Guru"
	GradeSheet   = "Data Nilai"
)

var StudentColumns = []rapor.Column{
	{Header: "ID Siswa", Key: "student_id", Width: 15},
	{Header: "Nama Lengkap", Key: "full_name", Width: 25},
	{Header: "Jenis Kelamin", Key: "gender", Width: 15},
	{Header: "Tanggal Lahir", Key: "birth_date", Width: 15},
	{Header: "Tempat Lahir", Key: "birth_place", Width: 20},
	{Header: "Alamat", Key: "address", Width: 30},
	{Header: "Telepon", Key: "phone", Width: 15},
	{Header: "Nama Orang Tua", Key: "parent_name", Width: 25},
	{Header: "Telepon Orang Tua", Key: "parent_phone", Width: 15},
	{Header: "Tanggal Masuk", Key: "enrollment_date", Width: 15},
	{Header: "Status", Key: "status", Width: 10},
}

var TeacherColumns = []rapor.Column{
	{Header: "ID Guru", Key: "teacher_id", Width: 15},
	{Header: "Nama Lengkap", Key: "full_name", Width: 25},
	{Header: "Jenis Kelamin", Key: "gender", Width: 15},
	{Header: "Tanggal Lahir", Key: "birth_date", Width: 15},
	{Header: "Tempat Lahir", Key: "birth_place", Width: 20},
	{Header: "Alamat", Key: "address", Width: 30},
	{Header: "Telepon", Key: "phone", Width: 15},
	{Header: "Email", Key: "email", Width: 25},
	{Header: "Tanggal Bergabung", Key: "hire_date", Width: 15},
	{Header: "Status", Key: "status", Width: 10},
}

var GradeColumns = []rapor.Column{
	{Header: "Nama Siswa", Key: "student_name", Width: 25},
	{Header: "Mata Pelajaran", Key: "subject_name", Width: 20},
	{Header: "Guru", Key: "teacher_name", Width: 25},
	{Header: "Tahun Ajaran", Key: "academic_year", Width: 15},
	{Header: "Semester", Key: "semester", Width: 10},
	{Header: "Nilai Tugas", Key: "assignment_score", Width: 12},
	{Header: "Nilai UTS", Key: "midterm_score", Width: 12},
	{Header: "Nilai UAS", Key: "final_score", Width: 12},
	{Header: "Nilai Total", Key: "total_score", Width: 12},
	{Header: "Grade", Key: "grade", Width: 8},
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func StudentRows(students []model.Student) []rapor.Row {
	rows := make([]rapor.Row, 0, len(students))
	for _, s := range students {
		rows = append(rows, rapor.Row{
			"student_id":      s.StudentID,
			"full_name":       s.FullName,
			"gender":          s.Gender.Label(),
			"birth_date":      model.FormatDate(s.BirthDate),
			"birth_place":     s.BirthPlace,
			"address":         s.Address,
			"phone":           s.PhoneOrEmpty(),
			"parent_name":     s.ParentName,
			"parent_phone":    s.ParentPhone,
			"enrollment_date": model.FormatDate(s.EnrollmentDate),
			"status":          model.ActiveLabel(s.IsActive),
		})
	}
	return rows
}

func TeacherRows(teachers []model.Teacher) []rapor.Row {
	rows := make([]rapor.Row, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, rapor.Row{
			"teacher_id":  t.TeacherID,
			"full_name":   t.FullName,
			"gender":      t.Gender.Label(),
			"birth_date":  model.FormatDate(t.BirthDate),
			"birth_place": t.BirthPlace,
			"address":     t.Address,
			"phone":       t.Phone,
			"email":       t.Email,
			"hire_date":   model.FormatDate(t.HireDate),
			"status":      model.ActiveLabel(t.IsActive),
		})
	}
	return rows
}

func GradeRows(grades []model.Grade) []rapor.Row {
	rows := make([]rapor.Row, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, rapor.Row{
			"student_name":     g.StudentName(),
			"subject_name":     g.SubjectName(),
			"teacher_name":     g.TeacherName(),
			"academic_year":    g.AcademicYear,
			"semester":         g.Semester.Label(),
			"assignment_score": score(g.AssignmentScore),
			"midterm_score":    score(g.MidtermScore),
			"final_score":      score(g.FinalScore),
			"total_score":      score(g.TotalScore),
			"grade":            g.Letter(),
		})
	}
	return rows
}

func (g *Generator) export(entity, sheet string, cols []rapor.Column, rows []rapor.Row) (*Document, error) {
	body, err := rapor.BuildTable(sheet, cols, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "export %s", entity)
	}
	name := ExportFilename(entity, g.now())
	g.logger.Info("export generated", zap.String("filename", name), zap.Int("rows", len(rows)))
	return &Document{Filename: name, ContentType: rapor.XlsxContentType, Body: body}, nil
}

func (g *Generator) ExportStudents(ctx context.Context) (*Document, error) {
	students, err := g.repos.Students.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "export students")
	}
	return g.export("siswa", StudentSheet, StudentColumns, StudentRows(students))
}

func (g *Generator) ExportTeachers(ctx context.Context) (*Document, error) {
	teachers, err := g.repos.Teachers.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "export teachers")
	}
	return g.export("guru", TeacherSheet, TeacherColumns, TeacherRows(teachers))
}

func (g *Generator) ExportGrades(ctx context.Context) (*Document, error) {
	grades, err := g.repos.Grades.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "export grades")
	}
	return g.export("nilai", GradeSheet, GradeColumns, GradeRows(grades))
}
