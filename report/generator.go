// Package report turns repository records into rendered documents: DOCX reports
// through the template renderer and XLSX exports through the workbook builder.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/repository"
)

// Document is a generated file ready to be sent to a client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Generator struct {
	repos    repository.Set
	renderer *rapor.Renderer
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Generator)

// WithClock fixes the time used for report dates and export filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGenerator(repos repository.Set, renderer *rapor.Renderer, opts ...Option) *Generator {
	g := &Generator{repos: repos, renderer: renderer, logger: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Generator) today() string {
	return model.FormatDate(datatypes.Date(g.now()))
}

func (g *Generator) render(id, filename string, data interface{}) (*Document, error) {
	body, err := g.renderer.Render(id, data)
	if err != nil {
		return nil, err
	}
	g.logger.Info("report generated", zap.String("template", id), zap.String("filename", filename))
	return &Document{Filename: filename, ContentType: rapor.DocxContentType, Body: body}, nil
}

type ReportCardParams struct {
	StudentID    uuid.UUID
	AcademicYear string
	Semester     model.Semester
}

func (g *Generator) StudentReportCard(ctx context.Context, p ReportCardParams) (*Document, error) {
	if !p.Semester.Valid() {
		return nil, errors.Wrapf(ErrInvalidParams, "semester %q", p.Semester)
	}
	student, err := g.repos.Students.GetByID(ctx, p.StudentID)
	if err != nil {
		return nil, errors.Wrap(err, "report card")
	}
	grades, err := g.repos.Grades.ListByStudentYearSemester(ctx, p.StudentID, p.AcademicYear, p.Semester)
	if err != nil {
		return nil, errors.Wrap(err, "report card")
	}
	if len(grades) == 0 {
		return nil, errors.Wrapf(ErrEmptyResultSet, "no grades for %s semester %s", p.AcademicYear, p.Semester.Label())
	}

	dist := GradeDistribution(grades)
	lines := make([]GradeLine, 0, len(grades))
	for _, gr := range grades {
		lines = append(lines, GradeLine{
			SubjectName:     gr.SubjectName(),
			AssignmentScore: gr.AssignmentScore,
			MidtermScore:    gr.MidtermScore,
			FinalScore:      gr.FinalScore,
			TotalScore:      gr.TotalScore,
			Grade:           gr.Letter(),
		})
	}
	rc := ReportCardContext{
		StudentName:   student.FullName,
		StudentID:     student.StudentID,
		AcademicYear:  p.AcademicYear,
		Semester:      p.Semester.Label(),
		BirthDate:     model.FormatDate(student.BirthDate),
		BirthPlace:    student.BirthPlace,
		Address:       student.Address,
		ParentName:    student.ParentName,
		ParentPhone:   student.ParentPhone,
		Grades:        lines,
		TotalSubjects: len(grades),
		AverageScore:  fmt.Sprintf("%.2f", AverageTotal(grades)),
		GradeA:        dist.A,
		GradeB:        dist.B,
		GradeC:        dist.C,
		GradeD:        dist.D,
		GradeE:        dist.E,
		ReportDate:    g.today(),
	}
	name := Filename("docx", "rapor", student.FullName, p.AcademicYear, p.Semester.Label())
	return g.render(rapor.TemplateReportCard, name, rc)
}

type ClassListParams struct {
	ClassID uuid.UUID
	// AcademicYear defaults to the class's own academic year.
	AcademicYear string
}

func (g *Generator) ClassList(ctx context.Context, p ClassListParams) (*Document, error) {
	class, err := g.repos.Classes.GetByID(ctx, p.ClassID)
	if err != nil {
		return nil, errors.Wrap(err, "class list")
	}
	year := p.AcademicYear
	if year == "" {
		year = class.AcademicYear
	}
	students, err := g.repos.Students.ListByClassAndYear(ctx, p.ClassID, year)
	if err != nil {
		return nil, errors.Wrap(err, "class list")
	}

	roster := make([]RosterLine, 0, len(students))
	for i, s := range students {
		roster = append(roster, RosterLine{
			No:          i + 1,
			StudentID:   s.StudentID,
			FullName:    s.FullName,
			Gender:      s.Gender.Short(),
			BirthDate:   model.FormatDate(s.BirthDate),
			ParentName:  s.ParentName,
			ParentPhone: s.ParentPhone,
		})
	}
	homeroom := "-"
	if class.HomeroomTeacher != nil {
		homeroom = class.HomeroomTeacher.FullName
	}
	cl := ClassListContext{
		ClassName:       class.Name,
		Level:           class.Level.Label(),
		AcademicYear:    year,
		HomeroomTeacher: homeroom,
		TotalStudents:   len(students),
		MaxStudents:     class.MaxStudents,
		Students:        roster,
		ReportDate:      g.today(),
	}
	name := Filename("docx", "daftar-siswa", class.Name, year)
	return g.render(rapor.TemplateClassList, name, cl)
}

type AttendanceParams struct {
	StudentID    uuid.UUID
	AcademicYear string
	Month        int
	// Year is derived from AcademicYear when zero.
	Year int
}

// YearForMonth picks the calendar year of month within an academic year
// "YYYY/YYYY": July to December fall in the first year, January to June in the second.
func YearForMonth(academicYear string, month int) (int, error) {
	first, second, ok := strings.Cut(academicYear, "/")
	if !ok {
		return 0, errors.Wrapf(ErrInvalidParams, "academic year %q", academicYear)
	}
	y1, err1 := strconv.Atoi(first)
	y2, err2 := strconv.Atoi(second)
	if err1 != nil || err2 != nil {
		return 0, errors.Wrapf(ErrInvalidParams, "academic year %q", academicYear)
	}
	if month >= 7 {
		return y1, nil
	}
	return y2, nil
}

// MonthRange returns the first and last day of a calendar month, both at midnight UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func (g *Generator) Attendance(ctx context.Context, p AttendanceParams) (*Document, error) {
	if p.Month < 1 || p.Month > 12 {
		return nil, errors.Wrapf(ErrInvalidParams, "month %d", p.Month)
	}
	year := p.Year
	if year == 0 {
		y, err := YearForMonth(p.AcademicYear, p.Month)
		if err != nil {
			return nil, err
		}
		year = y
	}
	student, err := g.repos.Students.GetByID(ctx, p.StudentID)
	if err != nil {
		return nil, errors.Wrap(err, "attendance report")
	}
	from, to := MonthRange(year, time.Month(p.Month))
	records, err := g.repos.Attendance.ListByStudentAndRange(ctx, p.StudentID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "attendance report")
	}
	monthName := model.MonthName(time.Month(p.Month))
	if len(records) == 0 {
		return nil, errors.Wrapf(ErrEmptyResultSet, "no attendance in %s %d", monthName, year)
	}

	sum := SummarizeAttendance(records)
	lines := make([]AttendanceLine, 0, len(records))
	for _, r := range records {
		notes := "-"
		if r.Notes != nil && *r.Notes != "" {
			notes = *r.Notes
		}
		lines = append(lines, AttendanceLine{
			Date:    model.FormatDate(r.Date),
			Subject: r.SubjectName(),
			Status:  r.Status.Label(),
			Notes:   notes,
		})
	}
	ac := AttendanceContext{
		StudentName:          student.FullName,
		StudentID:            student.StudentID,
		AcademicYear:         p.AcademicYear,
		Month:                p.Month,
		MonthName:            monthName,
		Year:                 year,
		TotalDays:            sum.Total,
		PresentDays:          sum.Present,
		AbsentDays:           sum.Absent,
		SickDays:             sum.Sick,
		PermissionDays:       sum.Permission,
		AttendancePercentage: fmt.Sprintf("%.1f", sum.Percentage),
		AttendanceRecords:    lines,
		ReportDate:           g.today(),
	}
	name := Filename("docx", "kehadiran", student.FullName, fmt.Sprintf("%d-%02d", year, p.Month))
	return g.render(rapor.TemplateAttendance, name, ac)
}

type TeacherScheduleParams struct {
	TeacherID    uuid.UUID
	AcademicYear string
	Semester     model.Semester
}

func (g *Generator) TeacherSchedule(ctx context.Context, p TeacherScheduleParams) (*Document, error) {
	if p.Semester != "" && !p.Semester.Valid() {
		return nil, errors.Wrapf(ErrInvalidParams, "semester %q", p.Semester)
	}
	teacher, err := g.repos.Teachers.GetByID(ctx, p.TeacherID)
	if err != nil {
		return nil, errors.Wrap(err, "teacher schedule")
	}
	rows, err := g.repos.Teachers.ListSchedule(ctx, p.TeacherID, repository.ScheduleFilter{
		AcademicYear: p.AcademicYear,
		Semester:     p.Semester,
	})
	if err != nil {
		return nil, errors.Wrap(err, "teacher schedule")
	}

	days := GroupByDay(rows)
	var buckets [7][]ScheduleLine
	total := 0
	for i, day := range days {
		buckets[i] = make([]ScheduleLine, 0, len(day))
		for _, s := range day {
			buckets[i] = append(buckets[i], ScheduleLine{
				SubjectName: s.SubjectName(),
				ClassName:   s.ClassName(),
				StartTime:   s.StartTime,
				EndTime:     s.EndTime,
			})
		}
		total += len(day)
	}
	tc := TeacherScheduleContext{
		TeacherName:       teacher.FullName,
		TeacherID:         teacher.TeacherID,
		Email:             teacher.Email,
		Phone:             teacher.Phone,
		TotalClasses:      total,
		ScheduleMonday:    buckets[0],
		ScheduleTuesday:   buckets[1],
		ScheduleWednesday: buckets[2],
		ScheduleThursday:  buckets[3],
		ScheduleFriday:    buckets[4],
		ScheduleSaturday:  buckets[5],
		ScheduleSunday:    buckets[6],
		ReportDate:        g.today(),
	}
	period := p.AcademicYear
	if p.Semester != "" {
		period = strings.TrimSpace(period + " " + p.Semester.Label())
	}
	name := Filename("docx", "jadwal", teacher.FullName, period)
	return g.render(rapor.TemplateTeacherSchedule, name, tc)
}
