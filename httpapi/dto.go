package httpapi

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/report"
)

var rxAcademicYear = regexp.MustCompile(`^\d{4}/\d{4}$`)

// NewValidator reports fields by their json names and knows the academic_year tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return rxAcademicYear.MatchString(fl.Field().String())
	})
	return v
}

type ReportCardRequest struct {
	StudentID    string `json:"studentId" validate:"required,uuid"`
	AcademicYear string `json:"academicYear" validate:"required,academic_year"`
	Semester     string `json:"semester" validate:"required,oneof=GANJIL GENAP"`
}

func (r ReportCardRequest) Params() report.ReportCardParams {
	return report.ReportCardParams{
		StudentID:    uuid.MustParse(r.StudentID),
		AcademicYear: r.AcademicYear,
		Semester:     model.Semester(r.Semester),
	}
}

type ClassListRequest struct {
	ClassID      string `json:"classId" validate:"required,uuid"`
	AcademicYear string `json:"academicYear" validate:"omitempty,academic_year"`
}

func (r ClassListRequest) Params() report.ClassListParams {
	return report.ClassListParams{ClassID: uuid.MustParse(r.ClassID), AcademicYear: r.AcademicYear}
}

type AttendanceRequest struct {
	StudentID    string `json:"studentId" validate:"required,uuid"`
	AcademicYear string `json:"academicYear" validate:"required,academic_year"`
	Month        int    `json:"month" validate:"required,min=1,max=12"`
	Year         int    `json:"year" validate:"omitempty,min=1900,max=2999"`
}

func (r AttendanceRequest) Params() report.AttendanceParams {
	return report.AttendanceParams{
		StudentID:    uuid.MustParse(r.StudentID),
		AcademicYear: r.AcademicYear,
		Month:        r.Month,
		Year:         r.Year,
	}
}

type TeacherScheduleRequest struct {
	TeacherID    string `json:"teacherId" validate:"required,uuid"`
	AcademicYear string `json:"academicYear" validate:"omitempty,academic_year"`
	Semester     string `json:"semester" validate:"omitempty,oneof=GANJIL GENAP"`
}

func (r TeacherScheduleRequest) Params() report.TeacherScheduleParams {
	return report.TeacherScheduleParams{
		TeacherID:    uuid.MustParse(r.TeacherID),
		AcademicYear: r.AcademicYear,
		Semester:     model.Semester(r.Semester),
	}
}
