package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// MaleLabel is the spreadsheet label recognised as male on import.
const MaleLabel = "Laki-laki"

func (g Gender) Label() string {
	if g == GenderMale {
		return MaleLabel
	}
	return "Perempuan"
}

// Short is the one-letter form used on class rosters.
func (g Gender) Short() string {
	if g == GenderMale {
		return "L"
	}
	return "P"
}

// GenderFromLabel maps MaleLabel to MALE and everything else to FEMALE.
func GenderFromLabel(s string) Gender {
	if s == MaleLabel {
		return GenderMale
	}
	return GenderFemale
}

type Semester string

const (
	SemesterGanjil Semester = "GANJIL"
	SemesterGenap  Semester = "GENAP"
)

func (s Semester) Label() string {
	switch s {
	case SemesterGanjil:
		return "Ganjil"
	case SemesterGenap:
		return "Genap"
	}
	return string(s)
}

func (s Semester) Valid() bool { return s == SemesterGanjil || s == SemesterGenap }

type ClassLevel string

const (
	LevelIbtidaiyah ClassLevel = "IBTIDAIYAH"
	LevelTsanawiyah ClassLevel = "TSANAWIYAH"
	LevelAliyah     ClassLevel = "ALIYAH"
)

func (l ClassLevel) Label() string {
	switch l {
	case LevelIbtidaiyah:
		return "Ibtidaiyah"
	case LevelTsanawiyah:
		return "Tsanawiyah"
	case LevelAliyah:
		return "Aliyah"
	}
	return string(l)
}

type AttendanceStatus string

const (
	StatusPresent    AttendanceStatus = "PRESENT"
	StatusAbsent     AttendanceStatus = "ABSENT"
	StatusSick       AttendanceStatus = "SICK"
	StatusPermission AttendanceStatus = "PERMISSION"
)

func (s AttendanceStatus) Label() string {
	switch s {
	case StatusPresent:
		return "Hadir"
	case StatusAbsent:
		return "Tidak Hadir"
	case StatusSick:
		return "Sakit"
	case StatusPermission:
		return "Izin"
	}
	return string(s)
}

type LetterGrade string

const (
	GradeA LetterGrade = "A"
	GradeB LetterGrade = "B"
	GradeC LetterGrade = "C"
	GradeD LetterGrade = "D"
	GradeE LetterGrade = "E"
)

var dayNames = [...]string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

// DayName returns the Indonesian name for 1=Monday..7=Sunday.
func DayName(day int) string {
	if day < 1 || day > len(dayNames) {
		return fmt.Sprintf("Hari %d", day)
	}
	return dayNames[day-1]
}

func ActiveLabel(active bool) string {
	if active {
		return "Aktif"
	}
	return "Tidak Aktif"
}

// NewDate builds a date-only column value.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (datatypes.Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders the short id-ID form D/M/YYYY. Zero dates render empty.
func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

var monthNames = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember"}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return fmt.Sprintf("Bulan %d", int(m))
	}
	return monthNames[m-1]
}
