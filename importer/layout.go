package importer

import (
	"github.com/pkg/errors"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/model"
)

// StudentRow is one decoded line of the student import sheet. Dates are
// already normalized to YYYY-MM-DD when they were written as D/M/YYYY.
type StudentRow struct {
	StudentID      string       `col:"ID Siswa" validate:"required"`
	FullName       string       `col:"Nama Lengkap" validate:"required"`
	Gender         model.Gender `col:"Jenis Kelamin" validate:"required"`
	BirthDate      string       `col:"Tanggal Lahir" validate:"required"`
	BirthPlace     string       `col:"Tempat Lahir" validate:"required"`
	Address        string       `col:"Alamat" validate:"required"`
	Phone          string       `col:"Telepon"`
	ParentName     string       `col:"Nama Orang Tua" validate:"required"`
	ParentPhone    string       `col:"Telepon Orang Tua" validate:"required"`
	EnrollmentDate string       `col:"Tanggal Masuk" validate:"required"`
}

// StudentLayout is the ten-column student import sheet. Starred headers are required.
var StudentLayout = rapor.Layout[StudentRow]{
	Name: "Template Import Siswa",
	Columns: []rapor.Column{
		{Header: "ID Siswa*", Key: "student_id", Width: 15},
		{Header: "Nama Lengkap*", Key: "full_name", Width: 25},
		{Header: "Jenis Kelamin*", Key: "gender", Width: 15},
		{Header: "Tanggal Lahir*", Key: "birth_date", Width: 15},
		{Header: "Tempat Lahir*", Key: "birth_place", Width: 20},
		{Header: "Alamat*", Key: "address", Width: 30},
		{Header: "Telepon", Key: "phone", Width: 15},
		{Header: "Nama Orang Tua*", Key: "parent_name", Width: 25},
		{Header: "Telepon Orang Tua*", Key: "parent_phone", Width: 15},
		{Header: "Tanggal Masuk*", Key: "enrollment_date", Width: 15},
	},
	Decode: func(c []string) StudentRow {
		return StudentRow{
			StudentID:      c[0],
			FullName:       c[1],
			Gender:         model.GenderFromLabel(c[2]),
			BirthDate:      rapor.NormalizeDate(c[3]),
			BirthPlace:     c[4],
			Address:        c[5],
			Phone:          c[6],
			ParentName:     c[7],
			ParentPhone:    c[8],
			EnrollmentDate: rapor.NormalizeDate(c[9]),
		}
	},
}

// Student converts the row into an active student record.
func (r StudentRow) Student() (model.Student, error) {
	birth, err := model.ParseISODate(r.BirthDate)
	if err != nil {
		return model.Student{}, errors.Errorf("invalid birth date %q", r.BirthDate)
	}
	enrolled, err := model.ParseISODate(r.EnrollmentDate)
	if err != nil {
		return model.Student{}, errors.Errorf("invalid enrollment date %q", r.EnrollmentDate)
	}
	s := model.Student{
		StudentID:      r.StudentID,
		FullName:       r.FullName,
		Gender:         r.Gender,
		BirthDate:      birth,
		BirthPlace:     r.BirthPlace,
		Address:        r.Address,
		ParentName:     r.ParentName,
		ParentPhone:    r.ParentPhone,
		EnrollmentDate: enrolled,
		IsActive:       true,
	}
	if r.Phone != "" {
		phone := r.Phone
		s.Phone = &phone
	}
	return s, nil
}

var templateSample = rapor.Row{
	"student_id":      "S001",
	"full_name":       "Ahmad Fauzi",
	"gender":          model.MaleLabel,
	"birth_date":      "01/01/2005",
	"birth_place":     "Jakarta",
	"address":         "Jl. Contoh No. 123",
	"phone":           "081234567890",
	"parent_name":     "Budi Santoso",
	"parent_phone":    "081234567891",
	"enrollment_date": "01/07/2024",
}

const (
	InstructionSheet = "Petunjuk"
	instructionTitle = "PETUNJUK IMPORT DATA SISWA"
)

var instructions = []string{
	"1. Kolom dengan tanda (*) wajib diisi",
	"2. Format tanggal: DD/MM/YYYY",
	"3. Jenis Kelamin: Laki-laki atau Perempuan",
	"4. ID Siswa harus unik",
	"5. Hapus baris contoh sebelum import",
}

// StudentTemplate builds the blank import workbook: the layout sheet with one
// sample row and an instruction sheet.
func StudentTemplate() ([]byte, error) {
	w := rapor.NewWorkbook()
	defer w.Close()
	if err := w.AddTable(StudentLayout.Name, StudentLayout.Columns, []rapor.Row{templateSample}); err != nil {
		return nil, err
	}
	if err := w.AddNotes(InstructionSheet, instructionTitle, instructions); err != nil {
		return nil, err
	}
	return w.Bytes()
}
