package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/httpapi"
	"github.com/nikitaxru/rapor/importer"
	"github.com/nikitaxru/rapor/model"
	"github.com/nikitaxru/rapor/report"
	"github.com/nikitaxru/rapor/repository/memrepo"
)

type HandlerSuite struct {
	suite.Suite
	db      *memrepo.DB
	app     *fiber.App
	student model.Student
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.db = memrepo.New()
	r, err := rapor.NewDefaultRenderer(nil)
	s.Require().NoError(err)
	clock := func() time.Time { return time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC) }
	gen := report.NewGenerator(s.db.Set(), r, report.WithClock(clock))
	im := importer.New(s.db.Set().Students, nil)
	s.app = httpapi.NewApp(httpapi.NewHandler(gen, im, nil, 1<<20), 0)

	s.student = s.db.AddStudent(model.Student{
		StudentID: "S001",
		FullName:  "Ahmad Fauzi",
		Gender:    model.GenderMale,
		IsActive:  true,
	})
	subject := s.db.AddSubject(model.Subject{Code: "FQH", Name: "Fiqih"})
	grade := model.GradeA
	s.db.AddGrade(model.Grade{
		StudentID:    s.student.ID,
		SubjectID:    subject.ID,
		AcademicYear: "2024/2025",
		Semester:     model.SemesterGanjil,
		TotalScore:   91,
		Grade:        &grade,
	})
}

func (s *HandlerSuite) postJSON(path string, body interface{}) *http.Response {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerSuite) get(path string) *http.Response {
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerSuite) decode(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var out map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *HandlerSuite) TestReportCard() {
	resp := s.postJSON("/api/reports/student-report-card", fiber.Map{
		"studentId":    s.student.ID.String(),
		"academicYear": "2024/2025",
		"semester":     "GANJIL",
	})
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(rapor.DocxContentType, resp.Header.Get(fiber.HeaderContentType))
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "rapor-Ahmad_Fauzi-2024-2025-Ganjil.docx")

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	xml, err := rapor.ReadDocumentXML(body)
	s.Require().NoError(err)
	s.Contains(string(xml), "Rata-rata: 91.00")
}

func (s *HandlerSuite) TestReportCardValidation() {
	resp := s.postJSON("/api/reports/student-report-card", fiber.Map{
		"studentId":    s.student.ID.String(),
		"academicYear": "2024-2025",
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	out := s.decode(resp)
	fields, ok := out["errors"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("academic_year", fields["academicYear"])
	s.Equal("required", fields["semester"])
}

func (s *HandlerSuite) TestMalformedBody() {
	req := httptest.NewRequest(fiber.MethodPost, "/api/reports/class-list", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerSuite) TestNotFoundAndEmpty() {
	resp := s.postJSON("/api/reports/student-report-card", fiber.Map{
		"studentId":    uuid.NewString(),
		"academicYear": "2024/2025",
		"semester":     "GANJIL",
	})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("Record not found", s.decode(resp)["message"])

	resp = s.postJSON("/api/reports/attendance", fiber.Map{
		"studentId":    s.student.ID.String(),
		"academicYear": "2024/2025",
		"month":        9,
	})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("No data for the requested period", s.decode(resp)["message"])
}

func (s *HandlerSuite) TestExports() {
	for _, path := range []string{"/api/export/students", "/api/export/teachers", "/api/export/grades", "/api/import/students/template"} {
		resp := s.get(path)
		s.Equal(fiber.StatusOK, resp.StatusCode, path)
		s.Equal(rapor.XlsxContentType, resp.Header.Get(fiber.HeaderContentType), path)
	}
	resp := s.get("/api/export/students")
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "data-siswa-2024-09-02.xlsx")
}

func upload(field string, data []byte) (io.Reader, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if data != nil {
		part, _ := w.CreateFormFile(field, "siswa.xlsx")
		_, _ = part.Write(data)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func (s *HandlerSuite) importWorkbook() []byte {
	f := excelize.NewFile()
	defer f.Close()
	header := []interface{}{"ID Siswa*", "Nama Lengkap*", "Jenis Kelamin*", "Tanggal Lahir*", "Tempat Lahir*",
		"Alamat*", "Telepon", "Nama Orang Tua*", "Telepon Orang Tua*", "Tanggal Masuk*"}
	s.Require().NoError(f.SetSheetRow("Sheet1", "A1", &header))
	ok := []interface{}{"S002", "Zahra", "Perempuan", "1/2/2011", "Depok", "Jl. Anggrek", "", "Ibu Zahra", "0812", "1/7/2024"}
	s.Require().NoError(f.SetSheetRow("Sheet1", "A2", &ok))
	dup := []interface{}{"S001", "Ahmad", "Laki-laki", "1/2/2011", "Depok", "Jl. Anggrek", "", "Bapak", "0812", "1/7/2024"}
	s.Require().NoError(f.SetSheetRow("Sheet1", "A3", &dup))
	buf, err := f.WriteToBuffer()
	s.Require().NoError(err)
	return buf.Bytes()
}

func (s *HandlerSuite) TestImportStudents() {
	body, ct := upload("file", s.importWorkbook())
	req := httptest.NewRequest(fiber.MethodPost, "/api/import/students", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	out := s.decode(resp)
	s.Equal("Import finished. 1 succeeded, 1 failed.", out["message"])
	results := out["results"].(map[string]interface{})
	s.EqualValues(1, results["success"])
	s.EqualValues(1, results["failed"])
	s.Equal([]interface{}{`Row 3: student code "S001" already exists`}, results["errors"])
	s.Equal([]interface{}{}, results["skipped"])
	s.Equal(2, s.db.StudentCount())
}

func (s *HandlerSuite) TestImportRejectsBadUploads() {
	body, ct := upload("file", nil)
	req := httptest.NewRequest(fiber.MethodPost, "/api/import/students", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("File is required", s.decode(resp)["message"])

	body, ct = upload("file", []byte("plain text"))
	req = httptest.NewRequest(fiber.MethodPost, "/api/import/students", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err = s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Invalid workbook", s.decode(resp)["message"])
}

func (s *HandlerSuite) TestHealth() {
	resp := s.get("/health")
	s.Equal(fiber.StatusOK, resp.StatusCode)
}
