// Package httpapi exposes report generation, exports and the student import over HTTP.
package httpapi

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/importer"
	"github.com/nikitaxru/rapor/report"
)

const importTemplateFilename = "template-import-siswa.xlsx"

type Handler struct {
	reports  *report.Generator
	importer *importer.Importer
	validate *validator.Validate
	logger   *zap.Logger
	// maxUpload bounds the import file size in bytes; zero disables the check.
	maxUpload int64
}

func NewHandler(reports *report.Generator, im *importer.Importer, logger *zap.Logger, maxUpload int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		reports:   reports,
		importer:  im,
		validate:  NewValidator(),
		logger:    logger,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Register(r fiber.Router) {
	api := r.Group("/api")

	reports := api.Group("/reports")
	reports.Post("/student-report-card", h.StudentReportCard)
	reports.Post("/class-list", h.ClassList)
	reports.Post("/attendance", h.Attendance)
	reports.Post("/teacher-schedule", h.TeacherSchedule)

	export := api.Group("/export")
	export.Get("/students", h.ExportStudents)
	export.Get("/teachers", h.ExportTeachers)
	export.Get("/grades", h.ExportGrades)

	imp := api.Group("/import")
	imp.Get("/students/template", h.StudentTemplate)
	imp.Post("/students", h.ImportStudents)
}

// decode parses the JSON body into req and validates it.
func (h *Handler) decode(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return h.validate.Struct(req)
}

func (h *Handler) reject(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, err)
	}
	return h.fail(c, err)
}

func (h *Handler) StudentReportCard(c *fiber.Ctx) error {
	var req ReportCardRequest
	if err := h.decode(c, &req); err != nil {
		return h.reject(c, err)
	}
	doc, err := h.reports.StudentReportCard(c.UserContext(), req.Params())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) ClassList(c *fiber.Ctx) error {
	var req ClassListRequest
	if err := h.decode(c, &req); err != nil {
		return h.reject(c, err)
	}
	doc, err := h.reports.ClassList(c.UserContext(), req.Params())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) Attendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := h.decode(c, &req); err != nil {
		return h.reject(c, err)
	}
	doc, err := h.reports.Attendance(c.UserContext(), req.Params())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) TeacherSchedule(c *fiber.Ctx) error {
	var req TeacherScheduleRequest
	if err := h.decode(c, &req); err != nil {
		return h.reject(c, err)
	}
	doc, err := h.reports.TeacherSchedule(c.UserContext(), req.Params())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) ExportStudents(c *fiber.Ctx) error {
	doc, err := h.reports.ExportStudents(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) ExportTeachers(c *fiber.Ctx) error {
	doc, err := h.reports.ExportTeachers(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) ExportGrades(c *fiber.Ctx) error {
	doc, err := h.reports.ExportGrades(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, doc)
}

func (h *Handler) StudentTemplate(c *fiber.Ctx) error {
	body, err := importer.StudentTemplate()
	if err != nil {
		return h.fail(c, err)
	}
	return sendDocument(c, &report.Document{
		Filename:    importTemplateFilename,
		ContentType: rapor.XlsxContentType,
		Body:        body,
	})
}

// ImportStudents reads the multipart field "file" and runs the student import.
func (h *Handler) ImportStudents(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return Error(c, fiber.StatusBadRequest, "File is required")
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return Error(c, fiber.StatusRequestEntityTooLarge, "File is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, errors.Wrap(err, "open upload"))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, errors.Wrap(err, "read upload"))
	}

	out, err := h.importer.ImportStudents(c.UserContext(), data)
	if err != nil {
		if out == nil {
			h.logger.Warn("unreadable import workbook", zap.String("filename", fh.Filename), zap.Error(err))
			return Error(c, fiber.StatusBadRequest, "Invalid workbook")
		}
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": out.Summary(),
		"results": out,
	})
}
