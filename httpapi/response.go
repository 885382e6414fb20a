package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/report"
)

const (
	msgNotFound    = "Record not found"
	msgEmptyPeriod = "No data for the requested period"
	msgInternal    = "Internal server error"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ValidationError answers 400 with one entry per failing field.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    fiber.StatusBadRequest,
		"status":  "error",
		"message": "Validation failed",
		"errors":  fields,
	})
}

// sendDocument streams a generated file as an attachment.
func sendDocument(c *fiber.Ctx, doc *report.Document) error {
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Status(fiber.StatusOK).Send(doc.Body)
}

// fail maps pipeline errors onto HTTP status codes.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, report.ErrInvalidParams):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, report.ErrNotFound):
		return Error(c, fiber.StatusNotFound, msgNotFound)
	case errors.Is(err, report.ErrEmptyResultSet):
		return Error(c, fiber.StatusNotFound, msgEmptyPeriod)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	var mpe *rapor.MissingPlaceholderError
	if errors.As(err, &mpe) {
		h.logger.Error("template is missing a value", zap.String("template", mpe.Template), zap.String("name", mpe.Name))
	} else {
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return Error(c, fiber.StatusInternalServerError, msgInternal)
}
