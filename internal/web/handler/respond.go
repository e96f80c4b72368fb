package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON envelope returned on every failure.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Fail writes the error envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string, details ...string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// FailValidation writes a 400 envelope listing each failed field.
func FailValidation(c *fiber.Ctx, err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, fe.Field()+": failed on "+fe.Tag())
		}

		return Fail(c, fiber.StatusBadRequest, "validation failed", details...)
	}

	return Fail(c, fiber.StatusBadRequest, "validation failed")
}

// Message writes a {message} success body.
func Message(c *fiber.Ctx, text string) error {
	return c.JSON(fiber.Map{"message": text})
}
