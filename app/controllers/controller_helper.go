package controllers

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fail answers with the {success:false,error} shape used by the channel,
// post and incident report endpoints.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// msg answers with the {msg} shape used by the user, community and incident
// management endpoints.
func msg(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"msg": message})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// errorStatus maps persistence errors to an HTTP status.
func errorStatus(err error) int {
	switch {
	case isValidation(err):
		return fiber.StatusBadRequest
	case isNotFound(err):
		return fiber.StatusNotFound
	case isDuplicate(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// formBool reads checkbox-like form values ("true", "on", "1", ...).
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// formValue returns the first value of key from a parsed multipart form.
func formValue(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	if vals := form.Value[key]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// formTags collects tags sent as repeated "tags[]" (or "tags") fields. A
// single comma separated value is split.
func formTags(form *multipart.Form) []string {
	if form == nil {
		return []string{}
	}
	raw := append([]string{}, form.Value["tags[]"]...)
	raw = append(raw, form.Value["tags"]...)
	return splitTags(raw)
}

func splitTags(raw []string) []string {
	tags := []string{}
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
