package handlers

import (
	"storefront/internal/i18n"

	"github.com/gofiber/fiber/v2"
)

// keyedError is one localised error entry of a response body.
type keyedError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// requestLocale picks the best supported locale from Accept-Language.
func requestLocale(c *fiber.Ctx) string {
	if locale := c.AcceptsLanguages(i18n.SupportedLocales...); locale != "" {
		return locale
	}
	return i18n.SupportedLocales[0]
}

// respondKeys answers status with every key translated for the request locale.
func respondKeys(c *fiber.Ctx, tr *i18n.Translator, status int, message string, keys ...string) error {
	locale := requestLocale(c)
	errs := make([]keyedError, 0, len(keys))
	for _, key := range keys {
		errs = append(errs, keyedError{Key: key, Message: tr.Message(locale, key)})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"errors":  errs,
	})
}

// respondFieldErrors answers 400 with the validator's field errors translated.
func respondFieldErrors(c *fiber.Ctx, tr *i18n.Translator, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  tr.FieldErrors(requestLocale(c), err),
	})
}

func respondBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func respondInternal(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
