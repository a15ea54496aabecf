package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	OwnerHeader   = "X-Owner-ID"
	ownerLocalKey = "owner_id"
)

var validate = validator.New()

// RequireOwner reads the owner id set by the auth layer in front of the API.
func RequireOwner(c *fiber.Ctx) error {
	ownerID := strings.TrimSpace(c.Get(OwnerHeader))
	if ownerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": OwnerHeader + " header is required",
		})
	}
	c.Locals(ownerLocalKey, ownerID)
	return c.Next()
}

func ownerFrom(c *fiber.Ctx) string {
	ownerID, _ := c.Locals(ownerLocalKey).(string)
	return ownerID
}

// validateStruct checks payload shape and returns the first failing field.
func validateStruct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		if fe.Param() != "" {
			return fmt.Errorf("field '%s' failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("field '%s' failed '%s'", fe.Field(), fe.Tag())
	}
	return err
}
