package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the API under router.
func SetupRoutes(router fiber.Router, offers *OfferHandler, devices *DeviceHandler, profiles *ProfileHandler) {
	// Health check
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	owned := router.Group("", RequireOwner)

	owned.Get("/offers/draft", offers.HandleDraft)
	owned.Get("/offers", offers.HandleList)
	owned.Post("/offers", offers.HandleCreate)
	owned.Get("/offers/:id", offers.HandleGet)
	owned.Put("/offers/:id", offers.HandleUpdate)
	owned.Get("/offers/:id/reminder", offers.HandleReminder)

	owned.Post("/devices", devices.HandleRegister)

	owned.Get("/profile", profiles.HandleGet)
	owned.Put("/profile", profiles.HandleUpdate)
}
