package handlers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

type DeviceHandler struct {
	deviceRepo repositories.DeviceRepository
}

func NewDeviceHandler(deviceRepo repositories.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{
		deviceRepo: deviceRepo,
	}
}

// HandleRegister handles POST /devices
func (h *DeviceHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	device := &models.DeviceToken{
		OwnerID:    ownerFrom(c),
		Token:      req.Token,
		Permission: req.Permission,
	}
	if err := h.deviceRepo.Upsert(c.UserContext(), device); err != nil {
		log.WithError(err).WithField("owner_id", device.OwnerID).Error("❌ Failed to register device")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register device",
		})
	}

	if device.Permission != models.PermissionGranted {
		log.WithField("owner_id", device.OwnerID).Warn("⚠️  Device registered without notification permission")
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}
