package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

const (
	MsgProfileUpdated    = "Perfil actualizado correctamente"
	MsgProfileSaveFailed = "Error al actualizar el perfil. Por favor, inténtalo de nuevo más tarde."
	MsgProfileLoadFailed = "Error al obtener datos del perfil"
)

type ProfileHandler struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileHandler(profileRepo repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
	}
}

// HandleGet handles GET /profile. An owner without a stored profile gets
// empty fields.
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	ownerID := ownerFrom(c)

	profile, err := h.profileRepo.FindByOwner(c.UserContext(), ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return c.JSON(models.Profile{OwnerID: ownerID})
		}
		log.WithError(err).WithField("owner_id", ownerID).Error("❌ Failed to load profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": MsgProfileLoadFailed,
		})
	}

	return c.JSON(profile)
}

// HandleUpdate handles PUT /profile
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
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

	profile := &models.Profile{
		OwnerID:           ownerFrom(c),
		LaboralExperience: req.LaboralExperience,
		PreviousJobs:      req.PreviousJobs,
		Education:         req.Education,
		Skills:            req.Skills,
	}
	if err := h.profileRepo.Upsert(c.UserContext(), profile); err != nil {
		log.WithError(err).WithField("owner_id", profile.OwnerID).Error("❌ Failed to save profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": MsgProfileSaveFailed,
		})
	}

	return c.JSON(fiber.Map{
		"message": MsgProfileUpdated,
		"profile": profile,
	})
}
