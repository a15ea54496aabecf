package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
	"alfredoptarigan/offer-tracker/internal/services"
)

type OfferHandler struct {
	controller services.OfferFormController
}

func NewOfferHandler(controller services.OfferFormController) *OfferHandler {
	return &OfferHandler{
		controller: controller,
	}
}

// HandleDraft handles GET /offers/draft
func (h *OfferHandler) HandleDraft(c *fiber.Ctx) error {
	return c.JSON(h.controller.NewDraft())
}

// HandleCreate handles POST /offers
func (h *OfferHandler) HandleCreate(c *fiber.Ctx) error {
	draft, err := parseDraft(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reporter := services.NewMessageCollector()
	result := h.controller.Create(c.UserContext(), ownerFrom(c), draft, reporter)

	return respondSave(c, result, reporter, fiber.StatusCreated)
}

// HandleUpdate handles PUT /offers/:id
func (h *OfferHandler) HandleUpdate(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer ID format",
		})
	}

	draft, err := parseDraft(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reporter := services.NewMessageCollector()
	result := h.controller.Update(c.UserContext(), ownerFrom(c), offerID, draft, reporter)

	return respondSave(c, result, reporter, fiber.StatusOK)
}

// HandleGet handles GET /offers/:id
func (h *OfferHandler) HandleGet(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer ID format",
		})
	}

	offer, err := h.controller.Load(c.UserContext(), ownerFrom(c), offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": services.MsgOfferNotFound,
			})
		}
		log.WithError(err).WithField("offer_id", offerID).Error("❌ Failed to load offer")
		return fiber.ErrInternalServerError
	}

	return c.JSON(toOfferResponse(offer))
}

// HandleList handles GET /offers
func (h *OfferHandler) HandleList(c *fiber.Ctx) error {
	offers, err := h.controller.List(c.UserContext(), ownerFrom(c))
	if err != nil {
		log.WithError(err).Error("❌ Failed to list offers")
		return fiber.ErrInternalServerError
	}

	response := make([]models.OfferResponse, 0, len(offers))
	for i := range offers {
		response = append(response, toOfferResponse(&offers[i]))
	}

	return c.JSON(fiber.Map{
		"offers": response,
	})
}

// HandleReminder handles GET /offers/:id/reminder
func (h *OfferHandler) HandleReminder(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer ID format",
		})
	}

	reminder, err := h.controller.PendingReminder(c.UserContext(), ownerFrom(c), offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) || errors.Is(err, repositories.ErrReminderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No pending reminder",
			})
		}
		log.WithError(err).WithField("offer_id", offerID).Error("❌ Failed to load reminder")
		return fiber.ErrInternalServerError
	}

	return c.JSON(reminder)
}

func parseDraft(c *fiber.Ctx) (models.OfferDraft, error) {
	var draft models.OfferDraft
	if err := c.BodyParser(&draft); err != nil {
		return draft, errors.New("Invalid request payload")
	}
	if err := validateStruct(draft); err != nil {
		return draft, err
	}
	return draft, nil
}

func respondSave(c *fiber.Ctx, result services.SaveResult, reporter *services.MessageCollector, okStatus int) error {
	response := models.SaveOfferResponse{
		Saved:    result.Saved(),
		Reminder: result.Reminder,
		Messages: reporter.Messages(),
	}
	if result.OfferID != uuid.Nil {
		response.ID = result.OfferID.String()
	}

	switch result.Status {
	case services.SaveOK:
		return c.Status(okStatus).JSON(response)
	case services.SaveInvalid:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(response)
	case services.SaveNotFound:
		return c.Status(fiber.StatusNotFound).JSON(response)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(response)
	}
}

func toOfferResponse(offer *models.Offer) models.OfferResponse {
	return models.OfferResponse{
		ID:    offer.ID.String(),
		Offer: offer.Draft(),
		Color: offer.InterviewColor,
	}
}
