package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

const (
	MsgCreateFailed      = "Error guardando nueva oferta"
	MsgUpdateFailed      = "Error actualizando oferta"
	MsgOfferNotFound     = "Oferta no encontrada"
	MsgReminderImminent  = "La entrevista es inminente; el recordatorio se enviará de inmediato."
	MsgReminderNotCancel = "No se pudo cancelar el recordatorio anterior"
)

type SaveStatus string

const (
	SaveOK       SaveStatus = "saved"
	SaveInvalid  SaveStatus = "invalid"
	SaveNotFound SaveStatus = "not_found"
	SaveFailed   SaveStatus = "failed"
)

// SaveResult describes what happened to one form submission. Reminder is
// nil when no reminder was registered.
type SaveResult struct {
	Status   SaveStatus
	OfferID  uuid.UUID
	Reminder *models.ReminderRequest
}

// Saved reports whether the offer was persisted.
func (r SaveResult) Saved() bool {
	return r.Status == SaveOK
}

type OfferFormController interface {
	NewDraft() models.OfferDraft
	Create(ctx context.Context, ownerID string, draft models.OfferDraft, reporter Reporter) SaveResult
	Update(ctx context.Context, ownerID string, offerID uuid.UUID, draft models.OfferDraft, reporter Reporter) SaveResult
	Load(ctx context.Context, ownerID string, offerID uuid.UUID) (*models.Offer, error)
	List(ctx context.Context, ownerID string) ([]models.Offer, error)
	PendingReminder(ctx context.Context, ownerID string, offerID uuid.UUID) (*models.ScheduledReminder, error)
}

type offerFormController struct {
	offerRepo  repositories.OfferRepository
	scheduler  ReminderScheduler
	dispatcher NotificationDispatcher
	mirror     OfferMirror
	clock      Clock
	location   *time.Location
}

// NewOfferFormController wires the save sequence. mirror may be nil.
func NewOfferFormController(
	offerRepo repositories.OfferRepository,
	scheduler ReminderScheduler,
	dispatcher NotificationDispatcher,
	mirror OfferMirror,
	clock Clock,
	location *time.Location,
) OfferFormController {
	if location == nil {
		location = time.Local
	}
	return &offerFormController{
		offerRepo:  offerRepo,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		mirror:     mirror,
		clock:      clock,
		location:   location,
	}
}

func (c *offerFormController) now() time.Time {
	return c.clock.Now().In(c.location)
}

// NewDraft returns an empty form with today's registration date.
func (c *offerFormController) NewDraft() models.OfferDraft {
	return models.OfferDraft{
		RegistrationDate: FormatCalendarDate(c.now()),
	}
}

// Create validates the draft, stores it and schedules its reminder. A
// reminder failure is reported but never undoes the save.
func (c *offerFormController) Create(ctx context.Context, ownerID string, draft models.OfferDraft, reporter Reporter) SaveResult {
	if result := ValidateOffer(draft, c.now()); !result.Valid {
		reporter.Report(result.Message)
		return SaveResult{Status: SaveInvalid}
	}

	// The save finishes even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	offerID, err := c.offerRepo.Create(ctx, ownerID, draft.Record())
	if err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("❌ Failed to create offer")
		reporter.Report(MsgCreateFailed)
		return SaveResult{Status: SaveFailed}
	}

	log.WithFields(log.Fields{
		"owner_id": ownerID,
		"offer_id": offerID,
	}).Info("✅ Offer created")

	result := SaveResult{Status: SaveOK, OfferID: offerID}
	if draft.HasInterview() {
		result.Reminder = c.scheduleReminder(ctx, ownerID, offerID, draft, reporter)
	}
	c.syncMirror(ctx, ownerID, offerID)

	return result
}

// Update re-persists an existing offer under the same id and replaces its
// reminder. Clearing the interview, or failing to register the new reminder,
// cancels the pending one.
func (c *offerFormController) Update(ctx context.Context, ownerID string, offerID uuid.UUID, draft models.OfferDraft, reporter Reporter) SaveResult {
	if result := ValidateOffer(draft, c.now()); !result.Valid {
		reporter.Report(result.Message)
		return SaveResult{Status: SaveInvalid, OfferID: offerID}
	}

	ctx = context.WithoutCancel(ctx)

	if err := c.offerRepo.Update(ctx, ownerID, offerID, draft.Record()); err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) {
			reporter.Report(MsgOfferNotFound)
			return SaveResult{Status: SaveNotFound, OfferID: offerID}
		}
		log.WithError(err).WithField("offer_id", offerID).Error("❌ Failed to update offer")
		reporter.Report(MsgUpdateFailed)
		return SaveResult{Status: SaveFailed, OfferID: offerID}
	}

	log.WithField("offer_id", offerID).Info("✅ Offer updated")

	result := SaveResult{Status: SaveOK, OfferID: offerID}
	if draft.HasInterview() {
		result.Reminder = c.scheduleReminder(ctx, ownerID, offerID, draft, reporter)
	}
	// No replacement was registered, so the reminder for the previous
	// interview must not fire.
	if result.Reminder == nil {
		if err := c.dispatcher.Cancel(ctx, offerID); err != nil {
			log.WithError(err).WithField("offer_id", offerID).Warn("⚠️  Failed to cancel reminder")
			reporter.Report(MsgReminderNotCancel)
		}
	}
	c.syncMirror(ctx, ownerID, offerID)

	return result
}

func (c *offerFormController) Load(ctx context.Context, ownerID string, offerID uuid.UUID) (*models.Offer, error) {
	return c.offerRepo.FindByID(ctx, ownerID, offerID)
}

func (c *offerFormController) List(ctx context.Context, ownerID string) ([]models.Offer, error) {
	return c.offerRepo.FindByOwner(ctx, ownerID)
}

func (c *offerFormController) PendingReminder(ctx context.Context, ownerID string, offerID uuid.UUID) (*models.ScheduledReminder, error) {
	if _, err := c.offerRepo.FindByID(ctx, ownerID, offerID); err != nil {
		return nil, err
	}
	return c.dispatcher.Pending(ctx, offerID)
}

func (c *offerFormController) scheduleReminder(
	ctx context.Context,
	ownerID string,
	offerID uuid.UUID,
	draft models.OfferDraft,
	reporter Reporter,
) *models.ReminderRequest {
	logger := log.WithField("offer_id", offerID)

	interview, err := InterviewInstant(draft.InterviewDate, draft.InterviewHour, c.location)
	if err != nil {
		logger.WithError(err).Warn("⚠️  Interview instant unavailable, reminder skipped")
		reporter.Report(MsgReminderFailed)
		return nil
	}

	req, err := c.scheduler.Schedule(interview, c.now(), ReminderContext{
		OfferID:          offerID,
		Position:         draft.Position,
		Company:          draft.Company,
		InterviewAddress: draft.InterviewAddress,
	})
	if err != nil {
		logger.WithError(err).Warn("⚠️  Reminder could not be computed")
		reporter.Report(MsgReminderFailed)
		return nil
	}

	if req.Clamped {
		reporter.Report(MsgReminderImminent)
	}

	if err := c.dispatcher.Dispatch(ctx, ownerID, offerID, req); err != nil {
		logger.WithError(err).Warn("⚠️  Reminder dispatch failed, offer kept")
		var dispatchErr *DispatchError
		if errors.As(err, &dispatchErr) {
			reporter.Report(dispatchErr.Message)
		} else {
			reporter.Report(MsgReminderFailed)
		}
		return nil
	}

	return &req
}

// syncMirror copies the stored offer to the mirror. Failures are only logged.
func (c *offerFormController) syncMirror(ctx context.Context, ownerID string, offerID uuid.UUID) {
	if c.mirror == nil {
		return
	}

	logger := log.WithField("offer_id", offerID)

	offer, err := c.offerRepo.FindByID(ctx, ownerID, offerID)
	if err != nil {
		logger.WithError(err).Warn("⚠️  Mirror skipped, offer not readable")
		return
	}

	pageID, err := c.mirror.Sync(ctx, offer)
	if err != nil {
		logger.WithError(err).Warn("⚠️  Mirror sync failed")
		return
	}

	if pageID != "" && pageID != offer.NotionPageID {
		if err := c.offerRepo.SetNotionPageID(ctx, offerID, pageID); err != nil {
			logger.WithError(err).Warn("⚠️  Failed to save mirror page id")
		}
	}
}
