package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(now time.Time) *fixedClock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type storedOffer struct {
	ownerID string
	record  map[string]interface{}
	pageID  string
}

type fakeOfferRepo struct {
	mu        sync.Mutex
	offers    map[uuid.UUID]*storedOffer
	createErr error
	updateErr error
	creates   int
	updates   int
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[uuid.UUID]*storedOffer)}
}

func (r *fakeOfferRepo) Create(_ context.Context, ownerID string, record map[string]interface{}) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	id := uuid.New()
	r.offers[id] = &storedOffer{ownerID: ownerID, record: record}
	return id, nil
}

func (r *fakeOfferRepo) Update(_ context.Context, ownerID string, id uuid.UUID, record map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.offers[id]
	if !ok || stored.ownerID != ownerID {
		return repositories.ErrOfferNotFound
	}
	stored.record = record
	return nil
}

func (r *fakeOfferRepo) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.offers[id]
	if !ok || stored.ownerID != ownerID {
		return nil, repositories.ErrOfferNotFound
	}
	return stored.offer(id), nil
}

func (r *fakeOfferRepo) FindByOwner(_ context.Context, ownerID string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var offers []models.Offer
	for id, stored := range r.offers {
		if stored.ownerID == ownerID {
			offers = append(offers, *stored.offer(id))
		}
	}
	return offers, nil
}

func (r *fakeOfferRepo) SetNotionPageID(_ context.Context, id uuid.UUID, pageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.offers[id]
	if !ok {
		return repositories.ErrOfferNotFound
	}
	stored.pageID = pageID
	return nil
}

func (s *storedOffer) offer(id uuid.UUID) *models.Offer {
	str := func(key string) string {
		v, _ := s.record[key].(string)
		return v
	}
	return &models.Offer{
		ID:               id,
		OwnerID:          s.ownerID,
		Position:         str("position"),
		Company:          str("company"),
		Schedule:         str("schedule"),
		InterviewDate:    str("interview_date"),
		InterviewHour:    str("interview_hour"),
		InterviewAddress: str("interview_address"),
		InterviewState:   models.InterviewState(str("interview_state")),
		InterviewColor:   str("interview_color"),
		NotionPageID:     s.pageID,
	}
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]*models.ScheduledReminder
	upserts   int
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]*models.ScheduledReminder)}
}

func (r *fakeReminderRepo) Upsert(_ context.Context, reminder *models.ScheduledReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	stored := *reminder
	if existing, ok := r.reminders[reminder.Identifier]; ok {
		stored.ID = existing.ID
	} else if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Status = models.ReminderPending
	stored.SentAt = nil
	r.reminders[reminder.Identifier] = &stored
	return nil
}

func (r *fakeReminderRepo) Cancel(_ context.Context, identifier string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[identifier]
	if !ok || reminder.Status != models.ReminderPending {
		return false, nil
	}
	reminder.Status = models.ReminderCancelled
	return true, nil
}

func (r *fakeReminderRepo) FindByIdentifier(_ context.Context, identifier string) (*models.ScheduledReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.reminders[identifier]
	if !ok {
		return nil, repositories.ErrReminderNotFound
	}
	copied := *reminder
	return &copied, nil
}

func (r *fakeReminderRepo) FindDue(_ context.Context, now time.Time, limit int) ([]models.ScheduledReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []models.ScheduledReminder
	for _, reminder := range r.reminders {
		if reminder.Status == models.ReminderPending && !reminder.FireAt.After(now) {
			due = append(due, *reminder)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FireAt.Before(due[j].FireAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakeReminderRepo) Claim(_ context.Context, id uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reminder := range r.reminders {
		if reminder.ID == id && reminder.Status == models.ReminderPending && !reminder.FireAt.After(now) {
			reminder.Status = models.ReminderSent
			sentAt := now
			reminder.SentAt = &sentAt
			return nil
		}
	}
	return repositories.ErrReminderNotPending
}

func (r *fakeReminderRepo) Release(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reminder := range r.reminders {
		if reminder.ID == id && reminder.Status == models.ReminderSent {
			reminder.Status = models.ReminderPending
			reminder.SentAt = nil
		}
	}
	return nil
}

func (r *fakeReminderRepo) pending() []models.ScheduledReminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ScheduledReminder
	for _, reminder := range r.reminders {
		if reminder.Status == models.ReminderPending {
			out = append(out, *reminder)
		}
	}
	return out
}

type fakeDeviceRepo struct {
	devices map[string]*models.DeviceToken
	err     error
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*models.DeviceToken)}
}

func (r *fakeDeviceRepo) Upsert(_ context.Context, device *models.DeviceToken) error {
	copied := *device
	r.devices[device.OwnerID] = &copied
	return nil
}

func (r *fakeDeviceRepo) FindByOwner(_ context.Context, ownerID string) (*models.DeviceToken, error) {
	if r.err != nil {
		return nil, r.err
	}
	device, ok := r.devices[ownerID]
	if !ok {
		return nil, repositories.ErrDeviceNotFound
	}
	return device, nil
}

func (r *fakeDeviceRepo) grant(ownerID, token string) {
	r.devices[ownerID] = &models.DeviceToken{
		OwnerID:    ownerID,
		Token:      token,
		Permission: models.PermissionGranted,
	}
}

type fakeMirror struct {
	synced []uuid.UUID
	err    error
}

func (m *fakeMirror) Ping(context.Context) error { return nil }

func (m *fakeMirror) Sync(_ context.Context, offer *models.Offer) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.synced = append(m.synced, offer.ID)
	if offer.NotionPageID != "" {
		return offer.NotionPageID, nil
	}
	return "page-" + offer.ID.String(), nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []models.ScheduledReminder
	err  error
}

func (s *recordingSender) Send(_ context.Context, reminder models.ScheduledReminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, reminder)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

var errBoom = errors.New("boom")
