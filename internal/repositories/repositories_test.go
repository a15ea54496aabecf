package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/offer-tracker/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every pooled connection to :memory: would get its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Offer{}, &models.ScheduledReminder{}, &models.DeviceToken{}, &models.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var baseTime = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func newReminder(identifier string, fireAt time.Time, title string) *models.ScheduledReminder {
	return &models.ScheduledReminder{
		Identifier: identifier,
		OwnerID:    "user-1",
		OfferID:    uuid.New(),
		Token:      "tok-1",
		Title:      title,
		Body:       "En la dirección Calle Mayor 1.",
		FireAt:     fireAt,
	}
}

func countReminders(t *testing.T, db *gorm.DB, identifier string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.ScheduledReminder{}).Where("identifier = ?", identifier).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestReminderUpsertKeepsOneRowPerIdentifier(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)
	ctx := context.Background()

	first := newReminder("interview-reminder:a", baseTime.Add(24*time.Hour), "first")
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := newReminder("interview-reminder:a", baseTime.Add(48*time.Hour), "second")
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if got := countReminders(t, db, "interview-reminder:a"); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}
	if second.ID != first.ID {
		t.Errorf("upsert returned id %s, stored row is %s", second.ID, first.ID)
	}

	stored, err := repo.FindByIdentifier(ctx, "interview-reminder:a")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.ID != first.ID {
		t.Errorf("stored id = %s, want %s", stored.ID, first.ID)
	}
	if !stored.FireAt.Equal(baseTime.Add(48 * time.Hour)) {
		t.Errorf("fire_at = %v, want the second schedule", stored.FireAt)
	}
	if stored.Title != "second" || stored.Status != models.ReminderPending {
		t.Errorf("stored = %+v", stored)
	}
}

func TestReminderUpsertResetsSentReminder(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)
	ctx := context.Background()

	reminder := newReminder("interview-reminder:b", baseTime.Add(-time.Minute), "due")
	if err := repo.Upsert(ctx, reminder); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Claim(ctx, reminder.ID, baseTime); err != nil {
		t.Fatalf("claim: %v", err)
	}

	again := newReminder("interview-reminder:b", baseTime.Add(time.Hour), "again")
	if err := repo.Upsert(ctx, again); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	stored, err := repo.FindByIdentifier(ctx, "interview-reminder:b")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != models.ReminderPending || stored.SentAt != nil {
		t.Errorf("status = %q, sent_at = %v, want pending and unsent", stored.Status, stored.SentAt)
	}
}

func TestReminderClaimRefusesFutureReschedule(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)
	ctx := context.Background()

	reminder := newReminder("interview-reminder:c", baseTime.Add(-time.Minute), "due")
	if err := repo.Upsert(ctx, reminder); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	due, err := repo.FindDue(ctx, baseTime, 10)
	if err != nil {
		t.Fatalf("find due: %v", err)
	}
	if len(due) != 1 || due[0].ID != reminder.ID {
		t.Fatalf("due = %+v", due)
	}

	// Rescheduled between the poll and the claim.
	moved := newReminder("interview-reminder:c", baseTime.Add(time.Hour), "moved")
	if err := repo.Upsert(ctx, moved); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	if err := repo.Claim(ctx, due[0].ID, baseTime); !errors.Is(err, ErrReminderNotPending) {
		t.Fatalf("claim before fire_at: err = %v, want ErrReminderNotPending", err)
	}

	later := baseTime.Add(2 * time.Hour)
	if err := repo.Claim(ctx, due[0].ID, later); err != nil {
		t.Fatalf("claim after fire_at: %v", err)
	}
	if err := repo.Claim(ctx, due[0].ID, later); !errors.Is(err, ErrReminderNotPending) {
		t.Errorf("second claim: err = %v, want ErrReminderNotPending", err)
	}
}

func TestReminderReleaseRestoresPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)
	ctx := context.Background()

	reminder := newReminder("interview-reminder:d", baseTime.Add(-time.Minute), "due")
	if err := repo.Upsert(ctx, reminder); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Claim(ctx, reminder.ID, baseTime); err != nil {
		t.Fatalf("claim: %v", err)
	}

	claimed, err := repo.FindByIdentifier(ctx, "interview-reminder:d")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if claimed.Status != models.ReminderSent || claimed.SentAt == nil {
		t.Fatalf("claimed = %+v", claimed)
	}

	if err := repo.Release(ctx, reminder.ID); err != nil {
		t.Fatalf("release: %v", err)
	}

	released, err := repo.FindByIdentifier(ctx, "interview-reminder:d")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if released.Status != models.ReminderPending || released.SentAt != nil {
		t.Errorf("released = %+v", released)
	}

	due, err := repo.FindDue(ctx, baseTime, 10)
	if err != nil {
		t.Fatalf("find due: %v", err)
	}
	if len(due) != 1 {
		t.Errorf("due = %d, want the released reminder", len(due))
	}
}

func TestReminderCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, newReminder("interview-reminder:e", baseTime.Add(-time.Minute), "due")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cancelled, err := repo.Cancel(ctx, "interview-reminder:e")
	if err != nil || !cancelled {
		t.Fatalf("cancel = %v, %v; want true", cancelled, err)
	}
	cancelled, err = repo.Cancel(ctx, "interview-reminder:e")
	if err != nil || cancelled {
		t.Errorf("second cancel = %v, %v; want false", cancelled, err)
	}

	due, err := repo.FindDue(ctx, baseTime, 10)
	if err != nil {
		t.Fatalf("find due: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("cancelled reminder is still due")
	}

	if _, err := repo.FindByIdentifier(ctx, "interview-reminder:missing"); !errors.Is(err, ErrReminderNotFound) {
		t.Errorf("missing identifier: err = %v", err)
	}
}

func TestOfferUpdateScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, "user-1", map[string]interface{}{
		"position":        "Backend developer",
		"company":         "Acme",
		"schedule":        "L-V",
		"interview_state": string(models.InterviewScheduled),
		"interview_color": models.InterviewScheduled.Color(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := map[string]interface{}{"position": "Platform engineer"}

	if err := repo.Update(ctx, "user-1", uuid.New(), update); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("unknown offer: err = %v, want ErrOfferNotFound", err)
	}
	if err := repo.Update(ctx, "user-2", id, update); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("foreign offer: err = %v, want ErrOfferNotFound", err)
	}
	if _, err := repo.FindByID(ctx, "user-2", id); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("foreign read: err = %v, want ErrOfferNotFound", err)
	}

	if err := repo.Update(ctx, "user-1", id, update); err != nil {
		t.Fatalf("own update: %v", err)
	}

	offer, err := repo.FindByID(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if offer.Position != "Platform engineer" || offer.Company != "Acme" {
		t.Errorf("offer = %+v", offer)
	}
	if offer.JobLatitude != nil {
		t.Errorf("job_latitude = %v, want unset", *offer.JobLatitude)
	}

	offers, err := repo.FindByOwner(ctx, "user-2")
	if err != nil || len(offers) != 0 {
		t.Errorf("other owner's list = %d, %v", len(offers), err)
	}
}

func TestDeviceUpsertReplacesToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &models.DeviceToken{OwnerID: "user-1", Token: "old", Permission: models.PermissionUndetermined}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, &models.DeviceToken{OwnerID: "user-1", Token: "new", Permission: models.PermissionGranted}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	device, err := repo.FindByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if device.Token != "new" || device.Permission != models.PermissionGranted {
		t.Errorf("device = %+v", device)
	}

	if _, err := repo.FindByOwner(ctx, "user-2"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("missing device: err = %v", err)
	}
}

func TestProfileUpsertReplacesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByOwner(ctx, "user-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("missing profile: err = %v", err)
	}

	if err := repo.Upsert(ctx, &models.Profile{OwnerID: "user-1", Skills: "Go", Education: "FP"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, &models.Profile{OwnerID: "user-1", Skills: "Go, SQL"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	profile, err := repo.FindByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if profile.Skills != "Go, SQL" || profile.Education != "" {
		t.Errorf("profile = %+v", profile)
	}
}
