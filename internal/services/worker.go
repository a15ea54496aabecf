package services

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

// Sender delivers a due reminder to the owner's device.
type Sender interface {
	Send(ctx context.Context, reminder models.ScheduledReminder) error
}

type logSender struct{}

// NewLogSender returns a Sender that writes reminders to the log.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(_ context.Context, reminder models.ScheduledReminder) error {
	log.WithFields(log.Fields{
		"identifier": reminder.Identifier,
		"owner_id":   reminder.OwnerID,
		"title":      reminder.Title,
	}).Info("📣 Reminder delivered")
	return nil
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(reminder models.ScheduledReminder)
}

type worker struct {
	reminderRepo repositories.ReminderRepository
	sender       Sender
	clock        Clock
	queue        chan models.ScheduledReminder
	concurrency  int
	pollInterval time.Duration
	batchSize    int
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	reminderRepo repositories.ReminderRepository,
	sender Sender,
	clock Clock,
	concurrency int,
	pollInterval time.Duration,
	batchSize int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if batchSize < 1 {
		batchSize = 50
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &worker{
		reminderRepo: reminderRepo,
		sender:       sender,
		clock:        clock,
		queue:        make(chan models.ScheduledReminder, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Infof("🚀 Starting reminder worker with %d concurrent workers", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processReminders(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollDueReminders(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Info("🛑 Stopping reminder worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Info("✅ Reminder worker stopped")
	})
}

// Enqueue implements Worker.
func (w *worker) Enqueue(reminder models.ScheduledReminder) {
	select {
	case w.queue <- reminder:
		log.WithField("identifier", reminder.Identifier).Debug("📥 Reminder enqueued")
	case <-w.stopChan:
		log.WithField("identifier", reminder.Identifier).Warn("⚠️  Worker stopped, cannot enqueue reminder")
	}
}

func (w *worker) processReminders(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Debugf("👷 Worker #%d stopped", workerID)
			return
		case <-ctx.Done():
			return
		case reminder := <-w.queue:
			w.deliver(ctx, workerID, reminder)
		}
	}
}

// deliver claims the reminder first so a reminder polled twice, or
// rescheduled in between, is sent at most once.
func (w *worker) deliver(ctx context.Context, workerID int, reminder models.ScheduledReminder) {
	logger := log.WithFields(log.Fields{
		"worker":     workerID,
		"identifier": reminder.Identifier,
	})

	if err := w.reminderRepo.Claim(ctx, reminder.ID, w.clock.Now()); err != nil {
		if !errors.Is(err, repositories.ErrReminderNotPending) {
			logger.WithError(err).Error("❌ Failed to claim reminder")
		}
		return
	}

	if err := w.sender.Send(ctx, reminder); err != nil {
		logger.WithError(err).Error("❌ Failed to deliver reminder, releasing")
		if err := w.reminderRepo.Release(ctx, reminder.ID); err != nil {
			logger.WithError(err).Error("❌ Failed to release reminder")
		}
		return
	}

	logger.Info("✅ Reminder sent")
}

func (w *worker) pollDueReminders(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Info("🔄 Starting due reminders poller")

	for {
		select {
		case <-w.stopChan:
			log.Info("🔄 Due reminders poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

func (w *worker) pollOnce(ctx context.Context) {
	due, err := w.reminderRepo.FindDue(ctx, w.clock.Now(), w.batchSize)
	if err != nil {
		log.WithError(err).Warn("⚠️  Failed to fetch due reminders")
		return
	}

	if len(due) > 0 {
		log.Infof("📋 Found %d due reminders", len(due))
	}

	for _, reminder := range due {
		w.Enqueue(reminder)
	}
}
