package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskmaster/backend/internal/infrastructure/outbox"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// MailProcessor drains the notification outbox on a schedule and hands each
// message to the configured mailer. Delivery failures are retried up to the
// configured cap and then dropped; nothing here ever reaches a request path.
type MailProcessor struct {
	store   *outbox.Store
	mailer  Mailer
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewMailProcessor(store *outbox.Store, mailer Mailer, monitor ConnectionHealth, logger *zap.Logger, cfg ProcessorConfig) *MailProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mp := &MailProcessor{
		store:   store,
		mailer:  mailer,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = mp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := mp.Drain(ctx); err != nil {
			mp.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return mp
}

// Start launches the cron scheduler.
func (mp *MailProcessor) Start() {
	if mp == nil || mp.cron == nil {
		return
	}
	mp.cron.Start()
	mp.logger.Info("mail processor started")
}

// Stop gracefully stops the scheduler.
func (mp *MailProcessor) Stop(ctx context.Context) {
	if mp == nil || mp.cron == nil {
		return
	}
	stopCtx := mp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	mp.logger.Info("mail processor stopped")
}

// Drain delivers pending messages synchronously.
func (mp *MailProcessor) Drain(ctx context.Context) error {
	if mp == nil || mp.store == nil {
		return nil
	}
	if mp.monitor != nil && !mp.monitor.IsOnline() {
		mp.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	if err := mp.store.Cleanup(time.Now().Add(-mp.cfg.Retention)); err != nil {
		mp.logger.Warn("outbox cleanup failed", zap.Error(err))
	}

	messages, err := mp.store.GetBatch(mp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := mp.deliver(ctx, msg); err != nil {
			mp.logger.Error("failed to deliver notification",
				zap.String("message_id", msg.ID),
				zap.String("kind", msg.Kind),
				zap.Error(err))

			msg.Retries++
			if msg.Retries >= mp.cfg.MaxRetries {
				mp.logger.Warn("dropping notification (max retries reached)", zap.String("message_id", msg.ID))
				_ = mp.store.Remove(msg)
				continue
			}

			if err := mp.store.Remove(msg); err != nil {
				mp.logger.Warn("failed to remove outbox message", zap.Error(err))
			}
			if err := mp.store.Requeue(msg); err != nil {
				mp.logger.Error("failed to requeue outbox message", zap.Error(err))
			}
			continue
		}

		if err := mp.store.Remove(msg); err != nil {
			mp.logger.Warn("failed to purge delivered message", zap.Error(err))
		}
	}
	return nil
}

// PendingCount returns the number of undelivered messages.
func (mp *MailProcessor) PendingCount() int {
	if mp == nil || mp.store == nil {
		return 0
	}
	size, err := mp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (mp *MailProcessor) deliver(ctx context.Context, msg outbox.Message) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch msg.Kind {
	case outbox.KindWelcome:
		return mp.mailer.SendWelcome(ctx, msg.Recipient, msg.Username)
	default:
		return fmt.Errorf("unsupported notification kind %s", msg.Kind)
	}
}
