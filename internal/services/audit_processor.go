package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/internal/infrastructure/journal"
	"github.com/vecindapp/auth-service/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// FlusherConfig controls how frequently the journal is drained.
type FlusherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// AuditFlusher moves journaled audit events into the primary store. Events
// are inserted directly while the store is reachable and parked in the local
// journal otherwise; a cron schedule drains the backlog.
type AuditFlusher struct {
	store   *journal.Store
	monitor ConnectionHealth
	events  repository.AuditRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     FlusherConfig
}

func NewAuditFlusher(
	store *journal.Store,
	monitor ConnectionHealth,
	events repository.AuditRepository,
	logger *zap.Logger,
	cfg FlusherConfig,
) *AuditFlusher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &AuditFlusher{
		store:   store,
		monitor: monitor,
		events:  events,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = f.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := f.Drain(ctx); err != nil {
			f.logger.Error("audit journal drain failed", zap.Error(err))
		}
	})

	return f
}

// Start launches the cron scheduler.
func (f *AuditFlusher) Start() {
	if f == nil || f.cron == nil {
		return
	}
	f.cron.Start()
	f.logger.Info("audit flusher started")
}

// Stop gracefully stops the scheduler.
func (f *AuditFlusher) Stop(ctx context.Context) {
	if f == nil || f.cron == nil {
		return
	}
	stopCtx := f.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	f.logger.Info("audit flusher stopped")
}

// Drain flushes journaled events synchronously. Inserts are idempotent, so an
// event that was stored but not removed from the journal is safe to replay.
func (f *AuditFlusher) Drain(ctx context.Context) error {
	if f == nil || f.store == nil {
		return nil
	}
	if f.monitor != nil && !f.monitor.IsOnline() {
		f.logger.Debug("skipping journal drain (offline)")
		return nil
	}

	entries, err := f.store.GetBatch(f.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := f.events.Insert(ctx, entry.Event); err != nil {
			f.logger.Error("failed to flush audit event",
				zap.String("event_id", entry.Event.ID),
				zap.String("kind", entry.Event.Kind),
				zap.Error(err))

			entry.Retries++
			if entry.Retries >= f.cfg.MaxRetries {
				f.logger.Warn("dropping audit event (max retries reached)",
					zap.String("event_id", entry.Event.ID))
				_ = f.store.Remove(entry)
				continue
			}

			if err := f.store.Remove(entry); err != nil {
				f.logger.Warn("failed to remove journal entry", zap.Error(err))
			}
			if err := f.store.Requeue(entry); err != nil {
				f.logger.Error("failed to requeue journal entry", zap.Error(err))
			}
			continue
		}

		if err := f.store.Remove(entry); err != nil {
			f.logger.Warn("failed to purge flushed journal entry", zap.Error(err))
		}
	}
	return nil
}

// Record stores one audit event, inserting directly when the primary store is
// reachable and journaling otherwise.
func (f *AuditFlusher) Record(ctx context.Context, entry journal.Entry) error {
	if f == nil || f.store == nil {
		return fmt.Errorf("audit flusher not configured")
	}

	if f.monitor == nil || f.monitor.IsOnline() {
		if err := f.events.Insert(ctx, entry.Event); err == nil {
			return nil
		} else {
			f.logger.Warn("direct audit insert failed, journaling", zap.Error(err))
		}
	}
	return f.store.Append(entry)
}

// Size returns the number of journaled events.
func (f *AuditFlusher) Size() int {
	if f == nil || f.store == nil {
		return 0
	}
	size, err := f.store.Size()
	if err != nil {
		return 0
	}
	return size
}
