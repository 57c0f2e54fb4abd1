package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderPoller drives the reminder scan on a fixed schedule and
// forwards fired reminders to Slack.
type ReminderPoller struct {
	reminders *ReminderService
	slack     *SlackService
	metrics   *MetricsService
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewReminderPoller constructs the poller.
func NewReminderPoller(reminders *ReminderService, slack *SlackService, metrics *MetricsService, logger *zap.Logger) *ReminderPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderPoller{
		reminders: reminders,
		slack:     slack,
		metrics:   metrics,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the scan at the given interval and begins polling.
func (p *ReminderPoller) Start(interval time.Duration) error {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := p.cron.AddFunc(spec, p.tick); err != nil {
		return fmt.Errorf("schedule reminder poll: %w", err)
	}
	p.cron.Start()
	p.logger.Sugar().Infow("reminder poller started", "interval", interval.String())
	return nil
}

// Stop halts the poll loop and waits for a running tick to finish.
func (p *ReminderPoller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Sugar().Infow("reminder poller stopped")
}

func (p *ReminderPoller) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	due, err := p.reminders.Scan(ctx, time.Now())
	if err != nil {
		p.logger.Sugar().Warnw("reminder scan failed", "error", err)
		return
	}
	for _, reminder := range due {
		p.logger.Sugar().Infow("reminder due", "reminder_id", reminder.ID, "title", reminder.Title, "time", reminder.Time)
		p.metrics.ReminderFired()
		if p.slack != nil {
			p.slack.NotifyReminder(reminder)
		}
	}
}
