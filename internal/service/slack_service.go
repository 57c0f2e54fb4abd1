package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/schedule"
	"github.com/prakasam-dev/daybook-api/pkg/config"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/jobs"
)

type digestQueue interface {
	Enqueue(job jobs.Job) error
}

// slackMessage is the incoming-webhook payload.
type slackMessage struct {
	Channel  string `json:"channel,omitempty"`
	Username string `json:"username,omitempty"`
	Text     string `json:"text"`
}

// SlackService posts the daily digest to an incoming webhook. Delivery
// runs through the job queue off the request path; a failed post is
// logged and dropped, never retried.
type SlackService struct {
	cfg     config.SlackConfig
	queue   digestQueue
	client  *http.Client
	events  dayEventLister
	logger  *zap.Logger
	metrics *MetricsService
}

// NewSlackService constructs the service.
func NewSlackService(cfg config.SlackConfig, queue digestQueue, events dayEventLister, logger *zap.Logger) *SlackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlackService{
		cfg:    cfg,
		queue:  queue,
		client: &http.Client{Timeout: 10 * time.Second},
		events: events,
		logger: logger,
	}
}

// AttachMetrics wires delivery outcome counters.
func (s *SlackService) AttachMetrics(m *MetricsService) {
	s.metrics = m
}

// Enabled reports whether a webhook is configured.
func (s *SlackService) Enabled() bool {
	return strings.TrimSpace(s.cfg.WebhookURL) != ""
}

// SendDigest builds the digest for a day and queues it for delivery.
// The returned text is what will be posted.
func (s *SlackService) SendDigest(ctx context.Context, date time.Time) (string, error) {
	if !s.Enabled() {
		return "", appErrors.Clone(appErrors.ErrValidation, "slack webhook is not configured")
	}
	events, err := s.events.ListByDate(ctx, date)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events for digest")
	}
	text := s.formatDigest(date, events)
	job := jobs.Job{
		ID:      fmt.Sprintf("digest-%s-%d", schedule.FormatDate(date), time.Now().UnixNano()),
		Type:    "slack_digest",
		Payload: text,
	}
	if err := s.queue.Enqueue(job); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue digest")
	}
	return text, nil
}

// NotifyReminder queues a short message for a fired reminder.
func (s *SlackService) NotifyReminder(reminder models.Reminder) {
	if !s.Enabled() {
		return
	}
	text := fmt.Sprintf(":alarm_clock: Reminder: *%s* at %s", reminder.Title, reminder.Time)
	job := jobs.Job{
		ID:      "reminder-" + reminder.ID,
		Type:    "slack_reminder",
		Payload: text,
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Sugar().Warnw("failed to queue reminder notification", "reminder_id", reminder.ID, "error", err)
	}
}

// Deliver is the queue handler. It posts the job payload and swallows
// delivery failures after logging them.
func (s *SlackService) Deliver(ctx context.Context, job jobs.Job) error {
	text, ok := job.Payload.(string)
	if !ok {
		s.logger.Sugar().Warnw("dropping slack job with bad payload", "job_id", job.ID)
		return nil
	}
	err := s.post(ctx, text)
	s.metrics.SlackDelivery(err == nil)
	if err != nil {
		s.logger.Sugar().Warnw("slack delivery failed", "job_id", job.ID, "error", err)
	}
	return nil
}

func (s *SlackService) post(ctx context.Context, text string) error {
	payload, err := json.Marshal(slackMessage{
		Channel:  s.cfg.Channel,
		Username: s.cfg.Username,
		Text:     text,
	})
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned %d", resp.StatusCode)
	}
	return nil
}

// formatDigest renders the schedule summary posted each day, events
// ordered by start time.
func (s *SlackService) formatDigest(date time.Time, events []models.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":calendar: *Daily Digest for %s*\n", date.Format("Mon, 02 Jan 2006"))
	if len(events) == 0 {
		b.WriteString("No events scheduled today.\n")
		return b.String()
	}
	schedule.SortByStart(events)
	for _, e := range events {
		line := fmt.Sprintf("• %s - %s  *%s*", e.StartTime, e.EndTime, e.Title)
		if e.Person != "" {
			line += " with " + e.Person
		}
		if e.Location != "" {
			line += " @ " + e.Location
		}
		switch e.Status {
		case models.EventStatusCompleted:
			line += " :white_check_mark:"
		case models.EventStatusCancelled:
			line += " :x:"
		case models.EventStatusRescheduled:
			line += " :arrows_counterclockwise:"
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "_%d event(s) scheduled._", len(events))
	return b.String()
}
