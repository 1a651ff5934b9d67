package jobs

import (
	"context"
	"log/slog"
	"time"

	"arenoexpress/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

// RelayHandler drains one batch of the notification outbox.
type RelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (commands.RelayResult, error)
}

// NotificationRelayJob pushes queued notifications to the configured sink on
// a cron schedule. A run that overlaps the previous one is skipped.
type NotificationRelayJob struct {
	handler  RelayHandler
	command  commands.RelayNotificationsCommand
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationRelayJob creates the relay job. schedule is a six-field cron
// expression (seconds first); timeout bounds a single run.
func NewNotificationRelayJob(
	handler RelayHandler,
	command commands.RelayNotificationsCommand,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *NotificationRelayJob {
	return &NotificationRelayJob{
		handler:  handler,
		command:  command,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Name() string {
	return "notification relay"
}

// Start schedules the relay. It fails on an invalid schedule.
func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}

func (j *NotificationRelayJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay failed", "error", err)
		return
	}
	if result.Failed > 0 || result.Dead > 0 {
		j.logger.WarnContext(ctx, "Notification relay had failures",
			"delivered", result.Delivered, "failed", result.Failed, "dead", result.Dead)
		return
	}
	if result.Delivered > 0 {
		j.logger.DebugContext(ctx, "Notification relay delivered", "delivered", result.Delivered)
	}
}
