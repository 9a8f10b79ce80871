package jobs

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

// Job фоновая задача, запускаемая планировщиком
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// RemindersJob письма заявителям о завтрашних подтвержденных консультациях
type RemindersJob struct {
	sender ReminderSender
	logger Logger
}

func NewRemindersJob(sender ReminderSender, logger Logger) *RemindersJob {
	return &RemindersJob{sender: sender, logger: logger}
}

func (j *RemindersJob) Name() string { return "reminders" }

func (j *RemindersJob) Run(ctx context.Context) error {
	sent, err := j.sender.SendTomorrowReminders(ctx)
	if err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}
	j.logger.Info("RemindersJob: sent=%d", sent)
	return nil
}

// PublishCalendarJob выгружает ленту бронирований в объектное хранилище
// по постоянному ключу, чтобы календарные клиенты могли на нее подписаться
type PublishCalendarJob struct {
	exporter CalendarExporter
	store    BlobStore
	key      string
	logger   Logger
}

func NewPublishCalendarJob(exporter CalendarExporter, store BlobStore, key string, logger Logger) *PublishCalendarJob {
	return &PublishCalendarJob{
		exporter: exporter,
		store:    store,
		key:      key,
		logger:   logger,
	}
}

func (j *PublishCalendarJob) Name() string { return "calendar_publish" }

func (j *PublishCalendarJob) Run(ctx context.Context) error {
	feed, err := j.exporter.Execute(ctx, &export_calendar.Request{})
	if err != nil {
		return fmt.Errorf("export calendar: %w", err)
	}

	url, err := j.store.Put(ctx, j.key, export_calendar.ContentType, feed.Content)
	if err != nil {
		return fmt.Errorf("upload calendar %s: %w", j.key, err)
	}

	j.logger.Info("PublishCalendarJob: published %d events to %s", feed.Count, url)
	return nil
}
