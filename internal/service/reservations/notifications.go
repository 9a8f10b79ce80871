package reservations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

// SendReminders отправляет напоминания по подтвержденным бронированиям на дату.
// Возвращает количество отправленных писем, ошибки отдельных писем только логируются.
func (s *Service) SendReminders(ctx context.Context, date time.Time) (int, error) {
	day := domain.DateOnly(date)
	s.logger.Info("SendReminders: date=%s", day.Format(domain.DateFormat))

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		DateFrom: &day,
		DateTo:   &day,
		Statuses: []domain.ReservationStatus{domain.StatusConfirmed},
	})
	if err != nil {
		s.logger.Error("SendReminders: repository error: %v", err)
		return 0, fmt.Errorf("%w: SendReminders - repository error: %v", ErrInternal, err)
	}

	sent := 0
	for _, res := range list {
		msg := notifier.Message{
			To:      []string{res.RequesterEmail},
			Subject: fmt.Sprintf("Reminder: %s on %s at %s", res.ServiceName, res.Date.Format(domain.DateFormat), res.StartTime),
			Body:    reminderBody(res),
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			s.logger.Warn("SendReminders: failed to notify reservation id=%d: %v", res.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("SendReminders: sent %d of %d reminders", sent, len(list))
	return sent, nil
}

// SendTomorrowReminders напоминания на завтра по часовому поясу календаря
func (s *Service) SendTomorrowReminders(ctx context.Context) (int, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return 0, err
	}
	tomorrow := domain.DateOnly(s.timeProvider.Now().In(loc)).AddDate(0, 0, 1)
	return s.SendReminders(ctx, tomorrow)
}

func (s *Service) sendConfirmation(ctx context.Context, res *domain.Reservation, loc *time.Location) {
	invite := export_calendar.BuildInvite(res, loc, s.organizer, s.timeProvider.Now())

	msg := notifier.Message{
		To:      []string{res.RequesterEmail},
		Subject: fmt.Sprintf("Your consultation on %s at %s is confirmed", res.Date.Format(domain.DateFormat), res.StartTime),
		Body:    confirmationBody(res, loc),
		Attachments: []notifier.Attachment{{
			Filename:    "invite.ics",
			ContentType: notifier.ContentTypeCalendar,
			Content:     invite,
		}},
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("Transition: failed to send confirmation for reservation id=%d: %v", res.ID, err)
	}
}

func (s *Service) sendCancellation(ctx context.Context, res *domain.Reservation, actor domain.Actor) {
	// Заявитель сам отменил, письмо ему не нужно
	if actor == domain.ActorRequester {
		return
	}
	msg := notifier.Message{
		To:      []string{res.RequesterEmail},
		Subject: fmt.Sprintf("Your consultation on %s at %s was cancelled", res.Date.Format(domain.DateFormat), res.StartTime),
		Body:    cancellationBody(res),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("Transition: failed to send cancellation for reservation id=%d: %v", res.ID, err)
	}
}

func confirmationBody(res *domain.Reservation, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", res.RequesterName)
	fmt.Fprintf(&b, "your %s is confirmed for %s, %s-%s (%s).\n",
		res.ServiceName, res.Date.Format(domain.DateFormat), res.StartTime, res.EndTime, loc)
	if res.MeetingLink != nil {
		fmt.Fprintf(&b, "Meeting link: %s\n", *res.MeetingLink)
	}
	b.WriteString("\nThe calendar invite is attached.\n")
	return b.String()
}

func reminderBody(res *domain.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", res.RequesterName)
	fmt.Fprintf(&b, "a reminder about your %s on %s at %s.\n", res.ServiceName, res.Date.Format(domain.DateFormat), res.StartTime)
	if res.MeetingLink != nil {
		fmt.Fprintf(&b, "Meeting link: %s\n", *res.MeetingLink)
	}
	return b.String()
}

func cancellationBody(res *domain.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", res.RequesterName)
	fmt.Fprintf(&b, "your %s on %s at %s was cancelled.\n", res.ServiceName, res.Date.Format(domain.DateFormat), res.StartTime)
	if res.CancellationReason != nil {
		fmt.Fprintf(&b, "Reason: %s\n", *res.CancellationReason)
	}
	return b.String()
}
