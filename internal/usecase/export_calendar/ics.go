package export_calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

const productID = "-//SMC Consulting//Reservations//EN"

// Organizer отправитель приглашений
type Organizer struct {
	Name  string
	Email string
}

// BuildCalendar лента с событием на каждое бронирование
func BuildCalendar(reservations []*domain.Reservation, loc *time.Location, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("Consultations")

	for _, r := range reservations {
		addEvent(cal, r, loc, stamp)
	}
	return cal
}

// BuildInvite приглашение для заявителя, отправляется вложением к подтверждению
func BuildInvite(r *domain.Reservation, loc *time.Location, organizer Organizer, stamp time.Time) []byte {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodRequest)

	event := addEvent(cal, r, loc, stamp)
	if organizer.Email != "" {
		event.SetOrganizer("mailto:"+organizer.Email, ical.WithCN(organizer.Name))
	}
	event.AddAttendee("mailto:"+r.RequesterEmail, ical.WithCN(r.RequesterName), ical.WithRSVP(true))

	return []byte(cal.Serialize())
}

// EventUID постоянный UID события бронирования
func EventUID(id int64) string {
	return fmt.Sprintf("reservation-%d@smc-consulting", id)
}

func addEvent(cal *ical.Calendar, r *domain.Reservation, loc *time.Location, stamp time.Time) *ical.VEvent {
	start := r.StartsAt(loc)
	end := start.Add(time.Duration(r.DurationMinutes) * time.Minute)

	event := cal.AddEvent(EventUID(r.ID))
	event.SetDtStampTime(stamp)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s: %s", r.ServiceName, r.RequesterName))
	event.SetDescription(describe(r))
	event.SetStatus(eventStatus(r.Status))
	if !r.UpdatedAt.IsZero() {
		event.SetModifiedAt(r.UpdatedAt)
	}
	if r.MeetingLink != nil && *r.MeetingLink != "" {
		event.SetLocation(*r.MeetingLink)
		event.SetURL(*r.MeetingLink)
	}
	return event
}

func describe(r *domain.Reservation) string {
	lines := []string{
		"Requester: " + r.RequesterName + " <" + r.RequesterEmail + ">",
		"Status: " + string(r.Status),
	}
	if r.RequesterPhone != nil && *r.RequesterPhone != "" {
		lines = append(lines, "Phone: "+*r.RequesterPhone)
	}
	if r.Notes != nil && *r.Notes != "" {
		lines = append(lines, "Notes: "+*r.Notes)
	}
	return strings.Join(lines, "\n")
}

func eventStatus(s domain.ReservationStatus) ical.ObjectStatus {
	switch s {
	case domain.StatusPending:
		return ical.ObjectStatusTentative
	case domain.StatusCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusConfirmed
	}
}
