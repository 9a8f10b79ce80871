package domain

import "fmt"

// transitions таблица допустимых переходов: from -> to -> кто может
var transitions = map[ReservationStatus]map[ReservationStatus][]Actor{
	StatusPending: {
		StatusConfirmed: {ActorAdmin},
		StatusCancelled: {ActorAdmin, ActorRequester},
	},
	StatusConfirmed: {
		StatusCompleted: {ActorAdmin},
		StatusNoShow:    {ActorAdmin},
		StatusCancelled: {ActorAdmin, ActorRequester},
	},
}

// CanTransition проверяет переход по таблице
func CanTransition(from, to ReservationStatus, actor Actor) bool {
	for _, a := range transitions[from][to] {
		if a == actor {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает ErrInvalidTransition с контекстом, если переход запрещен
func ValidateTransition(from, to ReservationStatus, actor Actor) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
	}
	if !CanTransition(from, to, actor) {
		return fmt.Errorf("%w: %s -> %s is not allowed for %s", ErrInvalidTransition, from, to, actor)
	}
	return nil
}

// AllowedTransitions статусы, доступные из from (для кнопок таблицы и доски)
func AllowedTransitions(from ReservationStatus, actor Actor) []ReservationStatus {
	var out []ReservationStatus
	for _, to := range AllStatuses {
		if CanTransition(from, to, actor) {
			out = append(out, to)
		}
	}
	return out
}
