package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// ComputeAvailableSlots возвращает свободные слоты на дату.
//
// Чистая функция: одинаковые аргументы дают одинаковый результат.
// Пусто, если день выключен, дата заблокирована или вне окна бронирования.
// Сетка строится от начала рабочего дня с шагом SlotDurationMinutes,
// неполный последний слот отбрасывается, слоты пересекающие перерыв пропускаются.
// Занятые слоты удаляются по точному совпадению времени начала.
func ComputeAvailableSlots(
	date time.Time,
	cfg *domain.CalendarConfig,
	blocked []*domain.BlockedDate,
	existing []*domain.Reservation,
	now time.Time,
) []types.TimeString {
	result := make([]types.TimeString, 0)
	if cfg == nil {
		return result
	}

	day := domain.DateOnly(date)
	loc := cfg.Location()

	// 1. Выключенный день недели
	schedule := cfg.Day(day.Weekday())
	if !schedule.Enabled {
		return result
	}

	// 2. Заблокированная дата
	if domain.IsDateBlocked(day, blocked) {
		return result
	}

	// 3. Горизонт бронирования (по календарной дате в поясе календаря)
	if !withinHorizon(day, now.In(loc), cfg) {
		return result
	}

	// 4. Сетка слотов
	grid := generateGrid(schedule, cfg.SlotDurationMinutes)

	// 5. Минимальное время до начала и занятые слоты
	earliest := now.Add(time.Duration(cfg.MinAdvanceHours) * time.Hour)
	taken := takenStarts(day, existing)

	for _, slot := range grid {
		if slot.On(day, loc).Before(earliest) {
			continue
		}
		if _, ok := taken[slot.Minutes()]; ok {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// IsSlotAvailable проверяет, что слот присутствует в пересчитанном списке
func IsSlotAvailable(slot types.TimeString, available []types.TimeString) bool {
	for _, s := range available {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// WithinBookingWindow проверяет политику бронирования для конкретного слота:
// не раньше чем через MinAdvanceHours и не дальше MaxAdvanceDays
func WithinBookingWindow(date time.Time, slot types.TimeString, cfg *domain.CalendarConfig, now time.Time) bool {
	day := domain.DateOnly(date)
	loc := cfg.Location()
	if !withinHorizon(day, now.In(loc), cfg) {
		return false
	}
	earliest := now.Add(time.Duration(cfg.MinAdvanceHours) * time.Hour)
	return !slot.On(day, loc).Before(earliest)
}

// generateGrid генерирует сетку слотов рабочего дня.
// Сетка всегда выровнена по началу дня, перерыв не сдвигает слоты.
func generateGrid(schedule domain.DaySchedule, slotDuration int) []types.TimeString {
	grid := make([]types.TimeString, 0)
	if slotDuration <= 0 {
		return grid
	}

	start := schedule.Start.Minutes()
	end := schedule.End.Minutes()
	if start < 0 || end < 0 {
		return grid
	}

	breakStart, breakEnd := -1, -1
	if schedule.HasBreak() {
		breakStart = schedule.BreakStart.Minutes()
		breakEnd = schedule.BreakEnd.Minutes()
	}

	for cursor := start; cursor+slotDuration <= end; cursor += slotDuration {
		// Слот [cursor, cursor+slot) пересекается с [breakStart, breakEnd)
		if breakStart >= 0 && cursor < breakEnd && cursor+slotDuration > breakStart {
			continue
		}
		slot, err := types.FromMinutes(cursor)
		if err != nil {
			break
		}
		grid = append(grid, slot)
	}

	return grid
}

// takenStarts времена начала бронирований, которые занимают слот на эту дату
func takenStarts(day time.Time, existing []*domain.Reservation) map[int]struct{} {
	taken := make(map[int]struct{}, len(existing))
	for _, r := range existing {
		if r == nil || !r.BlocksSlot() || !domain.SameDate(r.Date, day) {
			continue
		}
		taken[r.StartTime.Minutes()] = struct{}{}
	}
	return taken
}

// withinHorizon дата не в прошлом и не дальше MaxAdvanceDays (0 = без ограничения)
func withinHorizon(day, nowLocal time.Time, cfg *domain.CalendarConfig) bool {
	today := domain.DateOnly(nowLocal)
	if day.Before(today) {
		return false
	}
	if !cfg.HasHorizon() {
		return true
	}
	return !day.After(today.AddDate(0, 0, cfg.MaxAdvanceDays))
}
