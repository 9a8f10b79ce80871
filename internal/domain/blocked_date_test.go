package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlockedDate_Blocks(t *testing.T) {
	single := &BlockedDate{Date: date(2026, 3, 10)}
	assert.True(t, single.Blocks(date(2026, 3, 10)))
	assert.True(t, single.Blocks(time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)))
	assert.False(t, single.Blocks(date(2026, 3, 11)))

	christmas := &BlockedDate{
		Date:       date(2025, 12, 25),
		Recurrence: ptr.Ptr("FREQ=YEARLY"),
	}
	assert.True(t, christmas.Blocks(date(2025, 12, 25)))
	assert.True(t, christmas.Blocks(date(2027, 12, 25)))
	assert.False(t, christmas.Blocks(date(2027, 12, 26)))
	assert.False(t, christmas.Blocks(date(2024, 12, 25)), "recurrence starts at the blocked date")

	fridays := &BlockedDate{
		Date:       date(2026, 1, 2),
		Recurrence: ptr.Ptr("FREQ=WEEKLY;COUNT=3"),
	}
	assert.True(t, fridays.Blocks(date(2026, 1, 9)))
	assert.True(t, fridays.Blocks(date(2026, 1, 16)))
	assert.False(t, fridays.Blocks(date(2026, 1, 23)))
}

func TestBlockedDate_Validate(t *testing.T) {
	assert.ErrorIs(t, (&BlockedDate{}).Validate(), ErrValidationFailed)
	assert.ErrorIs(t, (&BlockedDate{Date: date(2026, 1, 1), Recurrence: ptr.Ptr("FREQ=SOMETIMES")}).Validate(),
		ErrValidationFailed)
	assert.NoError(t, (&BlockedDate{Date: date(2026, 1, 1), Recurrence: ptr.Ptr("FREQ=YEARLY")}).Validate())
}

func TestIsDateBlocked(t *testing.T) {
	blocked := []*BlockedDate{{Date: date(2026, 5, 1)}, {Date: date(2026, 5, 8)}}
	assert.True(t, IsDateBlocked(date(2026, 5, 8), blocked))
	assert.False(t, IsDateBlocked(date(2026, 5, 2), blocked))
	assert.False(t, IsDateBlocked(date(2026, 5, 2), nil))
}
