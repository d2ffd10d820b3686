package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Понедельник 2024-03-18
var monday = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

func appt(start, end types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		Date:      monday,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		startA, endA, startB, endB     types.TimeString
		want                           bool
	}{
		{name: "partial overlap", startA: "10:00", endA: "11:00", startB: "10:30", endB: "11:30", want: true},
		{name: "contained", startA: "10:00", endA: "12:00", startB: "10:30", endB: "11:00", want: true},
		{name: "identical", startA: "10:00", endA: "11:00", startB: "10:00", endB: "11:00", want: true},
		{name: "abutting after", startA: "10:00", endA: "11:00", startB: "11:00", endB: "12:00", want: false},
		{name: "abutting before", startA: "10:00", endA: "11:00", startB: "09:00", endB: "10:00", want: false},
		{name: "disjoint", startA: "09:00", endA: "10:00", startB: "14:00", endB: "15:00", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.startA, tc.endA, tc.startB, tc.endB)
			assert.Equal(t, tc.want, got)
			// Пересечение симметрично
			assert.Equal(t, got, Overlaps(tc.startB, tc.endB, tc.startA, tc.endA))
		})
	}
}

func TestIsAvailable(t *testing.T) {
	booked := []*domain.Appointment{
		appt("10:00", "11:00", domain.StatusScheduled),
	}

	assert.False(t, IsAvailable("10:00", 60, booked))
	assert.False(t, IsAvailable("10:30", 60, booked))
	assert.False(t, IsAvailable("09:30", 60, booked))
	// Граничащие интервалы не конфликтуют
	assert.True(t, IsAvailable("11:00", 60, booked))
	assert.True(t, IsAvailable("09:00", 60, booked))
}

func TestIsAvailable_CancelledIgnored(t *testing.T) {
	cancelled := []*domain.Appointment{
		appt("10:00", "11:00", domain.StatusCancelled),
	}

	assert.True(t, IsAvailable("10:00", 60, cancelled))
}

func TestIsAvailable_ConfirmedBlocks(t *testing.T) {
	confirmed := []*domain.Appointment{
		appt("10:00", "11:00", domain.StatusConfirmed),
	}

	assert.False(t, IsAvailable("10:00", 60, confirmed))
}

func TestIsAvailable_IntervalPastMidnight(t *testing.T) {
	assert.False(t, IsAvailable("23:30", 60, nil))
}

func TestFreeSlots_EmptyWeekday(t *testing.T) {
	slots := FreeSlots(monday, 60, nil)

	require.Len(t, slots, 8)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:00"), slots[7])
}

func TestFreeSlots_BookedHourExcluded(t *testing.T) {
	booked := []*domain.Appointment{
		appt("10:00", "11:00", domain.StatusScheduled),
	}

	slots := FreeSlots(monday, 60, booked)

	require.Len(t, slots, 7)
	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.Contains(t, slots, types.TimeString("09:00"))
	assert.Contains(t, slots, types.TimeString("11:00"))
}

func TestFreeSlots_WeekendEmpty(t *testing.T) {
	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, FreeSlots(saturday, 60, nil))
	assert.Empty(t, FreeSlots(sunday, 60, nil))
}

func TestFreeSlots_LongDurationStopsBeforeClose(t *testing.T) {
	slots := FreeSlots(monday, 120, nil)

	require.NotEmpty(t, slots)
	// Последний кандидат заканчивается ровно в закрытие
	assert.Equal(t, types.TimeString("15:00"), slots[len(slots)-1])
}

func TestFreeSlots_EveryReturnedSlotIsAvailable(t *testing.T) {
	booked := []*domain.Appointment{
		appt("09:00", "10:00", domain.StatusScheduled),
		appt("12:00", "13:00", domain.StatusScheduled),
		appt("15:00", "16:00", domain.StatusConfirmed),
	}

	slots := FreeSlots(monday, 60, booked)

	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.True(t, IsAvailable(slot, 60, booked), "slot %s", slot)
	}
	assert.Len(t, slots, 5)
}
