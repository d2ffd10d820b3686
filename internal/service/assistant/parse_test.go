package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Пятница 2024-03-15 12:00
var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestParseNaturalDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{input: "today", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{input: "Tomorrow", want: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)},
		{input: "monday", want: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		{input: "next monday", want: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		{input: "thursday", want: time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)},
		// Сегодня пятница: "friday" означает следующую пятницу
		{input: "friday", want: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)},
		{input: "2024-04-01", want: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseNaturalDate(tc.input, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseNaturalDate_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "someday", "03/15/2024", "2024-13-40"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNaturalDate(input, now)
			assert.Error(t, err)
		})
	}
}

func TestParseNaturalTime(t *testing.T) {
	cases := []struct {
		input string
		want  types.TimeString
	}{
		{input: "3pm", want: types.TimeString("15:00")},
		{input: "3:30pm", want: types.TimeString("15:30")},
		{input: "10am", want: types.TimeString("10:00")},
		{input: "10 AM", want: types.TimeString("10:00")},
		{input: "12pm", want: types.TimeString("12:00")},
		{input: "12am", want: types.TimeString("00:00")},
		{input: "15:00", want: types.TimeString("15:00")},
		{input: "9:05", want: types.TimeString("09:05")},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseNaturalTime(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseNaturalTime_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "afternoon", "25:00", "13pm", "3:75pm"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNaturalTime(input)
			assert.Error(t, err)
		})
	}
}
