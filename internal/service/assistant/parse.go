package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseNaturalDate разбирает дату из текста пользователя или модели
// Понимает "today", "tomorrow", названия дней недели (с опциональным "next")
// и календарную дату в формате YYYY-MM-DD
// День недели всегда трактуется как ближайший будущий: "monday" в понедельник
// означает понедельник через неделю
func ParseNaturalDate(text string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	name := strings.TrimSpace(strings.TrimPrefix(s, "next "))
	if wd, ok := weekdays[name]; ok {
		days := int(wd-today.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days), nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", text)
	}
	return date, nil
}

// ParseNaturalTime разбирает время из текста пользователя или модели
// Понимает "3pm", "3:30pm", "10 am" и 24-часовой формат "15:00"
func ParseNaturalTime(text string) (types.TimeString, error) {
	s := strings.ToLower(strings.TrimSpace(text))

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unrecognized time %q", text)
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("unrecognized time %q", text)
	}

	minutes := 0
	if m[2] != "" {
		minutes, err = strconv.Atoi(m[2])
		if err != nil || minutes > 59 {
			return "", fmt.Errorf("unrecognized time %q", text)
		}
	}

	switch m[3] {
	case "am":
		if hours < 1 || hours > 12 {
			return "", fmt.Errorf("unrecognized time %q", text)
		}
		if hours == 12 {
			hours = 0
		}
	case "pm":
		if hours < 1 || hours > 12 {
			return "", fmt.Errorf("unrecognized time %q", text)
		}
		if hours != 12 {
			hours += 12
		}
	default:
		// Без суффикса число трактуется как 24-часовой формат
		if hours > 23 {
			return "", fmt.Errorf("unrecognized time %q", text)
		}
	}

	return types.TimeString(fmt.Sprintf("%02d:%02d", hours, minutes)), nil
}
