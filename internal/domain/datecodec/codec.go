package datecodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Codec converts between dates and the text shown in a date field.
type Codec interface {
	// Format renders t; the zero time renders as "".
	Format(t time.Time) string
	// Parse reads text produced by Format. ok is false for anything unparsable.
	Parse(s string) (t time.Time, ok bool)
	// Layout is the picker widget's format token for this codec.
	Layout() string
}

var genitiveMonths = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthByGenitive = func() map[string]time.Month {
	out := make(map[string]time.Month, len(genitiveMonths))
	for i, name := range genitiveMonths {
		out[name] = time.Month(i + 1)
	}
	return out
}()

// LongCodec renders "5 июня 2025". The year may be omitted when parsing, in
// which case the nearest future occurrence of that day is assumed.
type LongCodec struct {
	Calendar Calendar
}

func (LongCodec) Layout() string { return "d MMMM yyyy" }

func (c LongCodec) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), genitiveMonths[t.Month()-1], t.Year())
}

func (c LongCodec) Parse(s string) (time.Time, bool) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(parts) < 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 {
		return time.Time{}, false
	}
	month, ok := monthByGenitive[parts[1]]
	if !ok {
		return time.Time{}, false
	}

	var year int
	if len(parts) >= 3 {
		year, err = strconv.Atoi(parts[2])
		if err != nil || year < 1 {
			return time.Time{}, false
		}
	} else {
		today := c.Calendar.Today()
		year = today.Year()
		if day > DaysIn(year, month) || c.Calendar.Date(year, month, day).Before(today) {
			year++
		}
	}
	if day > DaysIn(year, month) {
		return time.Time{}, false
	}
	return c.Calendar.Date(year, month, day), true
}

// ShortCodec renders "05.06.2025".
type ShortCodec struct {
	Calendar Calendar
}

func (ShortCodec) Layout() string { return "dd.MM.yyyy" }

func (c ShortCodec) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d.%02d.%04d", t.Day(), int(t.Month()), t.Year())
}

func (c ShortCodec) Parse(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return time.Time{}, false
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if month > 12 || day > DaysIn(year, time.Month(month)) {
		return time.Time{}, false
	}
	return c.Calendar.Date(year, time.Month(month), day), true
}

var (
	_ Codec = LongCodec{}
	_ Codec = ShortCodec{}
)
