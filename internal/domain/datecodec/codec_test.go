package datecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msk = time.FixedZone("MSK", 3*60*60)

func testCalendar() Calendar {
	return NewCalendar(FixedClock(time.Date(2025, 5, 20, 15, 30, 0, 0, msk)), msk)
}

func TestCalendarTodayAndHorizon(t *testing.T) {
	cal := testCalendar()
	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, msk), cal.Today())
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, msk), cal.Horizon())
}

func TestLongCodecParse(t *testing.T) {
	codec := LongCodec{Calendar: testCalendar()}
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "full date", input: "5 июня 2025", want: time.Date(2025, 6, 5, 0, 0, 0, 0, msk), ok: true},
		{name: "mixed case and spaces", input: "  12   Марта 2026 ", want: time.Date(2026, 3, 12, 0, 0, 0, 0, msk), ok: true},
		{name: "no year later this year", input: "1 июля", want: time.Date(2025, 7, 1, 0, 0, 0, 0, msk), ok: true},
		{name: "no year today stays", input: "20 мая", want: time.Date(2025, 5, 20, 0, 0, 0, 0, msk), ok: true},
		{name: "no year already passed rolls over", input: "19 мая", want: time.Date(2026, 5, 19, 0, 0, 0, 0, msk), ok: true},
		{name: "unknown month", input: "5 june 2025"},
		{name: "nominative month", input: "5 июнь 2025"},
		{name: "bad day", input: "x июня 2025"},
		{name: "bad year", input: "5 июня двадцать"},
		{name: "day out of range", input: "31 июня 2025"},
		{name: "single token", input: "5"},
		{name: "empty", input: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := codec.Parse(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestShortCodecParse(t *testing.T) {
	codec := ShortCodec{Calendar: testCalendar()}
	got, ok := codec.Parse("05.06.2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, msk), got)

	for _, input := range []string{"", "05.06", "05-06-2025", "a.06.2025", "00.06.2025", "05.13.2025", "30.02.2024", "05.06.2025.1"} {
		_, ok := codec.Parse(input)
		assert.False(t, ok, input)
	}
}

func TestFormatZeroIsEmpty(t *testing.T) {
	cal := testCalendar()
	assert.Equal(t, "", LongCodec{Calendar: cal}.Format(time.Time{}))
	assert.Equal(t, "", ShortCodec{Calendar: cal}.Format(time.Time{}))
	assert.Equal(t, "", ISO(time.Time{}))
}

func TestRoundTrip(t *testing.T) {
	cal := testCalendar()
	codecs := map[string]Codec{
		"long":  LongCodec{Calendar: cal},
		"short": ShortCodec{Calendar: cal},
	}
	start := time.Date(2024, 1, 1, 17, 45, 0, 0, msk)
	for name, codec := range codecs {
		for d := start; d.Year() < 2026; d = d.AddDate(0, 0, 3) {
			parsed, ok := codec.Parse(codec.Format(d))
			require.True(t, ok, "%s %s", name, d)
			assert.True(t, SameDay(parsed, Normalize(d)), "%s %s -> %s", name, d, parsed)
			assert.Zero(t, parsed.Hour())
		}
	}
}

func TestFormats(t *testing.T) {
	cal := testCalendar()
	d := time.Date(2025, 6, 5, 0, 0, 0, 0, msk)
	assert.Equal(t, "5 июня 2025", LongCodec{Calendar: cal}.Format(d))
	assert.Equal(t, "05.06.2025", ShortCodec{Calendar: cal}.Format(d))
	assert.Equal(t, "2025-06-05", ISO(d))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
}
