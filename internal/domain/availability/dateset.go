package availability

import (
	"sort"
	"time"

	"milahouse/internal/domain/datecodec"
)

// DateSet is a membership set of calendar days keyed by ISO date.
type DateSet struct {
	days map[string]time.Time
}

func NewDateSet() DateSet {
	return DateSet{days: make(map[string]time.Time)}
}

// Add inserts the day of t; duplicates are harmless.
func (s DateSet) Add(t time.Time) {
	d := datecodec.Normalize(t)
	s.days[datecodec.ISO(d)] = d
}

func (s DateSet) Contains(t time.Time) bool {
	_, ok := s.days[datecodec.ISO(t)]
	return ok
}

func (s DateSet) Len() int { return len(s.days) }

// Dates returns the members in ascending order.
func (s DateSet) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.days))
	for _, d := range s.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Span is a run of consecutive members, both ends included.
type Span struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Ranges compresses the set into consecutive runs.
func (s DateSet) Ranges() []Span {
	dates := s.Dates()
	spans := make([]Span, 0)
	for i := 0; i < len(dates); {
		j := i
		for j+1 < len(dates) && datecodec.SameDay(dates[j].AddDate(0, 0, 1), dates[j+1]) {
			j++
		}
		spans = append(spans, Span{From: datecodec.ISO(dates[i]), To: datecodec.ISO(dates[j])})
		i = j + 1
	}
	return spans
}
