// Package refresh keeps the booking snapshot current.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"milahouse/internal/app/policies"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/infra/ics"
)

// Replacer accepts a complete new snapshot.
type Replacer interface {
	Replace(records []booking.Record, at time.Time)
}

// Refresher pulls the feed, adds the configured closures and swaps the
// result into the store. On failure the store keeps serving the previous
// snapshot.
type Refresher struct {
	Feed      policies.SnapshotFeed
	Store     Replacer
	Blackouts []ics.Blackout
	Calendar  datecodec.Calendar
	Logger    *slog.Logger
}

func (r *Refresher) Refresh(ctx context.Context) error {
	records, err := r.Feed.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("refresh: fetch: %w", err)
	}
	closures, err := r.closures()
	if err != nil {
		return fmt.Errorf("refresh: blackouts: %w", err)
	}
	all := make([]booking.Record, 0, len(records)+len(closures))
	all = append(all, records...)
	all = append(all, closures...)
	r.Store.Replace(all, time.Now())
	if r.Logger != nil {
		r.Logger.Info("booking snapshot refreshed", "records", len(records), "closures", len(closures))
	}
	return nil
}

// closures expands the blackout rules over the whole span the engine can
// ever report on.
func (r *Refresher) closures() ([]booking.Record, error) {
	if len(r.Blackouts) == 0 {
		return nil, nil
	}
	from := r.Calendar.Today().AddDate(0, 0, -availability.DefaultWindowDays)
	to := r.Calendar.Horizon().AddDate(0, 0, availability.DefaultWindowDays)
	return ics.ExpandBlackouts(r.Blackouts, from, to, r.Calendar.Location)
}

// Scheduler runs the refresher on a cron spec and whenever Trigger is
// called. Refreshes never overlap; triggers arriving during a refresh
// collapse into one follow-up run.
type Scheduler struct {
	Refresher *Refresher
	Spec      string
	Location  *time.Location
	Logger    *slog.Logger

	trigger chan struct{}
}

func NewScheduler(r *Refresher, spec string, loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{Refresher: r, Spec: spec, Location: loc, Logger: logger, trigger: make(chan struct{}, 1)}
}

func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Run(ctx context.Context) error {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(s.Spec, s.Trigger); err != nil {
		return fmt.Errorf("refresh: schedule %q: %w", s.Spec, err)
	}
	c.Start()
	defer func() { <-c.Stop().Done() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.trigger:
			if err := s.Refresher.Refresh(ctx); err != nil && s.Logger != nil {
				s.Logger.Warn("booking snapshot refresh failed", "error", err)
			}
		}
	}
}
