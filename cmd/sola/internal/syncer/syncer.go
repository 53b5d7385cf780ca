// Package syncer is the synchronization core of the Sola client. It
// owns the read path (one refresh per domain, a concurrent full
// refresh) and the write path (one operation per user action, each
// followed by its fixed invalidation set from RefreshSets). All
// gamification numbers are re-fetched, never derived locally.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/transport"
	"github.com/sola-app/sola/pkg/api"
)

// DayProvider supplies the active day. Satisfied by clock.DayClock.
type DayProvider interface {
	Today() string
}

// Orchestrator coordinates Transport, DomainStore, and the day clock.
// Concurrent actions are allowed; each one independently performs its
// write and then joins its refresh set. The store is the only shared
// mutable state and every slot update is a wholesale replacement, so
// same-domain races resolve by completion order.
type Orchestrator struct {
	api   transport.Caller
	store *store.Store
	days  DayProvider
	log   *slog.Logger
}

// New creates an Orchestrator over the given collaborators.
func New(caller transport.Caller, st *store.Store, days DayProvider, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		api:   caller,
		store: st,
		days:  days,
		log:   log.With("component", "syncer"),
	}
}

// Store exposes the domain store for the view layer.
func (o *Orchestrator) Store() *store.Store { return o.store }

// Today returns the active day.
func (o *Orchestrator) Today() string { return o.days.Today() }

// Refresh re-fetches one domain and replaces its slot wholesale.
func (o *Orchestrator) Refresh(ctx context.Context, d Domain) error {
	switch d {
	case DomainXP:
		var xp api.XPState
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/xpstate", nil, &xp); err != nil {
			return fmt.Errorf("refresh xp: %w", err)
		}
		o.store.SetXP(xp)

	case DomainDay:
		var day api.DayStatus
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/day/status?d="+o.days.Today(), nil, &day); err != nil {
			return fmt.Errorf("refresh day status: %w", err)
		}
		o.store.SetDay(day)

	case DomainMission:
		var m api.Mission
		ok, err := o.api.Call(ctx, http.MethodGet, "/api/mission?d="+o.days.Today(), nil, &m)
		if err != nil {
			return fmt.Errorf("refresh mission: %w", err)
		}
		if !ok {
			o.store.SetMissionAbsent()
			return nil
		}
		o.store.SetMission(m)

	case DomainMood:
		// The service signals a missing mood entry as a failure; this is
		// the one domain where a fetch failure means a legitimate empty
		// value rather than an error.
		var m api.Mood
		ok, err := o.api.Call(ctx, http.MethodGet, "/api/mood/"+o.days.Today(), nil, &m)
		if err != nil || !ok {
			if err != nil {
				o.log.Debug("mood fetch failed, treating as absent", "day", o.days.Today(), "error", err)
			}
			o.store.SetMoodAbsent()
			return nil
		}
		o.store.SetMood(m)

	case DomainHabits:
		var habits []api.Habit
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/habits", nil, &habits); err != nil {
			return fmt.Errorf("refresh habits: %w", err)
		}
		o.store.SetHabits(habits)

	case DomainTasks:
		var tasks []api.Task
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/tasks?d="+o.days.Today(), nil, &tasks); err != nil {
			return fmt.Errorf("refresh tasks: %w", err)
		}
		o.store.SetTasks(tasks)

	case DomainNotes:
		var notes []api.Note
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
			return fmt.Errorf("refresh notes: %w", err)
		}
		o.store.SetNotes(notes)

	case DomainAchievements:
		var achievements []api.Achievement
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/achievements", nil, &achievements); err != nil {
			return fmt.Errorf("refresh achievements: %w", err)
		}
		o.store.SetAchievements(achievements)

	case DomainWeekly:
		var report api.WeeklyReport
		if _, err := o.api.Call(ctx, http.MethodGet, "/api/weekly", nil, &report); err != nil {
			return fmt.Errorf("refresh weekly report: %w", err)
		}
		o.store.SetWeekly(report)

	default:
		return fmt.Errorf("unknown domain: %s", d)
	}
	return nil
}

// refreshMany fires the given refreshes concurrently and joins them. A
// failure in one domain never cancels the others; the first error is
// reported after all have finished.
func (o *Orchestrator) refreshMany(ctx context.Context, domains ...Domain) error {
	var g errgroup.Group
	for _, d := range domains {
		d := d
		g.Go(func() error {
			return o.Refresh(ctx, d)
		})
	}
	return g.Wait()
}

// RefreshAll re-fetches all eight domains concurrently.
func (o *Orchestrator) RefreshAll(ctx context.Context) error {
	return o.refreshMany(ctx, AllDomains...)
}

// refreshAfter runs an action's declared invalidation set. The action
// is complete only once every listed refresh has finished.
func (o *Orchestrator) refreshAfter(ctx context.Context, action Action) error {
	set, found := RefreshSets[action]
	if !found {
		return fmt.Errorf("no refresh set declared for action %s", action)
	}
	if err := o.refreshMany(ctx, set...); err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}
	o.log.Debug("action complete", "action", string(action), "refreshed", len(set))
	return nil
}

// Run performs the startup full refresh, then full-refreshes on every
// day-change event until ctx is cancelled. The weekly report is
// dropped on day change rather than re-fetched; it is produced on
// demand only.
func (o *Orchestrator) Run(ctx context.Context, changes <-chan string) error {
	if err := o.RefreshAll(ctx); err != nil {
		o.log.Warn("startup refresh incomplete", "error", err)
	}

	for {
		select {
		case day := <-changes:
			o.log.Info("day changed, refreshing all domains", "day", day)
			o.store.ResetWeekly()
			if err := o.RefreshAll(ctx); err != nil {
				o.log.Warn("day-change refresh incomplete", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// escapeID makes an entity ID safe for a path segment.
func escapeID(id string) string {
	return url.PathEscape(id)
}
