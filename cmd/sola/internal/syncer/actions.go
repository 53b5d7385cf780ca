package syncer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/pkg/api"
)

// Each operation here performs its write through Transport, then runs
// the action's invalidation set from RefreshSets. There is no retry and
// no rollback: a failed refresh leaves whatever earlier-completing
// refreshes already produced.

// SaveMission upserts the active day's mission text. The service echoes
// the stored mission, which replaces the mission slot directly; only
// day-status needs a re-fetch.
func (o *Orchestrator) SaveMission(ctx context.Context, text string) error {
	done := false
	if m := o.store.Mission(); m.State == store.Loaded {
		done = m.Value.Done
	}

	var saved api.Mission
	payload := api.MissionUpsert{Date: o.days.Today(), Text: text, Done: done}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/mission", payload, &saved); err != nil {
		return fmt.Errorf("save mission: %w", err)
	}
	o.store.SetMission(saved)

	return o.refreshAfter(ctx, ActionSaveMission)
}

// ToggleMissionDone flips the mission's done flag. When no mission has
// been saved yet, the held draft text is saved first; with neither a
// mission nor a draft the call is a no-op, mirroring the view's
// behavior.
func (o *Orchestrator) ToggleMissionDone(ctx context.Context, draft string) error {
	m := o.store.Mission()
	if m.State != store.Loaded {
		if draft == "" {
			return nil
		}
		if err := o.SaveMission(ctx, draft); err != nil {
			return err
		}
		m = o.store.Mission()
	}

	payload := api.MissionDone{Date: o.days.Today(), Done: !m.Value.Done}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/mission/done", payload, nil); err != nil {
		return fmt.Errorf("toggle mission done: %w", err)
	}

	return o.refreshAfter(ctx, ActionToggleMission)
}

// AddHabit creates an active habit.
func (o *Orchestrator) AddHabit(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("habit name is required")
	}

	payload := api.HabitCreate{Name: name, Active: true}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/habits", payload, nil); err != nil {
		return fmt.Errorf("add habit: %w", err)
	}

	return o.refreshAfter(ctx, ActionAddHabit)
}

// ToggleHabit sets a habit's completion state for the active day. The
// contract exposes no per-day completion read, so the caller supplies
// the explicit target state.
func (o *Orchestrator) ToggleHabit(ctx context.Context, habitID string, completed bool) error {
	payload := api.HabitCheck{Date: o.days.Today(), Completed: completed}
	path := "/api/habits/" + escapeID(habitID) + "/check"
	if _, err := o.api.Call(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("toggle habit %s: %w", habitID, err)
	}

	return o.refreshAfter(ctx, ActionToggleHabit)
}

// DeleteHabit removes a habit permanently.
func (o *Orchestrator) DeleteHabit(ctx context.Context, habitID string) error {
	if _, err := o.api.Call(ctx, http.MethodDelete, "/api/habits/"+escapeID(habitID), nil, nil); err != nil {
		return fmt.Errorf("delete habit %s: %w", habitID, err)
	}

	return o.refreshAfter(ctx, ActionDeleteHabit)
}

// AddTask creates a task for the active day.
func (o *Orchestrator) AddTask(ctx context.Context, title string) error {
	if title == "" {
		return fmt.Errorf("task title is required")
	}

	payload := api.TaskCreate{Title: title, Date: o.days.Today()}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/tasks", payload, nil); err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	return o.refreshAfter(ctx, ActionAddTask)
}

// SetTaskStatus moves a task to the given status. The service only
// accepts full updates, so the cached task supplies title and date.
func (o *Orchestrator) SetTaskStatus(ctx context.Context, taskID string, status api.TaskStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid task status: %s", status)
	}

	task, found := o.findTask(taskID)
	if !found {
		return fmt.Errorf("task %s not in the cached task list", taskID)
	}

	payload := api.TaskUpdate{Title: task.Title, Date: task.Date, Status: status}
	if _, err := o.api.Call(ctx, http.MethodPut, "/api/tasks/"+escapeID(taskID), payload, nil); err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}

	return o.refreshAfter(ctx, ActionUpdateTask)
}

// DeleteTask removes a task.
func (o *Orchestrator) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := o.api.Call(ctx, http.MethodDelete, "/api/tasks/"+escapeID(taskID), nil, nil); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	return o.refreshAfter(ctx, ActionDeleteTask)
}

// LogMood records the active day's mood rating (1-5).
func (o *Orchestrator) LogMood(ctx context.Context, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("mood rating %d out of range 1-5", rating)
	}

	payload := api.MoodUpsert{Date: o.days.Today(), Rating: rating}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/mood", payload, nil); err != nil {
		return fmt.Errorf("log mood: %w", err)
	}

	return o.refreshAfter(ctx, ActionLogMood)
}

// CompleteDay triggers the service's day-completion evaluation for the
// active day.
func (o *Orchestrator) CompleteDay(ctx context.Context) error {
	payload := api.DayComplete{Date: o.days.Today()}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/day/complete", payload, nil); err != nil {
		return fmt.Errorf("complete day: %w", err)
	}

	return o.refreshAfter(ctx, ActionCompleteDay)
}

// FetchWeekly produces the current weekly report on demand.
func (o *Orchestrator) FetchWeekly(ctx context.Context) (api.WeeklyReport, error) {
	if err := o.Refresh(ctx, DomainWeekly); err != nil {
		return api.WeeklyReport{}, err
	}
	return o.store.Weekly().Value, nil
}

// ClaimWeeklyBonus claims the bonus for the cached report's week. The
// service rejects a second claim; the failure propagates and the
// weekly slot stays untouched.
func (o *Orchestrator) ClaimWeeklyBonus(ctx context.Context) error {
	w := o.store.Weekly()
	if w.State != store.Loaded {
		return fmt.Errorf("no weekly report fetched yet")
	}

	payload := api.WeeklyBonusClaim{WeekStart: w.Value.WeekStart}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/weekly/bonus", payload, nil); err != nil {
		return fmt.Errorf("claim weekly bonus: %w", err)
	}

	return o.refreshAfter(ctx, ActionClaimBonus)
}

// AddNote creates a note. An empty category means uncategorized.
func (o *Orchestrator) AddNote(ctx context.Context, title, text, category string) error {
	if title == "" && text == "" {
		return fmt.Errorf("note needs a title or text")
	}

	payload := api.NoteCreate{Title: title, Text: text, Category: optional(category)}
	if _, err := o.api.Call(ctx, http.MethodPost, "/api/notes", payload, nil); err != nil {
		return fmt.Errorf("add note: %w", err)
	}

	return o.refreshAfter(ctx, ActionAddNote)
}

// UpdateNote replaces a note's content wholesale.
func (o *Orchestrator) UpdateNote(ctx context.Context, noteID, title, text, category string) error {
	payload := api.NoteUpdate{Title: title, Text: text, Category: optional(category)}
	if _, err := o.api.Call(ctx, http.MethodPut, "/api/notes/"+escapeID(noteID), payload, nil); err != nil {
		return fmt.Errorf("update note %s: %w", noteID, err)
	}

	return o.refreshAfter(ctx, ActionEditNote)
}

// DeleteNote removes a note.
func (o *Orchestrator) DeleteNote(ctx context.Context, noteID string) error {
	if _, err := o.api.Call(ctx, http.MethodDelete, "/api/notes/"+escapeID(noteID), nil, nil); err != nil {
		return fmt.Errorf("delete note %s: %w", noteID, err)
	}

	return o.refreshAfter(ctx, ActionDeleteNote)
}

func (o *Orchestrator) findTask(taskID string) (api.Task, bool) {
	tasks := o.store.Tasks()
	for _, t := range tasks.Value {
		if t.ID == taskID {
			return t, true
		}
	}
	return api.Task{}, false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
