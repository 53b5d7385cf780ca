// Package api defines the wire types of the Sola service contract.
// Every entity here is owned by the remote service; the client only
// holds read-through snapshots of these shapes.
package api

import "time"

// XPState is the gamification summary maintained by the service.
// The client never derives any of these fields locally.
type XPState struct {
	TotalXP   int `json:"total_xp"`
	Level     int `json:"level"`
	XPInLevel int `json:"xp_in_level"`
	XPForNext int `json:"xp_for_next"`
	Streak    int `json:"streak"`
}

// DayEvaluation summarizes cross-domain activity for one date.
type DayEvaluation struct {
	HabitsDone   bool `json:"habits_done"`
	MoodLogged   bool `json:"mood_logged"`
	TasksUpdated bool `json:"tasks_updated"`
}

// DayStatus is scoped to exactly one date and goes stale the moment the
// active date changes.
type DayStatus struct {
	Date       string        `json:"date"`
	Completed  bool          `json:"completed"`
	Evaluation DayEvaluation `json:"evaluation"`
}

// Mission is the single mission of a given date.
type Mission struct {
	Date string `json:"date"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Mood is the single mood entry of a given date. Rating is 1-5.
type Mood struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`
}

// Habit identity is the ID; deletion is terminal.
type Habit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// TaskStatus enumerates the service's task states. Transitions are not
// constrained on the client side.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskDeferred  TaskStatus = "deferred"
	TaskArchived  TaskStatus = "archived"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskCompleted, TaskDeferred, TaskArchived:
		return true
	default:
		return false
	}
}

// Task is fixed to its creation date.
type Task struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Date   string     `json:"date"`
	Status TaskStatus `json:"status"`
}

// Note is not date-scoped. A nil Category means uncategorized.
type Note struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Category *string `json:"category"`
}

// Achievement entries are append-only from the client's perspective.
type Achievement struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// WeeklyHighlights names the standout days of a weekly report.
type WeeklyHighlights struct {
	BestMoodDay      string `json:"best_mood_day"`
	MostTasksDoneDay string `json:"most_tasks_done_day"`
}

// WeeklyReport is produced on demand and never cached across days.
type WeeklyReport struct {
	WeekStart          string           `json:"week_start"`
	WeekEnd            string           `json:"week_end"`
	HabitCompletionPct float64          `json:"habit_completion_pct"`
	MoodAvg            *float64         `json:"mood_avg"`
	TaskCompletionPct  float64          `json:"task_completion_pct"`
	XPEarned           int              `json:"xp_earned"`
	StreakStart        int              `json:"streak_start"`
	StreakEnd          int              `json:"streak_end"`
	Highlights         WeeklyHighlights `json:"highlights"`
	BonusAwarded       bool             `json:"bonus_awarded"`
}
