// Package store holds the client's cached snapshots of the
// server-owned domains. Slots are tagged Unknown/Loaded/Absent so
// "not yet fetched" never collides with "server confirms empty", and
// every update is a wholesale replacement under a read/write lock:
// readers never block on an in-flight refresh, they see the previous
// value until the new one lands.
package store

import (
	"sync"

	"github.com/sola-app/sola/pkg/api"
)

// State tags a slot's lifecycle.
type State int

const (
	// Unknown means no successful refresh has happened yet.
	Unknown State = iota
	// Loaded means the slot carries the last refreshed value.
	Loaded
	// Absent means the server confirmed there is no value.
	Absent
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// Slot is one domain snapshot. Value is meaningful only when State is
// Loaded.
type Slot[T any] struct {
	State State
	Value T
}

// Store owns one slot per domain plus the on-demand weekly report.
// All methods are safe for concurrent use; getters return copies.
type Store struct {
	mu sync.RWMutex

	xp           Slot[api.XPState]
	day          Slot[api.DayStatus]
	mission      Slot[api.Mission]
	mood         Slot[api.Mood]
	habits       Slot[[]api.Habit]
	tasks        Slot[[]api.Task]
	notes        Slot[[]api.Note]
	achievements Slot[[]api.Achievement]
	weekly       Slot[api.WeeklyReport]
}

// New creates a Store with every slot Unknown.
func New() *Store {
	return &Store{}
}

func (s *Store) XP() Slot[api.XPState] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xp
}

func (s *Store) SetXP(v api.XPState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xp = Slot[api.XPState]{State: Loaded, Value: v}
}

func (s *Store) Day() Slot[api.DayStatus] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.day
}

func (s *Store) SetDay(v api.DayStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.day = Slot[api.DayStatus]{State: Loaded, Value: v}
}

func (s *Store) Mission() Slot[api.Mission] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mission
}

func (s *Store) SetMission(v api.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission = Slot[api.Mission]{State: Loaded, Value: v}
}

// SetMissionAbsent records that the active day has no mission yet.
func (s *Store) SetMissionAbsent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission = Slot[api.Mission]{State: Absent}
}

func (s *Store) Mood() Slot[api.Mood] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mood
}

func (s *Store) SetMood(v api.Mood) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = Slot[api.Mood]{State: Loaded, Value: v}
}

// SetMoodAbsent records "no mood for this day". The service signals
// absence as a fetch failure, so the orchestrator translates it here.
func (s *Store) SetMoodAbsent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = Slot[api.Mood]{State: Absent}
}

func (s *Store) Habits() Slot[[]api.Habit] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.habits)
}

func (s *Store) SetHabits(v []api.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = Slot[[]api.Habit]{State: Loaded, Value: v}
}

func (s *Store) Tasks() Slot[[]api.Task] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.tasks)
}

func (s *Store) SetTasks(v []api.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = Slot[[]api.Task]{State: Loaded, Value: v}
}

func (s *Store) Notes() Slot[[]api.Note] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.notes)
}

func (s *Store) SetNotes(v []api.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = Slot[[]api.Note]{State: Loaded, Value: v}
}

func (s *Store) Achievements() Slot[[]api.Achievement] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.achievements)
}

func (s *Store) SetAchievements(v []api.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = Slot[[]api.Achievement]{State: Loaded, Value: v}
}

func (s *Store) Weekly() Slot[api.WeeklyReport] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekly
}

func (s *Store) SetWeekly(v api.WeeklyReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekly = Slot[api.WeeklyReport]{State: Loaded, Value: v}
}

// ResetWeekly drops the weekly report back to Unknown. Reports are not
// cached across day changes.
func (s *Store) ResetWeekly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekly = Slot[api.WeeklyReport]{}
}

// cloneSlice copies a slice slot so callers cannot mutate the cached
// backing array.
func cloneSlice[T any](slot Slot[[]T]) Slot[[]T] {
	if slot.Value == nil {
		return slot
	}
	out := make([]T, len(slot.Value))
	copy(out, slot.Value)
	return Slot[[]T]{State: slot.State, Value: out}
}
