package main

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sola-app/sola/pkg/api"
)

// XP awards. All progression math lives here; clients only mirror it.
const (
	xpMission     = 15
	xpHabitCheck  = 10
	xpMoodLog     = 5
	xpDayComplete = 25
	xpWeeklyBonus = 50
)

// xpForLevel returns the total XP required to reach level n
// (100, 300, 600, … — each level costs 100 more than the last).
func xpForLevel(n int) int {
	return 100 * n * (n + 1) / 2
}

func levelForXP(total int) int {
	lvl := 0
	for xpForLevel(lvl+1) <= total {
		lvl++
	}
	return lvl
}

type dayRecord struct {
	Completed   bool
	Mission     *api.Mission
	MoodRating  int  // 0 when not logged
	HabitChecks map[string]bool
	XPEarned    int
}

type habitRecord struct {
	ID     string
	Name   string
	Active bool
}

// state is the whole service: one user, everything in memory, one lock.
type state struct {
	mu sync.Mutex

	totalXP       int
	streak        int
	lastCompleted string

	days         map[string]*dayRecord
	habits       map[string]*habitRecord
	habitOrder   []string
	tasks        map[string]*api.Task
	taskOrder    []string
	notes        map[string]*api.Note
	noteOrder    []string
	achievements []api.Achievement
	unlocked     map[string]bool
	bonusWeeks   map[string]bool

	now func() time.Time
}

func newState() *state {
	return &state{
		days:       map[string]*dayRecord{},
		habits:     map[string]*habitRecord{},
		tasks:      map[string]*api.Task{},
		notes:      map[string]*api.Note{},
		unlocked:   map[string]bool{},
		bonusWeeks: map[string]bool{},
		now:        time.Now,
	}
}

func (s *state) day(date string) *dayRecord {
	d, ok := s.days[date]
	if !ok {
		d = &dayRecord{HabitChecks: map[string]bool{}}
		s.days[date] = d
	}
	return d
}

// award adds XP, attributing it to the given date for weekly reporting.
func (s *state) award(date string, xp int) {
	s.totalXP += xp
	s.day(date).XPEarned += xp
}

func (s *state) xpState() api.XPState {
	lvl := levelForXP(s.totalXP)
	floor := xpForLevel(lvl)
	return api.XPState{
		TotalXP:   s.totalXP,
		Level:     lvl,
		XPInLevel: s.totalXP - floor,
		XPForNext: xpForLevel(lvl+1) - floor,
		Streak:    s.streak,
	}
}

func (s *state) evaluate(date string) api.DayEvaluation {
	d := s.day(date)

	habitsDone := len(s.habitOrder) > 0
	for _, id := range s.habitOrder {
		h := s.habits[id]
		if h.Active && !d.HabitChecks[id] {
			habitsDone = false
			break
		}
	}

	tasksUpdated := false
	for _, t := range s.tasks {
		if t.Date == date && t.Status != api.TaskPending {
			tasksUpdated = true
			break
		}
	}

	return api.DayEvaluation{
		HabitsDone:   habitsDone,
		MoodLogged:   d.MoodRating > 0,
		TasksUpdated: tasksUpdated,
	}
}

// completeDay marks the date complete, awards the day bonus and extends
// or restarts the streak. Completing an already-complete day is a no-op.
func (s *state) completeDay(date string) {
	d := s.day(date)
	if d.Completed {
		return
	}
	d.Completed = true
	s.award(date, xpDayComplete)

	if s.lastCompleted != "" && nextDay(s.lastCompleted) == date {
		s.streak++
	} else {
		s.streak = 1
	}
	if date > s.lastCompleted {
		s.lastCompleted = date
	}
	s.checkAchievements(date)
}

func nextDay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

// weekStart returns the Monday of the date's week.
func weekStart(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

func (s *state) unlock(key, name, date string) {
	if s.unlocked[key] {
		return
	}
	s.unlocked[key] = true
	unlockedAt, _ := time.Parse("2006-01-02", date)
	if unlockedAt.IsZero() {
		unlockedAt = s.now().UTC()
	}
	s.achievements = append(s.achievements, api.Achievement{
		ID:         uuid.NewString(),
		Key:        key,
		Name:       name,
		UnlockedAt: unlockedAt,
	})
}

func (s *state) checkAchievements(date string) {
	if s.day(date).Mission != nil && s.day(date).Mission.Done {
		s.unlock("first_mission", "Mission Accomplished", date)
	}
	if s.day(date).Completed {
		s.unlock("first_day", "A Good Start", date)
	}
	if s.streak >= 3 {
		s.unlock("streak_3", "Three in a Row", date)
	}
	if s.streak >= 7 {
		s.unlock("streak_7", "A Full Week", date)
	}
	if levelForXP(s.totalXP) >= 5 {
		s.unlock("level_5", "Level Five", date)
	}
}

// weekly computes the report for the week containing today.
func (s *state) weekly(today string) api.WeeklyReport {
	start := weekStart(today)
	startT, _ := time.Parse("2006-01-02", start)
	end := startT.AddDate(0, 0, 6).Format("2006-01-02")

	activeHabits := 0
	for _, id := range s.habitOrder {
		if s.habits[id].Active {
			activeHabits++
		}
	}

	var (
		xpEarned    int
		checks      int
		moodSum     int
		moodCount   int
		bestMoodDay string
		bestMood    int
		tasksTotal  int
		tasksDone   int
		taskDayDone = map[string]int{}
	)

	for i := 0; i < 7; i++ {
		date := startT.AddDate(0, 0, i).Format("2006-01-02")
		d, ok := s.days[date]
		if !ok {
			continue
		}
		xpEarned += d.XPEarned
		for _, done := range d.HabitChecks {
			if done {
				checks++
			}
		}
		if d.MoodRating > 0 {
			moodSum += d.MoodRating
			moodCount++
			if d.MoodRating > bestMood {
				bestMood = d.MoodRating
				bestMoodDay = date
			}
		}
	}

	for _, t := range s.tasks {
		if t.Date < start || t.Date > end {
			continue
		}
		tasksTotal++
		if t.Status == api.TaskCompleted {
			tasksDone++
			taskDayDone[t.Date]++
		}
	}

	habitPct := 0.0
	if activeHabits > 0 {
		habitPct = float64(checks) / float64(activeHabits*7) * 100
	}
	taskPct := 0.0
	if tasksTotal > 0 {
		taskPct = float64(tasksDone) / float64(tasksTotal) * 100
	}

	var moodAvg *float64
	if moodCount > 0 {
		avg := float64(moodSum) / float64(moodCount)
		moodAvg = &avg
	}

	mostTasksDay := ""
	mostTasks := 0
	days := make([]string, 0, len(taskDayDone))
	for d := range taskDayDone {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		if taskDayDone[d] > mostTasks {
			mostTasks = taskDayDone[d]
			mostTasksDay = d
		}
	}

	return api.WeeklyReport{
		WeekStart:          start,
		WeekEnd:            end,
		HabitCompletionPct: habitPct,
		MoodAvg:            moodAvg,
		TaskCompletionPct:  taskPct,
		XPEarned:           xpEarned,
		StreakStart:        s.streak,
		StreakEnd:          s.streak,
		Highlights: api.WeeklyHighlights{
			BestMoodDay:      bestMoodDay,
			MostTasksDoneDay: mostTasksDay,
		},
		BonusAwarded: s.bonusWeeks[start],
	}
}
