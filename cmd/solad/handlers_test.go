package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sola-app/sola/pkg/api"
)

func newTestRouter(t *testing.T, today string) (*gin.Engine, *state) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := newState()
	if today != "" {
		fixed, err := time.Parse("2006-01-02", today)
		require.NoError(t, err)
		st.now = func() time.Time { return fixed }
	}
	return newRouter(st, nil), st
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestXPStateStartsAtZero(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodGet, "/api/xpstate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	xp := decode[api.XPState](t, w)
	assert.Equal(t, 0, xp.TotalXP)
	assert.Equal(t, 0, xp.Level)
	assert.Equal(t, 100, xp.XPForNext)
	assert.Equal(t, 0, xp.Streak)
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 0, xpForLevel(0))
	assert.Equal(t, 100, xpForLevel(1))
	assert.Equal(t, 300, xpForLevel(2))
	assert.Equal(t, 600, xpForLevel(3))

	assert.Equal(t, 0, levelForXP(99))
	assert.Equal(t, 1, levelForXP(100))
	assert.Equal(t, 1, levelForXP(299))
	assert.Equal(t, 2, levelForXP(300))
}

func TestMissionLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	// No mission yet: 204.
	w := do(t, r, http.MethodGet, "/api/mission?d=2024-05-01", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Save echoes the stored mission.
	w = do(t, r, http.MethodPost, "/api/mission", api.MissionUpsert{Date: "2024-05-01", Text: "write spec"})
	require.Equal(t, http.StatusOK, w.Code)
	m := decode[api.Mission](t, w)
	assert.Equal(t, "write spec", m.Text)
	assert.False(t, m.Done)

	// Marking done awards mission XP exactly once.
	w = do(t, r, http.MethodPost, "/api/mission/done", api.MissionDone{Date: "2024-05-01", Done: true})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/mission/done", api.MissionDone{Date: "2024-05-01", Done: true})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	xp := decode[api.XPState](t, w)
	assert.Equal(t, xpMission, xp.TotalXP)

	// Reopening does not claw XP back.
	w = do(t, r, http.MethodPost, "/api/mission/done", api.MissionDone{Date: "2024-05-01", Done: false})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, xpMission, decode[api.XPState](t, w).TotalXP)
}

func TestMissionDoneWithoutMissionIs404(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/mission/done", api.MissionDone{Date: "2024-05-01", Done: true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoodAbsenceIs404(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodGet, "/api/mood/2024-05-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 4})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/mood/2024-05-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.Mood{Date: "2024-05-01", Rating: 4}, decode[api.Mood](t, w))
}

func TestMoodXPAwardedOnFirstLogOnly(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 2})
	do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 5})

	w := do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, xpMoodLog, decode[api.XPState](t, w).TotalXP)

	w = do(t, r, http.MethodGet, "/api/mood/2024-05-01", nil)
	assert.Equal(t, 5, decode[api.Mood](t, w).Rating, "the rating itself can be revised")
}

func TestMoodRejectsOutOfRangeRating(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHabitCheckAwardsOncePerDay(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/habits", api.HabitCreate{Name: "stretch", Active: true})
	require.Equal(t, http.StatusCreated, w.Code)
	habit := decode[api.Habit](t, w)

	check := "/api/habits/" + habit.ID + "/check"
	do(t, r, http.MethodPost, check, api.HabitCheck{Date: "2024-05-01", Completed: true})
	do(t, r, http.MethodPost, check, api.HabitCheck{Date: "2024-05-01", Completed: true})

	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, xpHabitCheck, decode[api.XPState](t, w).TotalXP)

	// A different day awards again.
	do(t, r, http.MethodPost, check, api.HabitCheck{Date: "2024-05-02", Completed: true})
	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, 2*xpHabitCheck, decode[api.XPState](t, w).TotalXP)
}

func TestDayStatusEvaluation(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/habits", api.HabitCreate{Name: "stretch", Active: true})
	habit := decode[api.Habit](t, w)

	w = do(t, r, http.MethodGet, "/api/day/status?d=2024-05-01", nil)
	status := decode[api.DayStatus](t, w)
	assert.False(t, status.Completed)
	assert.False(t, status.Evaluation.HabitsDone)
	assert.False(t, status.Evaluation.MoodLogged)

	do(t, r, http.MethodPost, "/api/habits/"+habit.ID+"/check", api.HabitCheck{Date: "2024-05-01", Completed: true})
	do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 4})

	w = do(t, r, http.MethodGet, "/api/day/status?d=2024-05-01", nil)
	status = decode[api.DayStatus](t, w)
	assert.True(t, status.Evaluation.HabitsDone)
	assert.True(t, status.Evaluation.MoodLogged)
}

func TestCompleteDayExtendsStreakOnConsecutiveDays(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-03")

	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-01"})
	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-02"})

	w := do(t, r, http.MethodGet, "/api/xpstate", nil)
	xp := decode[api.XPState](t, w)
	assert.Equal(t, 2, xp.Streak)
	assert.Equal(t, 2*xpDayComplete, xp.TotalXP)

	// A gap restarts the streak.
	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-04"})
	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, 1, decode[api.XPState](t, w).Streak)

	// Completing the same day twice awards nothing extra.
	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-04"})
	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, 3*xpDayComplete, decode[api.XPState](t, w).TotalXP)
}

func TestTaskLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/tasks", api.TaskCreate{Title: "review notes", Date: "2024-05-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[api.Task](t, w)
	assert.Equal(t, api.TaskPending, task.Status)

	w = do(t, r, http.MethodPut, "/api/tasks/"+task.ID,
		api.TaskUpdate{Title: task.Title, Date: task.Date, Status: api.TaskCompleted})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.TaskCompleted, decode[api.Task](t, w).Status)

	w = do(t, r, http.MethodGet, "/api/tasks?d=2024-05-01", nil)
	tasks := decode[[]api.Task](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, api.TaskCompleted, tasks[0].Status)

	// Completed task flips the day evaluation.
	w = do(t, r, http.MethodGet, "/api/day/status?d=2024-05-01", nil)
	assert.True(t, decode[api.DayStatus](t, w).Evaluation.TasksUpdated)

	w = do(t, r, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/tasks?d=2024-05-01", nil)
	assert.Empty(t, decode[[]api.Task](t, w))
}

func TestTaskUpdateRejectsInvalidStatus(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/tasks", api.TaskCreate{Title: "review notes", Date: "2024-05-01"})
	task := decode[api.Task](t, w)

	w = do(t, r, http.MethodPut, "/api/tasks/"+task.ID,
		map[string]string{"title": task.Title, "date": task.Date, "status": "paused"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	cat := "ideas"
	w := do(t, r, http.MethodPost, "/api/notes", api.NoteCreate{Title: "idea", Text: "try the thing", Category: &cat})
	require.Equal(t, http.StatusCreated, w.Code)
	note := decode[api.Note](t, w)
	require.NotNil(t, note.Category)
	assert.Equal(t, "ideas", *note.Category)

	// Full update clears the category.
	w = do(t, r, http.MethodPut, "/api/notes/"+note.ID, api.NoteUpdate{Title: "idea", Text: "revised"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[api.Note](t, w)
	assert.Nil(t, updated.Category)
	assert.Equal(t, "revised", updated.Text)

	w = do(t, r, http.MethodDelete, "/api/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/notes", nil)
	assert.Empty(t, decode[[]api.Note](t, w))
}

func TestAchievementsUnlockOnce(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-01"})
	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-02"})
	do(t, r, http.MethodPost, "/api/day/complete", api.DayComplete{Date: "2024-05-03"})

	w := do(t, r, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	achievements := decode[[]api.Achievement](t, w)

	keys := map[string]int{}
	for _, a := range achievements {
		keys[a.Key]++
	}
	assert.Equal(t, 1, keys["first_day"])
	assert.Equal(t, 1, keys["streak_3"])
}

func TestWeeklyBonusSecondClaimConflicts(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01") // a Wednesday; week starts 2024-04-29

	w := do(t, r, http.MethodGet, "/api/weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[api.WeeklyReport](t, w)
	assert.Equal(t, "2024-04-29", report.WeekStart)
	assert.Equal(t, "2024-05-05", report.WeekEnd)
	assert.False(t, report.BonusAwarded)

	w = do(t, r, http.MethodPost, "/api/weekly/bonus", api.WeeklyBonusClaim{WeekStart: report.WeekStart})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[api.WeeklyReport](t, w).BonusAwarded)

	w = do(t, r, http.MethodGet, "/api/xpstate", nil)
	assert.Equal(t, xpWeeklyBonus, decode[api.XPState](t, w).TotalXP)

	w = do(t, r, http.MethodPost, "/api/weekly/bonus", api.WeeklyBonusClaim{WeekStart: report.WeekStart})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWeeklyReportAggregates(t *testing.T) {
	r, _ := newTestRouter(t, "2024-05-01")

	w := do(t, r, http.MethodPost, "/api/habits", api.HabitCreate{Name: "stretch", Active: true})
	habit := decode[api.Habit](t, w)
	do(t, r, http.MethodPost, "/api/habits/"+habit.ID+"/check", api.HabitCheck{Date: "2024-04-29", Completed: true})
	do(t, r, http.MethodPost, "/api/habits/"+habit.ID+"/check", api.HabitCheck{Date: "2024-04-30", Completed: true})

	do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-04-29", Rating: 3})
	do(t, r, http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-04-30", Rating: 5})

	w = do(t, r, http.MethodPost, "/api/tasks", api.TaskCreate{Title: "review notes", Date: "2024-04-30"})
	task := decode[api.Task](t, w)
	do(t, r, http.MethodPut, "/api/tasks/"+task.ID,
		api.TaskUpdate{Title: task.Title, Date: task.Date, Status: api.TaskCompleted})

	w = do(t, r, http.MethodGet, "/api/weekly", nil)
	report := decode[api.WeeklyReport](t, w)

	assert.Equal(t, 2*xpHabitCheck+2*xpMoodLog, report.XPEarned)
	assert.InDelta(t, 100.0*2/7, report.HabitCompletionPct, 0.01)
	require.NotNil(t, report.MoodAvg)
	assert.InDelta(t, 4.0, *report.MoodAvg, 0.01)
	assert.Equal(t, 100.0, report.TaskCompletionPct)
	assert.Equal(t, "2024-04-30", report.Highlights.BestMoodDay)
	assert.Equal(t, "2024-04-30", report.Highlights.MostTasksDoneDay)
}
